package cache

import (
	"context"
	"sync"

	"github.com/zanco/backend/internal/domain/cart"
)

// InMemoryGuestCartStore implements cart.GuestStore in process memory.
// Suitable for tests and single-instance deployments without Redis.
type InMemoryGuestCartStore struct {
	mu    sync.RWMutex
	carts map[string][]cart.Line
}

// NewInMemoryGuestCartStore creates an empty in-memory store
func NewInMemoryGuestCartStore() *InMemoryGuestCartStore {
	return &InMemoryGuestCartStore{carts: make(map[string][]cart.Line)}
}

// Load implements cart.GuestStore
func (s *InMemoryGuestCartStore) Load(ctx context.Context, token string) ([]cart.Line, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lines, ok := s.carts[token]
	if !ok {
		return nil, nil
	}
	out := make([]cart.Line, len(lines))
	copy(out, lines)
	return out, nil
}

// Save implements cart.GuestStore
func (s *InMemoryGuestCartStore) Save(ctx context.Context, token string, lines []cart.Line) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]cart.Line, len(lines))
	copy(stored, lines)
	s.carts[token] = stored
	return nil
}

// Delete implements cart.GuestStore
func (s *InMemoryGuestCartStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, token)
	return nil
}

var _ cart.GuestStore = (*InMemoryGuestCartStore)(nil)
