package storage

import (
	"context"
	"io"
	"sync"
)

// StubImageStorage implements ImageStorage in memory for tests and
// deployments without object storage configured.
type StubImageStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	BaseURL string
	Err     error
}

// NewStubImageStorage creates an empty stub store
func NewStubImageStorage() *StubImageStorage {
	return &StubImageStorage{
		objects: make(map[string][]byte),
		BaseURL: "https://images.test",
	}
}

// Upload implements ImageStorage
func (s *StubImageStorage) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return "", s.Err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	s.objects[key] = data
	return s.BaseURL + "/" + key, nil
}

// Delete implements ImageStorage
func (s *StubImageStorage) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	delete(s.objects, key)
	return nil
}

// Object returns a stored object's bytes and whether it exists
func (s *StubImageStorage) Object(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	return data, ok
}

var _ ImageStorage = (*StubImageStorage)(nil)
