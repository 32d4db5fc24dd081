package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/zanco/backend/internal/domain/cart"
	"github.com/zanco/backend/internal/infrastructure/config"
)

const guestCartKeyPrefix = "cart:guest:"

// RedisGuestCartStore implements cart.GuestStore on Redis. Each guest
// cart is one JSON value keyed by the opaque cart session token, with a
// TTL so abandoned carts eventually disappear.
type RedisGuestCartStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisGuestCartStore connects to Redis and returns a guest cart store
func NewRedisGuestCartStore(cfg config.RedisConfig) (*RedisGuestCartStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisGuestCartStore{client: client, ttl: cfg.CartTTL}, nil
}

// NewRedisGuestCartStoreWithClient wraps an existing client
func NewRedisGuestCartStoreWithClient(client *redis.Client, ttl time.Duration) *RedisGuestCartStore {
	return &RedisGuestCartStore{client: client, ttl: ttl}
}

// Load implements cart.GuestStore
func (s *RedisGuestCartStore) Load(ctx context.Context, token string) ([]cart.Line, error) {
	data, err := s.client.Get(ctx, guestCartKeyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load guest cart: %w", err)
	}

	var lines []cart.Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("failed to decode guest cart: %w", err)
	}
	return lines, nil
}

// Save implements cart.GuestStore
func (s *RedisGuestCartStore) Save(ctx context.Context, token string, lines []cart.Line) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("failed to encode guest cart: %w", err)
	}
	if err := s.client.Set(ctx, guestCartKeyPrefix+token, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save guest cart: %w", err)
	}
	return nil
}

// Delete implements cart.GuestStore
func (s *RedisGuestCartStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, guestCartKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("failed to delete guest cart: %w", err)
	}
	return nil
}

// Close closes the underlying Redis client
func (s *RedisGuestCartStore) Close() error {
	return s.client.Close()
}

var _ cart.GuestStore = (*RedisGuestCartStore)(nil)
