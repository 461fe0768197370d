package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"archie-core-vtex-connector/internal/domain"

	"github.com/redis/go-redis/v9"
)

const stateKeyPrefix = "oauth:state:"

// StateStore implements ports.StateStore using Redis
type StateStore struct {
	client *redis.Client
}

// NewClient parses a redis:// URL and verifies the server is reachable
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// NewStateStore creates a state store on an existing client
func NewStateStore(client *redis.Client) *StateStore {
	return &StateStore{client: client}
}

// Put stores the shop a state nonce was issued for
func (s *StateStore) Put(ctx context.Context, state, shop string, ttl time.Duration) error {
	if err := s.client.Set(ctx, stateKeyPrefix+state, shop, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store oauth state: %w", err)
	}
	return nil
}

// Consume atomically reads and deletes a state nonce
func (s *StateStore) Consume(ctx context.Context, state string) (string, error) {
	if state == "" {
		return "", domain.ErrInvalidState
	}

	shop, err := s.client.GetDel(ctx, stateKeyPrefix+state).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrInvalidState
	}
	if err != nil {
		return "", fmt.Errorf("failed to consume oauth state: %w", err)
	}
	return shop, nil
}
