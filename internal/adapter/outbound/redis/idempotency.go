package redis

import (
	"context"
	"errors"
	"time"

	"github.com/creatorkit/server/internal/port/outbound"
	"github.com/redis/go-redis/v9"
)

const (
	idempotencyKeyPrefix  = "idempotency:"
	idempotencyLockSuffix = ":lock"
)

// idempotencyStore implements outbound.IdempotencyStorePort.
type idempotencyStore struct {
	client *redis.Client
}

// NewIdempotencyStore creates a Redis-backed idempotency key store.
func NewIdempotencyStore(client *redis.Client) outbound.IdempotencyStorePort {
	return &idempotencyStore{client: client}
}

func (s *idempotencyStore) Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return s.client.SetNX(ctx, idempotencyKeyPrefix+key+idempotencyLockSuffix, "1", ttl).Result()
}

func (s *idempotencyStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, idempotencyKeyPrefix+key+idempotencyLockSuffix).Err()
}

func (s *idempotencyStore) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, idempotencyKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return data, err
}

func (s *idempotencyStore) Save(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return s.client.Set(ctx, idempotencyKeyPrefix+key, response, ttl).Err()
}

var _ outbound.IdempotencyStorePort = (*idempotencyStore)(nil)
