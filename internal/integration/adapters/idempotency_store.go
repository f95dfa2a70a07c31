package adapters

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vaultpay/backend/internal/application/adapter"
)

const idempotencyKeyPrefix = "vaultpay:idempotency:"

// redisIdempotencyStore implements adapter.IdempotencyStore on Redis SETNX.
// The TTL bounds how long a crashed request can block retries; the ledger's
// unique index remains the authoritative duplicate check.
type redisIdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisIdempotencyStore creates a new Redis-backed idempotency store.
func NewRedisIdempotencyStore(client *redis.Client, ttl time.Duration) adapter.IdempotencyStore {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &redisIdempotencyStore{
		client: client,
		ttl:    ttl,
	}
}

// Reserve claims the key for the given transaction reference.
func (s *redisIdempotencyStore) Reserve(ctx context.Context, key, reference string) (bool, error) {
	return s.client.SetNX(ctx, idempotencyKeyPrefix+key, reference, s.ttl).Result()
}

// Release frees the key.
func (s *redisIdempotencyStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, idempotencyKeyPrefix+key).Err()
}
