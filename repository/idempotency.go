package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	idempotencyPrefix     = "idem:order:"
	DefaultIdempotencyTTL = 24 * time.Hour

	// IdempotencyPending is stored while the order for a key is being created.
	IdempotencyPending = "pending"
)

// IdempotencyStore maps a client-supplied Idempotency-Key to the id of the
// order it created. A key is reserved before the order is written so that
// concurrent retries cannot both create one.
type IdempotencyStore interface {
	// Reserve claims key. When the key is already held, reserved is false
	// and current is IdempotencyPending or the stored order id ("" if the
	// holder released it in the meantime).
	Reserve(ctx context.Context, key string) (reserved bool, current string, err error)
	// Complete replaces the reservation with orderID.
	Complete(ctx context.Context, key, orderID string) error
	// Release drops a reservation whose order was never created.
	Release(ctx context.Context, key string) error
}

type RedisIdempotencyStore struct {
	client RedisStore
	ttl    time.Duration
}

func NewRedisIdempotencyStore(client RedisStore, ttl time.Duration) *RedisIdempotencyStore {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	return &RedisIdempotencyStore{client: client, ttl: ttl}
}

func (s *RedisIdempotencyStore) Reserve(ctx context.Context, key string) (bool, string, error) {
	ok, err := s.client.SetNX(ctx, idempotencyPrefix+key, IdempotencyPending, s.ttl).Result()
	if err != nil {
		return false, "", err
	}
	if ok {
		return true, "", nil
	}
	val, err := s.client.Get(ctx, idempotencyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return false, "", nil
	}
	if err != nil {
		return false, "", err
	}
	return false, val, nil
}

func (s *RedisIdempotencyStore) Complete(ctx context.Context, key, orderID string) error {
	return s.client.Set(ctx, idempotencyPrefix+key, orderID, s.ttl).Err()
}

func (s *RedisIdempotencyStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, idempotencyPrefix+key).Err()
}
