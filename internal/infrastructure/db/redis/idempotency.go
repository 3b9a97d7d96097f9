package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultIdempotencyTTL = 24 * time.Hour

// IdempotencyStore maps a customer's Idempotency-Key to the order it created.
// Key format: idempotency:<customer_id>:<key>
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore wraps the given Redis client. Keys expire after ttl.
func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Lookup returns the order id remembered for key, if any.
func (s *IdempotencyStore) Lookup(ctx context.Context, customerID, key string) (string, bool, error) {
	orderID, err := s.client.Get(ctx, s.key(customerID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("idempotency lookup: %w", err)
	}
	return orderID, true, nil
}

// Remember records the order created for key. An existing entry is kept.
func (s *IdempotencyStore) Remember(ctx context.Context, customerID, key, orderID string) error {
	if err := s.client.SetNX(ctx, s.key(customerID, key), orderID, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency remember: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) key(customerID, key string) string {
	return fmt.Sprintf("idempotency:%s:%s", customerID, key)
}
