package ports

import "context"

// IdempotencyStore remembers which order a customer's Idempotency-Key produced.
type IdempotencyStore interface {
	Lookup(ctx context.Context, customerID, key string) (orderID string, found bool, err error)
	Remember(ctx context.Context, customerID, key, orderID string) error
}
