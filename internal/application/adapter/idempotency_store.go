// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// IdempotencyStore suppresses duplicate payment submissions racing on the same
// idempotency key before either has reached the ledger. It is a fast-path
// guard only: the unique index on the ledger's idempotency_key column remains
// authoritative, so a lost reservation is never a correctness problem.
type IdempotencyStore interface {
	// Reserve claims the key for the given transaction reference. It returns
	// false if another in-flight payment already holds the key.
	Reserve(ctx context.Context, key, reference string) (bool, error)

	// Release frees the key, allowing a later retry after a failed attempt.
	Release(ctx context.Context, key string) error
}
