package ports

import (
	"context"
	"errors"
)

var ErrIdempotencyKeyInFlight = errors.New("request with this idempotency key is still in progress")

// IdempotencyStore remembers results of mutating requests keyed by a
// client-supplied key so that re-submissions have no further effect.
type IdempotencyStore interface {
	// Reserve claims the key. When the key already completed it returns the
	// stored response and done=true. When another request holds the key it
	// returns ErrIdempotencyKeyInFlight.
	Reserve(ctx context.Context, scope, key string) (response []byte, done bool, err error)

	Complete(ctx context.Context, scope, key string, response []byte) error

	// Release drops a reservation whose request failed before any effect.
	Release(ctx context.Context, scope, key string) error
}
