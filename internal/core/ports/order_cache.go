package ports

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
)

var ErrCacheMiss = errors.New("cache miss")

// OrderCache is a read-through cache of serialized order views. It is never
// consulted for transitions or payments.
type OrderCache interface {
	Get(ctx context.Context, id kernel.UUID) ([]byte, error)
	Set(ctx context.Context, id kernel.UUID, data []byte) error
	Invalidate(ctx context.Context, ids ...kernel.UUID) error
}
