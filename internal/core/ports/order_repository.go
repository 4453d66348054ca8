package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order with its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists a changed order. It fails with errs.ConflictError when the
	// stored version no longer matches the version the order was loaded with.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns errs.ObjectNotFoundError when no order has the id.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate loads the order and locks its row until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListDeliveredBefore returns up to limit delivered orders last updated before the cutoff.
	ListDeliveredBefore(ctx context.Context, cutoff time.Time, limit int) ([]*order.Order, error)
}
