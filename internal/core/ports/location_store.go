package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/tracking"
)

// LocationStore keeps only the latest courier sample per order.
type LocationStore interface {
	// Save stores the sample unless a newer one is already stored. It reports
	// whether the sample was kept.
	Save(ctx context.Context, sample tracking.Sample) (bool, error)

	// Get returns nil when no sample exists.
	Get(ctx context.Context, orderID kernel.UUID) (*tracking.Sample, error)

	Delete(ctx context.Context, orderID kernel.UUID) error
}
