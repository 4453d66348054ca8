package queries

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/tracking"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

type ProgressView struct {
	OrderID   string     `json:"orderId"`
	Status    string     `json:"status"`
	Fraction  float64    `json:"fraction"`
	Source    string     `json:"source"`
	Available bool       `json:"available"`
	SampledAt *time.Time `json:"sampledAt,omitempty"`
}

type OrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}

type GetOrderProgressQueryHandler struct {
	orders    OrderReader
	locations ports.LocationStore
	estimator services.ProgressEstimator
	now       func() time.Time
}

func NewGetOrderProgressQueryHandler(
	orders OrderReader,
	locations ports.LocationStore,
	estimator services.ProgressEstimator,
) GetOrderProgressQueryHandler {
	return GetOrderProgressQueryHandler{
		orders:    orders,
		locations: locations,
		estimator: estimator,
		now:       time.Now,
	}
}

func (h GetOrderProgressQueryHandler) Handle(ctx context.Context, query GetOrderProgressQuery) (ProgressView, error) {
	if err := query.Validate(); err != nil {
		return ProgressView{}, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return ProgressView{}, err
	}
	if !o.CanBeViewedBy(query.Actor()) {
		return ProgressView{}, errs.NewForbiddenError("view progress of order "+o.ID().String(), query.Actor().String())
	}

	var sample *tracking.Sample
	if o.Status() == order.Pickup {
		if sample, err = h.locations.Get(ctx, o.ID()); err != nil {
			return ProgressView{}, err
		}
	}

	progress, err := h.estimator.Estimate(o, sample, h.now().UTC())
	if err != nil {
		return ProgressView{}, err
	}

	return ProgressView{
		OrderID:   o.ID().String(),
		Status:    o.Status().String(),
		Fraction:  progress.Fraction(),
		Source:    string(progress.Source()),
		Available: progress.IsAvailable(),
		SampledAt: progress.SampledAt(),
	}, nil
}
