package commands

import (
	"context"
	"log/slog"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/tracking"
	"marketplace/internal/core/ports"
)

// OrderReader is the read side a handler needs when it does not change the order.
type OrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}

// ReportLocationCommandHandler records the latest position of the courier
// carrying an order. Samples for orders outside pickup, from other couriers
// or older than the stored one are dropped without error.
//
// The order is read without a lock, so a delivery or cancellation can commit
// between the read and the save. The status is read again after a save and
// the sample is removed when the order has left pickup.
type ReportLocationCommandHandler struct {
	orders    OrderReader
	locations ports.LocationStore
	logger    *slog.Logger
}

func NewReportLocationCommandHandler(
	orders OrderReader,
	locations ports.LocationStore,
	logger *slog.Logger,
) ReportLocationCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return ReportLocationCommandHandler{orders: orders, locations: locations, logger: logger}
}

func (h ReportLocationCommandHandler) Handle(ctx context.Context, cmd ReportLocationCommand) (ReportLocationResult, error) {
	if err := cmd.Validate(); err != nil {
		return ReportLocationResult{}, err
	}

	o, err := h.orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return ReportLocationResult{}, err
	}

	if o.Status() != order.Pickup {
		return ReportLocationResult{Reason: LocationNotInPickup}, nil
	}
	if !o.IsAssignedTo(cmd.Actor().ID()) {
		return ReportLocationResult{Reason: LocationNotAssigned}, nil
	}

	sample, err := tracking.NewSample(o.ID(), cmd.Actor().ID(), cmd.Location(), cmd.CapturedAt())
	if err != nil {
		return ReportLocationResult{}, err
	}

	kept, err := h.locations.Save(ctx, sample)
	if err != nil {
		return ReportLocationResult{}, err
	}
	if !kept {
		h.logger.DebugContext(ctx, "stale location sample ignored",
			"order_id", o.ID().String(), "courier_id", cmd.Actor().ID())
		return ReportLocationResult{Reason: LocationStale}, nil
	}

	current, err := h.orders.Get(ctx, o.ID())
	if err != nil {
		return ReportLocationResult{}, err
	}
	if current.Status() != order.Pickup {
		if err = h.locations.Delete(ctx, o.ID()); err != nil {
			return ReportLocationResult{}, err
		}
		h.logger.DebugContext(ctx, "location sample discarded, order left pickup",
			"order_id", o.ID().String(), "status", current.Status().String())
		return ReportLocationResult{Reason: LocationNotInPickup}, nil
	}

	return ReportLocationResult{Accepted: true}, nil
}
