package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
)

// orderTransitioner loads an order under a row lock, applies one transition
// and persists it with a version check. Concurrent callers for the same order
// are serialized by the lock; a stale write fails with errs.ConflictError.
type orderTransitioner struct {
	uowFactory OrderUoWFactory
	cache      ports.OrderCache
	logger     *slog.Logger
	now        func() time.Time
}

func newOrderTransitioner(uowFactory OrderUoWFactory, cache ports.OrderCache, logger *slog.Logger) orderTransitioner {
	if logger == nil {
		logger = slog.Default()
	}
	return orderTransitioner{uowFactory: uowFactory, cache: cache, logger: logger, now: time.Now}
}

func (t orderTransitioner) apply(
	ctx context.Context,
	orderID kernel.UUID,
	change func(o *order.Order, at time.Time) error,
) (*order.Order, error) {
	uow := t.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.GetForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err = change(o, t.now().UTC()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	invalidateOrders(ctx, t.cache, t.logger, orderID)
	return o, nil
}

// invalidateOrders drops cached views after a commit. A failure only delays
// freshness until the entry expires, so it is logged and not returned.
func invalidateOrders(ctx context.Context, cache ports.OrderCache, logger *slog.Logger, ids ...kernel.UUID) {
	if cache == nil || len(ids) == 0 {
		return
	}
	if err := cache.Invalidate(ctx, ids...); err != nil {
		logger.WarnContext(ctx, "order cache invalidation failed", "error", err, "orders", len(ids))
	}
}

type MarkOrderReadyCommandHandler struct {
	transitioner orderTransitioner
}

func NewMarkOrderReadyCommandHandler(
	uowFactory OrderUoWFactory,
	cache ports.OrderCache,
	logger *slog.Logger,
) MarkOrderReadyCommandHandler {
	return MarkOrderReadyCommandHandler{transitioner: newOrderTransitioner(uowFactory, cache, logger)}
}

func (h MarkOrderReadyCommandHandler) Handle(ctx context.Context, cmd MarkOrderReadyCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	_, err := h.transitioner.apply(ctx, cmd.OrderID(), func(o *order.Order, at time.Time) error {
		return o.MarkReady(cmd.Actor(), at)
	})
	return err
}

// ClaimOrderCommandHandler assigns the acting courier to a ready order. Of two
// couriers racing for the same order exactly one wins; the other receives
// errs.ConflictError.
type ClaimOrderCommandHandler struct {
	transitioner orderTransitioner
}

func NewClaimOrderCommandHandler(
	uowFactory OrderUoWFactory,
	cache ports.OrderCache,
	logger *slog.Logger,
) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{transitioner: newOrderTransitioner(uowFactory, cache, logger)}
}

func (h ClaimOrderCommandHandler) Handle(ctx context.Context, cmd ClaimOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	_, err := h.transitioner.apply(ctx, cmd.OrderID(), func(o *order.Order, at time.Time) error {
		return o.Claim(cmd.Actor(), at)
	})
	return err
}

// DeliverOrderCommandHandler closes the transit leg and drops the courier's
// location sample, which is only meaningful while the order is in pickup.
type DeliverOrderCommandHandler struct {
	transitioner orderTransitioner
	locations    ports.LocationStore
}

func NewDeliverOrderCommandHandler(
	uowFactory OrderUoWFactory,
	cache ports.OrderCache,
	locations ports.LocationStore,
	logger *slog.Logger,
) DeliverOrderCommandHandler {
	return DeliverOrderCommandHandler{
		transitioner: newOrderTransitioner(uowFactory, cache, logger),
		locations:    locations,
	}
}

func (h DeliverOrderCommandHandler) Handle(ctx context.Context, cmd DeliverOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	_, err := h.transitioner.apply(ctx, cmd.OrderID(), func(o *order.Order, at time.Time) error {
		return o.Deliver(cmd.Actor(), at)
	})
	if err != nil {
		return err
	}

	discardSample(ctx, h.locations, h.transitioner.logger, cmd.OrderID())
	return nil
}

func discardSample(ctx context.Context, locations ports.LocationStore, logger *slog.Logger, orderID kernel.UUID) {
	if locations == nil {
		return
	}
	if err := locations.Delete(ctx, orderID); err != nil {
		logger.WarnContext(ctx, "location sample cleanup failed", "error", err, "order_id", orderID.String())
	}
}

type CompleteOrderCommandHandler struct {
	transitioner orderTransitioner
}

func NewCompleteOrderCommandHandler(
	uowFactory OrderUoWFactory,
	cache ports.OrderCache,
	logger *slog.Logger,
) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{transitioner: newOrderTransitioner(uowFactory, cache, logger)}
}

func (h CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	_, err := h.transitioner.apply(ctx, cmd.OrderID(), func(o *order.Order, at time.Time) error {
		return o.Complete(cmd.Actor(), at)
	})
	return err
}
