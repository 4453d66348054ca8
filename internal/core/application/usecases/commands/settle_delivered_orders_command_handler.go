package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
)

// SettleDeliveredOrdersCommandHandler completes one batch of delivered
// orders as the system actor and returns how many were completed.
type SettleDeliveredOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	cache      ports.OrderCache
	logger     *slog.Logger
	now        func() time.Time
}

func NewSettleDeliveredOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	cache ports.OrderCache,
	logger *slog.Logger,
) SettleDeliveredOrdersCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return SettleDeliveredOrdersCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     logger,
		now:        time.Now,
	}
}

func (h SettleDeliveredOrdersCommandHandler) Handle(ctx context.Context, cmd SettleDeliveredOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	now := h.now().UTC()

	orders, err := orderRepo.ListDeliveredBefore(ctx, now.Add(-cmd.OlderThan()), cmd.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(orders) == 0 {
		return 0, nil
	}

	system := kernel.SystemActor()
	ids := make([]kernel.UUID, 0, len(orders))
	for _, o := range orders {
		if err = o.Complete(system, now); err != nil {
			return 0, err
		}
		if err = orderRepo.Update(ctx, o); err != nil {
			return 0, err
		}
		ids = append(ids, o.ID())
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	invalidateOrders(ctx, h.cache, h.logger, ids...)
	return len(ids), nil
}
