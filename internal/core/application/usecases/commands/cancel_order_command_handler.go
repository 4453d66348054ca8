package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/wallet"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
)

// CancelOrderCommandHandler cancels an order and refunds what was captured for
// it in the same transaction. Wallet payments are credited back to the buyer
// in full; card and cash payments are marked refunded for the gateway.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	ledger     services.Ledger
	cache      ports.OrderCache
	locations  ports.LocationStore
	logger     *slog.Logger
	now        func() time.Time
}

func NewCancelOrderCommandHandler(
	uowFactory UoWFactory,
	cache ports.OrderCache,
	locations ports.LocationStore,
	logger *slog.Logger,
) CancelOrderCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		ledger:     services.NewLedger(),
		cache:      cache,
		locations:  locations,
		logger:     logger,
		now:        time.Now,
	}
}

func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	walletRepo := uow.WalletRepository()
	at := h.now().UTC()

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.Cancel(cmd.Actor(), cmd.Reason(), at); err != nil {
		return err
	}

	if o.RequiresRefund() {
		var w *wallet.Wallet
		if o.PaymentMethod().UsesWallet() {
			if w, err = walletRepo.GetForUpdate(ctx, o.Buyer().ID()); err != nil {
				return err
			}
		}

		tx, refundErr := h.ledger.Refund(w, o, at)
		if refundErr != nil {
			return refundErr
		}
		if tx != nil {
			if err = walletRepo.Update(ctx, w); err != nil {
				return err
			}
			if err = walletRepo.AppendTransaction(ctx, tx); err != nil {
				return err
			}
		}
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	invalidateOrders(ctx, h.cache, h.logger, o.ID())
	discardSample(ctx, h.locations, h.logger, o.ID())
	return nil
}
