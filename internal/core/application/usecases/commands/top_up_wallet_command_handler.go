package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
)

const topUpIdempotencyScope = "wallet.topup"

type TopUpWalletCommandHandler struct {
	uowFactory  WalletUoWFactory
	idempotency ports.IdempotencyStore
	minTopUp    kernel.Money
	logger      *slog.Logger
	now         func() time.Time
}

func NewTopUpWalletCommandHandler(
	uowFactory WalletUoWFactory,
	idempotency ports.IdempotencyStore,
	minTopUp kernel.Money,
	logger *slog.Logger,
) TopUpWalletCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return TopUpWalletCommandHandler{
		uowFactory:  uowFactory,
		idempotency: idempotency,
		minTopUp:    minTopUp,
		logger:      logger.With("component", "wallet"),
		now:         time.Now,
	}
}

func (h TopUpWalletCommandHandler) Handle(ctx context.Context, cmd TopUpWalletCommand) (TopUpWalletResult, error) {
	if err := cmd.Validate(); err != nil {
		return TopUpWalletResult{}, err
	}

	result, replayed, err := withIdempotency(ctx, h.idempotency, h.logger, topUpIdempotencyScope,
		cmd.Actor(), cmd.IdempotencyKey(),
		func(TopUpWalletResult) bool { return true },
		func() (TopUpWalletResult, error) { return h.topUp(ctx, cmd) },
	)
	result.Replayed = replayed
	return result, err
}

func (h TopUpWalletCommandHandler) topUp(ctx context.Context, cmd TopUpWalletCommand) (TopUpWalletResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return TopUpWalletResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	walletRepo := uow.WalletRepository()

	w, err := walletRepo.GetForUpdate(ctx, cmd.Actor().ID())
	if err != nil {
		return TopUpWalletResult{}, err
	}

	tx, err := w.TopUp(cmd.Amount(), h.minTopUp, h.now())
	if err != nil {
		return TopUpWalletResult{}, err
	}

	if err = walletRepo.Update(ctx, w); err != nil {
		return TopUpWalletResult{}, err
	}
	if err = walletRepo.AppendTransaction(ctx, tx); err != nil {
		return TopUpWalletResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return TopUpWalletResult{}, err
	}

	return TopUpWalletResult{TransactionID: tx.ID().String(), Balance: int64(w.Balance())}, nil
}
