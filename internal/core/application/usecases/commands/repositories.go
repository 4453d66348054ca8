// Package commands contains business operations that modify system state.
// Every command follows the same shape: validation, a unit of work per
// aggregate change, and post-commit side effects that may fail without
// affecting the committed result.
package commands

import (
	"context"

	"marketplace/internal/core/ports"
)

type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	WalletRepoFactory interface {
		WalletRepository() ports.WalletRepository
	}

	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// OrderUoW is used by transitions that touch only the order.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// WalletUoW is used by top-ups.
	WalletUoW interface {
		TxManager
		WalletRepoFactory
	}

	WalletUoWFactory interface {
		Create() WalletUoW
	}

	// OutboxUoW is used by the outbox publisher.
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}

	// UoW spans orders and wallets. Checkout and cancellation need both in one transaction.
	UoW interface {
		TxManager
		OrderRepoFactory
		WalletRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
