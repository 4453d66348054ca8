package ports

import (
	"context"

	"marketplace/internal/core/domain/model/wallet"
)

// WalletRepository stores balances and the transaction log. Both must be
// written through the same unit of work.
type WalletRepository interface {
	// GetForUpdate creates the wallet on first use and locks its row.
	GetForUpdate(ctx context.Context, ownerID string) (*wallet.Wallet, error)

	// GetOrCreate returns the wallet without locking, creating an empty one on first use.
	GetOrCreate(ctx context.Context, ownerID string) (*wallet.Wallet, error)

	Update(ctx context.Context, aggregate *wallet.Wallet) error

	AppendTransaction(ctx context.Context, tx *wallet.Transaction) error
}
