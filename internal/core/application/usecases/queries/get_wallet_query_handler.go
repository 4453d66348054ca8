package queries

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/wallet"
)

type WalletView struct {
	OwnerID   string    `json:"ownerId"`
	Balance   int64     `json:"balance"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WalletReader creates the wallet on first read, so a balance query always
// answers with an account.
type WalletReader interface {
	GetOrCreate(ctx context.Context, ownerID string) (*wallet.Wallet, error)
}

type GetWalletQueryHandler struct {
	wallets WalletReader
}

func NewGetWalletQueryHandler(wallets WalletReader) GetWalletQueryHandler {
	return GetWalletQueryHandler{wallets: wallets}
}

func (h GetWalletQueryHandler) Handle(ctx context.Context, query GetWalletQuery) (WalletView, error) {
	if err := query.Validate(); err != nil {
		return WalletView{}, err
	}

	w, err := h.wallets.GetOrCreate(ctx, query.OwnerID())
	if err != nil {
		return WalletView{}, err
	}

	return WalletView{
		OwnerID:   w.OwnerID(),
		Balance:   w.Balance().Int64(),
		UpdatedAt: w.UpdatedAt(),
	}, nil
}
