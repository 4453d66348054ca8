// Package walletrepo persists wallet balances and the append-only transaction log.
package walletrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/wallet"

	"github.com/google/uuid"
)

type WalletDTO struct {
	OwnerID   string `gorm:"primaryKey"`
	Balance   int64
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

func (WalletDTO) TableName() string {
	return "wallets"
}

type TransactionDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID     string
	Kind        string
	Amount      int64
	OrderID     *uuid.UUID `gorm:"type:uuid"`
	Status      string
	Description string
	CreatedAt   time.Time `gorm:"autoCreateTime:false"`
}

func (TransactionDTO) TableName() string {
	return "wallet_transactions"
}

func walletFromDomain(w *wallet.Wallet) WalletDTO {
	return WalletDTO{
		OwnerID:   w.OwnerID(),
		Balance:   int64(w.Balance()),
		CreatedAt: w.CreatedAt(),
		UpdatedAt: w.UpdatedAt(),
	}
}

func walletToDomain(dto WalletDTO) *wallet.Wallet {
	return wallet.RestoreWallet(dto.OwnerID, kernel.Money(dto.Balance), dto.CreatedAt.UTC(), dto.UpdatedAt.UTC())
}

func transactionFromDomain(tx *wallet.Transaction) TransactionDTO {
	var orderID *uuid.UUID
	if id := tx.OrderID(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}

	return TransactionDTO{
		ID:          tx.ID().Bytes(),
		OwnerID:     tx.OwnerID(),
		Kind:        string(tx.Kind()),
		Amount:      tx.Amount(),
		OrderID:     orderID,
		Status:      string(tx.Status()),
		Description: tx.Description(),
		CreatedAt:   tx.CreatedAt(),
	}
}
