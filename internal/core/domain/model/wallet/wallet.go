package wallet

import (
	"errors"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var ErrWalletIsNotConstructed = errors.New("Wallet must be created via NewWallet constructor")

// Wallet holds the balance of one account. Every change to the balance
// produces exactly one Transaction; the caller persists both together.
type Wallet struct {
	ownerID   string
	balance   kernel.Money
	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewWallet opens an empty wallet for ownerID.
//
// Returns:
//   - *Wallet: A wallet with zero balance
//   - error: ErrValueIsRequired when ownerID is blank
func NewWallet(ownerID string, at time.Time) (*Wallet, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, errs.NewValueIsRequiredError("ownerId")
	}
	return &Wallet{
		ownerID:       ownerID,
		createdAt:     at.UTC(),
		updatedAt:     at.UTC(),
		isConstructed: true,
	}, nil
}

func RestoreWallet(ownerID string, balance kernel.Money, createdAt, updatedAt time.Time) *Wallet {
	return &Wallet{
		ownerID:       ownerID,
		balance:       balance,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}
}

func (w *Wallet) Validate() error {
	if w == nil || !w.isConstructed {
		return ErrWalletIsNotConstructed
	}
	return nil
}

func (w *Wallet) OwnerID() string {
	return w.ownerID
}

func (w *Wallet) Balance() kernel.Money {
	return w.balance
}

func (w *Wallet) CreatedAt() time.Time {
	return w.createdAt
}

func (w *Wallet) UpdatedAt() time.Time {
	return w.updatedAt
}

// TopUp credits amount when it reaches the configured minimum.
func (w *Wallet) TopUp(amount, minimum kernel.Money, at time.Time) (*Transaction, error) {
	if amount < minimum {
		return nil, errs.NewInvalidAmountError("amount", int64(amount), int64(minimum))
	}

	w.credit(amount, at)
	return newTransaction(w.ownerID, KindTopUp, int64(amount), nil, "Wallet top-up", at), nil
}

// Pay debits amount for an order. The balance never goes below zero.
//
// Returns:
//   - *Transaction: A payment entry with a negative amount
//   - ErrInsufficientFunds when the balance is lower than amount; the wallet
//     is left untouched
//   - ErrInvalidAmount for a negative amount
func (w *Wallet) Pay(orderID kernel.UUID, amount kernel.Money, at time.Time) (*Transaction, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if amount < 0 {
		return nil, errs.NewInvalidAmountError("amount", int64(amount), 0)
	}
	if w.balance < amount {
		return nil, errs.NewInsufficientFundsError(w.ownerID, int64(w.balance), int64(amount))
	}

	w.balance -= amount
	w.updatedAt = at.UTC()
	return newTransaction(w.ownerID, KindPayment, -int64(amount), &orderID,
		"Payment for order "+orderID.String(), at), nil
}

// Refund credits amount back for an order.
//
// Parameters:
//   - orderID: The refunded order, referenced by the ledger entry
//   - amount: The amount to return (>= 0)
//   - at: Refund time
//
// Returns:
//   - *Transaction: A refund entry with a positive amount
//   - error: ErrInvalidAmount for a negative amount or a validation error for orderID
//
// Example:
//
//	tx, err := w.Refund(o.ID(), o.Total(), time.Now())
//	if err != nil {
//	    // Handle error
//	}
//	// persist w and tx in the same unit of work
//
// Whether an order is refundable is decided by the caller, see services.Ledger.
func (w *Wallet) Refund(orderID kernel.UUID, amount kernel.Money, at time.Time) (*Transaction, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if amount < 0 {
		return nil, errs.NewInvalidAmountError("amount", int64(amount), 0)
	}

	w.credit(amount, at)
	return newTransaction(w.ownerID, KindRefund, int64(amount), &orderID,
		"Refund for order "+orderID.String(), at), nil
}

func (w *Wallet) credit(amount kernel.Money, at time.Time) {
	w.balance += amount
	w.updatedAt = at.UTC()
}
