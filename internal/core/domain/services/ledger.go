package services

import (
	"time"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/wallet"
	"marketplace/internal/pkg/errs"
)

// Ledger moves money between a buyer wallet and an order. It keeps the wallet
// balance, the ledger entry and the order payment status consistent; the
// caller persists all three in one unit of work.
//
// Wallet payments debit the buyer. Card and cash are confirmed by an external
// gateway and only flip the payment status, so w may be nil for them.
type Ledger struct{}

func NewLedger() Ledger {
	return Ledger{}
}

// Capture charges the order total. It returns the ledger entry to append, or
// nil when the method does not touch the wallet.
func (l Ledger) Capture(w *wallet.Wallet, o *order.Order, at time.Time) (*wallet.Transaction, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	if !o.PaymentMethod().UsesWallet() {
		return nil, o.MarkPaid(at)
	}

	if err := l.checkOwner(w, o); err != nil {
		return nil, err
	}

	tx, err := w.Pay(o.ID(), o.Total(), at)
	if err != nil {
		return nil, err
	}
	if err = o.MarkPaid(at); err != nil {
		return nil, err
	}
	return tx, nil
}

// Refund returns the full order total. Orders that were never paid are left alone.
func (l Ledger) Refund(w *wallet.Wallet, o *order.Order, at time.Time) (*wallet.Transaction, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if !o.RequiresRefund() {
		return nil, nil
	}

	if !o.PaymentMethod().UsesWallet() {
		return nil, o.MarkRefunded(at)
	}

	if err := l.checkOwner(w, o); err != nil {
		return nil, err
	}

	tx, err := w.Refund(o.ID(), o.Total(), at)
	if err != nil {
		return nil, err
	}
	if err = o.MarkRefunded(at); err != nil {
		return nil, err
	}
	return tx, nil
}

func (l Ledger) checkOwner(w *wallet.Wallet, o *order.Order) error {
	if err := w.Validate(); err != nil {
		return err
	}
	if w.OwnerID() != o.Buyer().ID() {
		return errs.NewForbiddenError("use wallet of "+w.OwnerID(), o.Buyer().ID())
	}
	return nil
}
