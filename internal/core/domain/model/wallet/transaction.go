package wallet

import (
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

type Kind string

const (
	KindTopUp   Kind = "topup"
	KindPayment Kind = "payment"
	KindRefund  Kind = "refund"
)

func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindTopUp, KindPayment, KindRefund:
		return k, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("transaction kind", fmt.Errorf("%q is not a valid kind", s))
	}
}

type TransactionStatus string

const (
	TransactionCompleted TransactionStatus = "completed"
	TransactionPending   TransactionStatus = "pending"
)

// Transaction is an append-only ledger entry. Amount is signed: credits are
// positive, debits negative.
type Transaction struct {
	id          kernel.UUID
	ownerID     string
	kind        Kind
	amount      int64
	orderID     *kernel.UUID
	status      TransactionStatus
	description string
	createdAt   time.Time
}

func newTransaction(ownerID string, kind Kind, amount int64, orderID *kernel.UUID, description string, at time.Time) *Transaction {
	return &Transaction{
		id:          kernel.NewUUID(),
		ownerID:     ownerID,
		kind:        kind,
		amount:      amount,
		orderID:     orderID,
		status:      TransactionCompleted,
		description: description,
		createdAt:   at.UTC(),
	}
}

func RestoreTransaction(
	id kernel.UUID,
	ownerID string,
	kind Kind,
	amount int64,
	orderID *kernel.UUID,
	status TransactionStatus,
	description string,
	createdAt time.Time,
) *Transaction {
	return &Transaction{
		id:          id,
		ownerID:     ownerID,
		kind:        kind,
		amount:      amount,
		orderID:     orderID,
		status:      status,
		description: description,
		createdAt:   createdAt,
	}
}

func (t *Transaction) ID() kernel.UUID {
	return t.id
}

func (t *Transaction) OwnerID() string {
	return t.ownerID
}

func (t *Transaction) Kind() Kind {
	return t.kind
}

func (t *Transaction) Amount() int64 {
	return t.amount
}

// OrderID is nil for top-ups.
func (t *Transaction) OrderID() *kernel.UUID {
	return t.orderID
}

func (t *Transaction) Status() TransactionStatus {
	return t.status
}

func (t *Transaction) Description() string {
	return t.description
}

func (t *Transaction) CreatedAt() time.Time {
	return t.createdAt
}
