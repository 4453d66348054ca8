package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrListWalletTransactionsQueryIsNotConstructed = errors.New(
	"ListWalletTransactionsQuery must be created via NewListWalletTransactionsQuery constructor",
)

type ListWalletTransactionsQuery struct {
	ownerID string
	limit   int
	offset  int

	guard guard.ConstructorGuard
}

func NewListWalletTransactionsQuery(actor kernel.Actor, ownerID string, limit, offset int) (ListWalletTransactionsQuery, error) {
	ownerID, err := walletOwner(actor, ownerID)
	if err != nil {
		return ListWalletTransactionsQuery{}, err
	}

	if limit == 0 {
		limit = DefaultListLimit
	}
	if limit < 1 || limit > MaxListLimit {
		return ListWalletTransactionsQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxListLimit)
	}
	if offset < 0 {
		return ListWalletTransactionsQuery{}, errs.NewValueIsOutOfRangeError("offset", offset, 0, "unbounded")
	}

	return ListWalletTransactionsQuery{
		ownerID: ownerID,
		limit:   limit,
		offset:  offset,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q ListWalletTransactionsQuery) Validate() error {
	return q.guard.Validate(ErrListWalletTransactionsQueryIsNotConstructed)
}

func (q ListWalletTransactionsQuery) OwnerID() string {
	return q.ownerID
}

func (q ListWalletTransactionsQuery) Limit() int {
	return q.limit
}

func (q ListWalletTransactionsQuery) Offset() int {
	return q.offset
}
