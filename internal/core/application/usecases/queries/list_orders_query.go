package queries

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

type OrderFilter struct {
	BuyerID    string
	MerchantID string
	CourierID  string
	Status     string
}

type ListOrdersQuery struct {
	actor  kernel.Actor
	filter OrderFilter
	status *order.Status
	limit  int
	offset int

	guard guard.ConstructorGuard
}

// NewListOrdersQuery normalizes paging: a zero limit means DefaultListLimit.
func NewListOrdersQuery(actor kernel.Actor, filter OrderFilter, limit, offset int) (ListOrdersQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}

	q := ListOrdersQuery{
		actor: actor,
		filter: OrderFilter{
			BuyerID:    strings.TrimSpace(filter.BuyerID),
			MerchantID: strings.TrimSpace(filter.MerchantID),
			CourierID:  strings.TrimSpace(filter.CourierID),
			Status:     strings.TrimSpace(filter.Status),
		},
		limit:  limit,
		offset: offset,
	}

	if q.filter.Status != "" {
		status, err := order.ParseStatus(q.filter.Status)
		if err != nil {
			return ListOrdersQuery{}, err
		}
		q.status = &status
	}

	if q.limit == 0 {
		q.limit = DefaultListLimit
	}
	if q.limit < 1 || q.limit > MaxListLimit {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxListLimit)
	}
	if q.offset < 0 {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("offset", offset, 0, "unbounded")
	}

	q.guard = guard.NewConstructorGuard()
	return q, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Actor() kernel.Actor {
	return q.actor
}

func (q ListOrdersQuery) Filter() OrderFilter {
	return q.filter
}

// Status returns nil when no status filter was given.
func (q ListOrdersQuery) Status() *order.Status {
	return q.status
}

func (q ListOrdersQuery) Limit() int {
	return q.limit
}

func (q ListOrdersQuery) Offset() int {
	return q.offset
}
