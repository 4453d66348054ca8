package queries

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

type ListOrdersResponse struct {
	Orders []OrderView `json:"orders"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (ListOrdersResponse, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersResponse{}, err
	}

	conds, args, err := scope(query)
	if err != nil {
		return ListOrdersResponse{}, err
	}

	tail := where(conds) + ` ORDER BY created_at DESC, id LIMIT ? OFFSET ?`
	args = append(args, query.Limit(), query.Offset())

	views, err := loadOrderViews(ctx, h.db, tail, args...)
	if err != nil {
		return ListOrdersResponse{}, err
	}

	return ListOrdersResponse{Orders: views, Limit: query.Limit(), Offset: query.Offset()}, nil
}

// scope turns the filter into SQL conditions restricted to what the actor may see.
// Buyers and merchants only see their own orders. Couriers see their own orders,
// or the open pool of unassigned orders when they filter by ready.
func scope(query ListOrdersQuery) ([]string, []any, error) {
	actor := query.Actor()
	filter := query.Filter()
	status := query.Status()

	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		conds = append(conds, cond)
		args = append(args, arg)
	}

	switch actor.Role() {
	case kernel.RoleBuyer:
		if filter.BuyerID != "" && filter.BuyerID != actor.ID() {
			return nil, nil, errs.NewForbiddenError("list orders of buyer "+filter.BuyerID, actor.String())
		}
		filter.BuyerID = actor.ID()
	case kernel.RoleMerchant:
		if filter.MerchantID != "" && filter.MerchantID != actor.ID() {
			return nil, nil, errs.NewForbiddenError("list orders of merchant "+filter.MerchantID, actor.String())
		}
		filter.MerchantID = actor.ID()
	case kernel.RoleCourier:
		if filter.CourierID != "" && filter.CourierID != actor.ID() {
			return nil, nil, errs.NewForbiddenError("list orders of courier "+filter.CourierID, actor.String())
		}
		if status != nil && *status == order.Ready {
			conds = append(conds, "courier_id IS NULL")
			filter.CourierID = ""
		} else {
			filter.CourierID = actor.ID()
		}
	}

	if filter.BuyerID != "" {
		add("buyer_id = ?", filter.BuyerID)
	}
	if filter.MerchantID != "" {
		add("merchant_id = ?", filter.MerchantID)
	}
	if filter.CourierID != "" {
		add("courier_id = ?", filter.CourierID)
	}
	if status != nil {
		add("status = ?", status.String())
	}

	return conds, args, nil
}
