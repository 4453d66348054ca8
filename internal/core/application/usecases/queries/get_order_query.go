package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

type GetOrderQuery struct {
	orderID kernel.UUID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID, actor kernel.Actor) (GetOrderQuery, error) {
	if err := errors.Join(orderID.Validate(), actor.Validate()); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q GetOrderQuery) Actor() kernel.Actor {
	return q.actor
}
