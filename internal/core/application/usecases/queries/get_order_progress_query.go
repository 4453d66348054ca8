package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetOrderProgressQueryIsNotConstructed = errors.New(
	"GetOrderProgressQuery must be created via NewGetOrderProgressQuery constructor",
)

type GetOrderProgressQuery struct {
	orderID kernel.UUID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

func NewGetOrderProgressQuery(orderID kernel.UUID, actor kernel.Actor) (GetOrderProgressQuery, error) {
	if err := errors.Join(orderID.Validate(), actor.Validate()); err != nil {
		return GetOrderProgressQuery{}, err
	}
	return GetOrderProgressQuery{orderID: orderID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderProgressQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderProgressQueryIsNotConstructed)
}

func (q GetOrderProgressQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q GetOrderProgressQuery) Actor() kernel.Actor {
	return q.actor
}
