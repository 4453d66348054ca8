package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var (
	ErrMarkOrderReadyCommandIsNotConstructed = errors.New(
		"MarkOrderReadyCommand must be created via NewMarkOrderReadyCommand constructor",
	)
	ErrClaimOrderCommandIsNotConstructed = errors.New(
		"ClaimOrderCommand must be created via NewClaimOrderCommand constructor",
	)
	ErrDeliverOrderCommandIsNotConstructed = errors.New(
		"DeliverOrderCommand must be created via NewDeliverOrderCommand constructor",
	)
	ErrCompleteOrderCommandIsNotConstructed = errors.New(
		"CompleteOrderCommand must be created via NewCompleteOrderCommand constructor",
	)
)

// orderActionCommand carries what every status transition needs: the order
// and the principal asking for the change.
type orderActionCommand struct {
	orderID kernel.UUID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

func newOrderActionCommand(orderID kernel.UUID, actor kernel.Actor) (orderActionCommand, error) {
	if err := errors.Join(orderID.Validate(), actor.Validate()); err != nil {
		return orderActionCommand{}, err
	}
	return orderActionCommand{orderID: orderID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (c orderActionCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c orderActionCommand) Actor() kernel.Actor {
	return c.actor
}

// MarkOrderReadyCommand is sent by the merchant when the order can be picked up.
type MarkOrderReadyCommand struct {
	orderActionCommand
}

func NewMarkOrderReadyCommand(orderID kernel.UUID, actor kernel.Actor) (MarkOrderReadyCommand, error) {
	base, err := newOrderActionCommand(orderID, actor)
	return MarkOrderReadyCommand{base}, err
}

func (c MarkOrderReadyCommand) Validate() error {
	return c.guard.Validate(ErrMarkOrderReadyCommandIsNotConstructed)
}

// ClaimOrderCommand is sent by a courier accepting a ready order.
type ClaimOrderCommand struct {
	orderActionCommand
}

func NewClaimOrderCommand(orderID kernel.UUID, actor kernel.Actor) (ClaimOrderCommand, error) {
	base, err := newOrderActionCommand(orderID, actor)
	return ClaimOrderCommand{base}, err
}

func (c ClaimOrderCommand) Validate() error {
	return c.guard.Validate(ErrClaimOrderCommandIsNotConstructed)
}

type DeliverOrderCommand struct {
	orderActionCommand
}

func NewDeliverOrderCommand(orderID kernel.UUID, actor kernel.Actor) (DeliverOrderCommand, error) {
	base, err := newOrderActionCommand(orderID, actor)
	return DeliverOrderCommand{base}, err
}

func (c DeliverOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeliverOrderCommandIsNotConstructed)
}

type CompleteOrderCommand struct {
	orderActionCommand
}

func NewCompleteOrderCommand(orderID kernel.UUID, actor kernel.Actor) (CompleteOrderCommand, error) {
	base, err := newOrderActionCommand(orderID, actor)
	return CompleteOrderCommand{base}, err
}

func (c CompleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOrderCommandIsNotConstructed)
}
