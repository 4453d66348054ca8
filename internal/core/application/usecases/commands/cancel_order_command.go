package commands

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

const maxCancelReasonLength = 500

type CancelOrderCommand struct {
	orderID kernel.UUID
	actor   kernel.Actor
	reason  string

	guard guard.ConstructorGuard
}

func NewCancelOrderCommand(orderID kernel.UUID, actor kernel.Actor, reason string) (CancelOrderCommand, error) {
	reason = strings.TrimSpace(reason)

	var errReason error
	if len(reason) > maxCancelReasonLength {
		errReason = errs.NewValueIsOutOfRangeError("reason length", len(reason), 0, maxCancelReasonLength)
	}
	if err := errors.Join(orderID.Validate(), actor.Validate(), errReason); err != nil {
		return CancelOrderCommand{}, err
	}

	return CancelOrderCommand{
		orderID: orderID,
		actor:   actor,
		reason:  reason,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CancelOrderCommand) Actor() kernel.Actor {
	return c.actor
}

func (c CancelOrderCommand) Reason() string {
	return c.reason
}
