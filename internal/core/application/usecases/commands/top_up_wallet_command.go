package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrTopUpWalletCommandIsNotConstructed = errors.New(
	"TopUpWalletCommand must be created via NewTopUpWalletCommand constructor",
)

// TopUpWalletCommand credits the actor's own wallet. The minimum amount is a
// business rule checked by the wallet, not here.
type TopUpWalletCommand struct {
	actor          kernel.Actor
	amount         kernel.Money
	idempotencyKey string

	guard guard.ConstructorGuard
}

func NewTopUpWalletCommand(actor kernel.Actor, amount int64, idempotencyKey string) (TopUpWalletCommand, error) {
	var errRole error
	if actor.Is(kernel.RoleSystem) {
		errRole = errs.NewForbiddenError("top up a wallet", actor.String())
	}
	if err := errors.Join(actor.Validate(), errRole); err != nil {
		return TopUpWalletCommand{}, err
	}

	return TopUpWalletCommand{
		actor:          actor,
		amount:         kernel.Money(amount),
		idempotencyKey: idempotencyKey,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c TopUpWalletCommand) Validate() error {
	return c.guard.Validate(ErrTopUpWalletCommandIsNotConstructed)
}

func (c TopUpWalletCommand) Actor() kernel.Actor {
	return c.actor
}

func (c TopUpWalletCommand) Amount() kernel.Money {
	return c.amount
}

func (c TopUpWalletCommand) IdempotencyKey() string {
	return c.idempotencyKey
}

// TopUpWalletResult is stored verbatim for idempotent replays.
type TopUpWalletResult struct {
	TransactionID string `json:"transactionId"`
	Balance       int64  `json:"balance"`
	Replayed      bool   `json:"-"`
}
