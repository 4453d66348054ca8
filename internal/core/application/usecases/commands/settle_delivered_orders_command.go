package commands

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrSettleDeliveredOrdersCommandIsNotConstructed = errors.New(
	"SettleDeliveredOrdersCommand must be created via NewSettleDeliveredOrdersCommand constructor",
)

// SettleDeliveredOrdersCommand completes orders that stayed delivered for
// longer than the settlement window.
type SettleDeliveredOrdersCommand struct {
	olderThan time.Duration
	batchSize int

	guard guard.ConstructorGuard
}

func NewSettleDeliveredOrdersCommand(olderThan time.Duration, batchSize int) (SettleDeliveredOrdersCommand, error) {
	if olderThan < 0 {
		return SettleDeliveredOrdersCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"olderThan", fmt.Errorf("%s is negative", olderThan))
	}
	if batchSize <= 0 {
		return SettleDeliveredOrdersCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"batchSize", fmt.Errorf("%d is not greater than 0", batchSize))
	}

	return SettleDeliveredOrdersCommand{
		olderThan: olderThan,
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c SettleDeliveredOrdersCommand) Validate() error {
	return c.guard.Validate(ErrSettleDeliveredOrdersCommandIsNotConstructed)
}

func (c SettleDeliveredOrdersCommand) OlderThan() time.Duration {
	return c.olderThan
}

func (c SettleDeliveredOrdersCommand) BatchSize() int {
	return c.batchSize
}
