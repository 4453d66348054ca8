package commands

import (
	"errors"
	"fmt"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrPublishOutboxCommandIsNotConstructed = errors.New(
	"PublishOutboxCommand must be created via NewPublishOutboxCommand constructor",
)

type PublishOutboxCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

func NewPublishOutboxCommand(batchSize int) (PublishOutboxCommand, error) {
	if batchSize <= 0 {
		return PublishOutboxCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"batchSize", fmt.Errorf("%d is not greater than 0", batchSize))
	}
	return PublishOutboxCommand{batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

func (c PublishOutboxCommand) Validate() error {
	return c.guard.Validate(ErrPublishOutboxCommandIsNotConstructed)
}

func (c PublishOutboxCommand) BatchSize() int {
	return c.batchSize
}
