package errs_test

import (
	"errors"
	"testing"

	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForbiddenError(t *testing.T) {
	err := errs.NewForbiddenError("cancel order", "courier")

	assert.Equal(t, "forbidden: courier may not cancel order", err.Error())
	require.ErrorIs(t, err, errs.ErrForbidden)

	withCause := errs.NewForbiddenErrorWithCause("claim order", "buyer", errors.New("role"))
	assert.Equal(t, "forbidden: buyer may not claim order (cause: role)", withCause.Error())
}

func TestInvalidTransitionError(t *testing.T) {
	err := errs.NewInvalidTransitionError("preparing", "delivered")

	assert.Equal(t, "transition is invalid: preparing -> delivered", err.Error())
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestConflictError(t *testing.T) {
	err := errs.NewConflictError("orderId", "42")
	assert.Equal(t, "conflict: orderId 42", err.Error())
	require.ErrorIs(t, err, errs.ErrConflict)

	var target *errs.ConflictError
	wrapped := errors.Join(errors.New("claim"), err)
	require.ErrorAs(t, wrapped, &target)
	assert.Equal(t, "42", target.ID)
}

func TestFinancialErrors(t *testing.T) {
	t.Run("insufficient funds", func(t *testing.T) {
		err := errs.NewInsufficientFundsError("buyer-1", 5000, 10000)
		assert.Equal(t, "insufficient funds: account buyer-1 has 5000, needs 10000", err.Error())
		require.ErrorIs(t, err, errs.ErrInsufficientFunds)
	})

	t.Run("invalid amount", func(t *testing.T) {
		err := errs.NewInvalidAmountError("amount", 9999, 10000)
		assert.Equal(t, "amount is invalid: amount is 9999, min value is 10000", err.Error())
		require.ErrorIs(t, err, errs.ErrInvalidAmount)
	})
}

func TestIntegrityErrors(t *testing.T) {
	stock := errs.NewInsufficientStockError("p-1", 5, 2)
	assert.Equal(t, "insufficient stock: product p-1 requested 5, available 2", stock.Error())
	require.ErrorIs(t, stock, errs.ErrInsufficientStock)

	empty := errs.NewEmptySelectionError("lines")
	assert.Equal(t, "selection is empty: lines", empty.Error())
	require.ErrorIs(t, empty, errs.ErrEmptySelection)
}

func TestDependencyFailedError(t *testing.T) {
	err := errs.NewDependencyFailedError("catalog", errors.New("circuit breaker is open"))
	assert.Equal(t, "dependency failed: catalog (cause: circuit breaker is open)", err.Error())
	require.ErrorIs(t, err, errs.ErrDependencyFailed)
}
