package services_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/wallet"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderWithTotal(t *testing.T, method order.PaymentMethod, subtotal, fee kernel.Money) *order.Order {
	t.Helper()

	buyer, _ := order.NewParty("buyer-1", "Ani")
	merchant, _ := order.NewParty("merchant-1", "Store A")
	from, _ := order.NewPlace("Jl. Suryakencana", origin)
	to, _ := order.NewPlace("Jl. Pajajaran", destination)
	item, _ := order.NewItem("p-1", "Kopi", 1, subtotal)

	o, err := order.NewOrder(kernel.NewUUID(), buyer, merchant, from, to, []order.Item{item}, fee, method, start)
	require.NoError(t, err)
	return o
}

func TestLedger_Capture(t *testing.T) {
	ledger := services.NewLedger()

	t.Run("wallet payment debits the buyer", func(t *testing.T) {
		o := orderWithTotal(t, order.PaymentWallet, 30000, 5000)
		w := wallet.RestoreWallet("buyer-1", 50000, start, start)

		tx, err := ledger.Capture(w, o, start)

		require.NoError(t, err)
		require.NotNil(t, tx)
		assert.Equal(t, int64(-35000), tx.Amount())
		assert.Equal(t, kernel.Money(15000), w.Balance())
		assert.Equal(t, order.PaymentPaid, o.PaymentStatus())
	})

	t.Run("insufficient funds leaves everything unchanged", func(t *testing.T) {
		o := orderWithTotal(t, order.PaymentWallet, 5000, 5000)
		w := wallet.RestoreWallet("buyer-1", 5000, start, start)

		tx, err := ledger.Capture(w, o, start)

		require.ErrorIs(t, err, errs.ErrInsufficientFunds)
		assert.Nil(t, tx)
		assert.Equal(t, kernel.Money(5000), w.Balance())
		assert.Equal(t, order.PaymentPending, o.PaymentStatus())
	})

	t.Run("card payment is a pass-through", func(t *testing.T) {
		o := orderWithTotal(t, order.PaymentCard, 30000, 5000)

		tx, err := ledger.Capture(nil, o, start)

		require.NoError(t, err)
		assert.Nil(t, tx)
		assert.Equal(t, order.PaymentPaid, o.PaymentStatus())
	})

	t.Run("wallet of someone else", func(t *testing.T) {
		o := orderWithTotal(t, order.PaymentWallet, 1000, 0)
		w := wallet.RestoreWallet("buyer-2", 50000, start, start)

		_, err := ledger.Capture(w, o, start)
		require.ErrorIs(t, err, errs.ErrForbidden)
	})
}

func TestLedger_Refund(t *testing.T) {
	ledger := services.NewLedger()

	t.Run("wallet refund credits the full total", func(t *testing.T) {
		o := orderWithTotal(t, order.PaymentWallet, 12000, 5000)
		w := wallet.RestoreWallet("buyer-1", 20000, start, start)
		_, err := ledger.Capture(w, o, start)
		require.NoError(t, err)

		tx, err := ledger.Refund(w, o, start)

		require.NoError(t, err)
		assert.Equal(t, wallet.KindRefund, tx.Kind())
		assert.Equal(t, int64(17000), tx.Amount())
		assert.Equal(t, kernel.Money(20000), w.Balance())
		assert.Equal(t, order.PaymentRefunded, o.PaymentStatus())
	})

	t.Run("cash refund only flips the status", func(t *testing.T) {
		o := orderWithTotal(t, order.PaymentCash, 12000, 5000)
		require.NoError(t, o.MarkPaid(start))

		tx, err := ledger.Refund(nil, o, start)

		require.NoError(t, err)
		assert.Nil(t, tx)
		assert.Equal(t, order.PaymentRefunded, o.PaymentStatus())
	})

	t.Run("unpaid order needs no refund", func(t *testing.T) {
		o := orderWithTotal(t, order.PaymentWallet, 12000, 5000)

		tx, err := ledger.Refund(nil, o, start)

		require.NoError(t, err)
		assert.Nil(t, tx)
		assert.Equal(t, order.PaymentPending, o.PaymentStatus())
	})
}
