package order_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func mustActor(t *testing.T, id string, role kernel.Role) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(id, role, id+" name")
	require.NoError(t, err)
	return a
}

func newTestOrder(t *testing.T, method order.PaymentMethod) *order.Order {
	t.Helper()

	buyer, err := order.NewParty("buyer-1", "Ani")
	require.NoError(t, err)
	merchant, err := order.NewParty("merchant-1", "Store A")
	require.NoError(t, err)
	origin, err := order.NewPlace("Jl. Suryakencana 1", kernel.MustLocation(-6.5950, 106.8000))
	require.NoError(t, err)
	destination, err := order.NewPlace("Jl. Pajajaran 10", kernel.MustLocation(-6.6000, 106.8100))
	require.NoError(t, err)
	item1, err := order.NewItem("p-1", "Kopi", 2, 10000)
	require.NoError(t, err)
	item2, err := order.NewItem("p-2", "Roti", 1, 10000)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), buyer, merchant, origin, destination,
		[]order.Item{item1, item2}, 5000, method, now)
	require.NoError(t, err)
	return o
}
