package services_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/tracking"
	"marketplace/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	start       = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	origin      = kernel.MustLocation(-6.5950, 106.8000)
	destination = kernel.MustLocation(-6.6000, 106.8100)
)

func orderInStatus(t *testing.T, status order.Status) *order.Order {
	t.Helper()

	buyer, _ := order.NewParty("buyer-1", "Ani")
	merchant, _ := order.NewParty("merchant-1", "Store A")
	from, _ := order.NewPlace("Jl. Suryakencana", origin)
	to, _ := order.NewPlace("Jl. Pajajaran", destination)
	item, _ := order.NewItem("p-1", "Kopi", 1, 10000)

	o, err := order.NewOrder(kernel.NewUUID(), buyer, merchant, from, to, []order.Item{item}, 5000, order.PaymentCash, start)
	require.NoError(t, err)

	merchantActor, _ := kernel.NewActor("merchant-1", kernel.RoleMerchant, "Store A")
	courierActor, _ := kernel.NewActor("courier-1", kernel.RoleCourier, "Budi")
	steps := []func() error{
		func() error { return o.MarkReady(merchantActor, start) },
		func() error { return o.Claim(courierActor, start) },
		func() error { return o.Deliver(courierActor, start) },
	}
	for i := 0; i < int(status)-int(order.Preparing) && i < len(steps); i++ {
		require.NoError(t, steps[i]())
	}
	require.Equal(t, status, o.Status())
	return o
}

func sampleAt(t *testing.T, o *order.Order, courierID string, lat, lng float64) *tracking.Sample {
	t.Helper()
	s, err := tracking.NewSample(o.ID(), courierID, kernel.MustLocation(lat, lng), start.Add(time.Minute))
	require.NoError(t, err)
	return &s
}

func TestProgressEstimator_FromSamples(t *testing.T) {
	estimator := services.NewProgressEstimator(false, time.Minute)
	o := orderInStatus(t, order.Pickup)

	t.Run("monotonic from merchant towards buyer", func(t *testing.T) {
		prev := -1.0
		for _, step := range []float64{0, 0.25, 0.5, 0.75, 1} {
			lat := origin.Lat() + (destination.Lat()-origin.Lat())*step
			lng := origin.Lng() + (destination.Lng()-origin.Lng())*step

			p, err := estimator.Estimate(o, sampleAt(t, o, "courier-1", lat, lng), start.Add(time.Minute))

			require.NoError(t, err)
			assert.Equal(t, tracking.SourceCourier, p.Source())
			assert.GreaterOrEqual(t, p.Fraction(), 0.0)
			assert.LessOrEqual(t, p.Fraction(), 1.0)
			if step > 0 {
				assert.Greater(t, p.Fraction(), prev)
			}
			prev = p.Fraction()
		}
		assert.InDelta(t, 1.0, prev, 1e-6)
	})

	t.Run("overshoot is clamped", func(t *testing.T) {
		p, err := estimator.Estimate(o, sampleAt(t, o, "courier-1", -6.62, 106.83), start)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, p.Fraction(), 1e-9)
	})

	t.Run("sample from another courier is ignored", func(t *testing.T) {
		p, err := estimator.Estimate(o, sampleAt(t, o, "courier-2", -6.5975, 106.805), start)
		require.NoError(t, err)
		assert.False(t, p.IsAvailable())
	})
}

func TestProgressEstimator_Simulation(t *testing.T) {
	o := orderInStatus(t, order.Pickup)

	t.Run("disabled by default", func(t *testing.T) {
		p, err := services.NewProgressEstimator(false, time.Minute).Estimate(o, nil, start.Add(30*time.Second))
		require.NoError(t, err)
		assert.Equal(t, tracking.SourceNone, p.Source())
	})

	t.Run("linear over the nominal duration", func(t *testing.T) {
		estimator := services.NewProgressEstimator(true, time.Minute)

		p, err := estimator.Estimate(o, nil, start.Add(30*time.Second))
		require.NoError(t, err)
		assert.Equal(t, tracking.SourceSimulation, p.Source())
		assert.InDelta(t, 0.5, p.Fraction(), 1e-9)

		p, err = estimator.Estimate(o, nil, start.Add(5*time.Minute))
		require.NoError(t, err)
		assert.InDelta(t, 1.0, p.Fraction(), 1e-9)
	})
}

func TestProgressEstimator_ByStatus(t *testing.T) {
	estimator := services.NewProgressEstimator(true, time.Minute)

	for status, want := range map[order.Status]float64{
		order.Preparing: 0,
		order.Ready:     0,
		order.Delivered: 1,
	} {
		p, err := estimator.Estimate(orderInStatus(t, status), nil, start)
		require.NoError(t, err)
		assert.Equal(t, tracking.SourceStatus, p.Source(), status.String())
		assert.InDelta(t, want, p.Fraction(), 1e-9, status.String())
	}
}
