package kernel_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

func TestNewLocation(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lng     float64
		wantErr error
	}{
		{name: "bogor", lat: -6.5978, lng: 106.8067},
		{name: "min bounds", lat: kernel.LatitudeMin, lng: kernel.LongitudeMin},
		{name: "max bounds", lat: kernel.LatitudeMax, lng: kernel.LongitudeMax},
		{name: "lat too small", lat: -90.5, lng: 0, wantErr: errs.ErrValueIsOutOfRange},
		{name: "lat too large", lat: 91, lng: 0, wantErr: errs.ErrValueIsOutOfRange},
		{name: "lng too large", lat: 0, lng: 180.1, wantErr: errs.ErrValueIsOutOfRange},
		{name: "nan", lat: math.NaN(), lng: 0, wantErr: errs.ErrValueIsOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := kernel.NewLocation(tt.lat, tt.lng)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, loc.Validate())
			assert.InDelta(t, tt.lat, loc.Lat(), 1e-9)
			assert.InDelta(t, tt.lng, loc.Lng(), 1e-9)
		})
	}
}

func TestLocation_DistanceMeters(t *testing.T) {
	t.Run("same point is zero", func(t *testing.T) {
		a := kernel.MustLocation(-6.5950, 106.8000)
		d, err := a.DistanceMeters(a)
		require.NoError(t, err)
		assert.InDelta(t, 0, d, 1e-6)
	})

	t.Run("symmetric and realistic", func(t *testing.T) {
		a := kernel.MustLocation(-6.5950, 106.8000)
		b := kernel.MustLocation(-6.6000, 106.8100)

		ab, err := a.DistanceMeters(b)
		require.NoError(t, err)
		ba, err := b.DistanceMeters(a)
		require.NoError(t, err)

		assert.InDelta(t, ab, ba, 1e-6)
		// roughly 1.24 km between the two Bogor fixtures
		assert.InDelta(t, 1240, ab, 30)
	})

	t.Run("zero value location is rejected", func(t *testing.T) {
		var empty kernel.Location
		_, err := kernel.MustLocation(0, 0).DistanceMeters(empty)
		assert.ErrorIs(t, err, kernel.ErrLocationIsNotConstructed)
	})
}

func TestLocation_IsEqual(t *testing.T) {
	a := kernel.MustLocation(1, 2)
	b := kernel.MustLocation(1, 2)
	c := kernel.MustLocation(2, 1)

	eq, err := a.IsEqual(b)
	require.NoError(t, err)
	assert.True(t, eq)

	eq, err = a.IsEqual(c)
	require.NoError(t, err)
	assert.False(t, eq)
}
