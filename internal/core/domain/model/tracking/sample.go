package tracking

import (
	"errors"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// Sample is the latest known courier position for an order in transit.
type Sample struct {
	orderID    kernel.UUID
	courierID  string
	location   kernel.Location
	capturedAt time.Time
}

func NewSample(orderID kernel.UUID, courierID string, location kernel.Location, capturedAt time.Time) (Sample, error) {
	var errCourier, errTime error
	if strings.TrimSpace(courierID) == "" {
		errCourier = errs.NewValueIsRequiredError("courierId")
	}
	if capturedAt.IsZero() {
		errTime = errs.NewValueIsRequiredError("capturedAt")
	}
	if err := errors.Join(orderID.Validate(), errCourier, location.Validate(), errTime); err != nil {
		return Sample{}, err
	}

	return Sample{
		orderID:    orderID,
		courierID:  courierID,
		location:   location,
		capturedAt: capturedAt.UTC(),
	}, nil
}

func (s Sample) OrderID() kernel.UUID {
	return s.orderID
}

func (s Sample) CourierID() string {
	return s.courierID
}

func (s Sample) Location() kernel.Location {
	return s.location
}

func (s Sample) CapturedAt() time.Time {
	return s.capturedAt
}

// IsOlderThan is used to drop late samples; equal timestamps are not older.
func (s Sample) IsOlderThan(other Sample) bool {
	return s.capturedAt.Before(other.capturedAt)
}
