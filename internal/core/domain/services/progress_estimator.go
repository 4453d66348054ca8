package services

import (
	"time"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/tracking"
)

// ProgressEstimator computes how far a delivery has come.
//
// With a courier sample the fraction is the straight-line distance from the
// merchant to the courier divided by the distance from the merchant to the
// buyer, clamped to [0,1]. Without a sample and with simulation enabled it
// interpolates linearly over a nominal transit time from the pickup moment;
// that value is a UI placeholder and is labelled as a simulation.
type ProgressEstimator struct {
	simulation bool
	duration   time.Duration
}

// NewProgressEstimator creates an estimator. duration is the nominal transit
// time used only when simulation is on.
func NewProgressEstimator(simulation bool, duration time.Duration) ProgressEstimator {
	return ProgressEstimator{simulation: simulation, duration: duration}
}

func (e ProgressEstimator) Estimate(o *order.Order, sample *tracking.Sample, now time.Time) (tracking.Progress, error) {
	if err := o.Validate(); err != nil {
		return tracking.Progress{}, err
	}

	switch o.Status() {
	case order.Delivered, order.Completed:
		return tracking.NewProgress(1, tracking.SourceStatus, nil), nil
	case order.Preparing, order.Ready:
		return tracking.NewProgress(0, tracking.SourceStatus, nil), nil
	case order.Pickup:
	default:
		return tracking.Unavailable(), nil
	}

	if sample != nil && o.IsAssignedTo(sample.CourierID()) {
		return e.fromSample(o, *sample)
	}

	if e.simulation && o.PickedUpAt() != nil && e.duration > 0 {
		elapsed := now.Sub(*o.PickedUpAt())
		return tracking.NewProgress(float64(elapsed)/float64(e.duration), tracking.SourceSimulation, nil), nil
	}

	return tracking.Unavailable(), nil
}

func (e ProgressEstimator) fromSample(o *order.Order, s tracking.Sample) (tracking.Progress, error) {
	origin := o.Origin().Location()

	total, err := origin.DistanceMeters(o.Destination().Location())
	if err != nil {
		return tracking.Progress{}, err
	}
	travelled, err := origin.DistanceMeters(s.Location())
	if err != nil {
		return tracking.Progress{}, err
	}

	sampledAt := s.CapturedAt()
	if total == 0 {
		return tracking.NewProgress(1, tracking.SourceCourier, &sampledAt), nil
	}
	return tracking.NewProgress(travelled/total, tracking.SourceCourier, &sampledAt), nil
}
