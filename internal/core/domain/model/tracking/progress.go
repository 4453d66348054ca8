package tracking

import (
	"math"
	"time"
)

type Source string

const (
	// SourceCourier means the fraction comes from a reported courier position.
	SourceCourier Source = "courier"
	// SourceSimulation is a time-based placeholder, not an ETA model.
	SourceSimulation Source = "simulation"
	// SourceStatus means the order status alone decides the value.
	SourceStatus Source = "status"
	SourceNone   Source = "none"
)

// Progress is the completion fraction of a delivery in [0,1].
type Progress struct {
	fraction  float64
	source    Source
	sampledAt *time.Time
}

func NewProgress(fraction float64, source Source, sampledAt *time.Time) Progress {
	return Progress{fraction: clamp(fraction), source: source, sampledAt: sampledAt}
}

func Unavailable() Progress {
	return Progress{source: SourceNone}
}

func (p Progress) Fraction() float64 {
	return p.fraction
}

func (p Progress) Source() Source {
	return p.source
}

func (p Progress) IsAvailable() bool {
	return p.source != SourceNone
}

func (p Progress) SampledAt() *time.Time {
	return p.sampledAt
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
