// Package geocoder resolves addresses from a fixed table of known streets.
// It stands in for a real geocoding service in demos and tests.
package geocoder

import (
	"context"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

var _ ports.Geocoder = (*Fixture)(nil)

type Entry struct {
	Fragment string
	Location kernel.Location
}

type Fixture struct {
	entries  []Entry
	fallback kernel.Location
}

// NewFixture matches entries in order by case-insensitive substring and
// answers fallback for everything else.
func NewFixture(fallback kernel.Location, entries ...Entry) *Fixture {
	return &Fixture{entries: entries, fallback: fallback}
}

// NewBogorFixture knows the two demo streets and falls back to the city centre.
func NewBogorFixture() *Fixture {
	return NewFixture(kernel.MustLocation(-6.5978, 106.8067),
		Entry{Fragment: "suryakencana", Location: kernel.MustLocation(-6.5950, 106.8000)},
		Entry{Fragment: "pajajaran", Location: kernel.MustLocation(-6.6000, 106.8100)},
	)
}

func (f *Fixture) Resolve(_ context.Context, address string) (kernel.Location, error) {
	needle := strings.ToLower(strings.TrimSpace(address))
	if needle == "" {
		return kernel.Location{}, errs.NewValueIsRequiredError("address")
	}

	for _, e := range f.entries {
		if strings.Contains(needle, strings.ToLower(e.Fragment)) {
			return e.Location, nil
		}
	}
	return f.fallback, nil
}
