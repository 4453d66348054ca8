package kernel

import (
	"errors"
	"fmt"
	"math"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

const (
	LatitudeMin  = -90.0
	LatitudeMax  = 90.0
	LongitudeMin = -180.0
	LongitudeMax = 180.0

	earthRadiusMeters = 6371000.0
)

var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError("location must be created via NewLocation")

// Location is a WGS84 point. Distances are great-circle distances in meters.
type Location struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

func NewLocation(lat, lng float64) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setLat(lat), loc.setLng(lng)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// MustLocation is meant for fixtures with literal coordinates.
func MustLocation(lat, lng float64) Location {
	loc, err := NewLocation(lat, lng)
	if err != nil {
		panic(err)
	}
	return loc
}

func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

func (l Location) Lat() float64 {
	return l.lat
}

func (l Location) Lng() float64 {
	return l.lng
}

func (l Location) String() string {
	return fmt.Sprintf("Location(%.6f,%.6f)", l.lat, l.lng)
}

func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l.lat == other.lat && l.lng == other.lng, nil
}

// DistanceMeters uses the haversine formula.
func (l Location) DistanceMeters(other Location) (float64, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	lat1 := radians(l.lat)
	lat2 := radians(other.lat)
	dLat := lat2 - lat1
	dLng := radians(other.lng - l.lng)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c, nil
}

func (l *Location) setLat(lat float64) error {
	if math.IsNaN(lat) || lat < LatitudeMin || lat > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("lat", lat, LatitudeMin, LatitudeMax)
	}

	l.lat = lat
	return nil
}

func (l *Location) setLng(lng float64) error {
	if math.IsNaN(lng) || lng < LongitudeMin || lng > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("lng", lng, LongitudeMin, LongitudeMax)
	}

	l.lng = lng
	return nil
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
