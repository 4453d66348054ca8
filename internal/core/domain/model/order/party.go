package order

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// Party is a buyer, merchant or courier as known to the order.
type Party struct {
	id   string
	name string
}

func NewParty(id, name string) (Party, error) {
	if strings.TrimSpace(id) == "" {
		return Party{}, errs.NewValueIsRequiredError("party id")
	}
	return Party{id: id, name: name}, nil
}

func (p Party) ID() string {
	return p.id
}

func (p Party) Name() string {
	return p.name
}

func (p Party) IsZero() bool {
	return p.id == ""
}

// Place is a free-text address with its resolved coordinates.
type Place struct {
	address  string
	location kernel.Location
}

func NewPlace(address string, location kernel.Location) (Place, error) {
	var errAddress error
	if strings.TrimSpace(address) == "" {
		errAddress = errs.NewValueIsRequiredError("address")
	}
	if err := errors.Join(errAddress, location.Validate()); err != nil {
		return Place{}, err
	}
	return Place{address: address, location: location}, nil
}

func (p Place) Address() string {
	return p.address
}

func (p Place) Location() kernel.Location {
	return p.location
}
