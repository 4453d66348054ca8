package order

import (
	"fmt"
	"strings"

	"marketplace/internal/pkg/errs"
)

// Status is the fulfillment state of an order.
//
//	preparing -> ready -> pickup -> delivered -> completed
//	preparing | ready | pickup -> cancelled
type Status int

const (
	Unknown Status = iota
	Preparing
	Ready
	Pickup
	Delivered
	Completed
	Cancelled
)

var statusStrings = map[Status]string{
	Preparing: "preparing",
	Ready:     "ready",
	Pickup:    "pickup",
	Delivered: "delivered",
	Completed: "completed",
	Cancelled: "cancelled",
}

func ParseStatus(s string) (Status, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for st, str := range statusStrings {
		if str == needle {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if _, ok := statusStrings[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := statusStrings[s]; ok {
		return str
	}
	return "unknown"
}

func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// HasCourier reports whether an order in this status must carry a courier.
func (s Status) HasCourier() bool {
	return s == Pickup || s == Delivered || s == Completed
}

// ValidateCanHaveCourier checks the courier/status pairing. A cancelled order
// may or may not have a courier depending on when it was cancelled.
func (s Status) ValidateCanHaveCourier(courier bool) error {
	if s == Cancelled {
		return nil
	}
	if courier && !s.HasCourier() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a courier", s),
		)
	}
	if !courier && s.HasCourier() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no courier", s),
		)
	}
	return nil
}

func (s Status) MarkReady() (Status, error) {
	return s.advance(Ready, Preparing)
}

func (s Status) Claim() (Status, error) {
	return s.advance(Pickup, Ready)
}

func (s Status) Deliver() (Status, error) {
	return s.advance(Delivered, Pickup)
}

func (s Status) Complete() (Status, error) {
	return s.advance(Completed, Delivered)
}

func (s Status) Cancel() (Status, error) {
	return s.advance(Cancelled, Preparing, Ready, Pickup)
}

func (s Status) advance(to Status, from ...Status) (Status, error) {
	for _, f := range from {
		if s == f {
			return to, nil
		}
	}
	return Unknown, errs.NewInvalidTransitionError(s.String(), to.String())
}
