package commands

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrReportLocationCommandIsNotConstructed = errors.New(
	"ReportLocationCommand must be created via NewReportLocationCommand constructor",
)

// MaxClockSkew is how far ahead of the server clock a device may stamp a
// sample. A later stamp would outrank every honest sample that follows it.
const MaxClockSkew = time.Minute

type ReportLocationCommand struct {
	orderID    kernel.UUID
	actor      kernel.Actor
	location   kernel.Location
	capturedAt time.Time

	guard guard.ConstructorGuard
}

// NewReportLocationCommand uses the server clock when capturedAt is zero and
// rejects a capturedAt more than MaxClockSkew in the future.
func NewReportLocationCommand(
	orderID kernel.UUID,
	actor kernel.Actor,
	lat, lng float64,
	capturedAt time.Time,
) (ReportLocationCommand, error) {
	cmd := ReportLocationCommand{guard: guard.NewConstructorGuard()}

	var locErr error
	cmd.location, locErr = kernel.NewLocation(lat, lng)

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
		locErr,
		cmd.setCapturedAt(capturedAt, time.Now().UTC()),
	); err != nil {
		return ReportLocationCommand{}, err
	}

	return cmd, nil
}

func (c ReportLocationCommand) Validate() error {
	return c.guard.Validate(ErrReportLocationCommandIsNotConstructed)
}

func (c ReportLocationCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ReportLocationCommand) Actor() kernel.Actor {
	return c.actor
}

func (c ReportLocationCommand) Location() kernel.Location {
	return c.location
}

func (c ReportLocationCommand) CapturedAt() time.Time {
	return c.capturedAt
}

func (c *ReportLocationCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredError("orderID")
	}
	c.orderID = id
	return nil
}

func (c *ReportLocationCommand) setCapturedAt(at, now time.Time) error {
	if at.IsZero() {
		c.capturedAt = now
		return nil
	}
	if latest := now.Add(MaxClockSkew); at.After(latest) {
		return errs.NewValueIsOutOfRangeError("capturedAt", at.UTC(), nil, latest)
	}
	c.capturedAt = at.UTC()
	return nil
}

func (c *ReportLocationCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if !actor.Is(kernel.RoleCourier) {
		return errs.NewForbiddenError("report location", actor.String())
	}
	c.actor = actor
	return nil
}

const (
	LocationAccepted    = ""
	LocationNotInPickup = "order is not in pickup"
	LocationNotAssigned = "courier is not assigned to the order"
	LocationStale       = "a newer sample is already stored"
)

// ReportLocationResult tells the courier app whether the sample was kept. An
// ignored sample is not an error.
type ReportLocationResult struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason,omitempty"`
}
