package commands

import (
	"errors"
	"fmt"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCheckoutCommandIsNotConstructed = errors.New(
	"CheckoutCommand must be created via NewCheckoutCommand constructor",
)

// CheckoutLine is a selected cart line. Everything else about the product is
// resolved from the catalog at checkout time.
type CheckoutLine struct {
	ProductID string
	Quantity  int
}

type CheckoutCommand struct {
	actor           kernel.Actor
	lines           []CheckoutLine
	deliveryAddress string
	paymentMethod   order.PaymentMethod
	idempotencyKey  string

	guard guard.ConstructorGuard
}

func NewCheckoutCommand(
	actor kernel.Actor,
	lines []CheckoutLine,
	deliveryAddress string,
	paymentMethod string,
	idempotencyKey string,
) (CheckoutCommand, error) {
	cmd := CheckoutCommand{
		guard:          guard.NewConstructorGuard(),
		idempotencyKey: idempotencyKey,
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setLines(lines),
		cmd.setDeliveryAddress(deliveryAddress),
		cmd.setPaymentMethod(paymentMethod),
	); err != nil {
		return CheckoutCommand{}, err
	}

	return cmd, nil
}

func (c CheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCommandIsNotConstructed)
}

func (c CheckoutCommand) Actor() kernel.Actor {
	return c.actor
}

func (c CheckoutCommand) Lines() []CheckoutLine {
	lines := make([]CheckoutLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

func (c CheckoutCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

func (c CheckoutCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

func (c CheckoutCommand) IdempotencyKey() string {
	return c.idempotencyKey
}

func (c *CheckoutCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if !actor.Is(kernel.RoleBuyer) {
		return errs.NewForbiddenError("check out", actor.String())
	}
	c.actor = actor
	return nil
}

func (c *CheckoutCommand) setLines(lines []CheckoutLine) error {
	if len(lines) == 0 {
		return errs.NewEmptySelectionError("lines")
	}

	var errList []error
	for i, l := range lines {
		if strings.TrimSpace(l.ProductID) == "" {
			errList = append(errList, errs.NewValueIsRequiredError(fmt.Sprintf("lines[%d].productId", i)))
		}
		if l.Quantity <= 0 {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("lines[%d].quantity", i), fmt.Errorf("%d is not greater than 0", l.Quantity)))
		}
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	c.lines = make([]CheckoutLine, len(lines))
	copy(c.lines, lines)
	return nil
}

func (c *CheckoutCommand) setDeliveryAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return errs.NewValueIsRequiredError("deliveryAddress")
	}
	c.deliveryAddress = address
	return nil
}

func (c *CheckoutCommand) setPaymentMethod(method string) error {
	m, err := order.ParsePaymentMethod(method)
	if err != nil {
		return err
	}
	c.paymentMethod = m
	return nil
}

const (
	GroupCreated = "created"
	GroupFailed  = "failed"
)

// CheckoutGroupResult reports the outcome for one merchant. Each group either
// committed its order and payment together or left nothing behind.
type CheckoutGroupResult struct {
	MerchantID   string    `json:"merchantId"`
	MerchantName string    `json:"merchantName"`
	Status       string    `json:"status"`
	OrderID      string    `json:"orderId,omitempty"`
	Subtotal     int64     `json:"subtotal"`
	DeliveryFee  int64     `json:"deliveryFee"`
	Total        int64     `json:"total"`
	ErrorKind    errs.Kind `json:"errorKind,omitempty"`
	Error        string    `json:"error,omitempty"`
}

type CheckoutResult struct {
	Groups []CheckoutGroupResult `json:"groups"`
	// Replayed is set when the result was served from an earlier request
	// with the same idempotency key.
	Replayed bool `json:"-"`
}

func (r CheckoutResult) Created() int {
	n := 0
	for _, g := range r.Groups {
		if g.Status == GroupCreated {
			n++
		}
	}
	return n
}

func (r CheckoutResult) IsPartial() bool {
	created := r.Created()
	return created > 0 && created < len(r.Groups)
}
