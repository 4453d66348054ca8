package order

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/ddd"
	"marketplace/internal/pkg/errs"
)

const AggregateType = "order"

const (
	EventCreated         = "order.created"
	EventStatusChanged   = "order.status_changed"
	EventPaymentCaptured = "payment.captured"
	EventPaymentRefunded = "payment.refunded"
)

var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Order is the aggregate root of the fulfillment flow. One order covers the
// items of exactly one merchant.
type Order struct {
	ddd.EventRecorder

	id          kernel.UUID
	buyer       Party
	merchant    Party
	origin      Place
	destination Place
	items       []Item

	subtotal    kernel.Money
	deliveryFee kernel.Money
	total       kernel.Money

	paymentMethod PaymentMethod
	paymentStatus PaymentStatus

	status     Status
	courier    *Party
	pickedUpAt *time.Time

	cancelReason string
	cancelledAt  *time.Time

	createdAt time.Time
	updatedAt time.Time
	version   int64

	isConstructed bool
}

// NewOrder creates an order for the items of a single merchant.
//
// Parameters:
//   - id: Order identifier, usually kernel.NewUUID()
//   - buyer, merchant: The parties on both ends of the order
//   - origin, destination: Merchant pickup place and buyer delivery place
//   - items: At least one item; all must be valid
//   - deliveryFee: This order's share of the checkout delivery fee (>= 0)
//   - method: How the buyer pays
//   - at: Creation time, stored in UTC
//
// Returns:
//   - *Order: The order in Preparing status with payment pending and version 1
//   - error: Every failed validation joined together
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), buyer, merchant, origin, destination,
//	    []order.Item{item}, 5000, order.PaymentWallet, time.Now())
//	if err != nil {
//	    // Handle validation error
//	}
//
// The total is always subtotal plus delivery fee. An order.created event is
// recorded for the outbox.
func NewOrder(
	id kernel.UUID,
	buyer Party,
	merchant Party,
	origin Place,
	destination Place,
	items []Item,
	deliveryFee kernel.Money,
	method PaymentMethod,
	at time.Time,
) (*Order, error) {
	o := &Order{
		status:        Preparing,
		paymentStatus: PaymentPending,
		createdAt:     at.UTC(),
		updatedAt:     at.UTC(),
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setParty("buyer", &o.buyer, buyer),
		o.setParty("merchant", &o.merchant, merchant),
		o.setPlace("origin", &o.origin, origin),
		o.setPlace("destination", &o.destination, destination),
		o.setItems(items),
		o.setDeliveryFee(deliveryFee),
		o.setPaymentMethod(method),
	); err != nil {
		return nil, err
	}

	o.total = o.subtotal + o.deliveryFee

	o.Record(ddd.NewEvent(EventCreated, AggregateType, o.id.String(), at, map[string]any{
		"orderId":     o.id.String(),
		"buyerId":     o.buyer.ID(),
		"merchantId":  o.merchant.ID(),
		"subtotal":    int64(o.subtotal),
		"deliveryFee": int64(o.deliveryFee),
		"total":       int64(o.total),
		"method":      string(o.paymentMethod),
	}))

	return o, nil
}

// Snapshot carries the persisted state of an order back into the domain.
type Snapshot struct {
	ID            kernel.UUID
	Buyer         Party
	Merchant      Party
	Origin        Place
	Destination   Place
	Items         []Item
	Subtotal      kernel.Money
	DeliveryFee   kernel.Money
	Total         kernel.Money
	PaymentMethod PaymentMethod
	PaymentStatus PaymentStatus
	Status        Status
	Courier       *Party
	PickedUpAt    *time.Time
	CancelReason  string
	CancelledAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Version       int64
}

// RestoreOrder rebuilds an order from storage without re-running creation rules
// or recording events.
func RestoreOrder(s Snapshot) *Order {
	items := make([]Item, len(s.Items))
	copy(items, s.Items)

	return &Order{
		id:            s.ID,
		buyer:         s.Buyer,
		merchant:      s.Merchant,
		origin:        s.Origin,
		destination:   s.Destination,
		items:         items,
		subtotal:      s.Subtotal,
		deliveryFee:   s.DeliveryFee,
		total:         s.Total,
		paymentMethod: s.PaymentMethod,
		paymentStatus: s.PaymentStatus,
		status:        s.Status,
		courier:       s.Courier,
		pickedUpAt:    s.PickedUpAt,
		cancelReason:  s.CancelReason,
		cancelledAt:   s.CancelledAt,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
		version:       s.Version,
		isConstructed: true,
	}
}

// Validate ensures the order was built by NewOrder or RestoreOrder and that
// its courier assignment agrees with its status.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return o.status.ValidateCanHaveCourier(o.courier != nil)
}

// IsEqual compares orders by ID. A nil other is never equal.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Buyer() Party {
	return o.buyer
}

func (o *Order) Merchant() Party {
	return o.merchant
}

func (o *Order) Origin() Place {
	return o.origin
}

func (o *Order) Destination() Place {
	return o.destination
}

func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

func (o *Order) Subtotal() kernel.Money {
	return o.subtotal
}

func (o *Order) DeliveryFee() kernel.Money {
	return o.deliveryFee
}

func (o *Order) Total() kernel.Money {
	return o.total
}

func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

func (o *Order) Status() Status {
	return o.status
}

// Courier is nil until the order is claimed.
func (o *Order) Courier() *Party {
	return o.courier
}

func (o *Order) PickedUpAt() *time.Time {
	return o.pickedUpAt
}

func (o *Order) CancelReason() string {
	return o.cancelReason
}

func (o *Order) CancelledAt() *time.Time {
	return o.cancelledAt
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

func (o *Order) Version() int64 {
	return o.version
}

// AdvanceVersion is called by the repository once a versioned write succeeded.
func (o *Order) AdvanceVersion() {
	o.version++
}

// IsAssignedTo reports whether courierID is the courier carrying the order.
func (o *Order) IsAssignedTo(courierID string) bool {
	return o.courier != nil && o.courier.ID() == courierID
}

// CanBeViewedBy applies the read rules: parties see their own orders, couriers
// also see unclaimed ready orders, admins and the system see everything.
func (o *Order) CanBeViewedBy(actor kernel.Actor) bool {
	courierID := ""
	if o.courier != nil {
		courierID = o.courier.ID()
	}
	return VisibleTo(actor, o.buyer.ID(), o.merchant.ID(), courierID, o.status)
}

// VisibleTo is CanBeViewedBy for read models that hold only the stored ids.
// An empty courierID means the order is unclaimed.
func VisibleTo(actor kernel.Actor, buyerID, merchantID, courierID string, status Status) bool {
	switch actor.Role() {
	case kernel.RoleAdmin, kernel.RoleSystem:
		return true
	case kernel.RoleBuyer:
		return buyerID == actor.ID()
	case kernel.RoleMerchant:
		return merchantID == actor.ID()
	case kernel.RoleCourier:
		if courierID == "" {
			return status == Ready
		}
		return courierID == actor.ID()
	default:
		return false
	}
}

// MarkReady moves the order from Preparing to Ready.
//
// Business rules:
//   - Only the merchant that owns the order may mark it ready
//   - The order must be in Preparing status
//
// Parameters:
//   - actor: The acting merchant
//   - at: Transition time
//
// Returns:
//   - nil on success, with an order.status_changed event recorded
//   - ErrForbidden for any other actor
//   - ErrInvalidTransition when the order is not Preparing
//
// Example:
//
//	if err := o.MarkReady(merchant, time.Now()); err != nil {
//	    // Handle forbidden or invalid transition
//	}
func (o *Order) MarkReady(actor kernel.Actor, at time.Time) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if !actor.Is(kernel.RoleMerchant) || o.merchant.ID() != actor.ID() {
		return errs.NewForbiddenError("mark order ready", actor.String())
	}

	next, err := o.status.MarkReady()
	if err != nil {
		return err
	}

	o.changeStatus(next, actor, at)
	return nil
}

// Claim assigns the acting courier and moves the order from Ready to Pickup.
// An order that already has a courier is a conflict regardless of its status.
//
// After a successful claim Courier() returns the courier and PickedUpAt()
// the claim time.
func (o *Order) Claim(actor kernel.Actor, at time.Time) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if !actor.Is(kernel.RoleCourier) {
		return errs.NewForbiddenError("claim order", actor.String())
	}
	if o.courier != nil {
		return errs.NewConflictError("orderId", o.id.String())
	}

	next, err := o.status.Claim()
	if err != nil {
		return err
	}

	courier, err := NewParty(actor.ID(), actor.Name())
	if err != nil {
		return err
	}
	pickedUpAt := at.UTC()

	o.courier = &courier
	o.pickedUpAt = &pickedUpAt
	o.changeStatus(next, actor, at)
	return nil
}

// Deliver moves the order from Pickup to Delivered.
//
// Business rules:
//   - Only a courier may deliver
//   - The order must be in Pickup status
//   - The courier must be the one assigned by Claim
//
// Parameters:
//   - actor: The acting courier
//   - at: Delivery time
//
// Returns:
//   - nil on success
//   - ErrForbidden for a non-courier or a courier other than the assigned one
//   - ErrInvalidTransition when the order is not in Pickup
//
// Example:
//
//	err := o.Deliver(courier, time.Now())
//	if err != nil {
//	    // Handle forbidden or invalid transition
//	}
//
// The caller discards the stored location sample once the order is delivered.
func (o *Order) Deliver(actor kernel.Actor, at time.Time) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if !actor.Is(kernel.RoleCourier) {
		return errs.NewForbiddenError("deliver order", actor.String())
	}

	next, err := o.status.Deliver()
	if err != nil {
		return err
	}
	if !o.IsAssignedTo(actor.ID()) {
		return errs.NewForbiddenError("deliver order", actor.String())
	}

	o.changeStatus(next, actor, at)
	return nil
}

// Complete settles a delivered order. Only admins and the system actor may do it.
func (o *Order) Complete(actor kernel.Actor, at time.Time) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if !actor.Is(kernel.RoleAdmin) && !actor.Is(kernel.RoleSystem) {
		return errs.NewForbiddenError("complete order", actor.String())
	}

	next, err := o.status.Complete()
	if err != nil {
		return err
	}

	o.changeStatus(next, actor, at)
	return nil
}

// Cancel moves the order to cancelled. Buyers may cancel while preparing,
// merchants until the order is picked up, admins until it is delivered.
// The refund is driven by the caller through RequiresRefund and MarkRefunded.
func (o *Order) Cancel(actor kernel.Actor, reason string, at time.Time) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	next, err := o.status.Cancel()
	if err != nil {
		return err
	}

	var allowed bool
	switch actor.Role() {
	case kernel.RoleAdmin:
		allowed = true
	case kernel.RoleMerchant:
		allowed = o.merchant.ID() == actor.ID() && (o.status == Preparing || o.status == Ready)
	case kernel.RoleBuyer:
		allowed = o.buyer.ID() == actor.ID() && o.status == Preparing
	}
	if !allowed {
		return errs.NewForbiddenError("cancel "+o.status.String()+" order", actor.String())
	}

	cancelledAt := at.UTC()
	o.cancelReason = reason
	o.cancelledAt = &cancelledAt
	o.changeStatus(next, actor, at)
	return nil
}

// MarkPaid flips a pending payment to paid and records payment.captured.
func (o *Order) MarkPaid(at time.Time) error {
	if o.paymentStatus != PaymentPending {
		return errs.NewInvalidTransitionError("payment "+string(o.paymentStatus), "payment "+string(PaymentPaid))
	}

	o.paymentStatus = PaymentPaid
	o.updatedAt = at.UTC()
	o.Record(ddd.NewEvent(EventPaymentCaptured, AggregateType, o.id.String(), at, o.paymentPayload()))
	return nil
}

// RequiresRefund is true once money was captured and not yet returned.
func (o *Order) RequiresRefund() bool {
	return o.paymentStatus == PaymentPaid
}

func (o *Order) MarkRefunded(at time.Time) error {
	if o.paymentStatus != PaymentPaid {
		return errs.NewInvalidTransitionError("payment "+string(o.paymentStatus), "payment "+string(PaymentRefunded))
	}

	o.paymentStatus = PaymentRefunded
	o.updatedAt = at.UTC()
	o.Record(ddd.NewEvent(EventPaymentRefunded, AggregateType, o.id.String(), at, o.paymentPayload()))
	return nil
}

func (o *Order) changeStatus(next Status, actor kernel.Actor, at time.Time) {
	prev := o.status
	o.status = next
	o.updatedAt = at.UTC()

	payload := map[string]any{
		"orderId":    o.id.String(),
		"from":       prev.String(),
		"to":         next.String(),
		"actorId":    actor.ID(),
		"actorRole":  string(actor.Role()),
		"buyerId":    o.buyer.ID(),
		"merchantId": o.merchant.ID(),
	}
	if o.courier != nil {
		payload["courierId"] = o.courier.ID()
	}
	o.Record(ddd.NewEvent(EventStatusChanged, AggregateType, o.id.String(), at, payload))
}

func (o *Order) paymentPayload() map[string]any {
	return map[string]any{
		"orderId": o.id.String(),
		"buyerId": o.buyer.ID(),
		"amount":  int64(o.total),
		"method":  string(o.paymentMethod),
	}
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setParty(param string, dst *Party, p Party) error {
	if p.IsZero() {
		return errs.NewValueIsRequiredError(param)
	}
	*dst = p
	return nil
}

func (o *Order) setPlace(param string, dst *Place, p Place) error {
	if err := p.Location().Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(param, err)
	}
	*dst = p
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	var subtotal kernel.Money
	for _, it := range items {
		if it.Quantity() <= 0 {
			return errs.NewValueIsInvalidError("items")
		}
		subtotal += it.LineTotal()
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	o.subtotal = subtotal
	return nil
}

func (o *Order) setDeliveryFee(fee kernel.Money) error {
	if fee < 0 {
		return errs.NewValueIsOutOfRangeError("deliveryFee", int64(fee), 0, "unbounded")
	}
	o.deliveryFee = fee
	return nil
}

func (o *Order) setPaymentMethod(m PaymentMethod) error {
	if _, err := ParsePaymentMethod(string(m)); err != nil {
		return err
	}
	o.paymentMethod = m
	return nil
}
