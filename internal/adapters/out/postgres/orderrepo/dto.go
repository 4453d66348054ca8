// Package orderrepo persists order aggregates and their line items.
package orderrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the row of the orders table. Timestamps and version are owned by
// the domain, so gorm's automatic time tracking is disabled.
type OrderDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	BuyerID       string
	BuyerName     string
	MerchantID    string
	MerchantName  string
	Origin        PlaceDTO `gorm:"embedded;embeddedPrefix:origin_"`
	Destination   PlaceDTO `gorm:"embedded;embeddedPrefix:destination_"`
	Subtotal      int64
	DeliveryFee   int64
	Total         int64
	PaymentMethod string
	PaymentStatus string
	Status        string
	CourierID     *string
	CourierName   *string
	PickedUpAt    *time.Time
	CancelReason  string
	CancelledAt   *time.Time
	CreatedAt     time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime:false"`
	Version       int64
	Items         []ItemDTO `gorm:"foreignKey:OrderID;references:ID"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type PlaceDTO struct {
	Address string
	Lat     float64
	Lng     float64
}

type ItemDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position  int       `gorm:"primaryKey;autoIncrement:false"`
	ProductID string
	Name      string
	Quantity  int
	UnitPrice int64
}

func (ItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	id := o.ID().Bytes()

	items := make([]ItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		items = append(items, ItemDTO{
			OrderID:   id,
			Position:  i,
			ProductID: item.ProductID(),
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			UnitPrice: int64(item.UnitPrice()),
		})
	}

	var courierID, courierName *string
	if c := o.Courier(); c != nil {
		cid, cname := c.ID(), c.Name()
		courierID, courierName = &cid, &cname
	}

	return OrderDTO{
		ID:            id,
		BuyerID:       o.Buyer().ID(),
		BuyerName:     o.Buyer().Name(),
		MerchantID:    o.Merchant().ID(),
		MerchantName:  o.Merchant().Name(),
		Origin:        placeFromDomain(o.Origin()),
		Destination:   placeFromDomain(o.Destination()),
		Subtotal:      int64(o.Subtotal()),
		DeliveryFee:   int64(o.DeliveryFee()),
		Total:         int64(o.Total()),
		PaymentMethod: string(o.PaymentMethod()),
		PaymentStatus: string(o.PaymentStatus()),
		Status:        o.Status().String(),
		CourierID:     courierID,
		CourierName:   courierName,
		PickedUpAt:    o.PickedUpAt(),
		CancelReason:  o.CancelReason(),
		CancelledAt:   o.CancelledAt(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
		Version:       o.Version(),
		Items:         items,
	}
}

func placeFromDomain(p order.Place) PlaceDTO {
	return PlaceDTO{Address: p.Address(), Lat: p.Location().Lat(), Lng: p.Location().Lng()}
}

// mutableColumns lists what a transition may change. Items, parties and
// amounts are written once on insert.
func mutableColumns(dto OrderDTO) map[string]any {
	return map[string]any{
		"status":         dto.Status,
		"payment_status": dto.PaymentStatus,
		"courier_id":     dto.CourierID,
		"courier_name":   dto.CourierName,
		"picked_up_at":   dto.PickedUpAt,
		"cancel_reason":  dto.CancelReason,
		"cancelled_at":   dto.CancelledAt,
		"updated_at":     dto.UpdatedAt,
		"version":        dto.Version + 1,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}

	buyer, err := order.NewParty(dto.BuyerID, dto.BuyerName)
	if err != nil {
		return nil, err
	}
	merchant, err := order.NewParty(dto.MerchantID, dto.MerchantName)
	if err != nil {
		return nil, err
	}
	origin, err := placeToDomain(dto.Origin)
	if err != nil {
		return nil, err
	}
	destination, err := placeToDomain(dto.Destination)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, i := range dto.Items {
		item, itemErr := order.NewItem(i.ProductID, i.Name, i.Quantity, kernel.Money(i.UnitPrice))
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	method, err := order.ParsePaymentMethod(dto.PaymentMethod)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := order.ParsePaymentStatus(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	var courier *order.Party
	if dto.CourierID != nil {
		name := ""
		if dto.CourierName != nil {
			name = *dto.CourierName
		}
		c, courierErr := order.NewParty(*dto.CourierID, name)
		if courierErr != nil {
			return nil, courierErr
		}
		courier = &c
	}

	return order.RestoreOrder(order.Snapshot{
		ID:            id,
		Buyer:         buyer,
		Merchant:      merchant,
		Origin:        origin,
		Destination:   destination,
		Items:         items,
		Subtotal:      kernel.Money(dto.Subtotal),
		DeliveryFee:   kernel.Money(dto.DeliveryFee),
		Total:         kernel.Money(dto.Total),
		PaymentMethod: method,
		PaymentStatus: paymentStatus,
		Status:        status,
		Courier:       courier,
		PickedUpAt:    utcPtr(dto.PickedUpAt),
		CancelReason:  dto.CancelReason,
		CancelledAt:   utcPtr(dto.CancelledAt),
		CreatedAt:     dto.CreatedAt.UTC(),
		UpdatedAt:     dto.UpdatedAt.UTC(),
		Version:       dto.Version,
	}), nil
}

func placeToDomain(p PlaceDTO) (order.Place, error) {
	loc, err := kernel.NewLocation(p.Lat, p.Lng)
	if err != nil {
		return order.Place{}, err
	}
	return order.NewPlace(p.Address, loc)
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
