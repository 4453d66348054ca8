// Package queries contains read operations. Handlers read straight from the
// database into read models and never go through the aggregates' write path.
package queries

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PartyView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type PlaceView struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

type ItemView struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
	LineTotal int64  `json:"lineTotal"`
}

// OrderView is the read model returned to every role. It is also the cached form.
type OrderView struct {
	ID            string     `json:"id"`
	Status        string     `json:"status"`
	Buyer         PartyView  `json:"buyer"`
	Merchant      PartyView  `json:"merchant"`
	Courier       *PartyView `json:"courier,omitempty"`
	Origin        PlaceView  `json:"origin"`
	Destination   PlaceView  `json:"destination"`
	Items         []ItemView `json:"items"`
	Subtotal      int64      `json:"subtotal"`
	DeliveryFee   int64      `json:"deliveryFee"`
	Total         int64      `json:"total"`
	PaymentMethod string     `json:"paymentMethod"`
	PaymentStatus string     `json:"paymentStatus"`
	PickedUpAt    *time.Time `json:"pickedUpAt,omitempty"`
	CancelReason  string     `json:"cancelReason,omitempty"`
	CancelledAt   *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	Version       int64      `json:"version"`
}

// VisibleTo applies the order read rules to the view.
func (v OrderView) VisibleTo(actor kernel.Actor) bool {
	status, err := order.ParseStatus(v.Status)
	if err != nil {
		return false
	}
	courierID := ""
	if v.Courier != nil {
		courierID = v.Courier.ID
	}
	return order.VisibleTo(actor, v.Buyer.ID, v.Merchant.ID, courierID, status)
}

const orderViewColumns = `
	id,
	status,
	buyer_id, buyer_name,
	merchant_id, merchant_name,
	courier_id, courier_name,
	origin_address, origin_lat, origin_lng,
	destination_address, destination_lat, destination_lng,
	subtotal, delivery_fee, total,
	payment_method, payment_status,
	picked_up_at, cancel_reason, cancelled_at,
	created_at, updated_at, version`

// loadOrderViews runs a select over orders with the given tail (WHERE, ORDER
// BY, LIMIT) and attaches the items of every returned order.
func loadOrderViews(ctx context.Context, db *gorm.DB, tail string, args ...any) ([]OrderView, error) {
	rows, err := db.WithContext(ctx).Raw(`SELECT `+orderViewColumns+` FROM orders `+tail, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]OrderView, 0)
	index := make(map[uuid.UUID]int)
	ids := make([]uuid.UUID, 0)

	for rows.Next() {
		var (
			v                       OrderView
			id                      uuid.UUID
			courierID, courierName  sql.NullString
			pickedUpAt, cancelledAt sql.NullTime
		)

		err = rows.Scan(
			&id,
			&v.Status,
			&v.Buyer.ID, &v.Buyer.Name,
			&v.Merchant.ID, &v.Merchant.Name,
			&courierID, &courierName,
			&v.Origin.Address, &v.Origin.Lat, &v.Origin.Lng,
			&v.Destination.Address, &v.Destination.Lat, &v.Destination.Lng,
			&v.Subtotal, &v.DeliveryFee, &v.Total,
			&v.PaymentMethod, &v.PaymentStatus,
			&pickedUpAt, &v.CancelReason, &cancelledAt,
			&v.CreatedAt, &v.UpdatedAt, &v.Version,
		)
		if err != nil {
			return nil, err
		}

		v.ID = id.String()
		if courierID.Valid {
			v.Courier = &PartyView{ID: courierID.String, Name: courierName.String}
		}
		v.PickedUpAt = nullTime(pickedUpAt)
		v.CancelledAt = nullTime(cancelledAt)
		v.CreatedAt = v.CreatedAt.UTC()
		v.UpdatedAt = v.UpdatedAt.UTC()
		v.Items = make([]ItemView, 0)

		index[id] = len(views)
		ids = append(ids, id)
		views = append(views, v)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return views, nil
	}

	itemRows, err := db.WithContext(ctx).Raw(`
		SELECT order_id, product_id, name, quantity, unit_price
		FROM order_items
		WHERE order_id IN ?
		ORDER BY order_id, position
	`, ids).Rows()
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var (
			orderID uuid.UUID
			item    ItemView
		)
		if err = itemRows.Scan(&orderID, &item.ProductID, &item.Name, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		item.LineTotal = item.UnitPrice * int64(item.Quantity)

		i, ok := index[orderID]
		if !ok {
			return nil, fmt.Errorf("item references unexpected order %s", orderID)
		}
		views[i].Items = append(views[i].Items, item)
	}

	return views, itemRows.Err()
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	u := t.Time.UTC()
	return &u
}

// where joins conditions with AND, or returns an empty string.
func where(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(conds, " AND ")
}
