package order

import (
	"fmt"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// Item is a snapshot of a catalog product at checkout time. It never changes after creation.
type Item struct {
	productID string
	name      string
	quantity  int
	unitPrice kernel.Money
}

func NewItem(productID, name string, quantity int, unitPrice kernel.Money) (Item, error) {
	if strings.TrimSpace(productID) == "" {
		return Item{}, errs.NewValueIsRequiredError("productId")
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if unitPrice < 0 {
		return Item{}, errs.NewValueIsOutOfRangeError("unitPrice", int64(unitPrice), 0, "unbounded")
	}
	return Item{productID: productID, name: name, quantity: quantity, unitPrice: unitPrice}, nil
}

func (i Item) ProductID() string {
	return i.productID
}

func (i Item) Name() string {
	return i.name
}

func (i Item) Quantity() int {
	return i.quantity
}

func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

func (i Item) LineTotal() kernel.Money {
	return i.unitPrice * kernel.Money(i.quantity)
}
