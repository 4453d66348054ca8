package services

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// Line is one selected cart line with its catalog data already resolved.
type Line struct {
	ProductID       string
	Name            string
	Quantity        int
	UnitPrice       kernel.Money
	MerchantID      string
	MerchantName    string
	MerchantAddress string
}

// Group is the order-creation request for one merchant.
type Group struct {
	Merchant        order.Party
	MerchantAddress string
	Items           []order.Item
	DeliveryFee     kernel.Money
}

func (g Group) Subtotal() kernel.Money {
	var sum kernel.Money
	for _, it := range g.Items {
		sum += it.LineTotal()
	}
	return sum
}

// CheckoutSplitter turns a multi-merchant selection into one group per merchant.
//
// Business rules:
//   - groups keep the order in which merchants first appear in the selection
//   - the flat delivery fee is divided in whole currency units, the remainder
//     goes to the last group, so the group fees always sum to the total fee
//   - an empty selection is rejected
type CheckoutSplitter struct{}

// NewCheckoutSplitter creates a stateless splitter.
//
// Example:
//
//	groups, err := services.NewCheckoutSplitter().Split(lines, 10000)
//	if err != nil {
//	    // Handle empty selection or invalid line
//	}
//	for _, g := range groups {
//	    // one order per g.Merchant, charged g.DeliveryFee
//	}
func NewCheckoutSplitter() CheckoutSplitter {
	return CheckoutSplitter{}
}

// Split groups lines by merchant and allocates totalFee across the groups.
//
// Parameters:
//   - lines: Resolved cart lines, possibly from several merchants
//   - totalFee: The flat delivery fee for the whole checkout (>= 0)
//
// Returns:
//   - []Group: One group per merchant in first-appearance order
//   - error: ErrEmptySelection for no lines, ErrValueIsOutOfRange for a
//     negative fee, or a validation error for a malformed line
func (s CheckoutSplitter) Split(lines []Line, totalFee kernel.Money) ([]Group, error) {
	if len(lines) == 0 {
		return nil, errs.NewEmptySelectionError("lines")
	}
	if totalFee < 0 {
		return nil, errs.NewValueIsOutOfRangeError("deliveryFee", int64(totalFee), 0, "unbounded")
	}

	groups, err := s.group(lines)
	if err != nil {
		return nil, err
	}

	fees, err := totalFee.Split(len(groups))
	if err != nil {
		return nil, err
	}
	for i := range groups {
		groups[i].DeliveryFee = fees[i]
	}

	return groups, nil
}

func (s CheckoutSplitter) group(lines []Line) ([]Group, error) {
	var (
		groups  []Group
		indexOf = make(map[string]int)
		errList []error
	)

	for _, l := range lines {
		item, err := order.NewItem(l.ProductID, l.Name, l.Quantity, l.UnitPrice)
		if err != nil {
			errList = append(errList, err)
			continue
		}

		idx, ok := indexOf[l.MerchantID]
		if !ok {
			merchant, err := order.NewParty(l.MerchantID, l.MerchantName)
			if err != nil {
				errList = append(errList, err)
				continue
			}
			groups = append(groups, Group{Merchant: merchant, MerchantAddress: l.MerchantAddress})
			idx = len(groups) - 1
			indexOf[l.MerchantID] = idx
		}
		groups[idx].Items = append(groups[idx].Items, item)
	}

	if err := errors.Join(errList...); err != nil {
		return nil, err
	}
	return groups, nil
}
