package order

import (
	"fmt"
	"strings"

	"marketplace/internal/pkg/errs"
)

type PaymentMethod string

const (
	PaymentWallet PaymentMethod = "wallet"
	PaymentCard   PaymentMethod = "card"
	PaymentCash   PaymentMethod = "cash"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(strings.ToLower(strings.TrimSpace(s))); m {
	case PaymentWallet, PaymentCard, PaymentCash:
		return m, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("payment method", fmt.Errorf("%q is not supported", s))
	}
}

// UsesWallet reports whether capture and refund move money on the buyer's wallet.
func (m PaymentMethod) UsesWallet() bool {
	return m == PaymentWallet
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch ps := PaymentStatus(s); ps {
	case PaymentPending, PaymentPaid, PaymentRefunded:
		return ps, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("payment status", fmt.Errorf("%q is not a valid payment status", s))
	}
}
