package kernel

import "marketplace/internal/pkg/errs"

// Money is an amount in the smallest currency unit. Fractional amounts do not exist.
type Money int64

func NewMoney(amount int64) (Money, error) {
	if amount < 0 {
		return 0, errs.NewValueIsOutOfRangeError("amount", amount, 0, "unbounded")
	}
	return Money(amount), nil
}

func (m Money) Int64() int64 {
	return int64(m)
}

func (m Money) Add(other Money) Money {
	return m + other
}

// Split divides m into n parts. The remainder goes to the last part so the parts sum to m.
func (m Money) Split(n int) ([]Money, error) {
	if n <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("parts", n, 1, "unbounded")
	}
	if m < 0 {
		return nil, errs.NewValueIsOutOfRangeError("amount", int64(m), 0, "unbounded")
	}

	share := m / Money(n)
	parts := make([]Money, n)
	for i := range parts {
		parts[i] = share
	}
	parts[n-1] += m - share*Money(n)
	return parts, nil
}
