package kernel

import (
	"fleet/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// centsPlaces is the precision every persisted amount is rounded to.
const centsPlaces = 2

// ErrMoneyIsNegative is returned when an amount below zero is supplied.
var ErrMoneyIsNegative = errs.NewValueIsInvalidError("amount must not be negative")

// Money is a non-negative amount in the team's billing currency, kept as a
// decimal so tax arithmetic does not drift the way float64 does.
type Money struct {
	amount decimal.Decimal
}

// NewMoney validates the amount and rounds it to cents.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, ErrMoneyIsNegative
	}
	return Money{amount: amount.Round(centsPlaces)}, nil
}

// MoneyFromFloat is a convenience for request payloads that carry float64 prices.
func MoneyFromFloat(amount float64) (Money, error) {
	return NewMoney(decimal.NewFromFloat(amount))
}

// MustMoney panics on invalid input. Intended for constants and tests.
func MustMoney(s string) Money {
	m, err := NewMoney(decimal.RequireFromString(s))
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Mul multiplies by factor and rounds the result to cents (half away from zero).
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(factor).Round(centsPlaces)}
}

// Div splits the amount into n parts truncated to cents, so n shares never sum
// above m. n must be positive.
func (m Money) Div(n int) Money {
	return Money{amount: m.amount.Div(decimal.NewFromInt(int64(n))).Truncate(centsPlaces)}
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// Float64 is used by the fiscal service payload, which is JSON numbers.
func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

// String renders the amount with exactly two decimals.
func (m Money) String() string {
	return m.amount.StringFixed(centsPlaces)
}
