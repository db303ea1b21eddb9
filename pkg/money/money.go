// Package money provides the ledger representation of monetary values.
//
// Invariants:
//   - Amount is always stored in the smallest currency unit (e.g., cents for USD).
//   - Currency code must be three upper-case letters.
//   - All arithmetic operations require matching currencies.
package money

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount is returned for NaN, infinite or out of range amounts.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidCurrency is returned when a currency code is malformed.
	ErrInvalidCurrency = errors.New("invalid currency code")

	// ErrMismatchedCurrencies is returned when combining money in different currencies.
	ErrMismatchedCurrencies = errors.New("mismatched currencies")
)

// Amount represents a monetary amount in the smallest currency unit.
type Amount = int64

// Currency represents a monetary unit with its standard decimal places.
type Currency struct {
	Code     Code // 3-letter ISO 4217 code (e.g., "USD")
	Decimals int  // Number of decimal places (0-8)
}

// IsValid checks if the currency is valid.
func (c Currency) IsValid() bool {
	return c.Decimals >= 0 && c.Decimals <= 8 && c.Code.IsValid()
}

// String returns the currency code as a string
func (c Currency) String() string { return string(c.Code) }

// DefaultCurrency is the currency contractors are paid in.
var DefaultCurrency = USD.ToCurrency()

// Money is an immutable amount of a single currency.
type Money struct {
	amount   Amount
	currency Currency
}

// New converts a major-unit amount (dollars) to Money, rounding half away
// from zero to the currency's precision.
func New(amount float64, code Code) (*Money, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}
	return FromDecimal(decimal.NewFromFloat(amount), code)
}

// FromDecimal converts a major-unit decimal to Money.
func FromDecimal(d decimal.Decimal, code Code) (*Money, error) {
	if !code.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCurrency, code)
	}
	c := code.ToCurrency()
	units := d.Shift(int32(c.Decimals)).Round(0)
	if units.GreaterThan(decimal.NewFromInt(math.MaxInt64)) ||
		units.LessThan(decimal.NewFromInt(math.MinInt64)) {
		return nil, fmt.Errorf("%w: %s overflows", ErrInvalidAmount, d)
	}
	return &Money{amount: units.IntPart(), currency: c}, nil
}

// NewFromSmallestUnit creates Money from an amount already in the smallest unit.
func NewFromSmallestUnit(amount int64, code Code) (*Money, error) {
	if !code.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCurrency, code)
	}
	return &Money{amount: amount, currency: code.ToCurrency()}, nil
}

// Amount returns the amount in the smallest currency unit.
func (m *Money) Amount() Amount {
	return m.amount
}

// Decimal returns the amount in the main currency unit.
func (m *Money) Decimal() decimal.Decimal {
	return decimal.New(m.amount, -int32(m.currency.Decimals))
}

// AmountFloat returns the amount as a float64 in the main currency unit.
func (m *Money) AmountFloat() float64 {
	return m.Decimal().InexactFloat64()
}

// Currency returns the currency of the Money object.
func (m *Money) Currency() Currency {
	return m.currency
}

// Add returns the sum of both amounts.
func (m *Money) Add(other *Money) (*Money, error) {
	if m.currency != other.currency {
		return nil, fmt.Errorf("%w: cannot add %s and %s",
			ErrMismatchedCurrencies, m.currency.Code, other.currency.Code)
	}
	return &Money{amount: m.amount + other.amount, currency: m.currency}, nil
}

// Subtract returns m minus other. The result can be negative.
func (m *Money) Subtract(other *Money) (*Money, error) {
	if m.currency != other.currency {
		return nil, fmt.Errorf("%w: cannot subtract %s and %s",
			ErrMismatchedCurrencies, m.currency.Code, other.currency.Code)
	}
	return &Money{amount: m.amount - other.amount, currency: m.currency}, nil
}

// Equals reports whether both values carry the same currency and amount.
func (m *Money) Equals(other *Money) bool {
	if m == nil || other == nil {
		return false
	}
	return m.currency == other.currency && m.amount == other.amount
}

// GreaterThan reports whether m is strictly greater than other.
func (m *Money) GreaterThan(other *Money) (bool, error) {
	if m.currency != other.currency {
		return false, fmt.Errorf("%w: cannot compare %s and %s",
			ErrMismatchedCurrencies, m.currency.Code, other.currency.Code)
	}
	return m.amount > other.amount, nil
}

// IsPositive returns true if the Money is not nil and its amount is greater than zero.
func (m *Money) IsPositive() bool {
	return m != nil && m.amount > 0
}

// String formats the amount with the currency's precision, e.g. "411.60 USD".
func (m *Money) String() string {
	return m.Decimal().StringFixed(int32(m.currency.Decimals)) + " " + string(m.currency.Code)
}

// Dollars formats the amount the way the earnings screen shows it, e.g. "$411.60".
func (m *Money) Dollars() string {
	d := m.Decimal()
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(int32(m.currency.Decimals))
	}
	return "$" + d.StringFixed(int32(m.currency.Decimals))
}
