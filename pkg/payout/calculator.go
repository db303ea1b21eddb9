// Package payout computes cash-out fees, net payouts and eligibility for
// contractor earnings.
//
// Every function here is pure: the same inputs always give the same result,
// and nothing is mutated. Callers own the balance and apply the Decision
// returned by RequestCashOut themselves.
//
// All monetary steps round to whole cents, half away from zero, using
// decimal arithmetic so repeated recalculation never drifts.
package payout

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Policy holds the tunable cash-out rules.
type Policy struct {
	// InstantFeeRate is the share of the amount charged for instant payouts.
	InstantFeeRate float64
	// Minimum is the smallest amount that may be cashed out.
	Minimum float64
}

// DefaultPolicy charges 2% for instant payouts and requires at least $10.
var DefaultPolicy = Policy{InstantFeeRate: 0.02, Minimum: 10}

// Validate checks that the policy can uphold fee <= amount.
func (p Policy) Validate() error {
	if !finite(p.InstantFeeRate) || p.InstantFeeRate < 0 || p.InstantFeeRate >= 1 {
		return fmt.Errorf("instant fee rate must be in [0, 1), got %v", p.InstantFeeRate)
	}
	if !finite(p.Minimum) || p.Minimum < 0 {
		return fmt.Errorf("minimum cash out must be >= 0, got %v", p.Minimum)
	}
	return nil
}

// Calculator applies a Policy. The zero value is not usable; build one
// with NewCalculator.
type Calculator struct {
	policy  Policy
	rate    decimal.Decimal
	minimum decimal.Decimal
}

// NewCalculator returns a Calculator for p.
func NewCalculator(p Policy) (*Calculator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Calculator{
		policy:  p,
		rate:    decimal.NewFromFloat(p.InstantFeeRate),
		minimum: decimal.NewFromFloat(p.Minimum),
	}, nil
}

var defaultCalculator, _ = NewCalculator(DefaultPolicy)

// Default returns the calculator used by the package-level functions.
func Default() *Calculator { return defaultCalculator }

// Policy returns the rules c was built with.
func (c *Calculator) Policy() Policy { return c.policy }

// Price is the fee label on the method card, e.g. "Free" or "2% fee".
func (c *Calculator) Price(m Method) string {
	if m != MethodInstant || c.rate.IsZero() {
		return "Free"
	}
	return c.rate.Shift(2).String() + "% fee"
}

// Result is the recomputed summary shown next to the cash-out form.
type Result struct {
	Amount   float64 `json:"amount"`
	Fee      float64 `json:"fee"`
	Payout   float64 `json:"payout"`
	Eligible bool    `json:"eligible"`
}

// ClampAmount turns free-form amount text into a value in [0, available].
// Unparseable text yields 0. The parsed value is clamped as is; sub-cent
// digits survive and are settled by ComputeFee and ComputePayout. A negative
// or non-finite available balance counts as zero.
func (c *Calculator) ClampAmount(raw string, available float64) float64 {
	if !finite(available) || available < 0 {
		available = 0
	}
	n, _ := ParseAmount(Sanitize(raw))
	if math.IsInf(n, 1) {
		return available
	}
	return math.Min(math.Max(n, 0), available)
}

// ComputeFee returns the fee for cashing out amount with method. Standard
// payouts are free; instant payouts cost round2(amount * rate). The fee is
// never negative.
func (c *Calculator) ComputeFee(amount float64, method Method) float64 {
	if method != MethodInstant || !finite(amount) || amount <= 0 {
		return 0
	}
	return dec(amount).Mul(c.rate).Round(2).InexactFloat64()
}

// ComputePayout returns round2(amount - fee), never more than amount.
// Negative fees are ignored.
func (c *Calculator) ComputePayout(amount, fee float64) float64 {
	a := dec(amount)
	f := dec(fee)
	if f.IsNegative() {
		f = decimal.Zero
	}
	net := a.Sub(f)
	p := net.Round(2)
	if p.GreaterThan(a) {
		// amount carries sub-cent digits; rounding up would pay out more than requested
		p = net.RoundFloor(2)
	}
	return p.InexactFloat64()
}

// IsEligible reports whether amount meets the minimum and leaves a positive payout.
func (c *Calculator) IsEligible(amount, payout float64) bool {
	return finite(amount) && dec(amount).GreaterThanOrEqual(c.minimum) && payout > 0
}

// Calculate derives fee, payout and eligibility for an already clamped amount.
func (c *Calculator) Calculate(amount float64, method Method) Result {
	fee := c.ComputeFee(amount, method)
	payout := c.ComputePayout(amount, fee)
	return Result{
		Amount:   amount,
		Fee:      fee,
		Payout:   payout,
		Eligible: c.IsEligible(amount, payout),
	}
}

// Quote clamps raw against available and calculates the result. It is the
// single recomputation run on every amount edit or method toggle.
func (c *Calculator) Quote(raw string, available float64, method Method) Result {
	return c.Calculate(c.ClampAmount(raw, available), method)
}

// Decision is the outcome of RequestCashOut.
type Decision struct {
	OK         bool    `json:"ok"`
	Amount     float64 `json:"amount"`
	Method     Method  `json:"method"`
	NewBalance float64 `json:"new_balance"`
	Fee        float64 `json:"fee"`
	Payout     float64 `json:"payout"`
	Reason     Reason  `json:"reason,omitempty"`
}

// Err returns nil for an accepted decision and a wrapped sentinel error
// (ErrIneligible, ErrInsufficientBalance or ErrUnknownMethod) otherwise.
func (d Decision) Err() error {
	if d.OK {
		return nil
	}
	err := d.Reason.err()
	if err == nil {
		err = ErrIneligible
	}
	return fmt.Errorf("%w: %s cash out of %.2f", err, d.Method, d.Amount)
}

// RequestCashOut decides whether amount may be withdrawn from balance with
// method. On success the whole amount is deducted from the balance; the fee
// comes out of the amount, not on top of it.
func (c *Calculator) RequestCashOut(balance, amount float64, method Method) Decision {
	d := Decision{Amount: amount, Method: method}
	if !method.IsValid() {
		d.Reason = ReasonUnknownMethod
		return d
	}
	r := c.Calculate(amount, method)
	if !r.Eligible {
		d.Reason = ReasonIneligible
		return d
	}
	if !finite(balance) || dec(amount).GreaterThan(dec(balance)) {
		d.Reason = ReasonInsufficientBalance
		return d
	}
	d.OK = true
	d.Fee = r.Fee
	d.Payout = r.Payout
	d.NewBalance = dec(balance).Sub(dec(amount)).Round(2).InexactFloat64()
	return d
}

// ClampAmount uses the default policy. See Calculator.ClampAmount.
func ClampAmount(raw string, available float64) float64 {
	return defaultCalculator.ClampAmount(raw, available)
}

// ComputeFee uses the default policy. See Calculator.ComputeFee.
func ComputeFee(amount float64, method Method) float64 {
	return defaultCalculator.ComputeFee(amount, method)
}

// ComputePayout uses the default policy. See Calculator.ComputePayout.
func ComputePayout(amount, fee float64) float64 {
	return defaultCalculator.ComputePayout(amount, fee)
}

// IsEligible uses the default policy. See Calculator.IsEligible.
func IsEligible(amount, payout float64) bool {
	return defaultCalculator.IsEligible(amount, payout)
}

// Calculate uses the default policy. See Calculator.Calculate.
func Calculate(amount float64, method Method) Result {
	return defaultCalculator.Calculate(amount, method)
}

// Quote uses the default policy. See Calculator.Quote.
func Quote(raw string, available float64, method Method) Result {
	return defaultCalculator.Quote(raw, available, method)
}

// RequestCashOut uses the default policy. See Calculator.RequestCashOut.
func RequestCashOut(balance, amount float64, method Method) Decision {
	return defaultCalculator.RequestCashOut(balance, amount, method)
}
