package payout_test

import (
	"math"
	"strings"
	"testing"

	"github.com/servnow/servnow/pkg/payout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampAmount(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		raw       string
		available float64
		want      float64
	}{
		{"full balance", "420", 420, 420},
		{"currency symbol", "$125.50", 420, 125.5},
		{"thousands separator", "$1,250.50", 2000, 1250.5},
		{"letters only", "abc", 420, 0},
		{"empty", "", 420, 0},
		{"symbols only", "$-", 420, 0},
		{"negative looking text", "-50", 420, 50},
		{"above balance", "9999999", 420, 420},
		{"multiple points", "1.2.3", 420, 1.2},
		{"sub-cent digits are kept", "10.005", 420, 10.005},
		{"sub-cent digits below minimum", "9.995", 420, 9.995},
		{"sub-cent value above balance", "420.009", 420, 420},
		{"overflow clamps to balance", "1" + strings.Repeat("0", 400), 420, 420},
		{"negative balance counts as zero", "100", -5, 0},
		{"NaN balance counts as zero", "100", math.NaN(), 0},
		{"zero balance", "100", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, payout.ClampAmount(tt.raw, tt.available))
		})
	}
}

func TestComputeFee(t *testing.T) {
	t.Parallel()

	t.Run("standard is free", func(t *testing.T) {
		for _, amount := range []float64{0, 0.01, 10, 420, 1e9} {
			assert.Zero(t, payout.ComputeFee(amount, payout.MethodStandard))
		}
	})

	t.Run("instant charges two percent", func(t *testing.T) {
		tests := []struct {
			amount float64
			want   float64
		}{
			{420, 8.40},
			{100, 2},
			{10, 0.2},
			{12.34, 0.25},
			{0.25, 0.01},
			{0.2, 0},
			{0, 0},
		}
		for _, tt := range tests {
			assert.Equal(t, tt.want, payout.ComputeFee(tt.amount, payout.MethodInstant), "amount %v", tt.amount)
		}
	})

	t.Run("matches round2 of the product", func(t *testing.T) {
		for _, amount := range []float64{420, 100, 12.34, 57.8, 999.99} {
			assert.Equal(t, payout.Round2(amount*0.02), payout.ComputeFee(amount, payout.MethodInstant))
		}
	})

	t.Run("never negative", func(t *testing.T) {
		assert.Zero(t, payout.ComputeFee(-100, payout.MethodInstant))
		assert.Zero(t, payout.ComputeFee(math.NaN(), payout.MethodInstant))
		assert.Zero(t, payout.ComputeFee(math.Inf(1), payout.MethodInstant))
	})

	t.Run("unknown method is free", func(t *testing.T) {
		assert.Zero(t, payout.ComputeFee(100, payout.Method("wire")))
	})
}

func TestComputePayout(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 411.6, payout.ComputePayout(420, 8.4))
	assert.Equal(t, 10.0, payout.ComputePayout(10, 0))
	assert.Equal(t, 9.8, payout.ComputePayout(10, 0.2))
	assert.Equal(t, 0.0, payout.ComputePayout(8.4, 8.4))

	t.Run("never exceeds amount", func(t *testing.T) {
		assert.Equal(t, 10.0, payout.ComputePayout(10.005, 0))
		assert.Equal(t, 10.0, payout.ComputePayout(10, -5))
	})
}

func TestIsEligible(t *testing.T) {
	t.Parallel()
	assert.True(t, payout.IsEligible(10, 10))
	assert.True(t, payout.IsEligible(10, 9.8))
	assert.False(t, payout.IsEligible(9.99, 9.99))
	assert.False(t, payout.IsEligible(10, 0))
	assert.False(t, payout.IsEligible(5, 5))
	assert.False(t, payout.IsEligible(math.NaN(), 10))
}

func TestCalculate(t *testing.T) {
	t.Parallel()

	t.Run("minimum standard", func(t *testing.T) {
		got := payout.Calculate(10, payout.MethodStandard)
		assert.Equal(t, payout.Result{Amount: 10, Fee: 0, Payout: 10, Eligible: true}, got)
	})

	t.Run("just below minimum", func(t *testing.T) {
		for _, m := range []payout.Method{payout.MethodStandard, payout.MethodInstant} {
			assert.False(t, payout.Calculate(9.99, m).Eligible, "method %s", m)
		}
	})

	t.Run("full balance instant", func(t *testing.T) {
		got := payout.Calculate(420, payout.MethodInstant)
		assert.Equal(t, payout.Result{Amount: 420, Fee: 8.4, Payout: 411.6, Eligible: true}, got)
	})

	t.Run("idempotent", func(t *testing.T) {
		first := payout.Calculate(123.45, payout.MethodInstant)
		second := payout.Calculate(123.45, payout.MethodInstant)
		assert.Equal(t, first, second)
	})
}

func TestQuote(t *testing.T) {
	t.Parallel()

	t.Run("unparseable input", func(t *testing.T) {
		got := payout.Quote("abc", 420, payout.MethodStandard)
		assert.Zero(t, got.Amount)
		assert.False(t, got.Eligible)
	})

	t.Run("small balance standard", func(t *testing.T) {
		got := payout.Quote("5.00", 5, payout.MethodStandard)
		assert.Equal(t, 5.0, got.Amount)
		assert.Zero(t, got.Fee)
		assert.False(t, got.Eligible)
	})

	t.Run("sub-cent amount under minimum stays ineligible", func(t *testing.T) {
		got := payout.Quote("9.995", 420, payout.MethodStandard)
		assert.Equal(t, 9.995, got.Amount)
		assert.False(t, got.Eligible)
	})

	t.Run("sub-cent amount never pays out more than requested", func(t *testing.T) {
		got := payout.Quote("10.005", 420, payout.MethodStandard)
		assert.Equal(t, 10.005, got.Amount)
		assert.Equal(t, 10.0, got.Payout)
		assert.True(t, got.Eligible)
	})

	t.Run("clamps to balance", func(t *testing.T) {
		got := payout.Quote("$500", 420, payout.MethodInstant)
		assert.Equal(t, 420.0, got.Amount)
		assert.Equal(t, 411.6, got.Payout)
	})
}

func TestRequestCashOut(t *testing.T) {
	t.Parallel()

	t.Run("full balance instant", func(t *testing.T) {
		d := payout.RequestCashOut(420, 420, payout.MethodInstant)
		require.True(t, d.OK)
		assert.NoError(t, d.Err())
		assert.Equal(t, 8.4, d.Fee)
		assert.Equal(t, 411.6, d.Payout)
		assert.Zero(t, d.NewBalance)
	})

	t.Run("deducts amount not payout", func(t *testing.T) {
		d := payout.RequestCashOut(420, 100, payout.MethodInstant)
		require.True(t, d.OK)
		assert.Equal(t, 98.0, d.Payout)
		assert.Equal(t, 320.0, d.NewBalance)
	})

	t.Run("balance arithmetic stays in cents", func(t *testing.T) {
		d := payout.RequestCashOut(420.1, 100.05, payout.MethodStandard)
		require.True(t, d.OK)
		assert.Equal(t, 320.05, d.NewBalance)
	})

	t.Run("below minimum", func(t *testing.T) {
		d := payout.RequestCashOut(5, 5, payout.MethodStandard)
		assert.False(t, d.OK)
		assert.Equal(t, payout.ReasonIneligible, d.Reason)
		assert.ErrorIs(t, d.Err(), payout.ErrIneligible)
	})

	t.Run("amount above balance", func(t *testing.T) {
		d := payout.RequestCashOut(50, 100, payout.MethodStandard)
		assert.False(t, d.OK)
		assert.Equal(t, payout.ReasonInsufficientBalance, d.Reason)
		assert.ErrorIs(t, d.Err(), payout.ErrInsufficientBalance)
	})

	t.Run("unknown method", func(t *testing.T) {
		d := payout.RequestCashOut(420, 100, payout.Method("wire"))
		assert.Equal(t, payout.ReasonUnknownMethod, d.Reason)
		assert.ErrorIs(t, d.Err(), payout.ErrUnknownMethod)
	})

	t.Run("zero decision is declined", func(t *testing.T) {
		assert.ErrorIs(t, payout.Decision{}.Err(), payout.ErrIneligible)
	})
}

func TestNewCalculator(t *testing.T) {
	t.Parallel()

	_, err := payout.NewCalculator(payout.Policy{InstantFeeRate: 1.5, Minimum: 10})
	require.Error(t, err)
	_, err = payout.NewCalculator(payout.Policy{InstantFeeRate: 0.02, Minimum: -1})
	require.Error(t, err)

	c, err := payout.NewCalculator(payout.Policy{InstantFeeRate: 0.05, Minimum: 25})
	require.NoError(t, err)
	assert.Equal(t, 5.0, c.ComputeFee(100, payout.MethodInstant))
	assert.False(t, c.Calculate(20, payout.MethodStandard).Eligible)
	assert.True(t, c.Calculate(25, payout.MethodStandard).Eligible)
	assert.Equal(t, payout.DefaultPolicy, payout.Default().Policy())
}

func TestParseMethod(t *testing.T) {
	t.Parallel()
	m, err := payout.ParseMethod(" Instant ")
	require.NoError(t, err)
	assert.Equal(t, payout.MethodInstant, m)
	assert.Equal(t, "Arrives now", m.Settlement())
	assert.Equal(t, "Standard", payout.MethodStandard.Title())

	_, err = payout.ParseMethod("wire")
	assert.ErrorIs(t, err, payout.ErrUnknownMethod)
}

func TestPrice(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Free", payout.Default().Price(payout.MethodStandard))
	assert.Equal(t, "2% fee", payout.Default().Price(payout.MethodInstant))

	c, err := payout.NewCalculator(payout.Policy{InstantFeeRate: 0.025, Minimum: 10})
	require.NoError(t, err)
	assert.Equal(t, "2.5% fee", c.Price(payout.MethodInstant))

	free, err := payout.NewCalculator(payout.Policy{Minimum: 10})
	require.NoError(t, err)
	assert.Equal(t, "Free", free.Price(payout.MethodInstant))
}

func TestDecide(t *testing.T) {
	t.Parallel()
	c := payout.Default()

	d, err := c.Decide(420, payout.Request{Amount: -1, Method: payout.MethodStandard})
	require.ErrorIs(t, err, payout.ErrInvalidRequest)
	assert.False(t, d.OK)
	assert.Equal(t, payout.ReasonInvalidRequest, d.Reason)
	assert.ErrorIs(t, d.Err(), payout.ErrInvalidRequest)

	d, err = c.Decide(420, payout.Request{Amount: 20, Method: payout.Method("wire")})
	require.ErrorIs(t, err, payout.ErrUnknownMethod)
	assert.Equal(t, payout.ReasonUnknownMethod, d.Reason)

	_, err = c.Decide(420, payout.Request{Amount: 20})
	require.ErrorIs(t, err, payout.ErrUnknownMethod)

	_, err = c.Decide(420, payout.Request{Amount: math.NaN(), Method: payout.MethodStandard})
	require.ErrorIs(t, err, payout.ErrInvalidRequest)

	d, err = c.Decide(420, payout.Request{Amount: 20, Method: payout.MethodStandard})
	require.NoError(t, err)
	assert.True(t, d.OK)
	assert.Equal(t, 400.0, d.NewBalance)
}
