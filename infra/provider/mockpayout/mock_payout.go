package mockpayout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/servnow/servnow/pkg/provider/payout"
)

// standardBusinessDays is the slowest standard settlement we quote.
const standardBusinessDays = 3

// MockPayoutProvider simulates the settlement API for local development
// and tests.
//
// Every payout succeeds after a fixed artificial delay: instant payouts come
// back completed, standard payouts come back pending with an arrival three
// business days out. This is NOT for production use.
type MockPayoutProvider struct {
	delay time.Duration
	now   func() time.Time
}

// Option customises a MockPayoutProvider.
type Option func(*MockPayoutProvider)

// WithClock overrides time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(m *MockPayoutProvider) { m.now = now }
}

// NewMockPayoutProvider creates a provider that answers after delay.
func NewMockPayoutProvider(delay time.Duration, opts ...Option) *MockPayoutProvider {
	m := &MockPayoutProvider{
		delay: delay,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// InitiatePayout waits for the configured delay and returns a canned success.
func (m *MockPayoutProvider) InitiatePayout(
	ctx context.Context,
	params *payout.InitiatePayoutParams,
) (*payout.InitiatePayoutResponse, error) {
	if params == nil {
		return nil, fmt.Errorf("%w: missing params", payout.ErrPayoutRejected)
	}
	if params.NetAmount <= 0 || params.Amount < params.NetAmount {
		return nil, fmt.Errorf("%w: net %d of amount %d",
			payout.ErrPayoutRejected, params.NetAmount, params.Amount)
	}

	if m.delay > 0 {
		timer := time.NewTimer(m.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := m.now()
	resp := payout.InitiatePayoutResponse{
		PayoutID:             "po_" + uuid.NewString(),
		Status:               payout.StatusPending,
		NetAmount:            params.NetAmount,
		Currency:             params.Currency,
		EstimatedArrivalDate: addBusinessDays(now, standardBusinessDays),
	}
	if params.Speed == payout.SpeedInstant {
		resp.Status = payout.StatusCompleted
		resp.EstimatedArrivalDate = now
	}
	return &resp, nil
}

func addBusinessDays(t time.Time, days int) time.Time {
	for days > 0 {
		t = t.AddDate(0, 0, 1)
		if wd := t.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days--
		}
	}
	return t
}
