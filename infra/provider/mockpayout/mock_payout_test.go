package mockpayout

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/servnow/servnow/pkg/provider/payout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Friday, 1 August 2025.
var friday = time.Date(2025, time.August, 1, 10, 0, 0, 0, time.UTC)

func params(speed payout.Speed) *payout.InitiatePayoutParams {
	return &payout.InitiatePayoutParams{
		ContractorID:  uuid.New(),
		TransactionID: uuid.New(),
		Amount:        42000,
		FeeAmount:     840,
		NetAmount:     41160,
		Currency:      "USD",
		Speed:         speed,
	}
}

func TestInitiatePayout_Instant(t *testing.T) {
	t.Parallel()
	m := NewMockPayoutProvider(0, WithClock(func() time.Time { return friday }))

	resp, err := m.InitiatePayout(context.Background(), params(payout.SpeedInstant))
	require.NoError(t, err)
	assert.Equal(t, payout.StatusCompleted, resp.Status)
	assert.Equal(t, int64(41160), resp.NetAmount)
	assert.Equal(t, friday, resp.EstimatedArrivalDate)
	assert.True(t, strings.HasPrefix(resp.PayoutID, "po_"))
}

func TestInitiatePayout_StandardSkipsWeekend(t *testing.T) {
	t.Parallel()
	m := NewMockPayoutProvider(0, WithClock(func() time.Time { return friday }))

	resp, err := m.InitiatePayout(context.Background(), params(payout.SpeedStandard))
	require.NoError(t, err)
	assert.Equal(t, payout.StatusPending, resp.Status)
	assert.Equal(t, time.Wednesday, resp.EstimatedArrivalDate.Weekday())
	assert.Equal(t, 6, resp.EstimatedArrivalDate.Day())
}

func TestInitiatePayout_Delay(t *testing.T) {
	t.Parallel()
	m := NewMockPayoutProvider(20 * time.Millisecond)

	start := time.Now()
	_, err := m.InitiatePayout(context.Background(), params(payout.SpeedInstant))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestInitiatePayout_ContextCancelled(t *testing.T) {
	t.Parallel()
	m := NewMockPayoutProvider(time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := m.InitiatePayout(ctx, params(payout.SpeedStandard))
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	cancelled, cancelNow := context.WithCancel(context.Background())
	cancelNow()
	_, err = NewMockPayoutProvider(0).InitiatePayout(cancelled, params(payout.SpeedStandard))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInitiatePayout_Rejects(t *testing.T) {
	t.Parallel()
	m := NewMockPayoutProvider(0)

	_, err := m.InitiatePayout(context.Background(), nil)
	assert.ErrorIs(t, err, payout.ErrPayoutRejected)

	p := params(payout.SpeedInstant)
	p.NetAmount = 0
	_, err = m.InitiatePayout(context.Background(), p)
	assert.ErrorIs(t, err, payout.ErrPayoutRejected)
}
