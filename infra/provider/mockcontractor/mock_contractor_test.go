package mockcontractor

import (
	"context"
	"testing"
	"time"

	"github.com/servnow/servnow/pkg/contractor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ contractor.Service = (*MockContractorService)(nil)

func TestFetchHome(t *testing.T) {
	t.Parallel()
	s := New(0, 0)

	home, err := s.FetchHome(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Mike", home.Weekly.Name)
	assert.True(t, home.Weekly.IsOnline)
	require.Len(t, home.Today, 2)
	assert.Equal(t, contractor.JobConfirmed, home.Today[0].Status)
	require.NotNil(t, home.Today[1].Lat)
	assert.InDelta(t, 47.6231, *home.Today[1].Lat, 1e-9)
	require.Len(t, home.Nearby, 2)
	assert.Equal(t, "Interior Painting", home.Nearby[0].Title)
}

func TestSetOnlineStatus(t *testing.T) {
	t.Parallel()
	s := New(0, 0)
	ctx := context.Background()

	res, err := s.SetOnlineStatus(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, contractor.StatusResult{OK: true, Online: false}, res)

	home, err := s.FetchHome(ctx)
	require.NoError(t, err)
	assert.False(t, home.Weekly.IsOnline)
}

func TestDelaysHonourContext(t *testing.T) {
	t.Parallel()
	s := New(time.Minute, time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := s.FetchHome(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	_, err = s.SetOnlineStatus(ctx, false)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFetchHomeReturnsFreshCopies(t *testing.T) {
	t.Parallel()
	s := New(0, 0)
	first, err := s.FetchHome(context.Background())
	require.NoError(t, err)
	first.Today[0].Customer = "changed"

	second, err := s.FetchHome(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Sarah Johnson", second.Today[0].Customer)
}
