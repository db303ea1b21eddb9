package mockcontractor

import (
	"context"
	"sync"
	"time"

	"github.com/servnow/servnow/pkg/contractor"
)

// MockContractorService returns canned home data after an artificial delay.
// It remembers the last online status so FetchHome reflects toggles.
type MockContractorService struct {
	homeDelay   time.Duration
	statusDelay time.Duration

	mu     sync.Mutex
	online bool
}

// New creates the stub with the given response delays.
func New(homeDelay, statusDelay time.Duration) *MockContractorService {
	return &MockContractorService{
		homeDelay:   homeDelay,
		statusDelay: statusDelay,
		online:      true,
	}
}

// FetchHome returns the canned weekly stats, today's jobs and nearby markers.
func (s *MockContractorService) FetchHome(ctx context.Context) (*contractor.Home, error) {
	if err := wait(ctx, s.homeDelay); err != nil {
		return nil, err
	}
	s.mu.Lock()
	online := s.online
	s.mu.Unlock()

	home := sampleHome()
	home.Weekly.IsOnline = online
	return home, nil
}

// SetOnlineStatus records the toggle and acknowledges it.
func (s *MockContractorService) SetOnlineStatus(ctx context.Context, online bool) (contractor.StatusResult, error) {
	if err := wait(ctx, s.statusDelay); err != nil {
		return contractor.StatusResult{}, err
	}
	s.mu.Lock()
	s.online = online
	s.mu.Unlock()
	return contractor.StatusResult{OK: true, Online: online}, nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func ptr(f float64) *float64 { return &f }

func sampleHome() *contractor.Home {
	return &contractor.Home{
		Weekly: contractor.Weekly{
			Jobs:         8,
			Earnings:     1240,
			Rating:       4.9,
			ResponseMins: 2,
			Name:         "Mike",
			City:         "Seattle",
		},
		Today: []contractor.Job{
			{
				ID: "1", Customer: "Sarah Johnson", Category: "House Cleaning",
				Price: 120, Status: contractor.JobConfirmed, Start: "2:00 PM", End: "4:00 PM",
				Area: "Downtown Seattle", DistanceMiles: 0.8, Lat: ptr(47.6069), Lng: ptr(-122.332),
			},
			{
				ID: "2", Customer: "Mike Chen", Category: "Landscaping",
				Price: 280, Status: contractor.JobConfirmed, Start: "4:30 PM", End: "7:00 PM",
				Area: "Capitol Hill", DistanceMiles: 1.2, Lat: ptr(47.6231), Lng: ptr(-122.318),
			},
		},
		Nearby: []contractor.JobMarker{
			{ID: "3", Title: "Interior Painting", Payout: 450, DistanceMiles: 2.1, Lat: 47.615, Lng: -122.345},
			{ID: "4", Title: "Handyman Services", Payout: 95, DistanceMiles: 1.5, Lat: 47.634, Lng: -122.357},
		},
	}
}
