// Package contractor holds the contractor home dashboard model and the
// contract of the service that feeds it.
package contractor

import "context"

// JobStatus is the booking state of one of today's jobs.
type JobStatus string

const (
	JobConfirmed JobStatus = "confirmed"
	JobPending   JobStatus = "pending"
)

// Weekly summarises the contractor's current week.
type Weekly struct {
	Jobs         int     `json:"jobs"`
	Earnings     float64 `json:"earnings"`
	Rating       float64 `json:"rating"`
	ResponseMins int     `json:"response_mins"`
	Name         string  `json:"name"`
	City         string  `json:"city"`
	IsOnline     bool    `json:"is_online"`
}

// Job is a booking scheduled for today.
type Job struct {
	ID            string    `json:"id"`
	Customer      string    `json:"customer"`
	Category      string    `json:"category"`
	Price         float64   `json:"price"`
	Status        JobStatus `json:"status"`
	Start         string    `json:"start"`
	End           string    `json:"end"`
	Area          string    `json:"area"`
	DistanceMiles float64   `json:"distance_miles"`
	Lat           *float64  `json:"lat,omitempty"`
	Lng           *float64  `json:"lng,omitempty"`
}

// JobMarker is an open job near the contractor.
type JobMarker struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Payout        float64 `json:"payout"`
	DistanceMiles float64 `json:"distance_miles"`
	Lat           float64 `json:"lat"`
	Lng           float64 `json:"lng"`
}

// Home is everything the contractor home screen shows.
type Home struct {
	Weekly Weekly      `json:"weekly"`
	Today  []Job       `json:"todays"`
	Nearby []JobMarker `json:"nearby"`
}

// StatusResult acknowledges an online status change.
type StatusResult struct {
	OK     bool `json:"ok"`
	Online bool `json:"online"`
}

// Service provides the contractor home data.
type Service interface {
	FetchHome(ctx context.Context) (*Home, error)
	SetOnlineStatus(ctx context.Context, online bool) (StatusResult, error)
}
