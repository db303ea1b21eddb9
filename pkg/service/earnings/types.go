package earnings

import (
	"time"

	"github.com/google/uuid"
	"github.com/servnow/servnow/pkg/money"
	"github.com/servnow/servnow/pkg/payout"
	payoutprovider "github.com/servnow/servnow/pkg/provider/payout"
)

// Earnings are the three balances shown at the top of the earnings screen.
type Earnings struct {
	Available float64 `json:"available"`
	Pending   float64 `json:"pending"`
	Lifetime  float64 `json:"lifetime"`
}

// JobStatus is the settlement state of a completed job.
type JobStatus string

const (
	JobPaid    JobStatus = "Paid"
	JobPending JobStatus = "Pending"
)

// Job is a completed job listed under recent earnings.
type Job struct {
	ID     string    `json:"id"`
	Title  string    `json:"title"`
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
	Status JobStatus `json:"status"`
}

// MethodOption describes one cash-out method card.
type MethodOption struct {
	Method     payout.Method `json:"method"`
	Title      string        `json:"title"`
	Settlement string        `json:"settlement"`
	Price      string        `json:"price"`
}

// Receipt is returned for an accepted cash-out.
type Receipt struct {
	TransactionID    uuid.UUID             `json:"transaction_id"`
	PayoutID         string                `json:"payout_id"`
	ContractorID     uuid.UUID             `json:"contractor_id"`
	Method           payout.Method         `json:"method"`
	Amount           float64               `json:"amount"`
	Fee              float64               `json:"fee"`
	Payout           float64               `json:"payout"`
	NewBalance       float64               `json:"new_balance"`
	Currency         money.Code            `json:"currency"`
	Status           payoutprovider.Status `json:"status"`
	EstimatedArrival time.Time             `json:"estimated_arrival"`
}

// Message is the confirmation shown once the cash-out is requested.
func (r *Receipt) Message() string {
	when := " instantly."
	if r.Method == payout.MethodStandard {
		when = " in " + payout.MethodStandard.Settlement() + "."
	}
	return "You'll receive " + dollars(r.Payout, r.Currency) + when
}

// CashOutRequestedEventType routes CashOutRequested on the event bus.
const CashOutRequestedEventType = "CashOutRequested"

// CashOutRequested is published after the payout provider accepted a cash-out.
type CashOutRequested struct {
	ID            uuid.UUID
	TransactionID uuid.UUID
	ContractorID  uuid.UUID
	PayoutID      string
	Method        payout.Method
	Amount        float64
	Fee           float64
	Payout        float64
	NewBalance    float64
	Currency      money.Code
	Status        payoutprovider.Status
	Timestamp     time.Time
}

func (e CashOutRequested) Type() string { return CashOutRequestedEventType }

func dollars(amount float64, code money.Code) string {
	m, err := money.New(amount, code)
	if err != nil {
		return "$0.00"
	}
	return m.Dollars()
}
