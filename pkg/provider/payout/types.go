package payout

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrPayoutRejected is returned when the provider refuses a payout.
var ErrPayoutRejected = errors.New("payout rejected by provider")

// Status represents the settlement status of a payout.
type Status string

const (
	// StatusPending indicates the payout was accepted and is settling.
	StatusPending Status = "pending"
	// StatusCompleted indicates the funds have been delivered.
	StatusCompleted Status = "completed"
	// StatusFailed indicates the payout could not be delivered.
	StatusFailed Status = "failed"
)

// Speed mirrors the cash-out method at the provider boundary.
type Speed string

const (
	SpeedStandard Speed = "standard"
	SpeedInstant  Speed = "instant"
)

// InitiatePayoutParams holds the parameters for initiating a payout.
// Amounts are in the smallest currency unit.
type InitiatePayoutParams struct {
	ContractorID  uuid.UUID
	TransactionID uuid.UUID
	Amount        int64 // withdrawn from the balance
	FeeAmount     int64
	NetAmount     int64 // delivered to the contractor
	Currency      string
	Speed         Speed
	Description   string
	Metadata      map[string]string
}

// InitiatePayoutResponse represents the response from initiating a payout.
type InitiatePayoutResponse struct {
	PayoutID             string
	Status               Status
	NetAmount            int64
	Currency             string
	EstimatedArrivalDate time.Time
}
