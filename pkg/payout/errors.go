package payout

import "errors"

var (
	// ErrIneligible is returned for amounts below the minimum or with a non-positive payout.
	ErrIneligible = errors.New("cash out ineligible")

	// ErrInsufficientBalance is returned when the amount exceeds the available balance.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrUnknownMethod is returned for payout methods other than standard and instant.
	ErrUnknownMethod = errors.New("unknown payout method")

	// ErrInvalidRequest is returned for malformed requests, e.g. a negative or NaN amount.
	ErrInvalidRequest = errors.New("invalid cash out request")
)

// Reason is the machine readable code of a declined cash-out.
type Reason string

const (
	ReasonNone                Reason = ""
	ReasonIneligible          Reason = "ineligible"
	ReasonInsufficientBalance Reason = "insufficient_balance"
	ReasonUnknownMethod       Reason = "unknown_method"
	ReasonInvalidRequest      Reason = "invalid_request"
)

func (r Reason) err() error {
	switch r {
	case ReasonIneligible:
		return ErrIneligible
	case ReasonInsufficientBalance:
		return ErrInsufficientBalance
	case ReasonUnknownMethod:
		return ErrUnknownMethod
	case ReasonInvalidRequest:
		return ErrInvalidRequest
	}
	return nil
}
