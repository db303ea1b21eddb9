// Package payout defines the contract of the external payout-submission
// collaborator that settles confirmed cash-outs.
package payout

import "context"

// Provider submits payouts to a settlement rail.
type Provider interface {
	// InitiatePayout submits a confirmed cash-out. It must honour ctx
	// cancellation and must not be retried by the caller on error.
	InitiatePayout(
		ctx context.Context,
		params *InitiatePayoutParams,
	) (*InitiatePayoutResponse, error)
}
