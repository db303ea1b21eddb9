// Package app wires the services together and registers the event bus
// handlers.
package app

import (
	"context"
	"log/slog"

	"github.com/servnow/servnow/pkg/eventbus"
	"github.com/servnow/servnow/pkg/service/earnings"
)

// setupEventBus registers all event handlers with the configured bus.
func (a *App) setupEventBus() {
	bus := a.Deps.EventBus
	if bus == nil {
		return
	}
	logger := a.Deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	bus.Subscribe(earnings.CashOutRequestedEventType, HandleCashOutRequested(logger))
}

// HandleCashOutRequested writes the audit line for an accepted cash-out.
func HandleCashOutRequested(logger *slog.Logger) func(context.Context, eventbus.Event) {
	return func(ctx context.Context, e eventbus.Event) {
		evt, ok := e.(earnings.CashOutRequested)
		if !ok {
			logger.ErrorContext(ctx, "Unexpected event type", "type", e.Type())
			return
		}
		logger.InfoContext(ctx, "Cash out audit",
			"event_id", evt.ID,
			"transaction_id", evt.TransactionID,
			"contractor_id", evt.ContractorID,
			"payout_id", evt.PayoutID,
			"method", evt.Method,
			"amount", evt.Amount,
			"fee", evt.Fee,
			"payout", evt.Payout,
			"new_balance", evt.NewBalance,
			"currency", evt.Currency,
			"status", evt.Status,
		)
	}
}
