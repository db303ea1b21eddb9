package config

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/servnow/servnow/pkg/contractor"
	"github.com/servnow/servnow/pkg/eventbus"
	"github.com/servnow/servnow/pkg/metrics"
	"github.com/servnow/servnow/pkg/payout"
	payoutprovider "github.com/servnow/servnow/pkg/provider/payout"
)

// Deps holds all infrastructure dependencies for building the services.
type Deps struct {
	Calculator        *payout.Calculator
	PayoutProvider    payoutprovider.Provider
	ContractorService contractor.Service
	EventBus          eventbus.EventBus
	Metrics           *metrics.CashOut
	Registry          *prometheus.Registry
	Logger            *slog.Logger
	Config            *App
}
