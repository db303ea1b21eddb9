package initializer

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/servnow/servnow/infra/provider/mockcontractor"
	"github.com/servnow/servnow/infra/provider/mockpayout"
	"github.com/servnow/servnow/pkg/config"
	"github.com/servnow/servnow/pkg/eventbus"
	"github.com/servnow/servnow/pkg/metrics"
	"github.com/servnow/servnow/pkg/payout"
)

// Option customises InitializeDependencies.
type Option func(*options)

type options struct {
	logOutput io.Writer
}

// WithLogOutput sends process logs to w instead of stderr.
func WithLogOutput(w io.Writer) Option {
	return func(o *options) { o.logOutput = w }
}

// InitializeDependencies builds the logger, the payout calculator and the
// stubbed collaborators described by cfg.
func InitializeDependencies(cfg *config.App, opts ...Option) (*config.Deps, error) {
	if cfg == nil || cfg.Payout == nil || cfg.Provider == nil {
		return nil, errors.New("initializer: incomplete configuration")
	}
	o := options{logOutput: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}

	logger := setupLogger(cfg.Log, o.logOutput)

	calc, err := payout.NewCalculator(payout.Policy{
		InstantFeeRate: cfg.Payout.InstantFeeRate,
		Minimum:        cfg.Payout.Minimum,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize payout calculator: %w", err)
	}

	registry := prometheus.NewRegistry()
	deps := &config.Deps{
		Calculator:     calc,
		PayoutProvider: mockpayout.NewMockPayoutProvider(cfg.Provider.PayoutDelay),
		ContractorService: mockcontractor.New(
			cfg.Provider.HomeDelay,
			cfg.Provider.StatusDelay,
		),
		EventBus: eventbus.NewSimpleEventBus(logger),
		Metrics:  metrics.NewCashOut(registry),
		Registry: registry,
		Logger:   logger,
		Config:   cfg,
	}

	logger.Debug("Dependencies initialized",
		"env", cfg.Env,
		"instant_fee_rate", cfg.Payout.InstantFeeRate,
		"minimum", cfg.Payout.Minimum,
		"payout_delay", cfg.Provider.PayoutDelay,
	)
	return deps, nil
}
