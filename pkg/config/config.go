package config

import "time"

// Log configures the process logger. Level uses charmbracelet/log values:
// -4 debug, 0 info, 4 warn, 8 error.
type Log struct {
	Level      int    `envconfig:"LEVEL" default:"4"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[servnow]"`
}

// Payout holds the cash-out rules.
type Payout struct {
	InstantFeeRate float64 `envconfig:"INSTANT_FEE_RATE" default:"0.02"`
	Minimum        float64 `envconfig:"MINIMUM" default:"10"`
	Currency       string  `envconfig:"CURRENCY" default:"USD"`
}

// Provider configures the stubbed external collaborators.
type Provider struct {
	PayoutDelay time.Duration `envconfig:"PAYOUT_DELAY" default:"250ms"`
	HomeDelay   time.Duration `envconfig:"HOME_DELAY" default:"250ms"`
	StatusDelay time.Duration `envconfig:"STATUS_DELAY" default:"200ms"`
}

// Earnings seeds the balances of contractors the service has not seen yet.
type Earnings struct {
	Available float64 `envconfig:"AVAILABLE" default:"420"`
	Pending   float64 `envconfig:"PENDING" default:"150"`
	Lifetime  float64 `envconfig:"LIFETIME" default:"12345.67"`
}

type App struct {
	Env      string    `envconfig:"APP_ENV" default:"development"`
	Log      *Log      `envconfig:"LOG"`
	Payout   *Payout   `envconfig:"PAYOUT"`
	Provider *Provider `envconfig:"PROVIDER"`
	Earnings *Earnings `envconfig:"EARNINGS"`
}
