// Package metrics exposes cash-out counters for Prometheus.
package metrics

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const namespace = "servnow"

// Cash-out results used as the "result" label.
const (
	ResultAccepted = "accepted"
	ResultDeclined = "declined"
	ResultFailed   = "failed"
)

// CashOut counts cash-out attempts and the money they move. A nil *CashOut
// records nothing.
type CashOut struct {
	Requests *prometheus.CounterVec
	Declined *prometheus.CounterVec
	PaidOut  *prometheus.CounterVec
	Fees     prometheus.Counter
}

// NewCashOut creates the counters and registers them with reg.
func NewCashOut(reg prometheus.Registerer) *CashOut {
	m := &CashOut{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cashout_requests_total",
				Help:      "Cash-out requests by method and result",
			},
			[]string{"method", "result"}, // accepted|declined|failed
		),
		Declined: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cashout_declined_total",
				Help:      "Declined cash-outs by reason",
			},
			[]string{"reason"},
		),
		PaidOut: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cashout_payout_amount_total",
				Help:      "Net amount submitted for payout, in major currency units",
			},
			[]string{"method"},
		),
		Fees: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cashout_fees_total",
				Help:      "Instant payout fees charged, in major currency units",
			},
		),
	}
	reg.MustRegister(m.Requests, m.Declined, m.PaidOut, m.Fees)
	return m
}

// Accepted records a cash-out the provider took.
func (m *CashOut) Accepted(method string, fee, payout float64) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(method, ResultAccepted).Inc()
	m.PaidOut.WithLabelValues(method).Add(payout)
	m.Fees.Add(fee)
}

// Rejected records a cash-out declined by the calculator.
func (m *CashOut) Rejected(method, reason string) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(method, ResultDeclined).Inc()
	m.Declined.WithLabelValues(reason).Inc()
}

// Failed records a cash-out the provider could not settle.
func (m *CashOut) Failed(method string) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(method, ResultFailed).Inc()
}

// WriteText writes every family gathered from g in the Prometheus text
// exposition format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
