// Package earnings is the caller side of the payout calculator. It owns the
// per-contractor balances, quotes cash-outs, submits accepted ones to the
// payout provider and announces them on the event bus.
package earnings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/servnow/servnow/pkg/config"
	"github.com/servnow/servnow/pkg/eventbus"
	"github.com/servnow/servnow/pkg/metrics"
	"github.com/servnow/servnow/pkg/money"
	"github.com/servnow/servnow/pkg/payout"
	payoutprovider "github.com/servnow/servnow/pkg/provider/payout"
	"github.com/shopspring/decimal"
)

var (
	// ErrMissingDependency is returned by New when a required dependency is nil.
	ErrMissingDependency = errors.New("earnings: missing dependency")

	// ErrPayoutFailed wraps provider errors; the balance is left as it was.
	ErrPayoutFailed = errors.New("payout failed")
)

// Service provides the earnings screen operations.
type Service struct {
	calc     *payout.Calculator
	provider payoutprovider.Provider
	eventBus eventbus.EventBus
	metrics  *metrics.CashOut
	logger   *slog.Logger
	currency money.Code
	seed     Earnings
	now      func() time.Time
	mu       sync.Mutex
	balances map[uuid.UUID]*Earnings
	jobs     []Job
}

// New creates the service. Calculator, PayoutProvider and Config are required.
func New(deps config.Deps) (*Service, error) {
	if deps.Calculator == nil || deps.PayoutProvider == nil || deps.Config == nil ||
		deps.Config.Payout == nil || deps.Config.Earnings == nil {
		return nil, ErrMissingDependency
	}
	code := money.Code(deps.Config.Payout.Currency)
	if !code.IsValid() {
		return nil, fmt.Errorf("%w: %q", money.ErrInvalidCurrency, code)
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	seed := deps.Config.Earnings
	return &Service{
		calc:     deps.Calculator,
		provider: deps.PayoutProvider,
		eventBus: deps.EventBus,
		metrics:  deps.Metrics,
		logger:   logger.With("service", "earnings"),
		currency: code,
		seed: Earnings{
			Available: payout.Round2(seed.Available),
			Pending:   payout.Round2(seed.Pending),
			Lifetime:  payout.Round2(seed.Lifetime),
		},
		now:      time.Now,
		balances: make(map[uuid.UUID]*Earnings),
		jobs:     sampleJobs(),
	}, nil
}

// Currency is the code all amounts are quoted in.
func (s *Service) Currency() money.Code { return s.currency }

// Summary returns the contractor's balances.
func (s *Service) Summary(ctx context.Context, contractorID uuid.UUID) (Earnings, error) {
	if err := ctx.Err(); err != nil {
		return Earnings{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.account(contractorID), nil
}

// RecentJobs lists the latest completed jobs, newest first.
func (s *Service) RecentJobs(ctx context.Context) ([]Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]Job(nil), s.jobs...), nil
}

// Methods returns the cash-out method cards.
func (s *Service) Methods() []MethodOption {
	opts := make([]MethodOption, 0, 2)
	for _, m := range []payout.Method{payout.MethodStandard, payout.MethodInstant} {
		opts = append(opts, MethodOption{
			Method:     m,
			Title:      m.Title(),
			Settlement: m.Settlement(),
			Price:      s.calc.Price(m),
		})
	}
	return opts
}

// Quote recomputes fee, payout and eligibility for the raw amount text
// against the contractor's available balance.
func (s *Service) Quote(
	ctx context.Context,
	contractorID uuid.UUID,
	raw string,
	method payout.Method,
) (payout.Result, error) {
	if !method.IsValid() {
		return payout.Result{}, fmt.Errorf("%w: %q", payout.ErrUnknownMethod, method)
	}
	sum, err := s.Summary(ctx, contractorID)
	if err != nil {
		return payout.Result{}, err
	}
	return s.calc.Quote(raw, sum.Available, method), nil
}

// Max returns the available balance as amount text, the way the MAX button
// fills the amount field (e.g. "420" or "411.6").
func (s *Service) Max(ctx context.Context, contractorID uuid.UUID) (string, error) {
	sum, err := s.Summary(ctx, contractorID)
	if err != nil {
		return "", err
	}
	return decimal.NewFromFloat(payout.Round2(sum.Available)).String(), nil
}

// CashOut withdraws amount from the contractor's available balance.
//
// The amount is truncated to whole cents first; that value is what gets
// decided, debited, sent to the provider and reported on the receipt.
// Declined or malformed requests return an error and change nothing.
// Accepted requests reserve the amount, submit the payout and publish
// CashOutRequested. If the provider fails the reservation is released.
func (s *Service) CashOut(
	ctx context.Context,
	contractorID uuid.UUID,
	amount float64,
	method payout.Method,
) (*Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	req := payout.Request{Amount: payout.TruncateCents(amount), Method: method}

	s.mu.Lock()
	acct := s.account(contractorID)
	decision, err := s.calc.Decide(acct.Available, req)
	if err == nil && !decision.OK {
		err = decision.Err()
	}
	if err != nil {
		s.mu.Unlock()
		s.logger.Info("Cash out declined",
			"contractor_id", contractorID,
			"amount", amount,
			"method", method,
			"reason", decision.Reason,
		)
		s.metrics.Rejected(method.String(), string(decision.Reason))
		return nil, err
	}
	before := acct.Available
	acct.Available = decision.NewBalance
	s.mu.Unlock()

	params, err := s.payoutParams(contractorID, decision)
	if err != nil {
		s.release(contractorID, before, decision.NewBalance)
		return nil, err
	}

	logger := s.logger.With(
		"contractor_id", contractorID,
		"transaction_id", params.TransactionID,
		"method", method,
	)
	logger.Info("Submitting payout", "amount", decision.Amount, "fee", decision.Fee, "payout", decision.Payout)

	resp, err := s.provider.InitiatePayout(ctx, params)
	if err == nil && resp.Status == payoutprovider.StatusFailed {
		err = fmt.Errorf("%w: payout %s reported %s", payoutprovider.ErrPayoutRejected, resp.PayoutID, resp.Status)
	}
	if err != nil {
		s.release(contractorID, before, decision.NewBalance)
		s.metrics.Failed(method.String())
		logger.Error("Payout failed, balance restored", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrPayoutFailed, err)
	}
	s.checkNet(logger, params, resp)

	receipt := &Receipt{
		TransactionID:    params.TransactionID,
		PayoutID:         resp.PayoutID,
		ContractorID:     contractorID,
		Method:           method,
		Amount:           decision.Amount,
		Fee:              decision.Fee,
		Payout:           decision.Payout,
		NewBalance:       decision.NewBalance,
		Currency:         s.currency,
		Status:           resp.Status,
		EstimatedArrival: resp.EstimatedArrivalDate,
	}
	s.metrics.Accepted(method.String(), receipt.Fee, receipt.Payout)
	s.publish(ctx, logger, receipt)
	logger.Info("Cash out requested", "payout_id", resp.PayoutID, "status", resp.Status)
	return receipt, nil
}

// checkNet warns when the provider reports a different net amount than was
// requested. A zero NetAmount means the provider did not echo it.
func (s *Service) checkNet(
	logger *slog.Logger,
	params *payoutprovider.InitiatePayoutParams,
	resp *payoutprovider.InitiatePayoutResponse,
) {
	if resp.NetAmount == 0 {
		return
	}
	sent, err := money.NewFromSmallestUnit(params.NetAmount, s.currency)
	if err != nil {
		return
	}
	got, err := money.NewFromSmallestUnit(resp.NetAmount, money.Code(resp.Currency))
	if err != nil || !sent.Equals(got) {
		logger.Warn("Provider reported a different net amount",
			"requested", sent.String(), "reported", resp.NetAmount, "currency", resp.Currency)
	}
}

func (s *Service) payoutParams(
	contractorID uuid.UUID,
	d payout.Decision,
) (*payoutprovider.InitiatePayoutParams, error) {
	amount, err := money.New(d.Amount, s.currency)
	if err != nil {
		return nil, err
	}
	fee, err := money.New(d.Fee, s.currency)
	if err != nil {
		return nil, err
	}
	net, err := money.New(d.Payout, s.currency)
	if err != nil {
		return nil, err
	}
	if over, err := net.GreaterThan(amount); err != nil || over || !net.IsPositive() {
		return nil, fmt.Errorf("%w: payout %s of amount %s", payout.ErrIneligible, net, amount)
	}
	speed := payoutprovider.SpeedStandard
	if d.Method == payout.MethodInstant {
		speed = payoutprovider.SpeedInstant
	}
	return &payoutprovider.InitiatePayoutParams{
		ContractorID:  contractorID,
		TransactionID: uuid.New(),
		Amount:        amount.Amount(),
		FeeAmount:     fee.Amount(),
		NetAmount:     net.Amount(),
		Currency:      amount.Currency().String(),
		Speed:         speed,
		Description:   d.Method.Title() + " cash out",
		Metadata: map[string]string{
			"method": d.Method.String(),
		},
	}, nil
}

func (s *Service) publish(ctx context.Context, logger *slog.Logger, r *Receipt) {
	if s.eventBus == nil {
		return
	}
	evt := CashOutRequested{
		ID:            uuid.New(),
		TransactionID: r.TransactionID,
		ContractorID:  r.ContractorID,
		PayoutID:      r.PayoutID,
		Method:        r.Method,
		Amount:        r.Amount,
		Fee:           r.Fee,
		Payout:        r.Payout,
		NewBalance:    r.NewBalance,
		Currency:      r.Currency,
		Status:        r.Status,
		Timestamp:     s.now().UTC(),
	}
	// The payout is already submitted; a bus failure must not undo it.
	if err := s.eventBus.Publish(ctx, evt); err != nil {
		logger.Warn("Failed to publish CashOutRequested", "error", err)
	}
}

// release gives back what a reservation took from the available balance.
func (s *Service) release(contractorID uuid.UUID, before, after float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct := s.account(contractorID)
	restored, err := s.restore(acct.Available, before, after)
	if err != nil {
		s.logger.Error("Failed to release reservation", "contractor_id", contractorID, "error", err)
		return
	}
	acct.Available = restored
}

func (s *Service) restore(available, before, after float64) (float64, error) {
	current, err := money.New(available, s.currency)
	if err != nil {
		return 0, err
	}
	was, err := money.New(before, s.currency)
	if err != nil {
		return 0, err
	}
	now, err := money.New(after, s.currency)
	if err != nil {
		return 0, err
	}
	reserved, err := was.Subtract(now)
	if err != nil {
		return 0, err
	}
	restored, err := current.Add(reserved)
	if err != nil {
		return 0, err
	}
	return restored.AmountFloat(), nil
}

// account returns the balances for id, seeding unknown contractors.
// Callers must hold s.mu.
func (s *Service) account(id uuid.UUID) *Earnings {
	acct, ok := s.balances[id]
	if !ok {
		seeded := s.seed
		acct = &seeded
		s.balances[id] = acct
	}
	return acct
}

func sampleJobs() []Job {
	day := func(m time.Month, d int) time.Time { return time.Date(2025, m, d, 0, 0, 0, 0, time.UTC) }
	return []Job{
		{ID: "1", Title: "Kitchen Faucet Install", Date: day(time.August, 2), Amount: 180, Status: JobPaid},
		{ID: "2", Title: "Ceiling Fan Replace", Date: day(time.August, 1), Amount: 125, Status: JobPaid},
		{ID: "3", Title: "IKEA Assembly", Date: day(time.July, 31), Amount: 90, Status: JobPaid},
		{ID: "4", Title: "Drywall Patch", Date: day(time.July, 29), Amount: 150, Status: JobPending},
	}
}
