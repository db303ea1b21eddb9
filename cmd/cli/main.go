package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/servnow/servnow/infra/initializer"
	"github.com/servnow/servnow/pkg/app"
	"github.com/servnow/servnow/pkg/config"
	"github.com/servnow/servnow/pkg/metrics"
	"github.com/servnow/servnow/pkg/money"
	"github.com/servnow/servnow/pkg/payout"
	"github.com/servnow/servnow/pkg/service/earnings"
	"golang.org/x/term"
)

const usage = `Usage: cli <command> [arguments]
Commands:
  summary                                   balances and cash-out methods
  jobs                                      recent jobs
  max                                       amount text for the MAX button
  quote <amount> [standard|instant]         fee, payout and eligibility
  cashout <amount> [standard|instant] [--yes]
  home                                      weekly stats, today's jobs, nearby jobs
  online <on|off>                           toggle availability`

// defaultContractorID identifies the demo contractor when SERVNOW_CONTRACTOR_ID is unset.
var defaultContractorID = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://servnow.app/contractors/mike"))

var (
	errUsage     = errors.New("invalid usage")
	errCancelled = errors.New("cash out cancelled")
)

var (
	titleColor = color.New(color.FgCyan, color.Bold)
	okColor    = color.New(color.FgGreen)
	warnColor  = color.New(color.FgYellow)
	errColor   = color.New(color.FgRed, color.Bold)
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprintln(stderr, usage)
		return 2
	}

	cfg, err := config.Load(".env")
	if err != nil {
		errColor.Fprintln(stderr, "Failed to load configuration:", err)
		return 1
	}
	deps, err := initializer.InitializeDependencies(cfg, initializer.WithLogOutput(stderr))
	if err != nil {
		errColor.Fprintln(stderr, "Failed to initialize dependencies:", err)
		return 1
	}
	a, err := app.New(deps)
	if err != nil {
		errColor.Fprintln(stderr, "Failed to start:", err)
		return 1
	}

	contractorID, err := contractorFromEnv()
	if err != nil {
		errColor.Fprintln(stderr, err)
		return 1
	}
	ctx, cancel := context.WithTimeout(
		context.Background(),
		config.GetEnvAsDuration("SERVNOW_TIMEOUT", 5*time.Second),
	)
	defer cancel()

	c := &cli{
		app:          a,
		contractorID: contractorID,
		stdin:        stdin,
		stdout:       stdout,
		assumeYes:    config.GetEnvAsBool("SERVNOW_ASSUME_YES", false),
	}
	err = c.dispatch(ctx, args)
	if config.GetEnvAsBool("SERVNOW_PRINT_METRICS", false) && deps.Registry != nil {
		if werr := metrics.WriteText(stderr, deps.Registry); werr != nil {
			errColor.Fprintln(stderr, "Failed to write metrics:", werr)
		}
	}
	if err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(stderr, err)
			fmt.Fprintln(stderr, usage)
			return 2
		}
		errColor.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

func contractorFromEnv() (uuid.UUID, error) {
	raw := config.GetEnv("SERVNOW_CONTRACTOR_ID", "")
	if raw == "" {
		return defaultContractorID, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid SERVNOW_CONTRACTOR_ID %q: %w", raw, err)
	}
	return id, nil
}

type cli struct {
	app          *app.App
	contractorID uuid.UUID
	stdin        io.Reader
	stdout       io.Writer
	assumeYes    bool
}

func (c *cli) dispatch(ctx context.Context, args []string) error {
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "summary":
		return c.summary(ctx)
	case "jobs":
		return c.jobs(ctx)
	case "max":
		text, err := c.app.EarningsService.Max(ctx, c.contractorID)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.stdout, text)
		return nil
	case "quote":
		raw, method, _, err := amountArgs(rest)
		if err != nil {
			return err
		}
		return c.quote(ctx, raw, method)
	case "cashout":
		raw, method, yes, err := amountArgs(rest)
		if err != nil {
			return err
		}
		return c.cashOut(ctx, raw, method, yes || c.assumeYes)
	case "home":
		return c.home(ctx)
	case "online":
		if len(rest) != 1 {
			return fmt.Errorf("%w: online <on|off>", errUsage)
		}
		return c.online(ctx, rest[0])
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

// amountArgs parses "<amount> [method] [--yes]". The method defaults to standard.
func amountArgs(args []string) (raw string, method payout.Method, yes bool, err error) {
	method = payout.MethodStandard
	var positional []string
	for _, a := range args {
		if a == "--yes" || a == "-y" {
			yes = true
			continue
		}
		positional = append(positional, a)
	}
	if len(positional) < 1 || len(positional) > 2 {
		return "", "", false, fmt.Errorf("%w: expected <amount> [standard|instant]", errUsage)
	}
	raw = positional[0]
	if len(positional) == 2 {
		if method, err = payout.ParseMethod(positional[1]); err != nil {
			return "", "", false, fmt.Errorf("%w: %w", errUsage, err)
		}
	}
	return raw, method, yes, nil
}

func (c *cli) dollars(amount float64) string {
	m, err := money.New(amount, c.app.EarningsService.Currency())
	if err != nil {
		return fmt.Sprintf("%.2f", amount)
	}
	return m.Dollars()
}

func (c *cli) summary(ctx context.Context) error {
	sum, err := c.app.EarningsService.Summary(ctx, c.contractorID)
	if err != nil {
		return err
	}
	titleColor.Fprintln(c.stdout, "Earnings")
	okColor.Fprintf(c.stdout, "  Available  %s\n", c.dollars(sum.Available))
	fmt.Fprintf(c.stdout, "  Pending    %s\n", c.dollars(sum.Pending))
	fmt.Fprintf(c.stdout, "  Lifetime   %s\n", c.dollars(sum.Lifetime))

	titleColor.Fprintln(c.stdout, "Cash out methods")
	for _, m := range c.app.EarningsService.Methods() {
		fmt.Fprintf(c.stdout, "  %-9s %-18s %s\n", m.Title, m.Settlement, m.Price)
	}
	return nil
}

func (c *cli) jobs(ctx context.Context) error {
	jobs, err := c.app.EarningsService.RecentJobs(ctx)
	if err != nil {
		return err
	}
	titleColor.Fprintln(c.stdout, "Recent jobs")
	for _, j := range jobs {
		status := okColor.Sprint(j.Status)
		if j.Status != earnings.JobPaid {
			status = warnColor.Sprint(j.Status)
		}
		fmt.Fprintf(c.stdout, "  %s  %-24s %9s  %s\n",
			j.Date.Format(time.DateOnly), j.Title, c.dollars(j.Amount), status)
	}
	return nil
}

func (c *cli) quote(ctx context.Context, raw string, method payout.Method) error {
	res, err := c.app.EarningsService.Quote(ctx, c.contractorID, raw, method)
	if err != nil {
		return err
	}
	c.printResult(method, res)
	if !res.Eligible {
		warnColor.Fprintf(c.stdout, "Cash out unavailable: enter at least %s and pick a method.\n",
			c.dollars(c.app.Deps.Calculator.Policy().Minimum))
	}
	return nil
}

func (c *cli) printResult(method payout.Method, res payout.Result) {
	fmt.Fprintf(c.stdout, "%s\n", c.subtitle(method, res))
	fmt.Fprintf(c.stdout, "Amount:       %s\n", c.dollars(res.Amount))
	okColor.Fprintf(c.stdout, "You receive:  %s\n", c.dollars(res.Payout))
}

// subtitle is the first line of the confirmation, e.g.
// "Instant • Fee 2%: $8.40" or "Standard • Free (1–3 business days)".
func (c *cli) subtitle(method payout.Method, res payout.Result) string {
	price := c.app.Deps.Calculator.Price(method)
	if method == payout.MethodInstant {
		return fmt.Sprintf("%s • Fee %s: %s", method.Title(), strings.TrimSuffix(price, " fee"), c.dollars(res.Fee))
	}
	return fmt.Sprintf("%s • %s (%s)", method.Title(), price, method.Settlement())
}

func (c *cli) cashOut(ctx context.Context, raw string, method payout.Method, yes bool) error {
	res, err := c.app.EarningsService.Quote(ctx, c.contractorID, raw, method)
	if err != nil {
		return err
	}
	// Money moves in whole cents; confirm exactly what will be withdrawn.
	res = c.app.Deps.Calculator.Calculate(payout.TruncateCents(res.Amount), method)
	if !res.Eligible {
		c.app.Deps.Metrics.Rejected(method.String(), string(payout.ReasonIneligible))
		return fmt.Errorf("%w: enter at least %s and pick a method",
			payout.ErrIneligible, c.dollars(c.app.Deps.Calculator.Policy().Minimum))
	}

	titleColor.Fprintln(c.stdout, "Confirm cash out")
	c.printResult(method, res)
	if !yes {
		ok, err := c.confirm()
		if err != nil {
			return err
		}
		if !ok {
			return errCancelled
		}
	}

	receipt, err := c.app.EarningsService.CashOut(ctx, c.contractorID, res.Amount, method)
	if err != nil {
		return err
	}
	okColor.Fprintln(c.stdout, "Cash out requested")
	fmt.Fprintln(c.stdout, receipt.Message())
	fmt.Fprintf(c.stdout, "Payout %s (%s), available balance %s\n",
		receipt.PayoutID, receipt.Status, c.dollars(receipt.NewBalance))
	return nil
}

// confirm asks on an interactive terminal. Piped input is never treated as
// consent; use --yes instead.
func (c *cli) confirm() (bool, error) {
	f, ok := c.stdin.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return false, errors.New("confirmation required: re-run with --yes")
	}
	fmt.Fprint(c.stdout, "Confirm? [y/N]: ")
	line, err := bufio.NewReader(c.stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

func (c *cli) home(ctx context.Context) error {
	h, err := c.app.ContractorService.FetchHome(ctx)
	if err != nil {
		return err
	}
	w := h.Weekly
	titleColor.Fprintf(c.stdout, "%s • %s\n", w.Name, w.City)
	status := okColor.Sprint("online")
	if !w.IsOnline {
		status = warnColor.Sprint("offline")
	}
	fmt.Fprintf(c.stdout, "  Status     %s\n", status)
	fmt.Fprintf(c.stdout, "  This week  %d jobs, %s, rating %.1f, responds in %d min\n",
		w.Jobs, c.dollars(w.Earnings), w.Rating, w.ResponseMins)

	titleColor.Fprintln(c.stdout, "Today")
	for _, j := range h.Today {
		fmt.Fprintf(c.stdout, "  %s-%s  %-16s %-14s %8s  %s, %.1f mi\n",
			j.Start, j.End, j.Customer, j.Category, c.dollars(j.Price), j.Area, j.DistanceMiles)
	}
	titleColor.Fprintln(c.stdout, "Nearby")
	for _, m := range h.Nearby {
		fmt.Fprintf(c.stdout, "  %-20s %8s  %.1f mi\n", m.Title, c.dollars(m.Payout), m.DistanceMiles)
	}
	return nil
}

func (c *cli) online(ctx context.Context, arg string) error {
	var online bool
	switch strings.ToLower(arg) {
	case "on", "true", "online":
		online = true
	case "off", "false", "offline":
	default:
		return fmt.Errorf("%w: online <on|off>", errUsage)
	}
	res, err := c.app.ContractorService.SetOnlineStatus(ctx, online)
	if err != nil {
		return err
	}
	if !res.OK {
		return errors.New("status change rejected")
	}
	if res.Online {
		okColor.Fprintln(c.stdout, "You are online")
	} else {
		warnColor.Fprintln(c.stdout, "You are offline")
	}
	slog.Default().Debug("Online status changed", "online", res.Online)
	return nil
}
