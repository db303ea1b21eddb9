package initializer

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/servnow/servnow/pkg/config"
)

var formatters = map[string]log.Formatter{
	"json":   log.JSONFormatter,
	"text":   log.TextFormatter,
	"logfmt": log.LogfmtFormatter,
}

func setupLogger(cfg *config.Log, w io.Writer) *slog.Logger {
	if cfg == nil {
		cfg = &config.Log{Format: "text"}
	}
	styles := log.DefaultStyles()
	infoTxtColor := lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}
	warnTxtColor := lipgloss.AdaptiveColor{Light: "#EE6FF8", Dark: "#EE6FF8"}
	errorTxtColor := lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF6B6B"}
	debugTxtColor := lipgloss.AdaptiveColor{Light: "#7E57C2", Dark: "#7E57C2"}

	level := func(icon string, color lipgloss.AdaptiveColor) lipgloss.Style {
		return lipgloss.NewStyle().
			SetString(icon).
			Bold(true).
			Padding(0, 1).
			Foreground(color)
	}
	styles.Levels[log.ErrorLevel] = level("❌", errorTxtColor)
	styles.Levels[log.InfoLevel] = level("ℹ️", infoTxtColor)
	styles.Levels[log.WarnLevel] = level("⚠️", warnTxtColor)
	styles.Levels[log.DebugLevel] = level("🐛", debugTxtColor)

	// Money and identity keys stand out in cash-out traces.
	keyColors := map[string]lipgloss.AdaptiveColor{
		"error":          errorTxtColor,
		"reason":         warnTxtColor,
		"amount":         infoTxtColor,
		"payout":         infoTxtColor,
		"fee":            infoTxtColor,
		"contractor_id":  debugTxtColor,
		"transaction_id": debugTxtColor,
		"payout_id":      debugTxtColor,
	}
	for key, color := range keyColors {
		styles.Keys[key] = lipgloss.NewStyle().Foreground(color)
		styles.Values[key] = lipgloss.NewStyle().Bold(true)
	}

	formatter := log.TextFormatter
	if f, ok := formatters[cfg.Format]; ok {
		formatter = f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           log.Level(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})
	logger.SetStyles(styles)

	slogger := slog.New(logger)
	slog.SetDefault(slogger)
	return slogger
}
