package payout

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var numericPrefix = regexp.MustCompile(`^(\d+\.?\d*|\.\d+)`)

// Sanitize drops every character that is not a digit or a decimal point,
// so "$1,250.00" becomes "1250.00" and "-5" becomes "5".
func Sanitize(raw string) string {
	return strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, raw)
}

// ParseAmount parses sanitized text leniently: the longest numeric prefix
// wins ("1.2.3" parses as 1.2). Text without a numeric prefix parses as 0
// and ok is false. Values too large for a float64 come back as +Inf.
func ParseAmount(s string) (n float64, ok bool) {
	prefix := numericPrefix.FindString(s)
	if prefix == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(prefix, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return n, true
}

// Round2 rounds n to the nearest cent, half away from zero. Rounding works
// on the shortest decimal representation of n, so 1.005 rounds to 1.01 even
// though its binary value sits slightly below the tie. Non-finite values are
// returned unchanged.
func Round2(n float64) float64 {
	if !finite(n) {
		return n
	}
	return decimal.NewFromFloat(n).Round(2).InexactFloat64()
}

// TruncateCents drops sub-cent digits, rounding toward zero, so a cash-out
// never withdraws more than was typed. Non-finite values are returned unchanged.
func TruncateCents(n float64) float64 {
	if !finite(n) {
		return n
	}
	return decimal.NewFromFloat(n).Truncate(2).InexactFloat64()
}

func finite(n float64) bool {
	return !math.IsNaN(n) && !math.IsInf(n, 0)
}

// dec converts n for decimal arithmetic; non-finite values count as zero.
func dec(n float64) decimal.Decimal {
	if !finite(n) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(n)
}
