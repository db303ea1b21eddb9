package payout

import (
	"fmt"
	"strings"
)

// Method is the settlement path chosen for a cash-out.
type Method string

const (
	// MethodStandard settles for free in one to three business days.
	MethodStandard Method = "standard"
	// MethodInstant settles immediately for a percentage fee.
	MethodInstant Method = "instant"
)

// ParseMethod maps user input such as "Instant" to a Method.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToLower(strings.TrimSpace(s)))
	if !m.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
	return m, nil
}

// IsValid reports whether m is a known method.
func (m Method) IsValid() bool {
	return m == MethodStandard || m == MethodInstant
}

func (m Method) String() string { return string(m) }

// Title is the method card heading.
func (m Method) Title() string {
	switch m {
	case MethodStandard:
		return "Standard"
	case MethodInstant:
		return "Instant"
	}
	return string(m)
}

// Settlement describes when the money arrives.
func (m Method) Settlement() string {
	switch m {
	case MethodStandard:
		return "1–3 business days"
	case MethodInstant:
		return "Arrives now"
	}
	return ""
}
