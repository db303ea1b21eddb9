package money

// Code represents a currency code (e.g., "USD", "EUR").
type Code string

// Supported currency codes
const (
	USD Code = "USD" // US Dollar
	CAD Code = "CAD" // Canadian Dollar
	EUR Code = "EUR" // Euro
	JPY Code = "JPY" // Japanese Yen
)

// IsValid checks if the currency code is three upper-case letters.
func (c Code) IsValid() bool {
	if len(c) != 3 {
		return false
	}
	for i := 0; i < 3; i++ {
		if c[i] < 'A' || c[i] > 'Z' {
			return false
		}
	}
	return true
}

// String returns the string representation of the currency code.
func (c Code) String() string {
	return string(c)
}

// ToCurrency converts a Code to a Currency with its default decimals.
func (c Code) ToCurrency() Currency {
	if c == JPY {
		return Currency{Code: c, Decimals: 0}
	}
	return Currency{Code: c, Decimals: 2}
}
