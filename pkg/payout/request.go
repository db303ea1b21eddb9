package payout

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Request is a typed cash-out request coming from outside the package.
type Request struct {
	Amount float64 `json:"amount" validate:"gte=0"`
	Method Method  `json:"method" validate:"required,oneof=standard instant"`
}

// Validate checks the request shape. Business rules (minimum, balance) are
// applied by RequestCashOut, not here. Method failures wrap ErrUnknownMethod,
// everything else wraps ErrInvalidRequest.
func (r Request) Validate() error {
	if !finite(r.Amount) {
		return fmt.Errorf("%w: amount %v is not finite", ErrInvalidRequest, r.Amount)
	}
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Field() == "Method" {
				return fmt.Errorf("%w: %q", ErrUnknownMethod, r.Method)
			}
		}
		return fmt.Errorf("%w: %s failed %s", ErrInvalidRequest, verrs[0].Field(), verrs[0].Tag())
	}
	return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
}

// reason maps a Validate error to the decline reason it is reported under.
func (r Request) reason(err error) Reason {
	if errors.Is(err, ErrUnknownMethod) {
		return ReasonUnknownMethod
	}
	return ReasonInvalidRequest
}

// Decide validates r and runs RequestCashOut against balance. An invalid
// request yields a declined Decision alongside the validation error.
func (c *Calculator) Decide(balance float64, r Request) (Decision, error) {
	if err := r.Validate(); err != nil {
		return Decision{Amount: r.Amount, Method: r.Method, Reason: r.reason(err)}, err
	}
	return c.RequestCashOut(balance, r.Amount, r.Method), nil
}
