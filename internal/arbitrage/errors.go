package arbitrage

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

// ErrInvalidInput is matched by every validation failure of the calculators.
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError names the offending field.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "invalid " + e.Field + ": " + e.Reason
}

func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

func invalid(field, reason string) error {
	return &InvalidInputError{Field: field, Reason: reason}
}

func requirePositive(field string, v decimal.Decimal) error {
	if !v.IsPositive() {
		return invalid(field, "must be greater than zero")
	}
	return nil
}

// FromFloat converts a float64 read at an input boundary. NaN and infinities
// are rejected since decimal cannot represent them.
func FromFloat(field string, v float64) (decimal.Decimal, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero, invalid(field, "must be a finite number")
	}
	return decimal.NewFromFloat(v), nil
}
