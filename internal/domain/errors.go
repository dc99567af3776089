// internal/domain/errors.go
package domain

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for planning failures. Callers match with
// errors.Is; messages carry the item-level context.
var (
	// ErrInsufficientHistory: a forecasting method was given fewer
	// observations than it requires.
	ErrInsufficientHistory = errors.New("insufficient history")

	// ErrArithmetic: a calculation hit a degenerate divisor, e.g. a
	// zero holding cost in the EOQ formula.
	ErrArithmetic = errors.New("arithmetic error")

	// ErrValidation: out-of-range configuration or malformed input,
	// e.g. a service level outside [0,1].
	ErrValidation = errors.New("validation error")
)

// InsufficientHistoryf builds an ErrInsufficientHistory with context.
func InsufficientHistoryf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInsufficientHistory, fmt.Sprintf(format, args...))
}

// Arithmeticf builds an ErrArithmetic with context.
func Arithmeticf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrArithmetic, fmt.Sprintf(format, args...))
}

// Validationf builds an ErrValidation with context.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
