// Package schedule implements deterministic weekly shift construction:
// availability normalization, coverage calculation, greedy shift assignment
// with an incentive fallback, and an independent schedule validator.
//
// The package is pure: it performs no I/O, holds no state between calls and
// returns the same output for the same input.
package schedule

import "fmt"

// ValidationError reports malformed input: a bad interval, an unknown
// weekday, conflicting day-off/interval records, or min > max bounds. It is
// always surfaced immediately and never retried.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid input: " + e.Msg
	}
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Msg)
}

func validationErrorf(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Msg: fmt.Sprintf(format, args...)}
}
