package models

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownEventCategory is returned for an event category with no house mapping.
	ErrUnknownEventCategory = errors.New("unknown event type")
	// ErrLordNotInChart is returned when the dasha lord has no position in the chart.
	ErrLordNotInChart = errors.New("dasha lord not found in chart")
	// ErrProviderUnavailable wraps failed ephemeris position or house queries.
	ErrProviderUnavailable = errors.New("ephemeris provider unavailable")
)

// InputError reports invalid caller input, detected before any provider call.
type InputError struct {
	Field  string
	Value  string
	Reason string
	Err    error
}

// NewInputError creates an InputError.
func NewInputError(field, value, reason string) *InputError {
	return &InputError{Field: field, Value: value, Reason: reason}
}

func (e *InputError) Error() string {
	msg := fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying parse error, if any.
func (e *InputError) Unwrap() error { return e.Err }
