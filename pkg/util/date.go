package util

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// ParseTime tries RFC3339, RFC3339Nano, and unix seconds. Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		return time.Unix(ts, 0), true
	}
	return time.Time{}, false
}

// ParseError reports a malformed date or clock string.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

var clockLayouts = []string{"15:04", "15:04:05"}

// ParseLocalDateTime parses "YYYY-MM-DD" and "HH:MM[:SS]" as a wall-clock time
// at the given UTC offset in hours and returns the instant in UTC.
func ParseLocalDateTime(date, clock string, offsetHours float64) (time.Time, error) {
	d, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return time.Time{}, &ParseError{Field: "date", Value: date, Err: err}
	}
	var c time.Time
	for _, layout := range clockLayouts {
		if c, err = time.Parse(layout, clock); err == nil {
			break
		}
	}
	if err != nil {
		return time.Time{}, &ParseError{Field: "time", Value: clock, Err: err}
	}
	if math.IsNaN(offsetHours) || math.IsInf(offsetHours, 0) {
		return time.Time{}, &ParseError{Field: "timezone_offset", Value: strconv.FormatFloat(offsetHours, 'f', -1, 64), Err: strconv.ErrRange}
	}
	local := time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), c.Second(), 0, time.UTC)
	return local.Add(-time.Duration(offsetHours * float64(time.Hour))), nil
}
