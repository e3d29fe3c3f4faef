package timeutil

import (
	"strconv"
	"time"
)

// RFC3339Millis is RFC 3339 UTC with fixed millisecond precision, used for
// every timestamp the API emits.
const RFC3339Millis = "2006-01-02T15:04:05.000Z"

// RFC3339Micros is RFC 3339 UTC with fixed microsecond precision, used for
// log timestamps.
const RFC3339Micros = "2006-01-02T15:04:05.000000Z"

// Time wraps time.Time so JSON output always carries millisecond precision
// in UTC, e.g. "2024-01-15T10:30:00.000Z", regardless of the precision of
// the stored value.
//
// Unmarshaling JSON null keeps the existing value, matching time.Time.
type Time struct {
	time.Time
}

// NewTime wraps a standard time.Time.
func NewTime(t time.Time) Time {
	return Time{Time: t}
}

// Now returns the current time wrapped as a Time.
func Now() Time {
	return Time{Time: time.Now()}
}

// MarshalJSON renders the value as RFC 3339 UTC with millisecond precision.
func (t Time) MarshalJSON() ([]byte, error) {
	return strconv.AppendQuote(nil, t.UTC().Format(RFC3339Millis)), nil
}

// UnmarshalJSON accepts any RFC 3339 variant. null is a no-op.
func (t *Time) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if parsed, err = time.Parse(time.RFC3339, s); err != nil {
			return err
		}
	}
	t.Time = parsed
	return nil
}
