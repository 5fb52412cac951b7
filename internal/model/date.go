package model

import (
	"fmt"
	"regexp"
	"time"
)

// DateLayout is the wire format for all statement dates.
const DateLayout = "01/02/2006"

var dateShape = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)

// Date is a calendar date rendered as MM/DD/YYYY. Only real calendar dates
// are representable: 02/30/2023 fails to parse, it is never clamped.
type Date struct {
	t time.Time
}

// ParseDate parses a strict MM/DD/YYYY date. Month must be 01-12 and the day
// must exist in that month and year, so leap days validate correctly.
func ParseDate(s string) (Date, error) {
	if !dateShape.MatchString(s) {
		return Date{}, fmt.Errorf("date %q is not MM/DD/YYYY", s)
	}

	// time.Parse enforces calendar validity; it rejects month 13 and
	// non-existent days like 02/30 instead of normalizing them.
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}

	return Date{t: t}, nil
}

// MustDate is ParseDate for fixtures and tests; it panics on invalid input.
func MustDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// String renders the date as MM/DD/YYYY.
func (d Date) String() string {
	return d.t.Format(DateLayout)
}

// Time returns the date at midnight UTC.
func (d Date) Time() time.Time {
	return d.t
}

// Year returns the four-digit year.
func (d Date) Year() int {
	return d.t.Year()
}

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Before reports whether d falls strictly before other.
func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

// After reports whether d falls strictly after other.
func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

// Equal reports whether two dates are the same calendar day.
func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

// MarshalJSON emits the date as a quoted MM/DD/YYYY string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON parses a quoted MM/DD/YYYY string.
func (d *Date) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("date must be a JSON string")
	}
	parsed, err := ParseDate(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
