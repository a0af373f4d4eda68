// ABOUTME: Date value used for record dates and creation timestamps.
// ABOUTME: Parses leniently, compares explicitly, and writes back the stored text unchanged.
package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the calendar-date form used for ride, log and install dates.
const DateLayout = "2006-01-02"

// timestampLayout matches the millisecond ISO-8601 form used for createdAt.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

var parseLayouts = []string{
	DateLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// Date is either a calendar date or a full timestamp. The original text is
// kept so that re-encoding never rewrites a stored value. A Date whose text
// does not parse is still carried, and orders before every valid Date.
type Date struct {
	t     time.Time
	text  string
	valid bool
}

// DateOf returns the calendar date of t.
func DateOf(t time.Time) Date {
	return Date{t: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), text: t.Format(DateLayout), valid: true}
}

// TimestampOf returns t as a UTC millisecond timestamp.
func TimestampOf(t time.Time) Date {
	u := t.UTC().Truncate(time.Millisecond)
	return Date{t: u, text: u.Format(timestampLayout), valid: true}
}

// ParseDate parses s as a date or timestamp. Unparsable input is not an
// error: the returned Date keeps the text and reports Valid() == false.
func ParseDate(s string) Date {
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{t: t, text: s, valid: true}
		}
	}
	return Date{text: s}
}

// MustParseDate parses s and panics when it is not a valid date. For tests and fixtures.
func MustParseDate(s string) Date {
	d := ParseDate(s)
	if !d.valid {
		panic(fmt.Sprintf("invalid date %q", s))
	}
	return d
}

// Time returns the parsed instant, or the zero time for invalid dates.
func (d Date) Time() time.Time { return d.t }

// Valid reports whether the text parsed.
func (d Date) Valid() bool { return d.valid }

// IsZero reports whether no date was set.
func (d Date) IsZero() bool { return d.text == "" }

// String returns the stored text.
func (d Date) String() string { return d.text }

// Before reports whether d is strictly older than o.
func (d Date) Before(o Date) bool {
	if !d.valid {
		return o.valid
	}
	if !o.valid {
		return false
	}
	return d.t.Before(o.t)
}

// After reports whether d is strictly newer than o.
func (d Date) After(o Date) bool { return o.Before(d) }

// MarshalJSON writes the stored text.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.text)
}

// UnmarshalJSON accepts a JSON string or null.
func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	*d = ParseDate(s)
	return nil
}
