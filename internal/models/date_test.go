// ABOUTME: Tests for the Date value.
// ABOUTME: Covers lenient parsing, ordering of invalid dates and text preservation.
package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"calendar date", "2024-06-15", true},
		{"RFC3339", "2024-06-15T08:30:00Z", true},
		{"millisecond timestamp", "2024-06-15T08:30:00.123Z", true},
		{"date and time with T", "2024-06-15T08:30", true},
		{"date and time with space", "2024-06-15 08:30", true},
		{"garbage", "next tuesday", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ParseDate(tt.input)
			if d.Valid() != tt.valid {
				t.Errorf("ParseDate(%q).Valid() = %v, want %v", tt.input, d.Valid(), tt.valid)
			}
			if d.String() != tt.input {
				t.Errorf("ParseDate(%q).String() = %q", tt.input, d.String())
			}
		})
	}
}

func TestDateOrdering(t *testing.T) {
	early := MustParseDate("2024-01-01")
	late := MustParseDate("2024-01-02")
	invalid := ParseDate("someday")

	if !early.Before(late) || late.Before(early) {
		t.Error("expected 2024-01-01 before 2024-01-02")
	}
	if !late.After(early) {
		t.Error("expected After to mirror Before")
	}
	if early.Before(early) {
		t.Error("a date is not before itself")
	}
	if !invalid.Before(early) {
		t.Error("invalid dates should order before valid dates")
	}
	if early.Before(invalid) {
		t.Error("valid date should not be before an invalid date")
	}
	if invalid.Before(ParseDate("never")) {
		t.Error("two invalid dates should compare equal")
	}
}

func TestDateOfAndTimestampOf(t *testing.T) {
	now := time.Date(2024, 3, 9, 17, 45, 12, 345678901, time.UTC)
	if got := DateOf(now).String(); got != "2024-03-09" {
		t.Errorf("DateOf = %q", got)
	}
	if got := TimestampOf(now).String(); got != "2024-03-09T17:45:12.345Z" {
		t.Errorf("TimestampOf = %q", got)
	}
}

func TestDateJSON(t *testing.T) {
	var r Ride
	if err := json.Unmarshal([]byte(`{"id":"r1","date":"2024-02-29"}`), &r); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !r.Date.Valid() || r.Date.Time().Day() != 29 {
		t.Errorf("unexpected date %v", r.Date)
	}

	out, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(out) != `{"id":"r1","bikeId":"","mileage":0,"date":"2024-02-29"}` {
		t.Errorf("unexpected JSON: %s", out)
	}

	if err := json.Unmarshal([]byte(`{"date":17}`), &r); err == nil {
		t.Error("expected error for numeric date")
	}
}
