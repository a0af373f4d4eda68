// ABOUTME: Shared CLI helpers: input validation, date parsing, and output formatting.
// ABOUTME: Status colors and column padding used across the command files.
package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/go-playground/validator/v10"

	"github.com/harperreed/mtbmaint/internal/models"
	"github.com/harperreed/mtbmaint/internal/schedule"
	"github.com/harperreed/mtbmaint/internal/store"
	"github.com/harperreed/mtbmaint/internal/transfer"
)

var validate = validator.New()

var faint = color.New(color.Faint)

// checkInput validates a command's input struct and reports the first failure
// in flag terms.
func checkInput(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("invalid %s: %v (%s %s)", strings.ToLower(fe.Field()), fe.Value(), fe.Tag(), fe.Param())
	}
	return err
}

// parseDate accepts YYYY-MM-DD or a full timestamp. Empty input means the
// store's default date.
func parseDate(s string) (models.Date, error) {
	if s == "" {
		return models.Date{}, nil
	}
	d := models.ParseDate(s)
	if !d.Valid() {
		return models.Date{}, fmt.Errorf("invalid date: %s (use YYYY-MM-DD)", s)
	}
	return d, nil
}

// resolveBike looks a bike up by id, id prefix or name.
func resolveBike(ref string) (models.Bike, error) {
	b, err := st.FindBike(ref)
	if err != nil {
		if errors.Is(err, store.ErrAmbiguous) {
			return models.Bike{}, fmt.Errorf("%w; use more of the ID", err)
		}
		return models.Bike{}, fmt.Errorf("bike not found: %s", ref)
	}
	return b, nil
}

func statusColor(s schedule.Status) *color.Color {
	switch s {
	case schedule.StatusOverdue:
		return color.New(color.FgRed, color.Bold)
	case schedule.StatusDue:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgCyan)
	}
}

func miles(v float64) string {
	return transfer.FormatMiles(v) + " mi"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return "..."
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
