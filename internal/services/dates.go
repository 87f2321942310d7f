package services

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Clock returns the current time. Services take one so tests can pin "today".
type Clock func() time.Time

// parseDate accepts YYYY-MM-DD (local midnight) or RFC3339.
func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.ParseInLocation(dateLayout, value, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrDateFormat, value)
	}
	return t, nil
}

// startOfDay truncates t to local midnight.
func startOfDay(t time.Time) time.Time {
	t = t.In(time.Local)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

// validateRange checks start <= end and that neither date is before today.
func validateRange(start, end time.Time, now time.Time) error {
	if start.After(end) {
		return ErrDateOrder
	}
	today := startOfDay(now)
	if start.Before(today) || end.Before(today) {
		return ErrDateInPast
	}
	return nil
}
