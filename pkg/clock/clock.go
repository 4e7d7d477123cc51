// Package clock handles the HH:MM time-of-day values used by schedules and
// time entries, and the date-only values used everywhere else.
package clock

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// ParseToMinutes converts an "HH:MM" string into minutes since midnight.
func ParseToMinutes(value string) (int, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time of day %q", value)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q", value)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q", value)
	}

	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("time of day %q out of range", value)
	}

	return hours*60 + minutes, nil
}

// IsTimeOfDay reports whether value is a well-formed "HH:MM" string.
func IsTimeOfDay(value string) bool {
	_, err := ParseToMinutes(value)
	return err == nil
}

// MinutesBetween returns end minus start in minutes. Both must be "HH:MM".
func MinutesBetween(start, end string) (int, error) {
	startMin, err := ParseToMinutes(start)
	if err != nil {
		return 0, err
	}
	endMin, err := ParseToMinutes(end)
	if err != nil {
		return 0, err
	}
	return endMin - startMin, nil
}

// ParseDate parses a "2006-01-02" string into a UTC midnight time.Time.
func ParseDate(value string) (time.Time, error) {
	date, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", value)
	}
	return date, nil
}

// DateOnly truncates t to its UTC calendar day. All dates are persisted in
// this form so that comparisons in SQL stay consistent.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDate renders t as "2006-01-02".
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
