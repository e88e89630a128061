package domain

import (
	"fmt"
	"strings"
	"time"
)

// instantLayouts are tried in order by ParseInstant. Layouts without a zone
// offset are interpreted as UTC.
var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseInstant parses a wire date/time into a UTC instant truncated to the
// millisecond, the precision events are stored and sent at, so a range that
// validates here never collapses to equal instants later.
// Values without a zone offset are read as UTC, never as server-local time,
// so the result does not depend on the host the server runs on.
// Returns ErrMalformedInstant when raw matches none of the accepted layouts.
func ParseInstant(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: value is empty", ErrMalformedInstant)
	}
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Truncate(time.Millisecond), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedInstant, raw)
}

// ValidateSchedule accepts a range only when end is strictly after start.
// Equal instants are rejected. There is no upper bound and no check against now.
func ValidateSchedule(start, end time.Time) error {
	if !end.After(start) {
		return ErrEndNotAfterStart
	}
	return nil
}

// ParseSchedule parses both ends of a range and validates it.
// It is the single decision point run before every create and update.
func ParseSchedule(startRaw, endRaw string) (time.Time, time.Time, error) {
	start, err := ParseInstant(startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("startDate: %w", err)
	}
	end, err := ParseInstant(endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("endDate: %w", err)
	}
	if err := ValidateSchedule(start, end); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
