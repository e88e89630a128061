package display_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/tzevents/backend/internal/display"
	"github.com/pkordes/tzevents/backend/internal/domain"
)

func eventAt(start, end time.Time) domain.Event {
	return domain.Event{ID: "1", ProfileIDs: []string{"1"}, StartDate: start, EndDate: end}
}

func TestRange_RendersInRequestedZone(t *testing.T) {
	e := eventAt(
		time.Date(2025, 1, 1, 14, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 1, 15, 30, 0, 0, time.UTC),
	)

	tests := []struct {
		label string
		want  string
	}{
		{"UTC", "Jan 1, 2025, 02:00 PM - Jan 1, 2025, 03:30 PM"},
		{"Eastern Time (ET)", "Jan 1, 2025, 09:00 AM - Jan 1, 2025, 10:30 AM"},
		{"Pacific Time (PT)", "Jan 1, 2025, 06:00 AM - Jan 1, 2025, 07:30 AM"},
		{"IST (India)", "Jan 1, 2025, 07:30 PM - Jan 1, 2025, 09:00 PM"},
		{"JST (Japan)", "Jan 1, 2025, 11:00 PM - Jan 2, 2025, 12:30 AM"},
		{"AEST (Australia)", "Jan 2, 2025, 01:00 AM - Jan 2, 2025, 02:30 AM"},
	}
	for _, tc := range tests {
		t.Run(tc.label, func(t *testing.T) {
			assert.Equal(t, tc.want, display.Range(e, tc.label))
		})
	}
}

// Europe/London observes summer time, so "GMT+1" is only an hour ahead of UTC in summer.
func TestRange_FollowsDaylightSaving(t *testing.T) {
	winter := eventAt(time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC), time.Date(2025, 1, 15, 13, 0, 0, 0, time.UTC))
	summer := eventAt(time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC), time.Date(2025, 7, 15, 13, 0, 0, 0, time.UTC))

	assert.Equal(t, "Jan 15, 2025, 12:00 PM - Jan 15, 2025, 01:00 PM", display.Range(winter, "GMT+1"))
	assert.Equal(t, "Jul 15, 2025, 01:00 PM - Jul 15, 2025, 02:00 PM", display.Range(summer, "GMT+1"))
}

func TestRange_UnknownLabelMatchesUTC(t *testing.T) {
	e := eventAt(time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC), time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC))

	assert.Equal(t, display.Range(e, "UTC"), display.Range(e, "Moon Time"))
	assert.Equal(t, display.Range(e, "UTC"), display.Range(e, ""))
}

func TestRange_Stable(t *testing.T) {
	e := eventAt(time.Date(2025, 5, 5, 5, 5, 0, 0, time.UTC), time.Date(2025, 5, 6, 5, 5, 0, 0, time.UTC))

	first := display.Range(e, "Central Time (CT)")
	for range 5 {
		assert.Equal(t, first, display.Range(e, "Central Time (CT)"))
	}
}

// The stored instant's own location must not leak into the output.
func TestInstant_IgnoresSourceLocation(t *testing.T) {
	utc := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	fixed := utc.In(time.FixedZone("X", -3*60*60))

	assert.Equal(t, display.Instant(utc, "Mountain Time (MT)"), display.Instant(fixed, "Mountain Time (MT)"))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Standup", display.Title(domain.Event{Title: "Standup"}))
	assert.Equal(t, display.UntitledEvent, display.Title(domain.Event{}))
	assert.Equal(t, display.UntitledEvent, display.Title(domain.Event{Title: "  "}))
}
