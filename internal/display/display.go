// Package display renders events for people. Everything here is a pure
// function of its inputs: the same event and label always yield the same text.
package display

import (
	"strings"
	"time"

	"github.com/pkordes/tzevents/backend/internal/domain"
	"github.com/pkordes/tzevents/backend/internal/timezone"
)

// Layout is the per-instant rendering, e.g. "Jan 2, 2025, 09:00 AM".
const Layout = "Jan 2, 2006, 03:04 PM"

// UntitledEvent is shown in place of a blank title.
const UntitledEvent = "Untitled Event"

// Instant renders t in the zone selected by label.
// Unknown labels render in UTC.
func Instant(t time.Time, label string) string {
	return t.In(timezone.Location(label)).Format(Layout)
}

// Range renders the event's start and end in the zone selected by label,
// e.g. "Jan 2, 2025, 09:00 AM - Jan 2, 2025, 10:00 AM".
// The output depends only on the resolved zone, so two labels that map to the
// same zone produce identical text.
func Range(e domain.Event, label string) string {
	return Instant(e.StartDate, label) + " - " + Instant(e.EndDate, label)
}

// Title returns the event title, or UntitledEvent when it is blank.
func Title(e domain.Event) string {
	if strings.TrimSpace(e.Title) == "" {
		return UntitledEvent
	}
	return e.Title
}
