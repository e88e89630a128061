package domain

import (
	"slices"
	"time"
)

// DefaultEventTitle is assigned when an event is created without a title.
const DefaultEventTitle = "New Event"

// Event is a scheduled item belonging to one or more profiles.
// StartDate and EndDate are absolute instants kept in UTC; Timezone is only a
// display hint. StartTime and EndTime hold the "HH:MM" values the client
// entered and are stored verbatim.
type Event struct {
	ID         string
	ProfileIDs []string
	Title      string
	StartDate  time.Time
	EndDate    time.Time
	Timezone   string
	StartTime  string
	EndTime    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HasProfile reports whether the event is associated with profileID.
func (e Event) HasProfile(profileID string) bool {
	return slices.Contains(e.ProfileIDs, profileID)
}

// Clone returns a copy of e that shares no mutable state with it.
func (e Event) Clone() Event {
	e.ProfileIDs = slices.Clone(e.ProfileIDs)
	return e
}

// EventDraft is the unvalidated input for creating an event.
// StartDate and EndDate are raw wire values; they are parsed by ParseSchedule.
type EventDraft struct {
	ProfileIDs []string
	Title      string
	Timezone   string
	StartDate  string
	EndDate    string
	StartTime  string
	EndTime    string
}

// ScheduleDraft is the unvalidated input for rescheduling an existing event.
// Only these three fields of an event are revisable.
type ScheduleDraft struct {
	StartDate string
	EndDate   string
	Timezone  string
}

// Schedule is a validated time range plus its display timezone label.
type Schedule struct {
	Start    time.Time
	End      time.Time
	Timezone string
}
