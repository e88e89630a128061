package domain

import "time"

// ExportRow is a single row in the flat event export: one row per event, with
// the range pre-rendered in the display timezone the caller asked for.
type ExportRow struct {
	EventID    string
	Title      string
	ProfileIDs []string
	StartDate  time.Time
	EndDate    time.Time
	Timezone   string
	StartTime  string
	EndTime    string

	// DisplayTimezone is the label the range was rendered in, as requested.
	DisplayTimezone string
	// DisplayZone is the IANA zone DisplayTimezone resolved to.
	DisplayZone  string
	DisplayRange string
}
