package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"

	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/tzevents/backend/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"event_id", "title", "profile_ids", "start_date", "end_date",
	"timezone", "start_time", "end_time",
	"display_timezone", "display_zone", "display_range",
}

// ExportRow is the JSON form of one export row.
type ExportRow struct {
	EventID         string   `json:"eventId"`
	Title           string   `json:"title"`
	ProfileIDs      []string `json:"profileIds"`
	StartDate       string   `json:"startDate"`
	EndDate         string   `json:"endDate"`
	Timezone        string   `json:"timezone"`
	StartTime       *string  `json:"startTime,omitempty"`
	EndTime         *string  `json:"endTime,omitempty"`
	DisplayTimezone string   `json:"displayTimezone"`
	DisplayZone     string   `json:"displayZone"`
	DisplayRange    string   `json:"displayRange"`
}

// GetExport implements GET /events/export.
// Returns every event as a flat table with its range rendered in one timezone.
// Accepts the same profileId and displayTimezone filters as GET /events.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	params, err := bindListParams(query)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	var format *string
	if err := runtime.BindQueryParameter("form", true, false, "format", query, &format); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	wantCSV := false
	if format != nil {
		switch *format {
		case "csv":
			wantCSV = true
		case "json", "":
		default:
			writeBadRequest(w, "format must be csv or json")
			return
		}
	}

	rows, err := s.export.Export(r.Context(), deref(params.ProfileID), deref(params.DisplayTimezone))
	if err != nil {
		s.writeServiceError(w, r, err, "event not found")
		return
	}

	if wantCSV {
		writeCSV(w, rows)
		return
	}
	writeJSON(w, http.StatusOK, buildJSONRows(rows))
}

// buildJSONRows converts domain rows to their wire form.
func buildJSONRows(rows []domain.ExportRow) []ExportRow {
	out := make([]ExportRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, domainRowToJSONRow(r))
	}
	return out
}

// writeCSV encodes domain rows as CSV.
// Profile ids within a row are pipe-separated ("|") to keep each event on a single CSV line.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		cw.Write(domainRowToCSVRecord(r))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="events.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// domainRowToJSONRow maps a domain.ExportRow to the JSON row type.
// Empty clock strings become nil pointers (omitempty in JSON).
func domainRowToJSONRow(r domain.ExportRow) ExportRow {
	profileIDs := r.ProfileIDs
	if profileIDs == nil {
		profileIDs = []string{}
	}
	row := ExportRow{
		EventID:         r.EventID,
		Title:           r.Title,
		ProfileIDs:      profileIDs,
		StartDate:       formatTimestamp(r.StartDate),
		EndDate:         formatTimestamp(r.EndDate),
		Timezone:        r.Timezone,
		DisplayTimezone: r.DisplayTimezone,
		DisplayZone:     r.DisplayZone,
		DisplayRange:    r.DisplayRange,
	}
	if r.StartTime != "" {
		row.StartTime = &r.StartTime
	}
	if r.EndTime != "" {
		row.EndTime = &r.EndTime
	}
	return row
}

// domainRowToCSVRecord encodes a domain.ExportRow as a flat string slice.
func domainRowToCSVRecord(r domain.ExportRow) []string {
	return []string{
		r.EventID,
		r.Title,
		strings.Join(r.ProfileIDs, "|"),
		formatTimestamp(r.StartDate),
		formatTimestamp(r.EndDate),
		r.Timezone,
		r.StartTime,
		r.EndTime,
		r.DisplayTimezone,
		r.DisplayZone,
		r.DisplayRange,
	}
}
