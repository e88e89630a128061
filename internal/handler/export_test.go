package handler_test

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tzevents/backend/internal/domain"
	"github.com/pkordes/tzevents/backend/internal/handler"
)

// ---- mock ExportServicer ---------------------------------------------------

type mockExportServicer struct {
	export func(ctx context.Context, profileID, displayTimezone string) ([]domain.ExportRow, error)
}

func (m *mockExportServicer) Export(ctx context.Context, profileID, displayTimezone string) ([]domain.ExportRow, error) {
	return m.export(ctx, profileID, displayTimezone)
}

// compile-time check: mockExportServicer must satisfy handler.ExportServicer.
var _ handler.ExportServicer = (*mockExportServicer)(nil)

// ---- helpers ---------------------------------------------------------------

// newExportHTTPHandler wires a Server with only the export service mock.
func newExportHTTPHandler(exportSvc handler.ExportServicer) http.Handler {
	return handler.NewServer(nil, nil, exportSvc, nil).Routes()
}

func staticExport(rows ...domain.ExportRow) *mockExportServicer {
	return &mockExportServicer{
		export: func(_ context.Context, _, _ string) ([]domain.ExportRow, error) {
			return rows, nil
		},
	}
}

// exportRowFixture returns a fully-populated domain.ExportRow for testing.
func exportRowFixture() domain.ExportRow {
	return domain.ExportRow{
		EventID:         "e1",
		Title:           "Team Meeting",
		ProfileIDs:      []string{"p1", "p2"},
		StartDate:       time.Date(2025, 1, 15, 14, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2025, 1, 15, 15, 0, 0, 0, time.UTC),
		Timezone:        "Eastern Time (ET)",
		StartTime:       "09:00",
		EndTime:         "10:00",
		DisplayTimezone: "Eastern Time (ET)",
		DisplayZone:     "America/New_York",
		DisplayRange:    "Jan 15, 2025, 09:00 AM - Jan 15, 2025, 10:00 AM",
	}
}

// ---- GET /events/export, JSON ----------------------------------------------

func TestGetExport_DefaultJSON_EmptyResult(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/events/export", nil)
	rec := httptest.NewRecorder()
	newExportHTTPHandler(staticExport()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestGetExport_FormatJSON_ExplicitParam(t *testing.T) {
	row := exportRowFixture()

	req := httptest.NewRequest(http.MethodGet, "/events/export?format=json", nil)
	rec := httptest.NewRecorder()
	newExportHTTPHandler(staticExport(row)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var rows []handler.ExportRow
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Team Meeting", rows[0].Title)
	assert.Equal(t, "2025-01-15T14:00:00.000Z", rows[0].StartDate)
	assert.Equal(t, row.DisplayRange, rows[0].DisplayRange)
	require.NotNil(t, rows[0].StartTime)
	assert.Equal(t, "09:00", *rows[0].StartTime)
}

func TestGetExport_JSON_NoClockTimes_OmitsFields(t *testing.T) {
	row := exportRowFixture()
	row.StartTime, row.EndTime = "", ""

	req := httptest.NewRequest(http.MethodGet, "/events/export", nil)
	rec := httptest.NewRecorder()
	newExportHTTPHandler(staticExport(row)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var rows []handler.ExportRow
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&rows))
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].StartTime)
	assert.Nil(t, rows[0].EndTime)
}

func TestGetExport_PassesFilters(t *testing.T) {
	var gotProfile, gotLabel string
	svc := &mockExportServicer{
		export: func(_ context.Context, profileID, displayTimezone string) ([]domain.ExportRow, error) {
			gotProfile, gotLabel = profileID, displayTimezone
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/events/export?profileId=p1&displayTimezone=UTC", nil)
	rec := httptest.NewRecorder()
	newExportHTTPHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "p1", gotProfile)
	assert.Equal(t, "UTC", gotLabel)
}

func TestGetExport_UnknownFormat_Returns400(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/events/export?format=xml", nil)
	rec := httptest.NewRecorder()
	newExportHTTPHandler(staticExport()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_request", decodeError(t, rec).Code)
}

func TestGetExport_ServiceError_Returns500(t *testing.T) {
	svc := &mockExportServicer{
		export: func(_ context.Context, _, _ string) ([]domain.ExportRow, error) {
			return nil, errors.New("db exploded")
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/events/export", nil)
	rec := httptest.NewRecorder()
	newExportHTTPHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

// ---- GET /events/export, CSV -----------------------------------------------

func TestGetExport_CSV_FormatParam_ContentType(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/events/export?format=csv", nil)
	rec := httptest.NewRecorder()
	newExportHTTPHandler(staticExport()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "events.csv")
}

func TestGetExport_CSV_EmptyResult_HasHeaderRow(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/events/export?format=csv", nil)
	rec := httptest.NewRecorder()
	newExportHTTPHandler(staticExport()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "event_id,"), "CSV should start with header row, got: %q", body)
}

func TestGetExport_CSV_OneRow_QuotesRenderedRange(t *testing.T) {
	row := exportRowFixture()

	req := httptest.NewRequest(http.MethodGet, "/events/export?format=csv", nil)
	rec := httptest.NewRecorder()
	newExportHTTPHandler(staticExport(row)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	records, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	// Header + 1 data row.
	require.Len(t, records, 2)
	assert.Equal(t, "event_id", records[0][0])
	assert.Equal(t, "e1", records[1][0])
	assert.Equal(t, "p1|p2", records[1][2])
	assert.Equal(t, row.DisplayRange, records[1][len(records[1])-1])
}
