package handler

import (
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/tzevents/backend/internal/display"
	"github.com/pkordes/tzevents/backend/internal/domain"
)

// TimestampLayout is the wire format for every instant: UTC with milliseconds.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Event is the wire representation of domain.Event.
type Event struct {
	ID         string   `json:"id"`
	ProfileIDs []string `json:"profileIds"`
	Title      string   `json:"title"`
	StartDate  string   `json:"startDate"`
	EndDate    string   `json:"endDate"`
	Timezone   string   `json:"timezone"`
	StartTime  string   `json:"startTime"`
	EndTime    string   `json:"endTime"`
	CreatedAt  string   `json:"createdAt"`
	UpdatedAt  string   `json:"updatedAt"`

	// Display is only set when the list request named a display timezone.
	Display *EventDisplay `json:"display,omitempty"`
}

// EventDisplay carries the human-readable rendering of an event.
type EventDisplay struct {
	Timezone string `json:"timezone"`
	Title    string `json:"title"`
	Range    string `json:"range"`
}

// CreateEventRequest is the body of POST /events.
type CreateEventRequest struct {
	ProfileIDs []string `json:"profileIds"`
	Title      string   `json:"title"`
	Timezone   string   `json:"timezone"`
	StartDate  string   `json:"startDate"`
	EndDate    string   `json:"endDate"`
	StartTime  string   `json:"startTime"`
	EndTime    string   `json:"endTime"`
}

// UpdateEventRequest is the body of PATCH /events/{id}.
type UpdateEventRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Timezone  string `json:"timezone"`
}

// DeleteResponse is the body of DELETE /events/{id}.
type DeleteResponse struct {
	Success bool `json:"success"`
}

// listEventsParams holds the optional query parameters shared by
// GET /events and GET /events/export.
type listEventsParams struct {
	ProfileID       *string
	DisplayTimezone *string
}

// CreateEvent handles POST /events.
func (s *Server) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var body CreateEventRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	created, err := s.events.Create(r.Context(), requestToDraft(body))
	if err != nil {
		s.writeServiceError(w, r, err, "event not found")
		return
	}
	writeJSON(w, http.StatusCreated, eventToResponse(created))
}

// ListEvents handles GET /events.
// Supports ?profileId= to filter by membership and ?displayTimezone= to
// attach a rendered range to every event.
func (s *Server) ListEvents(w http.ResponseWriter, r *http.Request) {
	params, err := bindListParams(r.URL.Query())
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	events, err := s.events.List(r.Context(), deref(params.ProfileID))
	if err != nil {
		s.writeServiceError(w, r, err, "event not found")
		return
	}

	out := make([]Event, len(events))
	for i, e := range events {
		out[i] = eventToResponse(e)
		if params.DisplayTimezone != nil && *params.DisplayTimezone != "" {
			label := *params.DisplayTimezone
			out[i].Display = &EventDisplay{
				Timezone: label,
				Title:    display.Title(e),
				Range:    display.Range(e, label),
			}
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// UpdateEvent handles PATCH /events/{id}.
// Only startDate, endDate and timezone are revisable.
func (s *Server) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var body UpdateEventRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	updated, err := s.events.Reschedule(r.Context(), chi.URLParam(r, "id"), domain.ScheduleDraft{
		StartDate: body.StartDate,
		EndDate:   body.EndDate,
		Timezone:  body.Timezone,
	})
	if err != nil {
		s.writeServiceError(w, r, err, "event not found")
		return
	}
	writeJSON(w, http.StatusOK, eventToResponse(updated))
}

// DeleteEvent handles DELETE /events/{id}.
// Reports success whether or not the event existed.
func (s *Server) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := s.events.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeServiceError(w, r, err, "event not found")
		return
	}
	writeJSON(w, http.StatusOK, DeleteResponse{Success: true})
}

// --- mapping helpers --------------------------------------------------------

func bindListParams(query url.Values) (listEventsParams, error) {
	var params listEventsParams
	if err := runtime.BindQueryParameter("form", true, false, "profileId", query, &params.ProfileID); err != nil {
		return listEventsParams{}, err
	}
	if err := runtime.BindQueryParameter("form", true, false, "displayTimezone", query, &params.DisplayTimezone); err != nil {
		return listEventsParams{}, err
	}
	return params, nil
}

func requestToDraft(body CreateEventRequest) domain.EventDraft {
	return domain.EventDraft{
		ProfileIDs: body.ProfileIDs,
		Title:      body.Title,
		Timezone:   body.Timezone,
		StartDate:  body.StartDate,
		EndDate:    body.EndDate,
		StartTime:  body.StartTime,
		EndTime:    body.EndTime,
	}
}

// eventToResponse converts a domain.Event into its wire form.
// ProfileIDs is never encoded as null.
func eventToResponse(e domain.Event) Event {
	profileIDs := e.ProfileIDs
	if profileIDs == nil {
		profileIDs = []string{}
	}
	return Event{
		ID:         e.ID,
		ProfileIDs: profileIDs,
		Title:      e.Title,
		StartDate:  formatTimestamp(e.StartDate),
		EndDate:    formatTimestamp(e.EndDate),
		Timezone:   e.Timezone,
		StartTime:  e.StartTime,
		EndTime:    e.EndTime,
		CreatedAt:  formatTimestamp(e.CreatedAt),
		UpdatedAt:  formatTimestamp(e.UpdatedAt),
	}
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
