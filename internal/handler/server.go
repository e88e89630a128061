// Package handler implements the HTTP handlers for the event scheduler API.
// All handlers are methods on Server. Methods are split into resource files
// (health.go, profile.go, event.go, ...) but share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/tzevents/backend/internal/domain"
)

// ProfileServicer defines the business operations the profile handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the service or storage layers.
type ProfileServicer interface {
	Create(ctx context.Context, name string) (domain.Profile, error)
	List(ctx context.Context) ([]domain.Profile, error)
}

// EventServicer defines the business operations the event handlers depend on.
type EventServicer interface {
	Create(ctx context.Context, draft domain.EventDraft) (domain.Event, error)
	List(ctx context.Context, profileID string) ([]domain.Event, error)
	Reschedule(ctx context.Context, id string, draft domain.ScheduleDraft) (domain.Event, error)
	Delete(ctx context.Context, id string) error
}

// ExportServicer defines the operation the export handler depends on.
type ExportServicer interface {
	Export(ctx context.Context, profileID, displayTimezone string) ([]domain.ExportRow, error)
}

// Server holds the dependencies shared by every handler.
type Server struct {
	profiles ProfileServicer
	events   EventServicer
	export   ExportServicer
	log      *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(profiles ProfileServicer, events EventServicer, export ExportServicer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{profiles: profiles, events: events, export: export, log: log}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil, nil)
}

// Routes returns the API router. Cross-cutting middleware (request id,
// logging, CORS, ...) is applied by the caller in main.go.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Get("/timezones", s.ListTimezones)

	r.Route("/profiles", func(r chi.Router) {
		r.Get("/", s.ListProfiles)
		r.Post("/", s.CreateProfile)
	})

	r.Route("/events", func(r chi.Router) {
		r.Get("/", s.ListEvents)
		r.Post("/", s.CreateEvent)
		r.Get("/export", s.GetExport)
		r.Patch("/{id}", s.UpdateEvent)
		r.Delete("/{id}", s.DeleteEvent)
	})

	return r
}
