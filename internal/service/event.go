// Package service contains the business logic for the event scheduler.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No storage code lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkordes/tzevents/backend/internal/domain"
	"github.com/pkordes/tzevents/backend/internal/repo"
	"github.com/pkordes/tzevents/backend/internal/timezone"
)

// EventService implements business logic for Event operations.
type EventService struct {
	repo   repo.EventRepo
	log    *slog.Logger
	strict bool
}

// EventOption configures an EventService.
type EventOption func(*EventService)

// WithStrictTimezones makes Create and Reschedule reject labels that are not
// in the timezone catalog. By default unknown labels are stored as given and
// render in UTC.
func WithStrictTimezones(strict bool) EventOption {
	return func(s *EventService) { s.strict = strict }
}

// WithEventLogger sets the logger used to record rejected mutations.
func WithEventLogger(log *slog.Logger) EventOption {
	return func(s *EventService) { s.log = log }
}

// NewEventService constructs an EventService backed by the provided EventRepo.
func NewEventService(r repo.EventRepo, opts ...EventOption) *EventService {
	s := &EventService{repo: r, log: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates and persists a new event.
// Returns domain.ErrNoProfileSelected when no profile ids are given, otherwise
// the schedule validation result (domain.ErrMalformedInstant or
// domain.ErrEndNotAfterStart). Nothing is stored on failure.
func (s *EventService) Create(ctx context.Context, draft domain.EventDraft) (domain.Event, error) {
	if len(draft.ProfileIDs) == 0 {
		return domain.Event{}, s.reject(ctx, "create", fmt.Errorf("service.EventService.Create: %w", domain.ErrNoProfileSelected))
	}
	start, end, err := domain.ParseSchedule(draft.StartDate, draft.EndDate)
	if err != nil {
		return domain.Event{}, s.reject(ctx, "create", fmt.Errorf("service.EventService.Create: %w", err))
	}
	label, err := s.timezoneLabel(draft.Timezone)
	if err != nil {
		return domain.Event{}, s.reject(ctx, "create", fmt.Errorf("service.EventService.Create: %w", err))
	}

	title := strings.TrimSpace(draft.Title)
	if title == "" {
		title = domain.DefaultEventTitle
	}

	event := domain.Event{
		ProfileIDs: draft.ProfileIDs,
		Title:      title,
		StartDate:  start,
		EndDate:    end,
		Timezone:   label,
		StartTime:  draft.StartTime,
		EndTime:    draft.EndTime,
	}
	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("service.EventService.Create: %w", err)
	}
	return created, nil
}

// List returns events in creation order, filtered to those referencing
// profileID when it is non-empty. Always returns a non-nil slice so callers
// can safely range over it.
func (s *EventService) List(ctx context.Context, profileID string) ([]domain.Event, error) {
	events, err := s.repo.List(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("service.EventService.List: %w", err)
	}
	if events == nil {
		return []domain.Event{}, nil
	}
	return events, nil
}

// Reschedule revises the start, end and timezone of an existing event.
// Returns domain.ErrNotFound when the event does not exist; that check comes
// before validation. A rejected range leaves the stored event untouched.
func (s *EventService) Reschedule(ctx context.Context, id string, draft domain.ScheduleDraft) (domain.Event, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return domain.Event{}, fmt.Errorf("service.EventService.Reschedule: %w", err)
	}
	start, end, err := domain.ParseSchedule(draft.StartDate, draft.EndDate)
	if err != nil {
		return domain.Event{}, s.reject(ctx, "reschedule", fmt.Errorf("service.EventService.Reschedule: %w", err))
	}
	label, err := s.timezoneLabel(draft.Timezone)
	if err != nil {
		return domain.Event{}, s.reject(ctx, "reschedule", fmt.Errorf("service.EventService.Reschedule: %w", err))
	}

	updated, err := s.repo.Reschedule(ctx, id, domain.Schedule{Start: start, End: end, Timezone: label})
	if err != nil {
		return domain.Event{}, fmt.Errorf("service.EventService.Reschedule: %w", err)
	}
	return updated, nil
}

// Delete removes an event. Deleting an unknown id succeeds.
func (s *EventService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.EventService.Delete: %w", err)
	}
	return nil
}

// timezoneLabel applies the default for blank labels and, in strict mode,
// rejects labels outside the catalog.
func (s *EventService) timezoneLabel(label string) (string, error) {
	if strings.TrimSpace(label) == "" {
		return timezone.Default, nil
	}
	if s.strict && !timezone.Known(label) {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownTimezone, label)
	}
	return label, nil
}

func (s *EventService) reject(ctx context.Context, op string, err error) error {
	s.log.DebugContext(ctx, "event rejected", "op", op, "error", err)
	return err
}
