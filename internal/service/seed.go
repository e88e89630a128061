package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pkordes/tzevents/backend/internal/domain"
	"github.com/pkordes/tzevents/backend/internal/repo"
	"github.com/pkordes/tzevents/backend/internal/timezone"
)

// isoMillis matches the wire format used for event instants.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// SeedDemo populates an empty store with two sample profiles and one event
// starting a day after now. It does nothing when any profile already exists,
// so it is safe to call on every start.
func SeedDemo(ctx context.Context, profiles repo.ProfileRepo, events *EventService, now time.Time, log *slog.Logger) error {
	existing, err := profiles.List(ctx)
	if err != nil {
		return fmt.Errorf("service.SeedDemo: %w", err)
	}
	if len(existing) > 0 {
		log.InfoContext(ctx, "demo seed skipped", "profiles", len(existing))
		return nil
	}

	alice, err := profiles.Create(ctx, domain.Profile{Name: "Alice Johnson", Timezone: timezone.Default})
	if err != nil {
		return fmt.Errorf("service.SeedDemo: alice: %w", err)
	}
	if _, err := profiles.Create(ctx, domain.Profile{Name: "Bob Smith", Timezone: "Pacific Time (PT)"}); err != nil {
		return fmt.Errorf("service.SeedDemo: bob: %w", err)
	}

	start := now.UTC().Add(24 * time.Hour)
	meeting, err := events.Create(ctx, domain.EventDraft{
		ProfileIDs: []string{alice.ID},
		Title:      "Team Meeting",
		Timezone:   timezone.Default,
		StartDate:  start.Format(isoMillis),
		EndDate:    start.Add(time.Hour).Format(isoMillis),
		StartTime:  "09:00",
		EndTime:    "10:00",
	})
	if err != nil {
		return fmt.Errorf("service.SeedDemo: event: %w", err)
	}

	log.InfoContext(ctx, "demo data seeded", "profile_id", alice.ID, "event_id", meeting.ID)
	return nil
}
