package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/tzevents/backend/internal/display"
	"github.com/pkordes/tzevents/backend/internal/domain"
	"github.com/pkordes/tzevents/backend/internal/repo"
	"github.com/pkordes/tzevents/backend/internal/timezone"
)

// ExportService assembles a flat export of events rendered in one timezone.
type ExportService struct {
	events repo.EventRepo
}

// NewExportService constructs an ExportService backed by the provided EventRepo.
func NewExportService(events repo.EventRepo) *ExportService {
	return &ExportService{events: events}
}

// Export returns one ExportRow per event, in creation order, optionally
// limited to events referencing profileID. A blank displayTimezone renders in
// the default label; unknown labels render in UTC.
func (s *ExportService) Export(ctx context.Context, profileID, displayTimezone string) ([]domain.ExportRow, error) {
	events, err := s.events.List(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	label := displayTimezone
	if strings.TrimSpace(label) == "" {
		label = timezone.Default
	}

	rows := make([]domain.ExportRow, 0, len(events))
	for _, e := range events {
		rows = append(rows, domain.ExportRow{
			EventID:         e.ID,
			Title:           display.Title(e),
			ProfileIDs:      e.ProfileIDs,
			StartDate:       e.StartDate,
			EndDate:         e.EndDate,
			Timezone:        e.Timezone,
			StartTime:       e.StartTime,
			EndTime:         e.EndTime,
			DisplayTimezone: label,
			DisplayZone:     timezone.ZoneID(label),
			DisplayRange:    display.Range(e, label),
		})
	}
	return rows, nil
}
