package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/tzevents/backend/internal/domain"
	"github.com/pkordes/tzevents/backend/internal/repo"
	"github.com/pkordes/tzevents/backend/internal/timezone"
)

// ProfileService implements business logic for Profile operations.
type ProfileService struct {
	repo repo.ProfileRepo
}

// NewProfileService constructs a ProfileService backed by the provided ProfileRepo.
func NewProfileService(r repo.ProfileRepo) *ProfileService {
	return &ProfileService{repo: r}
}

// Create stores a profile under the trimmed name with the default timezone.
// Returns domain.ErrEmptyName when the name is blank.
func (s *ProfileService) Create(ctx context.Context, name string) (domain.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Profile{}, fmt.Errorf("service.ProfileService.Create: %w", domain.ErrEmptyName)
	}

	created, err := s.repo.Create(ctx, domain.Profile{Name: name, Timezone: timezone.Default})
	if err != nil {
		return domain.Profile{}, fmt.Errorf("service.ProfileService.Create: %w", err)
	}
	return created, nil
}

// List returns all profiles in creation order.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ProfileService) List(ctx context.Context) ([]domain.Profile, error) {
	profiles, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ProfileService.List: %w", err)
	}
	if profiles == nil {
		return []domain.Profile{}, nil
	}
	return profiles, nil
}
