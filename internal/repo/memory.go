package repo

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/pkordes/tzevents/backend/internal/domain"
)

// MemoryOption configures the in-memory repos.
type MemoryOption func(*memoryConfig)

type memoryConfig struct {
	now func() time.Time
}

// WithClock overrides the time source used for CreatedAt and UpdatedAt.
func WithClock(now func() time.Time) MemoryOption {
	return func(c *memoryConfig) { c.now = now }
}

func newMemoryConfig(opts []MemoryOption) memoryConfig {
	c := memoryConfig{now: time.Now}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// memoryEventRepo keeps events in a slice ordered by creation.
// A single RWMutex makes every operation atomic; callers only ever see copies.
type memoryEventRepo struct {
	mu     sync.RWMutex
	cfg    memoryConfig
	events []domain.Event
}

// NewMemoryEventRepo constructs an EventRepo that lives in process memory.
// Its contents are lost when the process exits.
func NewMemoryEventRepo(opts ...MemoryOption) EventRepo {
	return &memoryEventRepo{cfg: newMemoryConfig(opts)}
}

func (r *memoryEventRepo) Create(_ context.Context, event domain.Event) (domain.Event, error) {
	id, err := newID()
	if err != nil {
		return domain.Event{}, fmt.Errorf("repo.EventRepo.Create: id: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.cfg.now().UTC()
	stored := event.Clone()
	stored.ID = id
	stored.StartDate = stored.StartDate.UTC()
	stored.EndDate = stored.EndDate.UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.events = append(r.events, stored)

	return stored.Clone(), nil
}

func (r *memoryEventRepo) GetByID(_ context.Context, id string) (domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return domain.Event{}, fmt.Errorf("repo.EventRepo.GetByID: %w", domain.ErrNotFound)
	}
	return r.events[i].Clone(), nil
}

func (r *memoryEventRepo) List(_ context.Context, profileID string) ([]domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Event, 0, len(r.events))
	for _, e := range r.events {
		if profileID == "" || e.HasProfile(profileID) {
			out = append(out, e.Clone())
		}
	}
	return out, nil
}

func (r *memoryEventRepo) Reschedule(_ context.Context, id string, s domain.Schedule) (domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return domain.Event{}, fmt.Errorf("repo.EventRepo.Reschedule: %w", domain.ErrNotFound)
	}

	e := &r.events[i]
	e.StartDate = s.Start.UTC()
	e.EndDate = s.End.UTC()
	e.Timezone = s.Timezone
	e.UpdatedAt = r.cfg.now().UTC()

	return e.Clone(), nil
}

func (r *memoryEventRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = slices.DeleteFunc(r.events, func(e domain.Event) bool { return e.ID == id })
	return nil
}

// indexOf must be called with r.mu held.
func (r *memoryEventRepo) indexOf(id string) int {
	return slices.IndexFunc(r.events, func(e domain.Event) bool { return e.ID == id })
}

// memoryProfileRepo keeps profiles in creation order.
type memoryProfileRepo struct {
	mu       sync.RWMutex
	profiles []domain.Profile
}

// NewMemoryProfileRepo constructs a ProfileRepo that lives in process memory.
func NewMemoryProfileRepo() ProfileRepo {
	return &memoryProfileRepo{}
}

func (r *memoryProfileRepo) Create(_ context.Context, profile domain.Profile) (domain.Profile, error) {
	id, err := newID()
	if err != nil {
		return domain.Profile{}, fmt.Errorf("repo.ProfileRepo.Create: id: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	profile.ID = id
	r.profiles = append(r.profiles, profile)
	return profile, nil
}

func (r *memoryProfileRepo) List(_ context.Context) ([]domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]domain.Profile{}, r.profiles...), nil
}
