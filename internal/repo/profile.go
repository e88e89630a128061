package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/tzevents/backend/internal/domain"
)

// ProfileRepo defines the persistence operations for Profiles.
// Profiles are never updated or deleted.
type ProfileRepo interface {
	// Create stores a new profile and returns it with a fresh ID.
	Create(ctx context.Context, profile domain.Profile) (domain.Profile, error)

	// List returns all profiles in creation order.
	List(ctx context.Context) ([]domain.Profile, error)
}

// pgProfileRepo is the Postgres implementation of ProfileRepo.
type pgProfileRepo struct {
	db db
}

// NewProfileRepo constructs a ProfileRepo backed by the provided db connection.
func NewProfileRepo(db db) ProfileRepo {
	return &pgProfileRepo{db: db}
}

func (r *pgProfileRepo) Create(ctx context.Context, profile domain.Profile) (domain.Profile, error) {
	id, err := newID()
	if err != nil {
		return domain.Profile{}, fmt.Errorf("repo.ProfileRepo.Create: id: %w", err)
	}

	const q = `
		INSERT INTO profiles (id, name, timezone)
		VALUES (@id, @name, @timezone)
		RETURNING id, name, timezone`

	args := pgx.NamedArgs{
		"id":       id,
		"name":     profile.Name,
		"timezone": profile.Timezone,
	}

	var p domain.Profile
	if err := r.db.QueryRow(ctx, q, args).Scan(&p.ID, &p.Name, &p.Timezone); err != nil {
		return domain.Profile{}, fmt.Errorf("repo.ProfileRepo.Create: %w", err)
	}
	return p, nil
}

func (r *pgProfileRepo) List(ctx context.Context) ([]domain.Profile, error) {
	const q = `SELECT id, name, timezone FROM profiles ORDER BY seq`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.ProfileRepo.List: %w", err)
	}

	profiles, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Profile, error) {
		var p domain.Profile
		err := row.Scan(&p.ID, &p.Name, &p.Timezone)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("repo.ProfileRepo.List: scan: %w", err)
	}
	return profiles, nil
}
