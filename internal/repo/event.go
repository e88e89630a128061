// Package repo contains all storage logic for the event scheduler.
// Each resource has its own file with an interface and a Postgres implementation;
// memory.go provides an in-process implementation of the same interfaces.
// No business logic lives here; only storage and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/tzevents/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// EventRepo defines the persistence operations for Events.
// The service layer depends on this interface, not a concrete implementation.
type EventRepo interface {
	// Create stores a new event and returns the persisted record with ID,
	// CreatedAt and UpdatedAt populated. CreatedAt equals UpdatedAt.
	Create(ctx context.Context, event domain.Event) (domain.Event, error)

	// GetByID retrieves a single event.
	// Returns domain.ErrNotFound if no event with that ID exists.
	GetByID(ctx context.Context, id string) (domain.Event, error)

	// List returns events in creation order. When profileID is non-empty only
	// events whose ProfileIDs contain it are returned.
	List(ctx context.Context, profileID string) ([]domain.Event, error)

	// Reschedule replaces start, end and timezone and restamps UpdatedAt,
	// leaving every other field untouched.
	// Returns domain.ErrNotFound if no event with that ID exists.
	Reschedule(ctx context.Context, id string, s domain.Schedule) (domain.Event, error)

	// Delete removes an event by ID. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error
}

// newID returns a fresh, time-ordered identifier.
func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// pgEventRepo is the Postgres implementation of EventRepo.
type pgEventRepo struct {
	db db
}

// NewEventRepo constructs an EventRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewEventRepo(db db) EventRepo {
	return &pgEventRepo{db: db}
}

const eventColumns = `id, profile_ids, title, start_date, end_date, timezone, start_time, end_time, created_at, updated_at`

// Create inserts a new event row and returns the full persisted record.
func (r *pgEventRepo) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	id, err := newID()
	if err != nil {
		return domain.Event{}, fmt.Errorf("repo.EventRepo.Create: id: %w", err)
	}

	const q = `
		INSERT INTO events (id, profile_ids, title, start_date, end_date, timezone, start_time, end_time)
		VALUES (@id, @profile_ids, @title, @start_date, @end_date, @timezone, @start_time, @end_time)
		RETURNING ` + eventColumns

	args := pgx.NamedArgs{
		"id":          id,
		"profile_ids": event.ProfileIDs,
		"title":       event.Title,
		"start_date":  event.StartDate,
		"end_date":    event.EndDate,
		"timezone":    event.Timezone,
		"start_time":  event.StartTime,
		"end_time":    event.EndTime,
	}

	result, err := scanEvent(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Event{}, fmt.Errorf("repo.EventRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves an event by primary key.
func (r *pgEventRepo) GetByID(ctx context.Context, id string) (domain.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM events WHERE id = @id`

	result, err := scanEvent(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Event{}, fmt.Errorf("repo.EventRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns events in insertion order, optionally filtered by membership.
// The GIN index on profile_ids serves the array containment filter.
func (r *pgEventRepo) List(ctx context.Context, profileID string) ([]domain.Event, error) {
	const q = `
		SELECT ` + eventColumns + `
		FROM events
		WHERE @profile_id::text = '' OR profile_ids @> ARRAY[@profile_id::text]
		ORDER BY seq`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"profile_id": profileID})
	if err != nil {
		return nil, fmt.Errorf("repo.EventRepo.List: %w", err)
	}
	defer rows.Close()

	events := []domain.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.EventRepo.List: scan: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.EventRepo.List: rows: %w", err)
	}
	return events, nil
}

// Reschedule overwrites the schedule fields of an event in a single statement.
func (r *pgEventRepo) Reschedule(ctx context.Context, id string, s domain.Schedule) (domain.Event, error) {
	const q = `
		UPDATE events
		SET start_date = @start_date,
		    end_date   = @end_date,
		    timezone   = @timezone,
		    updated_at = now()
		WHERE id = @id
		RETURNING ` + eventColumns

	args := pgx.NamedArgs{
		"id":         id,
		"start_date": s.Start,
		"end_date":   s.End,
		"timezone":   s.Timezone,
	}

	result, err := scanEvent(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Event{}, fmt.Errorf("repo.EventRepo.Reschedule: %w", err)
	}
	return result, nil
}

// Delete removes an event by primary key. Zero affected rows is success.
func (r *pgEventRepo) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM events WHERE id = @id`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id}); err != nil {
		return fmt.Errorf("repo.EventRepo.Delete: %w", err)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan helpers
// to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanEvent maps a single database row into a domain.Event.
// Timestamps are normalized to UTC so both stores return identical values.
func scanEvent(s scanner) (domain.Event, error) {
	var e domain.Event

	err := s.Scan(&e.ID, &e.ProfileIDs, &e.Title, &e.StartDate, &e.EndDate,
		&e.Timezone, &e.StartTime, &e.EndTime, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Event{}, domain.ErrNotFound
		}
		return domain.Event{}, err
	}

	e.StartDate = e.StartDate.UTC()
	e.EndDate = e.EndDate.UTC()
	e.CreatedAt = e.CreatedAt.UTC()
	e.UpdatedAt = e.UpdatedAt.UTC()
	return e, nil
}
