package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tzevents/backend/internal/domain"
	"github.com/pkordes/tzevents/backend/internal/repo"
)

// The functions in this file describe behaviour every EventRepo and
// ProfileRepo implementation must share. memory_test.go and postgres_test.go
// run them against their own constructors.

// eventFixture returns an event owned by the given profiles with a one hour range.
// Profile ids are unique per test so assertions are not disturbed by rows
// that other tests left in a shared database.
func eventFixture(profileIDs ...string) domain.Event {
	start := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	return domain.Event{
		ProfileIDs: profileIDs,
		Title:      "Team Meeting",
		StartDate:  start,
		EndDate:    start.Add(time.Hour),
		Timezone:   "UTC",
		StartTime:  "09:00",
		EndTime:    "10:00",
	}
}

func ids(events []domain.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.ID
	}
	return out
}

func testEventRepoContract(t *testing.T, newRepo func(t *testing.T) repo.EventRepo) {
	t.Run("Create", func(t *testing.T) {
		r := newRepo(t)
		input := eventFixture(uuid.NewString())

		got, err := r.Create(context.Background(), input)

		require.NoError(t, err)
		assert.NotEmpty(t, got.ID)
		assert.Equal(t, input.ProfileIDs, got.ProfileIDs)
		assert.Equal(t, input.Title, got.Title)
		assert.True(t, got.StartDate.Equal(input.StartDate))
		assert.True(t, got.EndDate.Equal(input.EndDate))
		assert.Equal(t, input.Timezone, got.Timezone)
		assert.Equal(t, "09:00", got.StartTime)
		assert.Equal(t, "10:00", got.EndTime)
		assert.False(t, got.CreatedAt.IsZero())
		assert.True(t, got.CreatedAt.Equal(got.UpdatedAt), "createdAt must equal updatedAt on create")
	})

	t.Run("Create_AssignsDistinctIDs", func(t *testing.T) {
		r := newRepo(t)
		seen := map[string]bool{}
		for range 10 {
			e, err := r.Create(context.Background(), eventFixture(uuid.NewString()))
			require.NoError(t, err)
			assert.False(t, seen[e.ID], "duplicate id %s", e.ID)
			seen[e.ID] = true
		}
	})

	t.Run("Create_KeepsDuplicateProfileIDs", func(t *testing.T) {
		r := newRepo(t)
		p := uuid.NewString()

		got, err := r.Create(context.Background(), eventFixture(p, p))

		require.NoError(t, err)
		assert.Equal(t, []string{p, p}, got.ProfileIDs)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		r := newRepo(t)

		_, err := r.GetByID(context.Background(), uuid.NewString())

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("List_FiltersByMembershipInCreationOrder", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()
		alice, bob, carol := uuid.NewString(), uuid.NewString(), uuid.NewString()

		e1, err := r.Create(ctx, eventFixture(alice))
		require.NoError(t, err)
		e2, err := r.Create(ctx, eventFixture(bob, alice))
		require.NoError(t, err)
		e3, err := r.Create(ctx, eventFixture(bob))
		require.NoError(t, err)

		forAlice, err := r.List(ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, []string{e1.ID, e2.ID}, ids(forAlice))

		forBob, err := r.List(ctx, bob)
		require.NoError(t, err)
		assert.Equal(t, []string{e2.ID, e3.ID}, ids(forBob))

		forCarol, err := r.List(ctx, carol)
		require.NoError(t, err)
		assert.NotNil(t, forCarol, "an empty result is an empty slice, not nil")
		assert.Empty(t, forCarol)

		all, err := r.List(ctx, "")
		require.NoError(t, err)
		assert.Subset(t, ids(all), []string{e1.ID, e2.ID, e3.ID})
	})

	t.Run("List_AfterDeletes", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()
		p := uuid.NewString()

		var created []string
		for range 4 {
			e, err := r.Create(ctx, eventFixture(p))
			require.NoError(t, err)
			created = append(created, e.ID)
		}
		require.NoError(t, r.Delete(ctx, created[1]))
		e, err := r.Create(ctx, eventFixture(p))
		require.NoError(t, err)

		got, err := r.List(ctx, p)

		require.NoError(t, err)
		assert.Equal(t, []string{created[0], created[2], created[3], e.ID}, ids(got))
	})

	t.Run("Reschedule", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()
		created, err := r.Create(ctx, eventFixture(uuid.NewString()))
		require.NoError(t, err)

		newStart := time.Date(2025, 2, 1, 15, 0, 0, 0, time.UTC)
		got, err := r.Reschedule(ctx, created.ID, domain.Schedule{
			Start:    newStart,
			End:      newStart.Add(2 * time.Hour),
			Timezone: "JST (Japan)",
		})

		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.True(t, got.StartDate.Equal(newStart))
		assert.True(t, got.EndDate.Equal(newStart.Add(2*time.Hour)))
		assert.Equal(t, "JST (Japan)", got.Timezone)
		assert.Equal(t, created.Title, got.Title)
		assert.Equal(t, created.ProfileIDs, got.ProfileIDs)
		assert.Equal(t, created.StartTime, got.StartTime)
		assert.Equal(t, created.EndTime, got.EndTime)
		assert.True(t, created.CreatedAt.Equal(got.CreatedAt))
		assert.False(t, got.UpdatedAt.Before(created.UpdatedAt))

		stored, err := r.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, got, stored)
	})

	t.Run("Reschedule_NotFound", func(t *testing.T) {
		r := newRepo(t)
		start := time.Date(2025, 2, 1, 15, 0, 0, 0, time.UTC)

		_, err := r.Reschedule(context.Background(), uuid.NewString(), domain.Schedule{
			Start: start, End: start.Add(time.Hour), Timezone: "UTC",
		})

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()
		created, err := r.Create(ctx, eventFixture(uuid.NewString()))
		require.NoError(t, err)

		require.NoError(t, r.Delete(ctx, created.ID))

		_, err = r.GetByID(ctx, created.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound, "event should be gone after delete")
	})

	t.Run("Delete_MissingIsNoOp", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()
		p := uuid.NewString()
		kept, err := r.Create(ctx, eventFixture(p))
		require.NoError(t, err)

		require.NoError(t, r.Delete(ctx, uuid.NewString()))
		require.NoError(t, r.Delete(ctx, uuid.NewString()), "repeated deletes stay successful")

		got, err := r.List(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, []string{kept.ID}, ids(got))
	})
}

func testProfileRepoContract(t *testing.T, newRepo func(t *testing.T) repo.ProfileRepo) {
	t.Run("Create", func(t *testing.T) {
		r := newRepo(t)

		got, err := r.Create(context.Background(), domain.Profile{Name: "Alice", Timezone: "Eastern Time (ET)"})

		require.NoError(t, err)
		assert.NotEmpty(t, got.ID)
		assert.Equal(t, "Alice", got.Name)
		assert.Equal(t, "Eastern Time (ET)", got.Timezone)
	})

	t.Run("List_CreationOrder", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		a, err := r.Create(ctx, domain.Profile{Name: "Alice", Timezone: "UTC"})
		require.NoError(t, err)
		b, err := r.Create(ctx, domain.Profile{Name: "Bob", Timezone: "UTC"})
		require.NoError(t, err)
		require.NotEqual(t, a.ID, b.ID)

		got, err := r.List(ctx)
		require.NoError(t, err)

		var order []string
		for _, p := range got {
			if p.ID == a.ID || p.ID == b.ID {
				order = append(order, p.ID)
			}
		}
		assert.Equal(t, []string{a.ID, b.ID}, order)
	})
}
