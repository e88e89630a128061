// Package testutil holds the Postgres helpers shared by the integration tests
// of the repo and migrations packages. Every helper reads TEST_DATABASE_URL
// and skips (or, in TestMain, reports) when it is unset, so `go test ./...`
// passes on a machine without a database and exercises only the memory store.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql

	"github.com/pkordes/tzevents/backend/migrations"
)

// DSNEnv names the variable holding the integration database URL.
const DSNEnv = "TEST_DATABASE_URL"

// NewPool returns a pgx pool for the integration database, closed when t ends.
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	pool, err := pgxpool.New(context.Background(), requireDSN(t))
	if err != nil {
		t.Fatalf("testutil.NewPool: open pool: %v", err)
	}
	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		t.Fatalf("testutil.NewPool: ping: %v", err)
	}

	t.Cleanup(pool.Close)
	return pool
}

// NewTx begins a transaction that is rolled back when t ends. Pass it to
// repo.NewEventRepo / repo.NewProfileRepo: each test sees an empty schema and
// leaves nothing behind, so the store contracts can assume a fresh database.
// Note that now() is fixed for the whole transaction.
func NewTx(t *testing.T) pgx.Tx {
	t.Helper()

	tx, err := NewPool(t).Begin(context.Background())
	if err != nil {
		t.Fatalf("testutil.NewTx: begin: %v", err)
	}
	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})
	return tx
}

// NewSQLDB returns a database/sql handle on the pgx driver, for goose.
// Closed when t ends.
func NewSQLDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := openSQLDB(requireDSN(t))
	if err != nil {
		t.Fatalf("testutil.NewSQLDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// MigrateUp applies the embedded migrations to the integration database.
// It is meant for TestMain, which has no *testing.T: it returns ok=false
// without touching anything when TEST_DATABASE_URL is unset.
func MigrateUp(ctx context.Context) (ok bool, err error) {
	dsn := os.Getenv(DSNEnv)
	if dsn == "" {
		return false, nil
	}
	db, err := openSQLDB(dsn)
	if err != nil {
		return false, fmt.Errorf("testutil.MigrateUp: %w", err)
	}
	defer db.Close()

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := migrations.Up(ctx, db, quiet); err != nil {
		return false, fmt.Errorf("testutil.MigrateUp: %w", err)
	}
	return true, nil
}

func openSQLDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return db, nil
}

func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv(DSNEnv)
	if dsn == "" {
		t.Skip(DSNEnv + " not set; skipping integration test")
	}
	return dsn
}
