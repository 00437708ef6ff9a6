package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/benedict2310/fuzzstats/internal/store/migrations"
)

func TestRunMigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	db, err := Open(DefaultOptions(path))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := RunMigrations(ctx, db); err != nil {
		t.Fatalf("first RunMigrations() error = %v", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		t.Fatalf("second RunMigrations() error = %v", err)
	}

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&count); err != nil {
		t.Fatalf("query schema_migrations count: %v", err)
	}
	if count != len(migrations.All()) {
		t.Fatalf("expected %d applied migrations, got %d", len(migrations.All()), count)
	}
}

func TestRunMigrationsCreatesRunsTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	db, err := Open(DefaultOptions(path))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := RunMigrations(ctx, db); err != nil {
		t.Fatalf("RunMigrations() error = %v", err)
	}

	var name string
	err = db.QueryRowContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'runs'`).Scan(&name)
	if err != nil {
		t.Fatalf("expected runs table after migrations: %v", err)
	}
}

func TestRunMigrationsNilDB(t *testing.T) {
	if err := RunMigrations(context.Background(), nil); err == nil {
		t.Fatalf("expected nil db error")
	}
}

func TestRunMigrationsClosedDBError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	db, err := Open(DefaultOptions(path))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := RunMigrations(context.Background(), db); err == nil {
		t.Fatalf("expected migration failure for closed db")
	}
}
