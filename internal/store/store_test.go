package store

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestOpenSetsWAL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	db, err := Open(DefaultOptions(path))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	var mode string
	if err := db.QueryRowContext(ctx, `PRAGMA journal_mode`).Scan(&mode); err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if !strings.EqualFold(mode, "wal") {
		t.Fatalf("expected WAL mode, got %q", mode)
	}
}

func TestOpenEmptyPathError(t *testing.T) {
	_, err := Open(DefaultOptions(""))
	if err == nil {
		t.Fatalf("expected empty path error")
	}
}

func TestOpenWithoutWALAndDefaultFallbacks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	opts := Options{
		Path:          path,
		EnableWAL:     false,
		BusyTimeoutMS: 0,
		MaxOpenConns:  0,
		MaxIdleConns:  -1,
	}
	db, err := Open(opts)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	var mode string
	if err := db.QueryRowContext(context.Background(), `PRAGMA journal_mode`).Scan(&mode); err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if strings.EqualFold(mode, "wal") {
		t.Fatalf("expected non-WAL journal mode when WAL disabled")
	}
}
