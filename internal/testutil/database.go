// Package testutil provides shared helpers for tests that need a real
// database. Storage is backed by a SQLite file in a per-test temp
// directory, so tests stay isolated and parallel-safe.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/chk2chk/chk2chk/internal/model"
	"github.com/chk2chk/chk2chk/internal/storage"
)

// TestDB wraps a migrated SQLiteStorage with seed helpers.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
}

// SetupTestDB creates a fresh migrated database in a temp directory.
// Cleanup is registered automatically.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{Storage: store, t: t}
}

// SeedCategory inserts a category and fails the test on error.
func (db *TestDB) SeedCategory(ctx context.Context, name string) model.Category {
	db.t.Helper()

	cat, err := db.Storage.CreateCategory(ctx, model.Category{
		Name:  name,
		Color: "#64748B",
		Icon:  "tag",
	})
	if err != nil {
		db.t.Fatalf("failed to seed category %q: %v", name, err)
	}
	return *cat
}

// SeedEnvelope inserts an envelope with the given amounts.
func (db *TestDB) SeedEnvelope(ctx context.Context, name string, allocated, spent float64) model.Envelope {
	db.t.Helper()

	env, err := db.Storage.CreateEnvelope(ctx, model.Envelope{
		Name:            name,
		AllocatedAmount: allocated,
		SpentAmount:     spent,
		Balance:         allocated - spent,
	})
	if err != nil {
		db.t.Fatalf("failed to seed envelope %q: %v", name, err)
	}
	return *env
}
