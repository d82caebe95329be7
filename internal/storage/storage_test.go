package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chk2chk/chk2chk/internal/model"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store, func() { _ = store.Close() }
}

func TestMigrate(t *testing.T) {
	ctx := context.Background()

	t.Run("fresh database reaches expected version", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		var version int
		err := store.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version)
		require.NoError(t, err)
		assert.Equal(t, ExpectedSchemaVersion, version)
	})

	t.Run("migrate is idempotent", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		require.NoError(t, store.Migrate(ctx))
		require.NoError(t, store.Migrate(ctx))
	})

	t.Run("all tables exist", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		tables := []string{"income", "expenses", "envelopes", "bills", "debts", "categories", "recurring", "settings"}
		for _, table := range tables {
			var name string
			err := store.db.QueryRowContext(ctx,
				"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
			require.NoError(t, err, "table %s should exist", table)
		}
	})
}

func TestNewSQLiteStorage(t *testing.T) {
	t.Run("creates parent directories", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "nested", "deeper", "test.db")
		store, err := NewSQLiteStorage(dbPath)
		require.NoError(t, err)
		defer func() { _ = store.Close() }()

		require.NoError(t, store.Migrate(context.Background()))
	})

	t.Run("rejects empty path", func(t *testing.T) {
		_, err := NewSQLiteStorage("")
		assert.Error(t, err)
	})
}

func TestTimestampRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	created, err := store.CreateIncome(ctx, model.Income{
		Date:   "2026-01-15",
		Source: "Paycheck",
		Amount: 2500,
	})
	require.NoError(t, err)

	retrieved, err := store.GetIncomeByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, retrieved)

	// Timestamps must survive storage byte for byte.
	assert.True(t, created.CreatedAt.Equal(retrieved.CreatedAt))
	assert.True(t, created.UpdatedAt.Equal(retrieved.UpdatedAt))
	assert.Equal(t, "UTC", retrieved.CreatedAt.Location().String())
}
