package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chk2chk/chk2chk/internal/common"
	"github.com/chk2chk/chk2chk/internal/model"
)

func TestIncomeCRUD(t *testing.T) {
	ctx := context.Background()

	t.Run("create assigns id and timestamps", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		created, err := store.CreateIncome(ctx, model.Income{
			Date:   "2026-02-01",
			Source: "Salary",
			Amount: 3200.50,
			Notes:  "February paycheck",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.False(t, created.CreatedAt.IsZero())
		assert.True(t, created.CreatedAt.Equal(created.UpdatedAt))
		assert.Equal(t, "Salary", created.Source)
		assert.InDelta(t, 3200.50, created.Amount, 0.001)
	})

	t.Run("create ignores caller-supplied id", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		created, err := store.CreateIncome(ctx, model.Income{
			ID:     "caller-chosen",
			Date:   "2026-02-01",
			Source: "Salary",
			Amount: 100,
		})
		require.NoError(t, err)
		assert.NotEqual(t, "caller-chosen", created.ID)
	})

	t.Run("get by id returns nil for unknown id", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		got, err := store.GetIncomeByID(ctx, "does-not-exist")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("get all returns empty slice on fresh database", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		all, err := store.GetAllIncomes(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("update merges only provided fields", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		created, err := store.CreateIncome(ctx, model.Income{
			Date:   "2026-02-01",
			Source: "Salary",
			Amount: 3200,
			Notes:  "keep me",
		})
		require.NoError(t, err)

		amount := 3300.0
		updated, err := store.UpdateIncome(ctx, created.ID, model.IncomePatch{Amount: &amount})
		require.NoError(t, err)

		assert.Equal(t, created.ID, updated.ID)
		assert.InDelta(t, 3300, updated.Amount, 0.001)
		assert.Equal(t, "Salary", updated.Source)
		assert.Equal(t, "keep me", updated.Notes)
		assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
		assert.True(t, updated.UpdatedAt.After(created.UpdatedAt) || updated.UpdatedAt.Equal(created.UpdatedAt))
	})

	t.Run("update unknown id returns not found", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		amount := 1.0
		_, err := store.UpdateIncome(ctx, "missing", model.IncomePatch{Amount: &amount})
		require.Error(t, err)
		assert.True(t, errors.Is(err, common.ErrNotFound))
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		created, err := store.CreateIncome(ctx, model.Income{
			Date:   "2026-02-01",
			Source: "Salary",
			Amount: 100,
		})
		require.NoError(t, err)

		require.NoError(t, store.DeleteIncome(ctx, created.ID))

		got, err := store.GetIncomeByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Nil(t, got)

		// Deleting again is not an error.
		require.NoError(t, store.DeleteIncome(ctx, created.ID))
		require.NoError(t, store.DeleteIncome(ctx, "never-existed"))
	})

	t.Run("nil context is rejected", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		//nolint:staticcheck // nil context on purpose
		_, err := store.GetAllIncomes(nil)
		assert.Error(t, err)
	})
}
