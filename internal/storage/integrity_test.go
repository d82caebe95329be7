package storage

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chk2chk/chk2chk/internal/model"
)

func TestValidateDataIntegrity(t *testing.T) {
	ctx := context.Background()

	t.Run("empty database is valid", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		report, err := store.ValidateDataIntegrity(ctx)
		require.NoError(t, err)
		assert.True(t, report.Valid)
		assert.Empty(t, report.Errors)
	})

	t.Run("consistent data is valid", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		cat, err := store.CreateCategory(ctx, model.Category{Name: "Food", Color: "#EF4444"})
		require.NoError(t, err)
		_, err = store.CreateExpense(ctx, model.Expense{
			Date: "2026-02-01", Amount: 10, CategoryID: cat.ID, Description: "Lunch",
		})
		require.NoError(t, err)
		_, err = store.CreateEnvelope(ctx, model.Envelope{
			Name: "Food", AllocatedAmount: 200, SpentAmount: 50, Balance: 150,
		})
		require.NoError(t, err)

		report, err := store.ValidateDataIntegrity(ctx)
		require.NoError(t, err)
		assert.True(t, report.Valid)
	})

	t.Run("flags incorrect envelope balance", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		env, err := store.CreateEnvelope(ctx, model.Envelope{
			Name: "Broken", AllocatedAmount: 200, SpentAmount: 50, Balance: 999,
		})
		require.NoError(t, err)

		report, err := store.ValidateDataIntegrity(ctx)
		require.NoError(t, err)
		assert.False(t, report.Valid)
		require.Len(t, report.Errors, 1)
		assert.Equal(t,
			fmt.Sprintf("envelope %s has incorrect balance calculation", env.ID),
			report.Errors[0])
	})

	t.Run("balance within epsilon passes", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		_, err := store.CreateEnvelope(ctx, model.Envelope{
			Name: "Rounded", AllocatedAmount: 200, SpentAmount: 50, Balance: 150.005,
		})
		require.NoError(t, err)

		report, err := store.ValidateDataIntegrity(ctx)
		require.NoError(t, err)
		assert.True(t, report.Valid)
	})

	t.Run("flags dangling expense category", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		exp, err := store.CreateExpense(ctx, model.Expense{
			Date: "2026-02-01", Amount: 10, CategoryID: "ghost", Description: "Lunch",
		})
		require.NoError(t, err)

		report, err := store.ValidateDataIntegrity(ctx)
		require.NoError(t, err)
		assert.False(t, report.Valid)
		require.Len(t, report.Errors, 1)
		assert.Equal(t,
			fmt.Sprintf("expense %s references non-existent category ghost", exp.ID),
			report.Errors[0])
	})

	t.Run("accumulates multiple problems", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		_, err := store.CreateEnvelope(ctx, model.Envelope{
			Name: "Broken", AllocatedAmount: 100, SpentAmount: 0, Balance: 42,
		})
		require.NoError(t, err)
		_, err = store.CreateExpense(ctx, model.Expense{
			Date: "2026-02-01", Amount: 10, CategoryID: "ghost", Description: "Lunch",
		})
		require.NoError(t, err)

		report, err := store.ValidateDataIntegrity(ctx)
		require.NoError(t, err)
		assert.False(t, report.Valid)
		assert.Len(t, report.Errors, 2)
	})
}
