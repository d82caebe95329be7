package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chk2chk/chk2chk/internal/model"
)

func seedFullDataset(t *testing.T, ctx context.Context, store *SQLiteStorage) {
	t.Helper()

	cat, err := store.CreateCategory(ctx, model.Category{Name: "Food", Color: "#EF4444", Icon: "🍔"})
	require.NoError(t, err)

	_, err = store.CreateIncome(ctx, model.Income{Date: "2026-01-05", Source: "Salary", Amount: 3000})
	require.NoError(t, err)
	_, err = store.CreateIncome(ctx, model.Income{Date: "2026-02-05", Source: "Salary", Amount: 3000})
	require.NoError(t, err)

	_, err = store.CreateExpense(ctx, model.Expense{
		Date: "2026-01-20", Amount: 55.20, CategoryID: cat.ID,
		Description: "Groceries", Tags: []string{"food"},
	})
	require.NoError(t, err)

	_, err = store.CreateEnvelope(ctx, model.Envelope{
		Name: "Rent", AllocatedAmount: 1200, SpentAmount: 1200, Balance: 0,
	})
	require.NoError(t, err)

	_, err = store.CreateBill(ctx, model.Bill{
		Name: "Electricity", Amount: 90, DueDate: "15",
		Frequency: model.BillMonthly, CategoryID: cat.ID,
	})
	require.NoError(t, err)

	_, err = store.CreateDebt(ctx, model.DebtAccount{
		Name: "Visa", Type: model.DebtCreditCard, Balance: 450, MinimumPayment: 35,
	})
	require.NoError(t, err)

	_, err = store.CreateRecurring(ctx, model.RecurringTransaction{
		Type: model.RecurringExpense, Frequency: model.RecurMonthly,
		CategoryID: cat.ID, NextDate: "2026-03-01", Amount: 15.99, IsActive: true,
	})
	require.NoError(t, err)

	_, err = store.UpdateSettings(ctx, model.SettingsPatch{})
	require.NoError(t, err)
}

func TestExportAllData(t *testing.T) {
	ctx := context.Background()

	t.Run("snapshot shape and metadata", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()
		seedFullDataset(t, ctx, store)

		snapshot, err := store.ExportAllData(ctx)
		require.NoError(t, err)

		assert.Equal(t, model.SnapshotVersion, snapshot.Version)
		assert.NotEmpty(t, snapshot.ExportedAt)
		assert.Len(t, snapshot.Income, 2)
		assert.Len(t, snapshot.Expenses, 1)
		assert.Len(t, snapshot.Envelopes, 1)
		assert.Len(t, snapshot.Bills, 1)
		assert.Len(t, snapshot.Debts, 1)
		assert.Len(t, snapshot.Categories, 1)
		assert.Len(t, snapshot.RecurringTransactions, 1)
		assert.NotEmpty(t, snapshot.User.Settings.ID)

		// 2 income + 1 expense + 1 envelope + 1 bill + 1 debt + 1 category
		// + 1 recurring; settings are not counted.
		assert.Equal(t, 8, snapshot.Metadata.TotalRecords)
		assert.Equal(t, "2026-01-05", snapshot.Metadata.DateRange.Start)
		assert.Equal(t, "2026-02-05", snapshot.Metadata.DateRange.End)
		assert.True(t, strings.HasPrefix(snapshot.Metadata.Checksum, "8-"))
	})

	t.Run("empty database exports empty arrays not nil", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		snapshot, err := store.ExportAllData(ctx)
		require.NoError(t, err)

		assert.NotNil(t, snapshot.Income)
		assert.NotNil(t, snapshot.Expenses)
		assert.NotNil(t, snapshot.Envelopes)
		assert.NotNil(t, snapshot.Categories)
		assert.Equal(t, 0, snapshot.Metadata.TotalRecords)
		// Both date bounds fall back to the export instant.
		assert.Equal(t, snapshot.Metadata.DateRange.Start, snapshot.Metadata.DateRange.End)
		// Settings are synthesized so a restore always has a record.
		assert.Equal(t, "USD", snapshot.User.Settings.Currency)
		assert.NotEmpty(t, snapshot.User.Settings.ID)
	})
}

func TestImportAllData(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip preserves every record exactly", func(t *testing.T) {
		source, cleanupSource := createTestStorage(t)
		defer cleanupSource()
		seedFullDataset(t, ctx, source)

		snapshot, err := source.ExportAllData(ctx)
		require.NoError(t, err)

		target, cleanupTarget := createTestStorage(t)
		defer cleanupTarget()

		require.NoError(t, target.ImportAllData(ctx, snapshot))

		restored, err := target.ExportAllData(ctx)
		require.NoError(t, err)

		// Ids, timestamps, and every field must match the original export.
		assert.Equal(t, snapshot.Income, restored.Income)
		assert.Equal(t, snapshot.Expenses, restored.Expenses)
		assert.Equal(t, snapshot.Envelopes, restored.Envelopes)
		assert.Equal(t, snapshot.Bills, restored.Bills)
		assert.Equal(t, snapshot.Debts, restored.Debts)
		assert.Equal(t, snapshot.Categories, restored.Categories)
		assert.Equal(t, snapshot.RecurringTransactions, restored.RecurringTransactions)
		assert.Equal(t, snapshot.User.Settings, restored.User.Settings)
	})

	t.Run("import replaces existing data", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()
		seedFullDataset(t, ctx, store)

		snapshot, err := store.ExportAllData(ctx)
		require.NoError(t, err)
		snapshot.Income = snapshot.Income[:1]

		require.NoError(t, store.ImportAllData(ctx, snapshot))

		incomes, err := store.GetAllIncomes(ctx)
		require.NoError(t, err)
		assert.Len(t, incomes, 1)
	})

	t.Run("failed import leaves existing data untouched", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()
		seedFullDataset(t, ctx, store)

		before, err := store.GetAllIncomes(ctx)
		require.NoError(t, err)

		// Duplicate primary keys force the insert phase to fail mid-way.
		bad, err := store.ExportAllData(ctx)
		require.NoError(t, err)
		bad.Income = append(bad.Income, bad.Income[0])

		err = store.ImportAllData(ctx, bad)
		require.Error(t, err)

		after, err := store.GetAllIncomes(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("nil snapshot is rejected", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		err := store.ImportAllData(ctx, nil)
		assert.Error(t, err)
	})

	t.Run("settings without id are recreated with defaults", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		snapshot := &model.Snapshot{
			Version: model.SnapshotVersion,
			User: model.SnapshotUser{Settings: model.UserSettings{
				Currency: "GBP",
			}},
		}
		require.NoError(t, store.ImportAllData(ctx, snapshot))

		settings, err := store.GetSettings(ctx)
		require.NoError(t, err)
		require.NotNil(t, settings)
		assert.NotEmpty(t, settings.ID)
		assert.Equal(t, "GBP", settings.Currency)
		assert.Equal(t, model.PayWeekly, settings.PayFrequency)
		// The bool field carries over verbatim: an unset debtReminders
		// imports as false, not the default true.
		assert.False(t, settings.DebtReminders)
	})
}
