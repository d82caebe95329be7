package analytics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chk2chk/chk2chk/internal/model"
	"github.com/chk2chk/chk2chk/internal/testutil"
)

func TestSpendingByCategory(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := NewService(db.Storage)

	food := db.SeedCategory(ctx, "Food")
	travel := db.SeedCategory(ctx, "Travel")

	for _, exp := range []model.Expense{
		{Date: "2026-03-01", Amount: 30, CategoryID: food.ID, Description: "Groceries"},
		{Date: "2026-03-10", Amount: 20, CategoryID: food.ID, Description: "Takeout"},
		{Date: "2026-03-15", Amount: 100, CategoryID: travel.ID, Description: "Train"},
		{Date: "2026-03-20", Amount: 7, CategoryID: "ghost", Description: "Mystery"},
		{Date: "2026-04-01", Amount: 500, CategoryID: food.ID, Description: "Out of range"},
	} {
		_, err := db.Storage.CreateExpense(ctx, exp)
		require.NoError(t, err)
	}

	spending, err := svc.SpendingByCategory(ctx, "2026-03-01", "2026-03-31")
	require.NoError(t, err)

	assert.InDelta(t, 50, spending["Food"], 0.001)
	assert.InDelta(t, 100, spending["Travel"], 0.001)
	assert.InDelta(t, 7, spending["Unknown"], 0.001)
	assert.Len(t, spending, 3)
}

func TestIncomeVsExpenses(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := NewService(db.Storage)

	_, err := db.Storage.CreateIncome(ctx, model.Income{Date: "2026-03-01", Source: "Salary", Amount: 3000})
	require.NoError(t, err)
	_, err = db.Storage.CreateIncome(ctx, model.Income{Date: "2026-03-01", Source: "Bonus", Amount: 500})
	require.NoError(t, err)
	_, err = db.Storage.CreateExpense(ctx, model.Expense{Date: "2026-03-01", Amount: 100, CategoryID: "c", Description: "a"})
	require.NoError(t, err)
	_, err = db.Storage.CreateExpense(ctx, model.Expense{Date: "2026-03-05", Amount: 40, CategoryID: "c", Description: "b"})
	require.NoError(t, err)

	flows, err := svc.IncomeVsExpenses(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, flows, 2)

	assert.Equal(t, "2026-03-01", flows[0].Date)
	assert.InDelta(t, 3500, flows[0].Income, 0.001)
	assert.InDelta(t, 100, flows[0].Expenses, 0.001)

	assert.Equal(t, "2026-03-05", flows[1].Date)
	assert.InDelta(t, 0, flows[1].Income, 0.001)
	assert.InDelta(t, 40, flows[1].Expenses, 0.001)
}

func TestAverages(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := NewService(db.Storage)

	t.Run("empty set averages to zero", func(t *testing.T) {
		avg, err := svc.AverageIncome(ctx, "", "")
		require.NoError(t, err)
		assert.Zero(t, avg)
	})

	_, err := db.Storage.CreateIncome(ctx, model.Income{Date: "2026-03-01", Source: "a", Amount: 100})
	require.NoError(t, err)
	_, err = db.Storage.CreateIncome(ctx, model.Income{Date: "2026-03-02", Source: "b", Amount: 300})
	require.NoError(t, err)
	_, err = db.Storage.CreateExpense(ctx, model.Expense{Date: "2026-03-01", Amount: 50, CategoryID: "c", Description: "x"})
	require.NoError(t, err)

	t.Run("mean income", func(t *testing.T) {
		avg, err := svc.AverageIncome(ctx, "", "")
		require.NoError(t, err)
		assert.InDelta(t, 200, avg, 0.001)
	})

	t.Run("mean expenses", func(t *testing.T) {
		avg, err := svc.AverageExpenses(ctx, "", "")
		require.NoError(t, err)
		assert.InDelta(t, 50, avg, 0.001)
	})

	t.Run("date bounds filter records", func(t *testing.T) {
		avg, err := svc.AverageIncome(ctx, "2026-03-02", "")
		require.NoError(t, err)
		assert.InDelta(t, 300, avg, 0.001)
	})
}

func TestEffectiveSavingsLimit(t *testing.T) {
	settings := &model.UserSettings{SavingsLimit: 5000}

	t.Run("no debt keeps configured limit", func(t *testing.T) {
		limit := EffectiveSavingsLimit(settings, nil)
		assert.InDelta(t, 5000, limit, 0.001)
	})

	t.Run("positive debt caps the limit", func(t *testing.T) {
		debts := []model.DebtAccount{{Name: "Visa", Balance: 1}}
		limit := EffectiveSavingsLimit(settings, debts)
		assert.InDelta(t, MaxSavingsWithDebt, limit, 0.001)
	})

	t.Run("paid-off debt does not cap", func(t *testing.T) {
		debts := []model.DebtAccount{{Name: "Visa", Balance: 0}}
		limit := EffectiveSavingsLimit(settings, debts)
		assert.InDelta(t, 5000, limit, 0.001)
	})

	t.Run("limit below cap is unaffected by debt", func(t *testing.T) {
		low := &model.UserSettings{SavingsLimit: 200}
		debts := []model.DebtAccount{{Name: "Visa", Balance: 100}}
		limit := EffectiveSavingsLimit(low, debts)
		assert.InDelta(t, 200, limit, 0.001)
	})

	t.Run("nil settings falls back to cap", func(t *testing.T) {
		limit := EffectiveSavingsLimit(nil, nil)
		assert.InDelta(t, MaxSavingsWithDebt, limit, 0.001)
	})
}
