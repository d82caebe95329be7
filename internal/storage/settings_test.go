package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chk2chk/chk2chk/internal/model"
)

func TestSettings(t *testing.T) {
	ctx := context.Background()

	t.Run("get returns nil before any update", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		settings, err := store.GetSettings(ctx)
		require.NoError(t, err)
		assert.Nil(t, settings)
	})

	t.Run("empty patch creates record with hard defaults", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		settings, err := store.UpdateSettings(ctx, model.SettingsPatch{})
		require.NoError(t, err)

		assert.NotEmpty(t, settings.ID)
		assert.Equal(t, "USD", settings.Currency)
		assert.Equal(t, model.PayWeekly, settings.PayFrequency)
		assert.InDelta(t, 1000, settings.SavingsLimit, 0.001)
		assert.True(t, settings.DebtReminders)
		assert.Equal(t, model.ThemeLight, settings.Theme)
	})

	t.Run("partial patch on empty table merges onto defaults", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		currency := "EUR"
		settings, err := store.UpdateSettings(ctx, model.SettingsPatch{Currency: &currency})
		require.NoError(t, err)

		assert.Equal(t, "EUR", settings.Currency)
		// Unspecified fields still take defaults.
		assert.Equal(t, model.PayWeekly, settings.PayFrequency)
		assert.InDelta(t, 1000, settings.SavingsLimit, 0.001)
	})

	t.Run("second update patches the existing record", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		first, err := store.UpdateSettings(ctx, model.SettingsPatch{})
		require.NoError(t, err)

		theme := model.ThemeDark
		second, err := store.UpdateSettings(ctx, model.SettingsPatch{Theme: &theme})
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, model.ThemeDark, second.Theme)
		assert.Equal(t, "USD", second.Currency)

		// Still exactly one record.
		var count int
		require.NoError(t, store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM settings").Scan(&count))
		assert.Equal(t, 1, count)
	})

	t.Run("get reflects persisted updates", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		limit := 2500.0
		_, err := store.UpdateSettings(ctx, model.SettingsPatch{SavingsLimit: &limit})
		require.NoError(t, err)

		settings, err := store.GetSettings(ctx)
		require.NoError(t, err)
		require.NotNil(t, settings)
		assert.InDelta(t, 2500, settings.SavingsLimit, 0.001)
	})
}
