package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chk2chk/chk2chk/internal/model"
	"github.com/chk2chk/chk2chk/internal/testutil"
)

func TestInitializeDefaultData(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds categories and settings into empty database", func(t *testing.T) {
		db := testutil.SetupTestDB(t)

		InitializeDefaultData(ctx, db.Storage)

		categories, err := db.Storage.GetAllCategories(ctx)
		require.NoError(t, err)
		assert.Len(t, categories, len(DefaultCategories))

		names := make(map[string]bool, len(categories))
		for _, cat := range categories {
			names[cat.Name] = true
			assert.NotEmpty(t, cat.ID)
			assert.NotEmpty(t, cat.Color)
		}
		assert.True(t, names["Food & Dining"])
		assert.True(t, names["Savings"])
		assert.True(t, names["Other"])

		settings, err := db.Storage.GetSettings(ctx)
		require.NoError(t, err)
		require.NotNil(t, settings)
		assert.Equal(t, "USD", settings.Currency)
	})

	t.Run("second run does not duplicate", func(t *testing.T) {
		db := testutil.SetupTestDB(t)

		InitializeDefaultData(ctx, db.Storage)
		InitializeDefaultData(ctx, db.Storage)

		categories, err := db.Storage.GetAllCategories(ctx)
		require.NoError(t, err)
		assert.Len(t, categories, len(DefaultCategories))
	})

	t.Run("any existing category suppresses seeding", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		db.SeedCategory(ctx, "Custom")

		InitializeDefaultData(ctx, db.Storage)

		categories, err := db.Storage.GetAllCategories(ctx)
		require.NoError(t, err)
		assert.Len(t, categories, 1)
		assert.Equal(t, "Custom", categories[0].Name)
	})

	t.Run("existing settings are left alone", func(t *testing.T) {
		db := testutil.SetupTestDB(t)

		currency := "JPY"
		_, err := db.Storage.UpdateSettings(ctx, model.SettingsPatch{Currency: &currency})
		require.NoError(t, err)

		InitializeDefaultData(ctx, db.Storage)

		settings, err := db.Storage.GetSettings(ctx)
		require.NoError(t, err)
		require.NotNil(t, settings)
		assert.Equal(t, "JPY", settings.Currency)
	})
}
