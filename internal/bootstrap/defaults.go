// Package bootstrap seeds default categories and settings on first run.
package bootstrap

import (
	"context"
	"log/slog"

	"github.com/chk2chk/chk2chk/internal/model"
	"github.com/chk2chk/chk2chk/internal/service"
)

// DefaultCategories is the fixed seed list inserted into an empty database.
var DefaultCategories = []model.Category{
	{Name: "Food & Dining", Color: "#EF4444", Icon: "🍔"},
	{Name: "Transportation", Color: "#3B82F6", Icon: "🚗"},
	{Name: "Housing", Color: "#10B981", Icon: "🏠"},
	{Name: "Utilities", Color: "#F59E0B", Icon: "💡"},
	{Name: "Shopping", Color: "#8B5CF6", Icon: "🛍️"},
	{Name: "Entertainment", Color: "#EC4899", Icon: "🎬"},
	{Name: "Healthcare", Color: "#06B6D4", Icon: "🏥"},
	{Name: "Education", Color: "#6366F1", Icon: "📚"},
	{Name: "Personal Care", Color: "#F97316", Icon: "💅"},
	{Name: "Bills & Fees", Color: "#84CC16", Icon: "📄"},
	{Name: "Savings", Color: "#14B8A6", Icon: "💰"},
	{Name: "Other", Color: "#64748B", Icon: "📦"},
}

// InitializeDefaultData seeds default categories and settings, each if and
// only if none exist. Errors are logged and swallowed: seeding failure must
// never abort startup, since both categories and settings have lazy-creation
// fallbacks elsewhere.
func InitializeDefaultData(ctx context.Context, storage service.Storage) {
	existing, err := storage.GetAllCategories(ctx)
	if err != nil {
		slog.Error("failed to check existing categories during bootstrap", "error", err)
	} else if len(existing) == 0 {
		slog.Info("initializing default categories")
		for _, cat := range DefaultCategories {
			if _, err := storage.CreateCategory(ctx, cat); err != nil {
				slog.Error("failed to seed default category", "name", cat.Name, "error", err)
			}
		}
	}

	settings, err := storage.GetSettings(ctx)
	if err != nil {
		slog.Error("failed to check existing settings during bootstrap", "error", err)
		return
	}
	if settings == nil {
		slog.Info("initializing default settings")
		if _, err := storage.UpdateSettings(ctx, model.SettingsPatch{}); err != nil {
			slog.Error("failed to seed default settings", "error", err)
		}
	}
}
