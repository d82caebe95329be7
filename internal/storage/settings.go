package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/chk2chk/chk2chk/internal/model"
)

// defaultSettings returns the hard defaults used whenever a settings record
// has to be created implicitly.
func defaultSettings() model.UserSettings {
	return model.UserSettings{
		Currency:      "USD",
		PayFrequency:  model.PayWeekly,
		SavingsLimit:  1000,
		DebtReminders: true,
		Theme:         model.ThemeLight,
	}
}

// GetSettings returns the singleton settings record, or nil if none exists yet.
func (s *SQLiteStorage) GetSettings(ctx context.Context) (*model.UserSettings, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return getSettings(ctx, s.db)
}

func getSettings(ctx context.Context, db dbtx) (*model.UserSettings, error) {
	query := `
		SELECT id, currency, pay_frequency, savings_limit, debt_reminders, theme, created_at, updated_at
		FROM settings
		ORDER BY rowid
		LIMIT 1`

	set, err := scanSettings(db.QueryRowContext(ctx, query))
	if err == errNoRow {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return set, nil
}

// UpdateSettings performs a create-or-update on the singleton record. With no
// existing record it creates one, filling unspecified fields with hard
// defaults; otherwise it is a normal partial update.
func (s *SQLiteStorage) UpdateSettings(ctx context.Context, patch model.SettingsPatch) (*model.UserSettings, error) {
	existing, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		set := defaultSettings()
		patch.Apply(&set)

		now := nowUTC()
		set.ID = newID()
		set.CreatedAt = now
		set.UpdatedAt = now

		if err := insertSettings(ctx, s.db, &set); err != nil {
			return nil, err
		}
		slog.Info("created settings record", "id", set.ID)
		return &set, nil
	}

	patch.Apply(existing)
	existing.UpdatedAt = nowUTC()

	query := `
		UPDATE settings
		SET currency = ?, pay_frequency = ?, savings_limit = ?, debt_reminders = ?, theme = ?, updated_at = ?
		WHERE id = ?`

	if _, err := s.db.ExecContext(ctx, query,
		existing.Currency, string(existing.PayFrequency), existing.SavingsLimit,
		existing.DebtReminders, string(existing.Theme),
		formatTime(existing.UpdatedAt), existing.ID); err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}

	return existing, nil
}

func insertSettings(ctx context.Context, db dbtx, set *model.UserSettings) error {
	query := `
		INSERT INTO settings (id, currency, pay_frequency, savings_limit, debt_reminders, theme, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := db.ExecContext(ctx, query,
		set.ID, set.Currency, string(set.PayFrequency), set.SavingsLimit,
		set.DebtReminders, string(set.Theme),
		formatTime(set.CreatedAt), formatTime(set.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert settings: %w", err)
	}
	return nil
}

func scanSettings(row rowScanner) (*model.UserSettings, error) {
	var set model.UserSettings
	var payFrequency, theme, createdAt, updatedAt string

	err := row.Scan(&set.ID, &set.Currency, &payFrequency, &set.SavingsLimit,
		&set.DebtReminders, &theme, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, errNoRow
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan settings: %w", err)
	}

	set.PayFrequency = model.PayFrequency(payFrequency)
	set.Theme = model.Theme(theme)
	if set.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if set.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &set, nil
}
