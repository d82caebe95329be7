package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/chk2chk/chk2chk/internal/common"
	"github.com/chk2chk/chk2chk/internal/model"
)

// CreateRecurring stamps a fresh id and timestamps, then persists the record.
func (s *SQLiteStorage) CreateRecurring(ctx context.Context, data model.RecurringTransaction) (*model.RecurringTransaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	now := nowUTC()
	data.ID = newID()
	data.CreatedAt = now
	data.UpdatedAt = now

	if err := insertRecurring(ctx, s.db, &data); err != nil {
		return nil, err
	}

	slog.Debug("created recurring transaction", "id", data.ID, "type", data.Type)
	return &data, nil
}

func insertRecurring(ctx context.Context, db dbtx, r *model.RecurringTransaction) error {
	query := `
		INSERT INTO recurring (id, type, amount, frequency, category_id, next_date, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := db.ExecContext(ctx, query,
		r.ID, string(r.Type), r.Amount, string(r.Frequency), r.CategoryID,
		r.NextDate, r.IsActive, formatTime(r.CreatedAt), formatTime(r.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert recurring transaction: %w", err)
	}
	return nil
}

// GetAllRecurring returns every recurring transaction template.
func (s *SQLiteStorage) GetAllRecurring(ctx context.Context) ([]model.RecurringTransaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return getAllRecurring(ctx, s.db)
}

func getAllRecurring(ctx context.Context, db dbtx) ([]model.RecurringTransaction, error) {
	query := `
		SELECT id, type, amount, frequency, category_id, next_date, is_active, created_at, updated_at
		FROM recurring
		ORDER BY id`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query recurring transactions: %w", err)
	}
	defer rows.Close()

	var recurring []model.RecurringTransaction
	for rows.Next() {
		r, scanErr := scanRecurring(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		recurring = append(recurring, *r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recurring transactions: %w", err)
	}
	return recurring, nil
}

// GetRecurringByID returns a recurring transaction, or nil if the id is unknown.
func (s *SQLiteStorage) GetRecurringByID(ctx context.Context, id string) (*model.RecurringTransaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, type, amount, frequency, category_id, next_date, is_active, created_at, updated_at
		FROM recurring
		WHERE id = ?`

	r, err := scanRecurring(s.db.QueryRowContext(ctx, query, id))
	if err == errNoRow {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// UpdateRecurring merges the patch onto the stored record and refreshes
// UpdatedAt. Returns common.ErrNotFound when the id is absent.
func (s *SQLiteStorage) UpdateRecurring(ctx context.Context, id string, patch model.RecurringPatch) (*model.RecurringTransaction, error) {
	existing, err := s.GetRecurringByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("recurring transaction %s: %w", id, common.ErrNotFound)
	}

	patch.Apply(existing)
	existing.ID = id
	existing.UpdatedAt = nowUTC()

	query := `
		UPDATE recurring
		SET type = ?, amount = ?, frequency = ?, category_id = ?, next_date = ?, is_active = ?, updated_at = ?
		WHERE id = ?`

	if _, err := s.db.ExecContext(ctx, query,
		string(existing.Type), existing.Amount, string(existing.Frequency),
		existing.CategoryID, existing.NextDate, existing.IsActive,
		formatTime(existing.UpdatedAt), id); err != nil {
		return nil, fmt.Errorf("failed to update recurring transaction: %w", err)
	}

	return existing, nil
}

// DeleteRecurring removes a recurring transaction. A missing id is not an error.
func (s *SQLiteStorage) DeleteRecurring(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "recurring", id)
}

func scanRecurring(row rowScanner) (*model.RecurringTransaction, error) {
	var r model.RecurringTransaction
	var recurringType, frequency, createdAt, updatedAt string

	err := row.Scan(&r.ID, &recurringType, &r.Amount, &frequency, &r.CategoryID,
		&r.NextDate, &r.IsActive, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, errNoRow
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan recurring transaction: %w", err)
	}

	r.Type = model.RecurringType(recurringType)
	r.Frequency = model.RecurringFrequency(frequency)
	if r.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if r.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &r, nil
}
