package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/chk2chk/chk2chk/internal/common"
	"github.com/chk2chk/chk2chk/internal/model"
)

// CreateIncome stamps a fresh id and timestamps, then persists the record.
func (s *SQLiteStorage) CreateIncome(ctx context.Context, data model.Income) (*model.Income, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	now := nowUTC()
	data.ID = newID()
	data.CreatedAt = now
	data.UpdatedAt = now

	if err := insertIncome(ctx, s.db, &data); err != nil {
		return nil, err
	}

	slog.Debug("created income", "id", data.ID, "amount", data.Amount)
	return &data, nil
}

// insertIncome writes a complete income record verbatim. The import path uses
// it directly to preserve original ids and timestamps.
func insertIncome(ctx context.Context, db dbtx, inc *model.Income) error {
	query := `
		INSERT INTO income (id, date, amount, source, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := db.ExecContext(ctx, query,
		inc.ID, inc.Date, inc.Amount, inc.Source, inc.Notes,
		formatTime(inc.CreatedAt), formatTime(inc.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert income: %w", err)
	}
	return nil
}

// GetAllIncomes returns every income record.
func (s *SQLiteStorage) GetAllIncomes(ctx context.Context) ([]model.Income, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return getAllIncomes(ctx, s.db)
}

func getAllIncomes(ctx context.Context, db dbtx) ([]model.Income, error) {
	query := `
		SELECT id, date, amount, source, notes, created_at, updated_at
		FROM income
		ORDER BY id`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query income: %w", err)
	}
	defer rows.Close()

	var incomes []model.Income
	for rows.Next() {
		inc, scanErr := scanIncome(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		incomes = append(incomes, *inc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating income: %w", err)
	}
	return incomes, nil
}

// GetIncomeByID returns an income record, or nil if the id is unknown.
func (s *SQLiteStorage) GetIncomeByID(ctx context.Context, id string) (*model.Income, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, date, amount, source, notes, created_at, updated_at
		FROM income
		WHERE id = ?`

	inc, err := scanIncome(s.db.QueryRowContext(ctx, query, id))
	if err == errNoRow {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return inc, nil
}

// UpdateIncome merges the patch onto the stored record and refreshes
// UpdatedAt. Returns common.ErrNotFound when the id is absent.
func (s *SQLiteStorage) UpdateIncome(ctx context.Context, id string, patch model.IncomePatch) (*model.Income, error) {
	existing, err := s.GetIncomeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("income %s: %w", id, common.ErrNotFound)
	}

	patch.Apply(existing)
	existing.ID = id
	existing.UpdatedAt = nowUTC()

	query := `
		UPDATE income
		SET date = ?, amount = ?, source = ?, notes = ?, updated_at = ?
		WHERE id = ?`

	if _, err := s.db.ExecContext(ctx, query,
		existing.Date, existing.Amount, existing.Source, existing.Notes,
		formatTime(existing.UpdatedAt), id); err != nil {
		return nil, fmt.Errorf("failed to update income: %w", err)
	}

	return existing, nil
}

// DeleteIncome removes an income record. A missing id is not an error.
func (s *SQLiteStorage) DeleteIncome(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "income", id)
}

// deleteByID is the shared idempotent delete used by every entity type.
func (s *SQLiteStorage) deleteByID(ctx context.Context, table, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// errNoRow signals a point lookup miss to callers that translate it to nil.
var errNoRow = sql.ErrNoRows

func scanIncome(row rowScanner) (*model.Income, error) {
	var inc model.Income
	var createdAt, updatedAt string

	err := row.Scan(&inc.ID, &inc.Date, &inc.Amount, &inc.Source, &inc.Notes,
		&createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, errNoRow
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan income: %w", err)
	}

	if inc.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if inc.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &inc, nil
}
