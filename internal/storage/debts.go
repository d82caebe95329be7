package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/chk2chk/chk2chk/internal/common"
	"github.com/chk2chk/chk2chk/internal/model"
)

// CreateDebt stamps a fresh id and timestamps, then persists the record.
func (s *SQLiteStorage) CreateDebt(ctx context.Context, data model.DebtAccount) (*model.DebtAccount, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	now := nowUTC()
	data.ID = newID()
	data.CreatedAt = now
	data.UpdatedAt = now

	if err := insertDebt(ctx, s.db, &data); err != nil {
		return nil, err
	}

	slog.Debug("created debt account", "id", data.ID, "name", data.Name)
	return &data, nil
}

func insertDebt(ctx context.Context, db dbtx, d *model.DebtAccount) error {
	query := `
		INSERT INTO debts (id, name, type, balance, minimum_payment, interest_rate, due_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := db.ExecContext(ctx, query,
		d.ID, d.Name, string(d.Type), d.Balance, d.MinimumPayment,
		d.InterestRate, d.DueDate, formatTime(d.CreatedAt), formatTime(d.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert debt account: %w", err)
	}
	return nil
}

// GetAllDebts returns every debt account.
func (s *SQLiteStorage) GetAllDebts(ctx context.Context) ([]model.DebtAccount, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return getAllDebts(ctx, s.db)
}

func getAllDebts(ctx context.Context, db dbtx) ([]model.DebtAccount, error) {
	query := `
		SELECT id, name, type, balance, minimum_payment, interest_rate, due_date, created_at, updated_at
		FROM debts
		ORDER BY id`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query debts: %w", err)
	}
	defer rows.Close()

	var debts []model.DebtAccount
	for rows.Next() {
		d, scanErr := scanDebt(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		debts = append(debts, *d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating debts: %w", err)
	}
	return debts, nil
}

// GetDebtByID returns a debt account, or nil if the id is unknown.
func (s *SQLiteStorage) GetDebtByID(ctx context.Context, id string) (*model.DebtAccount, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, type, balance, minimum_payment, interest_rate, due_date, created_at, updated_at
		FROM debts
		WHERE id = ?`

	d, err := scanDebt(s.db.QueryRowContext(ctx, query, id))
	if err == errNoRow {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

// UpdateDebt merges the patch onto the stored record and refreshes UpdatedAt.
// Returns common.ErrNotFound when the id is absent.
func (s *SQLiteStorage) UpdateDebt(ctx context.Context, id string, patch model.DebtPatch) (*model.DebtAccount, error) {
	existing, err := s.GetDebtByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("debt account %s: %w", id, common.ErrNotFound)
	}

	patch.Apply(existing)
	existing.ID = id
	existing.UpdatedAt = nowUTC()

	query := `
		UPDATE debts
		SET name = ?, type = ?, balance = ?, minimum_payment = ?, interest_rate = ?, due_date = ?, updated_at = ?
		WHERE id = ?`

	if _, err := s.db.ExecContext(ctx, query,
		existing.Name, string(existing.Type), existing.Balance,
		existing.MinimumPayment, existing.InterestRate, existing.DueDate,
		formatTime(existing.UpdatedAt), id); err != nil {
		return nil, fmt.Errorf("failed to update debt account: %w", err)
	}

	return existing, nil
}

// DeleteDebt removes a debt account. A missing id is not an error.
func (s *SQLiteStorage) DeleteDebt(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "debts", id)
}

func scanDebt(row rowScanner) (*model.DebtAccount, error) {
	var d model.DebtAccount
	var debtType, createdAt, updatedAt string

	err := row.Scan(&d.ID, &d.Name, &debtType, &d.Balance, &d.MinimumPayment,
		&d.InterestRate, &d.DueDate, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, errNoRow
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan debt account: %w", err)
	}

	d.Type = model.DebtType(debtType)
	if d.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if d.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}
