package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/chk2chk/chk2chk/internal/common"
	"github.com/chk2chk/chk2chk/internal/model"
)

// CreateExpense stamps a fresh id and timestamps, then persists the record.
// The referenced category is not checked here; dangling references are the
// integrity checker's concern.
func (s *SQLiteStorage) CreateExpense(ctx context.Context, data model.Expense) (*model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	now := nowUTC()
	data.ID = newID()
	data.CreatedAt = now
	data.UpdatedAt = now

	if err := insertExpense(ctx, s.db, &data); err != nil {
		return nil, err
	}

	slog.Debug("created expense", "id", data.ID, "amount", data.Amount, "category", data.CategoryID)
	return &data, nil
}

func insertExpense(ctx context.Context, db dbtx, exp *model.Expense) error {
	tags, err := marshalTags(exp.Tags)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO expenses (id, date, amount, category_id, description, tags, notes, recurring_transaction_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = db.ExecContext(ctx, query,
		exp.ID, exp.Date, exp.Amount, exp.CategoryID, exp.Description, tags,
		exp.Notes, exp.RecurringTransactionID,
		formatTime(exp.CreatedAt), formatTime(exp.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}
	return nil
}

// GetAllExpenses returns every expense record.
func (s *SQLiteStorage) GetAllExpenses(ctx context.Context) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return getAllExpenses(ctx, s.db)
}

func getAllExpenses(ctx context.Context, db dbtx) ([]model.Expense, error) {
	query := `
		SELECT id, date, amount, category_id, description, tags, notes, recurring_transaction_id, created_at, updated_at
		FROM expenses
		ORDER BY id`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []model.Expense
	for rows.Next() {
		exp, scanErr := scanExpense(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		expenses = append(expenses, *exp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}
	return expenses, nil
}

// GetExpenseByID returns an expense record, or nil if the id is unknown.
func (s *SQLiteStorage) GetExpenseByID(ctx context.Context, id string) (*model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, date, amount, category_id, description, tags, notes, recurring_transaction_id, created_at, updated_at
		FROM expenses
		WHERE id = ?`

	exp, err := scanExpense(s.db.QueryRowContext(ctx, query, id))
	if err == errNoRow {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return exp, nil
}

// UpdateExpense merges the patch onto the stored record and refreshes
// UpdatedAt. Returns common.ErrNotFound when the id is absent.
func (s *SQLiteStorage) UpdateExpense(ctx context.Context, id string, patch model.ExpensePatch) (*model.Expense, error) {
	existing, err := s.GetExpenseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("expense %s: %w", id, common.ErrNotFound)
	}

	patch.Apply(existing)
	existing.ID = id
	existing.UpdatedAt = nowUTC()

	tags, err := marshalTags(existing.Tags)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE expenses
		SET date = ?, amount = ?, category_id = ?, description = ?, tags = ?, notes = ?, recurring_transaction_id = ?, updated_at = ?
		WHERE id = ?`

	if _, err := s.db.ExecContext(ctx, query,
		existing.Date, existing.Amount, existing.CategoryID, existing.Description,
		tags, existing.Notes, existing.RecurringTransactionID,
		formatTime(existing.UpdatedAt), id); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	return existing, nil
}

// DeleteExpense removes an expense record. A missing id is not an error.
func (s *SQLiteStorage) DeleteExpense(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "expenses", id)
}

func marshalTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("failed to marshal tags: %w", err)
	}
	return string(data), nil
}

func scanExpense(row rowScanner) (*model.Expense, error) {
	var exp model.Expense
	var tags, createdAt, updatedAt string

	err := row.Scan(&exp.ID, &exp.Date, &exp.Amount, &exp.CategoryID,
		&exp.Description, &tags, &exp.Notes, &exp.RecurringTransactionID,
		&createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, errNoRow
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan expense: %w", err)
	}

	if err := json.Unmarshal([]byte(tags), &exp.Tags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
	}
	if exp.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if exp.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &exp, nil
}
