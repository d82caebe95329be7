package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/chk2chk/chk2chk/internal/common"
	"github.com/chk2chk/chk2chk/internal/model"
)

// CreateBill stamps a fresh id and timestamps, then persists the record.
func (s *SQLiteStorage) CreateBill(ctx context.Context, data model.Bill) (*model.Bill, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	now := nowUTC()
	data.ID = newID()
	data.CreatedAt = now
	data.UpdatedAt = now

	if err := insertBill(ctx, s.db, &data); err != nil {
		return nil, err
	}

	slog.Debug("created bill", "id", data.ID, "name", data.Name)
	return &data, nil
}

func insertBill(ctx context.Context, db dbtx, b *model.Bill) error {
	query := `
		INSERT INTO bills (id, name, amount, due_date, frequency, category_id, is_paid, last_paid_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := db.ExecContext(ctx, query,
		b.ID, b.Name, b.Amount, b.DueDate, string(b.Frequency), b.CategoryID,
		b.IsPaid, b.LastPaidDate, formatTime(b.CreatedAt), formatTime(b.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}
	return nil
}

// GetAllBills returns every bill.
func (s *SQLiteStorage) GetAllBills(ctx context.Context) ([]model.Bill, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return getAllBills(ctx, s.db)
}

func getAllBills(ctx context.Context, db dbtx) ([]model.Bill, error) {
	query := `
		SELECT id, name, amount, due_date, frequency, category_id, is_paid, last_paid_date, created_at, updated_at
		FROM bills
		ORDER BY id`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query bills: %w", err)
	}
	defer rows.Close()

	var bills []model.Bill
	for rows.Next() {
		b, scanErr := scanBill(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		bills = append(bills, *b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bills: %w", err)
	}
	return bills, nil
}

// GetBillByID returns a bill, or nil if the id is unknown.
func (s *SQLiteStorage) GetBillByID(ctx context.Context, id string) (*model.Bill, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, amount, due_date, frequency, category_id, is_paid, last_paid_date, created_at, updated_at
		FROM bills
		WHERE id = ?`

	b, err := scanBill(s.db.QueryRowContext(ctx, query, id))
	if err == errNoRow {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// UpdateBill merges the patch onto the stored record and refreshes UpdatedAt.
// Returns common.ErrNotFound when the id is absent.
func (s *SQLiteStorage) UpdateBill(ctx context.Context, id string, patch model.BillPatch) (*model.Bill, error) {
	existing, err := s.GetBillByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("bill %s: %w", id, common.ErrNotFound)
	}

	patch.Apply(existing)
	existing.ID = id
	existing.UpdatedAt = nowUTC()

	query := `
		UPDATE bills
		SET name = ?, amount = ?, due_date = ?, frequency = ?, category_id = ?, is_paid = ?, last_paid_date = ?, updated_at = ?
		WHERE id = ?`

	if _, err := s.db.ExecContext(ctx, query,
		existing.Name, existing.Amount, existing.DueDate, string(existing.Frequency),
		existing.CategoryID, existing.IsPaid, existing.LastPaidDate,
		formatTime(existing.UpdatedAt), id); err != nil {
		return nil, fmt.Errorf("failed to update bill: %w", err)
	}

	return existing, nil
}

// DeleteBill removes a bill. A missing id is not an error.
func (s *SQLiteStorage) DeleteBill(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "bills", id)
}

func scanBill(row rowScanner) (*model.Bill, error) {
	var b model.Bill
	var frequency, createdAt, updatedAt string

	err := row.Scan(&b.ID, &b.Name, &b.Amount, &b.DueDate, &frequency,
		&b.CategoryID, &b.IsPaid, &b.LastPaidDate, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, errNoRow
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan bill: %w", err)
	}

	b.Frequency = model.BillFrequency(frequency)
	if b.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if b.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}
