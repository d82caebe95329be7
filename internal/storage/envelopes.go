package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/chk2chk/chk2chk/internal/common"
	"github.com/chk2chk/chk2chk/internal/model"
)

// CreateEnvelope stamps a fresh id and timestamps, then persists the record.
// Raw storage does not enforce the balance invariant; that is the envelope
// service's job.
func (s *SQLiteStorage) CreateEnvelope(ctx context.Context, data model.Envelope) (*model.Envelope, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	now := nowUTC()
	data.ID = newID()
	data.CreatedAt = now
	data.UpdatedAt = now

	if err := insertEnvelope(ctx, s.db, &data); err != nil {
		return nil, err
	}

	slog.Debug("created envelope", "id", data.ID, "name", data.Name)
	return &data, nil
}

func insertEnvelope(ctx context.Context, db dbtx, env *model.Envelope) error {
	query := `
		INSERT INTO envelopes (id, name, allocated_amount, spent_amount, balance, category_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := db.ExecContext(ctx, query,
		env.ID, env.Name, env.AllocatedAmount, env.SpentAmount, env.Balance,
		env.CategoryID, formatTime(env.CreatedAt), formatTime(env.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert envelope: %w", err)
	}
	return nil
}

// GetAllEnvelopes returns every envelope.
func (s *SQLiteStorage) GetAllEnvelopes(ctx context.Context) ([]model.Envelope, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return getAllEnvelopes(ctx, s.db)
}

func getAllEnvelopes(ctx context.Context, db dbtx) ([]model.Envelope, error) {
	query := `
		SELECT id, name, allocated_amount, spent_amount, balance, category_id, created_at, updated_at
		FROM envelopes
		ORDER BY id`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query envelopes: %w", err)
	}
	defer rows.Close()

	var envelopes []model.Envelope
	for rows.Next() {
		env, scanErr := scanEnvelope(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		envelopes = append(envelopes, *env)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating envelopes: %w", err)
	}
	return envelopes, nil
}

// GetEnvelopeByID returns an envelope, or nil if the id is unknown.
func (s *SQLiteStorage) GetEnvelopeByID(ctx context.Context, id string) (*model.Envelope, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, allocated_amount, spent_amount, balance, category_id, created_at, updated_at
		FROM envelopes
		WHERE id = ?`

	env, err := scanEnvelope(s.db.QueryRowContext(ctx, query, id))
	if err == errNoRow {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return env, nil
}

// UpdateEnvelope merges the patch onto the stored record and refreshes
// UpdatedAt. Returns common.ErrNotFound when the id is absent.
func (s *SQLiteStorage) UpdateEnvelope(ctx context.Context, id string, patch model.EnvelopePatch) (*model.Envelope, error) {
	existing, err := s.GetEnvelopeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("envelope %s: %w", id, common.ErrNotFound)
	}

	patch.Apply(existing)
	existing.ID = id
	existing.UpdatedAt = nowUTC()

	query := `
		UPDATE envelopes
		SET name = ?, allocated_amount = ?, spent_amount = ?, balance = ?, category_id = ?, updated_at = ?
		WHERE id = ?`

	if _, err := s.db.ExecContext(ctx, query,
		existing.Name, existing.AllocatedAmount, existing.SpentAmount,
		existing.Balance, existing.CategoryID,
		formatTime(existing.UpdatedAt), id); err != nil {
		return nil, fmt.Errorf("failed to update envelope: %w", err)
	}

	return existing, nil
}

// DeleteEnvelope removes an envelope. A missing id is not an error.
func (s *SQLiteStorage) DeleteEnvelope(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "envelopes", id)
}

func scanEnvelope(row rowScanner) (*model.Envelope, error) {
	var env model.Envelope
	var createdAt, updatedAt string

	err := row.Scan(&env.ID, &env.Name, &env.AllocatedAmount, &env.SpentAmount,
		&env.Balance, &env.CategoryID, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, errNoRow
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan envelope: %w", err)
	}

	if env.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if env.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &env, nil
}
