package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/chk2chk/chk2chk/internal/common"
	"github.com/chk2chk/chk2chk/internal/model"
)

// CreateCategory stamps a fresh id and timestamps, then persists the record.
// Names are deliberately not unique.
func (s *SQLiteStorage) CreateCategory(ctx context.Context, data model.Category) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	now := nowUTC()
	data.ID = newID()
	data.CreatedAt = now
	data.UpdatedAt = now

	if err := insertCategory(ctx, s.db, &data); err != nil {
		return nil, err
	}

	slog.Debug("created category", "id", data.ID, "name", data.Name)
	return &data, nil
}

func insertCategory(ctx context.Context, db dbtx, c *model.Category) error {
	query := `
		INSERT INTO categories (id, name, color, icon, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := db.ExecContext(ctx, query,
		c.ID, c.Name, c.Color, c.Icon,
		formatTime(c.CreatedAt), formatTime(c.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}

// GetAllCategories returns every category.
func (s *SQLiteStorage) GetAllCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return getAllCategories(ctx, s.db)
}

func getAllCategories(ctx context.Context, db dbtx) ([]model.Category, error) {
	query := `
		SELECT id, name, color, icon, created_at, updated_at
		FROM categories
		ORDER BY id`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		c, scanErr := scanCategory(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		categories = append(categories, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	return categories, nil
}

// GetCategoryByID returns a category, or nil if the id is unknown.
func (s *SQLiteStorage) GetCategoryByID(ctx context.Context, id string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, color, icon, created_at, updated_at
		FROM categories
		WHERE id = ?`

	c, err := scanCategory(s.db.QueryRowContext(ctx, query, id))
	if err == errNoRow {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateCategory merges the patch onto the stored record and refreshes
// UpdatedAt. Returns common.ErrNotFound when the id is absent.
func (s *SQLiteStorage) UpdateCategory(ctx context.Context, id string, patch model.CategoryPatch) (*model.Category, error) {
	existing, err := s.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("category %s: %w", id, common.ErrNotFound)
	}

	patch.Apply(existing)
	existing.ID = id
	existing.UpdatedAt = nowUTC()

	query := `
		UPDATE categories
		SET name = ?, color = ?, icon = ?, updated_at = ?
		WHERE id = ?`

	if _, err := s.db.ExecContext(ctx, query,
		existing.Name, existing.Color, existing.Icon,
		formatTime(existing.UpdatedAt), id); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return existing, nil
}

// DeleteCategory removes a category. A missing id is not an error, and
// expenses referencing the category are left alone for the integrity checker
// to report.
func (s *SQLiteStorage) DeleteCategory(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "categories", id)
}

func scanCategory(row rowScanner) (*model.Category, error) {
	var c model.Category
	var createdAt, updatedAt string

	err := row.Scan(&c.ID, &c.Name, &c.Color, &c.Icon, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, errNoRow
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan category: %w", err)
	}

	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
