package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/chk2chk/chk2chk/internal/model"
)

// entityTables lists every table cleared by an import, one per entity type.
var entityTables = []string{
	"income", "expenses", "envelopes", "bills", "debts",
	"categories", "recurring", "settings",
}

// ImportAllData destructively replaces the entire dataset with the snapshot's
// contents, preserving original ids and timestamps so re-imported records are
// indistinguishable from the originals.
//
// The clear phase and every insert run inside a single transaction: either
// the whole snapshot lands or the previous dataset survives untouched. This
// is deliberately stronger than best-effort concurrent writes; the local
// database supports real rollback, so partial imports are not allowed.
func (s *SQLiteStorage) ImportAllData(ctx context.Context, snapshot *model.Snapshot) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if snapshot == nil {
		return fmt.Errorf("%w: snapshot", ErrNilParameter)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin import transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Clear phase completes before any insert.
	for _, table := range entityTables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for i := range snapshot.Income {
		if err := insertIncome(ctx, tx, &snapshot.Income[i]); err != nil {
			return err
		}
	}
	for i := range snapshot.Expenses {
		if err := insertExpense(ctx, tx, &snapshot.Expenses[i]); err != nil {
			return err
		}
	}
	for i := range snapshot.Envelopes {
		if err := insertEnvelope(ctx, tx, &snapshot.Envelopes[i]); err != nil {
			return err
		}
	}
	for i := range snapshot.Bills {
		if err := insertBill(ctx, tx, &snapshot.Bills[i]); err != nil {
			return err
		}
	}
	for i := range snapshot.Debts {
		if err := insertDebt(ctx, tx, &snapshot.Debts[i]); err != nil {
			return err
		}
	}
	for i := range snapshot.Categories {
		if err := insertCategory(ctx, tx, &snapshot.Categories[i]); err != nil {
			return err
		}
	}
	for i := range snapshot.RecurringTransactions {
		if err := insertRecurring(ctx, tx, &snapshot.RecurringTransactions[i]); err != nil {
			return err
		}
	}

	if err := importSettings(ctx, tx, snapshot.User.Settings); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}

	slog.Info("imported snapshot",
		"version", snapshot.Version,
		"records", snapshot.TotalRecords())
	return nil
}

// importSettings inserts the snapshot's settings verbatim when it carries an
// id. A snapshot from an older export may have no id; such a record is
// treated as fresh, with defaults filling any unset fields.
func importSettings(ctx context.Context, tx dbtx, set model.UserSettings) error {
	if set.ID != "" {
		return insertSettings(ctx, tx, &set)
	}

	def := defaultSettings()
	if set.Currency != "" {
		def.Currency = set.Currency
	}
	if set.PayFrequency != "" {
		def.PayFrequency = set.PayFrequency
	}
	if set.SavingsLimit != 0 {
		def.SavingsLimit = set.SavingsLimit
	}
	// A bool field cannot distinguish "absent" from an explicit false, so
	// the snapshot's value is taken verbatim. A snapshot missing the field
	// therefore lands as false rather than the default true.
	def.DebtReminders = set.DebtReminders
	if set.Theme != "" {
		def.Theme = set.Theme
	}

	now := nowUTC()
	def.ID = newID()
	def.CreatedAt = now
	def.UpdatedAt = now
	return insertSettings(ctx, tx, &def)
}
