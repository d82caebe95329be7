package storage

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/chk2chk/chk2chk/internal/model"
)

// ExportAllData reads every table concurrently and assembles a complete
// snapshot. The checksum is a cheap mismatch detector, not tamper-proofing.
func (s *SQLiteStorage) ExportAllData(ctx context.Context) (*model.Snapshot, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var (
		income     []model.Income
		expenses   []model.Expense
		envelopes  []model.Envelope
		bills      []model.Bill
		debts      []model.DebtAccount
		categories []model.Category
		recurring  []model.RecurringTransaction
		settings   *model.UserSettings
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { income, err = getAllIncomes(gctx, s.db); return err })
	g.Go(func() (err error) { expenses, err = getAllExpenses(gctx, s.db); return err })
	g.Go(func() (err error) { envelopes, err = getAllEnvelopes(gctx, s.db); return err })
	g.Go(func() (err error) { bills, err = getAllBills(gctx, s.db); return err })
	g.Go(func() (err error) { debts, err = getAllDebts(gctx, s.db); return err })
	g.Go(func() (err error) { categories, err = getAllCategories(gctx, s.db); return err })
	g.Go(func() (err error) { recurring, err = getAllRecurring(gctx, s.db); return err })
	g.Go(func() (err error) { settings, err = getSettings(gctx, s.db); return err })
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to export data: %w", err)
	}

	now := nowUTC()
	exportedAt := formatTime(now)

	// A dataset exported before any settings write still carries a usable
	// settings record.
	if settings == nil {
		def := defaultSettings()
		def.ID = newID()
		def.CreatedAt = now
		def.UpdatedAt = now
		settings = &def
	}

	snapshot := &model.Snapshot{
		Version:               model.SnapshotVersion,
		ExportedAt:            exportedAt,
		User:                  model.SnapshotUser{Settings: *settings},
		Income:                emptyIfNil(income),
		Expenses:              emptyIfNil(expenses),
		Envelopes:             emptyIfNil(envelopes),
		Bills:                 emptyIfNil(bills),
		Debts:                 emptyIfNil(debts),
		RecurringTransactions: emptyIfNil(recurring),
		Categories:            emptyIfNil(categories),
	}

	totalRecords := snapshot.TotalRecords()
	start, end := transactionDateRange(income, expenses, exportedAt)

	snapshot.Metadata = model.SnapshotMetadata{
		TotalRecords: totalRecords,
		DateRange:    model.DateRange{Start: start, End: end},
		Checksum:     fmt.Sprintf("%d-%d", totalRecords, now.UnixMilli()),
	}

	slog.Info("exported all data", "records", totalRecords)
	return snapshot, nil
}

// transactionDateRange computes the min/max date across income and expenses.
// An empty dataset defaults both bounds to the export instant.
func transactionDateRange(income []model.Income, expenses []model.Expense, fallback string) (start, end string) {
	dates := make([]string, 0, len(income)+len(expenses))
	for _, inc := range income {
		if inc.Date != "" {
			dates = append(dates, inc.Date)
		}
	}
	for _, exp := range expenses {
		if exp.Date != "" {
			dates = append(dates, exp.Date)
		}
	}
	if len(dates) == 0 {
		return fallback, fallback
	}
	sort.Strings(dates)
	return dates[0], dates[len(dates)-1]
}

func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
