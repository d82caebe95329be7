// Package analytics provides read-only aggregation queries over the
// repository. Nothing here writes; repository correctness is the only
// invariant these views depend on.
package analytics

import (
	"context"
	"sort"

	"github.com/chk2chk/chk2chk/internal/model"
	"github.com/chk2chk/chk2chk/internal/service"
)

// MaxSavingsWithDebt caps the effective savings limit while any debt account
// carries a positive balance.
const MaxSavingsWithDebt = 1000

// DailyFlow is one day's income and expense totals.
type DailyFlow struct {
	Date     string
	Income   float64
	Expenses float64
}

// Service computes analytics views.
type Service struct {
	storage service.Storage
}

// NewService creates an analytics service backed by the given repository.
func NewService(storage service.Storage) *Service {
	return &Service{storage: storage}
}

// SpendingByCategory totals expense amounts per category name, optionally
// bounded by inclusive ISO date strings (empty string = unbounded). Expenses
// with a dangling category id are grouped under "Unknown".
func (s *Service) SpendingByCategory(ctx context.Context, startDate, endDate string) (map[string]float64, error) {
	expenses, err := s.storage.GetAllExpenses(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.storage.GetAllCategories(ctx)
	if err != nil {
		return nil, err
	}

	categoryNames := make(map[string]string, len(categories))
	for _, cat := range categories {
		categoryNames[cat.ID] = cat.Name
	}

	spending := make(map[string]float64)
	for _, exp := range expenses {
		if !inDateRange(exp.Date, startDate, endDate) {
			continue
		}
		name, ok := categoryNames[exp.CategoryID]
		if !ok {
			name = "Unknown"
		}
		spending[name] += exp.Amount
	}
	return spending, nil
}

// IncomeVsExpenses groups income and expense totals by date, sorted by date
// ascending.
func (s *Service) IncomeVsExpenses(ctx context.Context, startDate, endDate string) ([]DailyFlow, error) {
	incomes, err := s.storage.GetAllIncomes(ctx)
	if err != nil {
		return nil, err
	}
	expenses, err := s.storage.GetAllExpenses(ctx)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]*DailyFlow)
	flowFor := func(date string) *DailyFlow {
		if flow, ok := byDate[date]; ok {
			return flow
		}
		flow := &DailyFlow{Date: date}
		byDate[date] = flow
		return flow
	}

	for _, inc := range incomes {
		if inDateRange(inc.Date, startDate, endDate) {
			flowFor(inc.Date).Income += inc.Amount
		}
	}
	for _, exp := range expenses {
		if inDateRange(exp.Date, startDate, endDate) {
			flowFor(exp.Date).Expenses += exp.Amount
		}
	}

	flows := make([]DailyFlow, 0, len(byDate))
	for _, flow := range byDate {
		flows = append(flows, *flow)
	}
	sort.Slice(flows, func(i, j int) bool { return flows[i].Date < flows[j].Date })
	return flows, nil
}

// AverageIncome returns the mean income amount in the date range, or 0 for an
// empty set.
func (s *Service) AverageIncome(ctx context.Context, startDate, endDate string) (float64, error) {
	incomes, err := s.storage.GetAllIncomes(ctx)
	if err != nil {
		return 0, err
	}

	var total float64
	var count int
	for _, inc := range incomes {
		if inDateRange(inc.Date, startDate, endDate) {
			total += inc.Amount
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}
	return total / float64(count), nil
}

// AverageExpenses returns the mean expense amount in the date range, or 0 for
// an empty set.
func (s *Service) AverageExpenses(ctx context.Context, startDate, endDate string) (float64, error) {
	expenses, err := s.storage.GetAllExpenses(ctx)
	if err != nil {
		return 0, err
	}

	var total float64
	var count int
	for _, exp := range expenses {
		if inDateRange(exp.Date, startDate, endDate) {
			total += exp.Amount
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}
	return total / float64(count), nil
}

// EffectiveSavingsLimit applies the global debt policy: while any debt
// account carries a positive balance, the savings limit is capped at
// MaxSavingsWithDebt.
func EffectiveSavingsLimit(settings *model.UserSettings, debts []model.DebtAccount) float64 {
	limit := float64(MaxSavingsWithDebt)
	if settings != nil {
		limit = settings.SavingsLimit
	}
	for _, debt := range debts {
		if debt.Balance > 0 {
			if limit > MaxSavingsWithDebt {
				limit = MaxSavingsWithDebt
			}
			break
		}
	}
	return limit
}

// inDateRange checks an ISO date against optional inclusive bounds. ISO
// strings compare correctly without parsing.
func inDateRange(date, startDate, endDate string) bool {
	if startDate != "" && date < startDate {
		return false
	}
	if endDate != "" && date > endDate {
		return false
	}
	return true
}
