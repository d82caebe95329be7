package storage

import (
	"context"
	"fmt"
	"math"

	"github.com/chk2chk/chk2chk/internal/service"
)

// balanceEpsilon is the tolerance for comparing a stored envelope balance
// against its recomputed value.
const balanceEpsilon = 0.01

// ValidateDataIntegrity runs a read-only consistency scan and accumulates
// human-readable problems instead of failing. A storage error during the scan
// itself is reported as a single entry rather than propagating.
func (s *SQLiteStorage) ValidateDataIntegrity(ctx context.Context) (*service.IntegrityReport, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var errs []string

	envelopes, err := s.GetAllEnvelopes(ctx)
	if err != nil {
		return &service.IntegrityReport{
			Valid:  false,
			Errors: []string{fmt.Sprintf("validation error: %v", err)},
		}, nil
	}
	for _, env := range envelopes {
		calculated := env.AllocatedAmount - env.SpentAmount
		if math.Abs(env.Balance-calculated) > balanceEpsilon {
			errs = append(errs, fmt.Sprintf("envelope %s has incorrect balance calculation", env.ID))
		}
	}

	expenses, err := s.GetAllExpenses(ctx)
	if err != nil {
		return &service.IntegrityReport{
			Valid:  false,
			Errors: append(errs, fmt.Sprintf("validation error: %v", err)),
		}, nil
	}
	categories, err := s.GetAllCategories(ctx)
	if err != nil {
		return &service.IntegrityReport{
			Valid:  false,
			Errors: append(errs, fmt.Sprintf("validation error: %v", err)),
		}, nil
	}

	categoryIDs := make(map[string]struct{}, len(categories))
	for _, cat := range categories {
		categoryIDs[cat.ID] = struct{}{}
	}
	for _, exp := range expenses {
		if _, ok := categoryIDs[exp.CategoryID]; !ok {
			errs = append(errs, fmt.Sprintf("expense %s references non-existent category %s", exp.ID, exp.CategoryID))
		}
	}

	return &service.IntegrityReport{
		Valid:  len(errs) == 0,
		Errors: errs,
	}, nil
}
