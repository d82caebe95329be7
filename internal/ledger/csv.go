package ledger

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ExportType selects which records a CSV export includes.
type ExportType string

// CSV export scopes.
const (
	ExportIncome   ExportType = "income"
	ExportExpenses ExportType = "expenses"
	ExportAll      ExportType = "all"
)

type csvRow struct {
	date   string
	fields []string
}

// ExportCSV renders income and/or expense records as CSV, sorted by date
// ascending. Income rows carry five columns, expense rows six; a combined
// export keeps the income header. Tags are joined with ";" and the expense
// category column carries the raw category id.
func (s *Service) ExportCSV(ctx context.Context, exportType ExportType) (string, error) {
	var rows []csvRow
	var header string

	if exportType == ExportIncome || exportType == ExportAll {
		incomes, err := s.storage.GetAllIncomes(ctx)
		if err != nil {
			return "", err
		}
		header = "Type,Date,Amount,Source/Category,Notes"
		for _, inc := range incomes {
			rows = append(rows, csvRow{
				date: inc.Date,
				fields: []string{
					"Income",
					inc.Date,
					formatAmount(inc.Amount),
					inc.Source,
					inc.Notes,
				},
			})
		}
	}

	if exportType == ExportExpenses || exportType == ExportAll {
		expenses, err := s.storage.GetAllExpenses(ctx)
		if err != nil {
			return "", err
		}
		if header == "" {
			header = "Type,Date,Amount,Category,Tags,Notes"
		}
		for _, exp := range expenses {
			rows = append(rows, csvRow{
				date: exp.Date,
				fields: []string{
					"Expense",
					exp.Date,
					formatAmount(exp.Amount),
					exp.CategoryID,
					strings.Join(exp.Tags, ";"),
					exp.Notes,
				},
			})
		}
	}

	if header == "" {
		return "", fmt.Errorf("unknown export type %q", exportType)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].date < rows[j].date
	})

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, header)
	for _, row := range rows {
		lines = append(lines, strings.Join(row.fields, ","))
	}
	return strings.Join(lines, "\n"), nil
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
