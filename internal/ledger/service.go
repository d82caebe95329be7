// Package ledger merges income and expense records into one transaction
// stream, computed on read rather than persisted.
package ledger

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/chk2chk/chk2chk/internal/service"
)

// TransactionType distinguishes ledger entries.
type TransactionType string

const (
	// TypeIncome marks an entry backed by an income record.
	TypeIncome TransactionType = "income"
	// TypeExpense marks an entry backed by an expense record.
	TypeExpense TransactionType = "expense"
)

// Transaction is one row of the unified ledger. IDs are prefixed with the
// entry type so income and expense ids can never collide in the stream.
type Transaction struct {
	CreatedAt   time.Time
	ID          string
	Type        TransactionType
	Date        string
	Description string
	Source      string
	Category    string
	Tags        []string
	Notes       string
	Amount      float64
}

// SortField selects the ledger sort key.
type SortField string

// Sortable ledger fields.
const (
	SortByDate        SortField = "date"
	SortByAmount      SortField = "amount"
	SortByType        SortField = "type"
	SortByDescription SortField = "description"
)

// SortDirection selects ascending or descending order.
type SortDirection string

// Sort directions.
const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Service produces the merged transaction view.
type Service struct {
	storage service.Storage
}

// NewService creates a ledger service backed by the given repository.
func NewService(storage service.Storage) *Service {
	return &Service{storage: storage}
}

// GetAllTransactions fans out to income, expenses, and categories, and merges
// the results. Expense categories are resolved to names; an unknown category
// id leaves the name empty.
func (s *Service) GetAllTransactions(ctx context.Context) ([]Transaction, error) {
	incomes, err := s.storage.GetAllIncomes(ctx)
	if err != nil {
		return nil, err
	}
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

	transactions := make([]Transaction, 0, len(incomes)+len(expenses))
	for _, inc := range incomes {
		transactions = append(transactions, Transaction{
			ID:          "income-" + inc.ID,
			Type:        TypeIncome,
			Date:        inc.Date,
			Amount:      inc.Amount,
			Description: inc.Source,
			Source:      inc.Source,
			Notes:       inc.Notes,
			CreatedAt:   inc.CreatedAt,
		})
	}
	for _, exp := range expenses {
		transactions = append(transactions, Transaction{
			ID:          "expense-" + exp.ID,
			Type:        TypeExpense,
			Date:        exp.Date,
			Amount:      exp.Amount,
			Description: exp.Description,
			Category:    categoryNames[exp.CategoryID],
			Tags:        exp.Tags,
			Notes:       exp.Notes,
			CreatedAt:   exp.CreatedAt,
		})
	}

	return transactions, nil
}

// SortTransactions returns a sorted copy of the transaction stream.
func SortTransactions(transactions []Transaction, field SortField, direction SortDirection) []Transaction {
	sorted := make([]Transaction, len(transactions))
	copy(sorted, transactions)

	sort.SliceStable(sorted, func(i, j int) bool {
		var cmp int
		switch field {
		case SortByAmount:
			switch {
			case sorted[i].Amount < sorted[j].Amount:
				cmp = -1
			case sorted[i].Amount > sorted[j].Amount:
				cmp = 1
			}
		case SortByType:
			cmp = strings.Compare(string(sorted[i].Type), string(sorted[j].Type))
		case SortByDescription:
			cmp = strings.Compare(sorted[i].Description, sorted[j].Description)
		default:
			// ISO dates compare correctly as strings.
			cmp = strings.Compare(sorted[i].Date, sorted[j].Date)
		}
		if direction == SortDesc {
			return cmp > 0
		}
		return cmp < 0
	})

	return sorted
}
