// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/chk2chk/chk2chk/internal/model"
)

// Storage defines the contract for the persistence layer. Every alternative
// backend (a future server-backed store included) must satisfy it; no other
// component may reach storage directly.
//
// Contract, uniform across entity types:
//   - Create* assigns a fresh id and sets both timestamps to now.
//   - Get*ByID returns (nil, nil) when the id is absent.
//   - Update* returns common.ErrNotFound when the id is absent; otherwise it
//     merges the patch onto the stored record and refreshes only UpdatedAt.
//   - Delete* on a missing id is a no-op success.
type Storage interface {
	// Income operations
	CreateIncome(ctx context.Context, data model.Income) (*model.Income, error)
	GetAllIncomes(ctx context.Context) ([]model.Income, error)
	GetIncomeByID(ctx context.Context, id string) (*model.Income, error)
	UpdateIncome(ctx context.Context, id string, patch model.IncomePatch) (*model.Income, error)
	DeleteIncome(ctx context.Context, id string) error

	// Expense operations
	CreateExpense(ctx context.Context, data model.Expense) (*model.Expense, error)
	GetAllExpenses(ctx context.Context) ([]model.Expense, error)
	GetExpenseByID(ctx context.Context, id string) (*model.Expense, error)
	UpdateExpense(ctx context.Context, id string, patch model.ExpensePatch) (*model.Expense, error)
	DeleteExpense(ctx context.Context, id string) error

	// Envelope operations
	CreateEnvelope(ctx context.Context, data model.Envelope) (*model.Envelope, error)
	GetAllEnvelopes(ctx context.Context) ([]model.Envelope, error)
	GetEnvelopeByID(ctx context.Context, id string) (*model.Envelope, error)
	UpdateEnvelope(ctx context.Context, id string, patch model.EnvelopePatch) (*model.Envelope, error)
	DeleteEnvelope(ctx context.Context, id string) error

	// Bill operations
	CreateBill(ctx context.Context, data model.Bill) (*model.Bill, error)
	GetAllBills(ctx context.Context) ([]model.Bill, error)
	GetBillByID(ctx context.Context, id string) (*model.Bill, error)
	UpdateBill(ctx context.Context, id string, patch model.BillPatch) (*model.Bill, error)
	DeleteBill(ctx context.Context, id string) error

	// Debt operations
	CreateDebt(ctx context.Context, data model.DebtAccount) (*model.DebtAccount, error)
	GetAllDebts(ctx context.Context) ([]model.DebtAccount, error)
	GetDebtByID(ctx context.Context, id string) (*model.DebtAccount, error)
	UpdateDebt(ctx context.Context, id string, patch model.DebtPatch) (*model.DebtAccount, error)
	DeleteDebt(ctx context.Context, id string) error

	// Category operations
	CreateCategory(ctx context.Context, data model.Category) (*model.Category, error)
	GetAllCategories(ctx context.Context) ([]model.Category, error)
	GetCategoryByID(ctx context.Context, id string) (*model.Category, error)
	UpdateCategory(ctx context.Context, id string, patch model.CategoryPatch) (*model.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	// Recurring transaction operations
	CreateRecurring(ctx context.Context, data model.RecurringTransaction) (*model.RecurringTransaction, error)
	GetAllRecurring(ctx context.Context) ([]model.RecurringTransaction, error)
	GetRecurringByID(ctx context.Context, id string) (*model.RecurringTransaction, error)
	UpdateRecurring(ctx context.Context, id string, patch model.RecurringPatch) (*model.RecurringTransaction, error)
	DeleteRecurring(ctx context.Context, id string) error

	// Settings singleton. GetSettings returns (nil, nil) when no record
	// exists; UpdateSettings then creates one, filling unspecified fields
	// with hard defaults.
	GetSettings(ctx context.Context) (*model.UserSettings, error)
	UpdateSettings(ctx context.Context, patch model.SettingsPatch) (*model.UserSettings, error)

	// Whole-dataset lifecycle
	ExportAllData(ctx context.Context) (*model.Snapshot, error)
	ImportAllData(ctx context.Context, snapshot *model.Snapshot) error
	ValidateDataIntegrity(ctx context.Context) (*IntegrityReport, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// IntegrityReport is the result of a read-only consistency scan. Problems are
// reported as human-readable strings and never block writes.
type IntegrityReport struct {
	Errors []string
	Valid  bool
}
