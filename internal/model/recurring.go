package model

import "time"

// RecurringType distinguishes recurring income from recurring expenses.
type RecurringType string

const (
	// RecurringIncome generates income records.
	RecurringIncome RecurringType = "income"
	// RecurringExpense generates expense records.
	RecurringExpense RecurringType = "expense"
)

// RecurringFrequency is how often a recurring transaction fires.
type RecurringFrequency string

const (
	// RecurDaily fires every day.
	RecurDaily RecurringFrequency = "daily"
	// RecurWeekly fires every week.
	RecurWeekly RecurringFrequency = "weekly"
	// RecurBiweekly fires every two weeks.
	RecurBiweekly RecurringFrequency = "biweekly"
	// RecurMonthly fires every month.
	RecurMonthly RecurringFrequency = "monthly"
)

// RecurringTransaction is a template consumed by an external scheduler to
// generate future income or expense records.
type RecurringTransaction struct {
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
	ID         string             `json:"id"`
	Type       RecurringType      `json:"type"`
	Frequency  RecurringFrequency `json:"frequency"`
	CategoryID string             `json:"categoryId,omitempty"`
	NextDate   string             `json:"nextDate"`
	Amount     float64            `json:"amount"`
	IsActive   bool               `json:"isActive"`
}

// RecurringPatch is a partial update for a RecurringTransaction.
type RecurringPatch struct {
	Type       *RecurringType
	Frequency  *RecurringFrequency
	CategoryID *string
	NextDate   *string
	Amount     *float64
	IsActive   *bool
}

// Apply merges the patch onto a recurring transaction in place.
func (p RecurringPatch) Apply(r *RecurringTransaction) {
	if p.Type != nil {
		r.Type = *p.Type
	}
	if p.Frequency != nil {
		r.Frequency = *p.Frequency
	}
	if p.CategoryID != nil {
		r.CategoryID = *p.CategoryID
	}
	if p.NextDate != nil {
		r.NextDate = *p.NextDate
	}
	if p.Amount != nil {
		r.Amount = *p.Amount
	}
	if p.IsActive != nil {
		r.IsActive = *p.IsActive
	}
}
