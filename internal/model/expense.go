package model

import "time"

// Expense represents a single expense record. CategoryID should reference an
// existing Category; the integrity checker flags dangling references but the
// repository never blocks a write on them.
type Expense struct {
	CreatedAt              time.Time `json:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt"`
	ID                     string    `json:"id"`
	Date                   string    `json:"date"`
	CategoryID             string    `json:"categoryId"`
	Description            string    `json:"description"`
	Notes                  string    `json:"notes,omitempty"`
	RecurringTransactionID string    `json:"recurringTransactionId,omitempty"`
	Tags                   []string  `json:"tags"`
	Amount                 float64   `json:"amount"`
}

// ExpensePatch is a partial update for an Expense.
type ExpensePatch struct {
	Date                   *string
	CategoryID             *string
	Description            *string
	Notes                  *string
	RecurringTransactionID *string
	Tags                   *[]string
	Amount                 *float64
}

// Apply merges the patch onto an expense record in place.
func (p ExpensePatch) Apply(exp *Expense) {
	if p.Date != nil {
		exp.Date = *p.Date
	}
	if p.CategoryID != nil {
		exp.CategoryID = *p.CategoryID
	}
	if p.Description != nil {
		exp.Description = *p.Description
	}
	if p.Notes != nil {
		exp.Notes = *p.Notes
	}
	if p.RecurringTransactionID != nil {
		exp.RecurringTransactionID = *p.RecurringTransactionID
	}
	if p.Tags != nil {
		exp.Tags = *p.Tags
	}
	if p.Amount != nil {
		exp.Amount = *p.Amount
	}
}
