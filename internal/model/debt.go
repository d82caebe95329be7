package model

import "time"

// DebtType classifies a debt account.
type DebtType string

const (
	// DebtCreditCard is revolving credit card debt.
	DebtCreditCard DebtType = "credit_card"
	// DebtLoan is an installment loan.
	DebtLoan DebtType = "loan"
	// DebtOther is any other kind of debt.
	DebtOther DebtType = "other"
)

// DebtAccount is purely informational: no linkage to expenses, read only by
// the savings-cap policy.
type DebtAccount struct {
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Type           DebtType  `json:"type"`
	DueDate        string    `json:"dueDate,omitempty"`
	Balance        float64   `json:"balance"`
	MinimumPayment float64   `json:"minimumPayment"`
	InterestRate   float64   `json:"interestRate,omitempty"`
}

// DebtPatch is a partial update for a DebtAccount.
type DebtPatch struct {
	Name           *string
	Type           *DebtType
	DueDate        *string
	Balance        *float64
	MinimumPayment *float64
	InterestRate   *float64
}

// Apply merges the patch onto a debt account in place.
func (p DebtPatch) Apply(d *DebtAccount) {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Type != nil {
		d.Type = *p.Type
	}
	if p.DueDate != nil {
		d.DueDate = *p.DueDate
	}
	if p.Balance != nil {
		d.Balance = *p.Balance
	}
	if p.MinimumPayment != nil {
		d.MinimumPayment = *p.MinimumPayment
	}
	if p.InterestRate != nil {
		d.InterestRate = *p.InterestRate
	}
}
