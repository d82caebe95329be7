package model

import "time"

// BillFrequency is how often a bill recurs.
type BillFrequency string

const (
	// BillMonthly recurs every month.
	BillMonthly BillFrequency = "monthly"
	// BillWeekly recurs every week.
	BillWeekly BillFrequency = "weekly"
	// BillYearly recurs every year.
	BillYearly BillFrequency = "yearly"
)

// Bill represents a recurring obligation. DueDate is a day-of-month string as
// entered by the user.
type Bill struct {
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	DueDate      string        `json:"dueDate"`
	Frequency    BillFrequency `json:"frequency"`
	CategoryID   string        `json:"categoryId"`
	LastPaidDate string        `json:"lastPaidDate,omitempty"`
	Amount       float64       `json:"amount"`
	IsPaid       bool          `json:"isPaid"`
}

// BillPatch is a partial update for a Bill.
type BillPatch struct {
	Name         *string
	DueDate      *string
	Frequency    *BillFrequency
	CategoryID   *string
	LastPaidDate *string
	Amount       *float64
	IsPaid       *bool
}

// Apply merges the patch onto a bill record in place.
func (p BillPatch) Apply(b *Bill) {
	if p.Name != nil {
		b.Name = *p.Name
	}
	if p.DueDate != nil {
		b.DueDate = *p.DueDate
	}
	if p.Frequency != nil {
		b.Frequency = *p.Frequency
	}
	if p.CategoryID != nil {
		b.CategoryID = *p.CategoryID
	}
	if p.LastPaidDate != nil {
		b.LastPaidDate = *p.LastPaidDate
	}
	if p.Amount != nil {
		b.Amount = *p.Amount
	}
	if p.IsPaid != nil {
		b.IsPaid = *p.IsPaid
	}
}
