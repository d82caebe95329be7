package model

import "time"

// Envelope is a named allocation of funds. Balance is always derived as
// allocatedAmount - spentAmount; the envelope service recomputes it on every
// write and never trusts a caller-supplied value.
type Envelope struct {
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	CategoryID      string    `json:"categoryId,omitempty"`
	AllocatedAmount float64   `json:"allocatedAmount"`
	SpentAmount     float64   `json:"spentAmount"`
	Balance         float64   `json:"balance"`
}

// EnvelopePatch is a partial update for an Envelope. Balance is present so the
// envelope service can write its recomputed value; the service overwrites
// whatever a caller put here.
type EnvelopePatch struct {
	Name            *string
	CategoryID      *string
	AllocatedAmount *float64
	SpentAmount     *float64
	Balance         *float64
}

// Apply merges the patch onto an envelope record in place.
func (p EnvelopePatch) Apply(env *Envelope) {
	if p.Name != nil {
		env.Name = *p.Name
	}
	if p.CategoryID != nil {
		env.CategoryID = *p.CategoryID
	}
	if p.AllocatedAmount != nil {
		env.AllocatedAmount = *p.AllocatedAmount
	}
	if p.SpentAmount != nil {
		env.SpentAmount = *p.SpentAmount
	}
	if p.Balance != nil {
		env.Balance = *p.Balance
	}
}
