// Package model defines the entity types persisted by the storage layer.
//
// Every entity carries an opaque string ID and a pair of UTC timestamps; all
// three are assigned by the repository, never by callers. Entity dates (the
// "date" on an income or expense, a bill's due date) are ISO strings exactly
// as entered and are never reinterpreted by this layer.
package model

import "time"

// Income represents a single income record.
type Income struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Source    string    `json:"source"`
	Notes     string    `json:"notes,omitempty"`
	Amount    float64   `json:"amount"`
}

// IncomePatch is a partial update for an Income. Nil fields are left
// untouched by the merge.
type IncomePatch struct {
	Date   *string
	Source *string
	Notes  *string
	Amount *float64
}

// Apply merges the patch onto an income record in place.
func (p IncomePatch) Apply(inc *Income) {
	if p.Date != nil {
		inc.Date = *p.Date
	}
	if p.Source != nil {
		inc.Source = *p.Source
	}
	if p.Notes != nil {
		inc.Notes = *p.Notes
	}
	if p.Amount != nil {
		inc.Amount = *p.Amount
	}
}
