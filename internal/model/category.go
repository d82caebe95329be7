package model

import "time"

// Category is a user-visible expense grouping. Names are not unique in
// storage; the bootstrapper only seeds defaults into an empty table.
type Category struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon,omitempty"`
}

// CategoryPatch is a partial update for a Category.
type CategoryPatch struct {
	Name  *string
	Color *string
	Icon  *string
}

// Apply merges the patch onto a category in place.
func (p CategoryPatch) Apply(c *Category) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
	if p.Icon != nil {
		c.Icon = *p.Icon
	}
}
