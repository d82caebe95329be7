package model

import "time"

// PayFrequency is how often the user is paid.
type PayFrequency string

const (
	// PayDaily means paid every day.
	PayDaily PayFrequency = "daily"
	// PayWeekly means paid every week.
	PayWeekly PayFrequency = "weekly"
	// PayBiweekly means paid every two weeks.
	PayBiweekly PayFrequency = "biweekly"
)

// Theme is the UI color scheme preference.
type Theme string

const (
	// ThemeLight is the light color scheme.
	ThemeLight Theme = "light"
	// ThemeDark is the dark color scheme.
	ThemeDark Theme = "dark"
)

// UserSettings is a singleton: at most one record exists. It is created
// lazily with defaults merged under any partial update when absent.
type UserSettings struct {
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
	ID            string       `json:"id"`
	Currency      string       `json:"currency"`
	PayFrequency  PayFrequency `json:"payFrequency"`
	Theme         Theme        `json:"theme"`
	SavingsLimit  float64      `json:"savingsLimit"`
	DebtReminders bool         `json:"debtReminders"`
}

// SettingsPatch is a partial update for UserSettings.
type SettingsPatch struct {
	Currency      *string
	PayFrequency  *PayFrequency
	Theme         *Theme
	SavingsLimit  *float64
	DebtReminders *bool
}

// Apply merges the patch onto a settings record in place.
func (p SettingsPatch) Apply(s *UserSettings) {
	if p.Currency != nil {
		s.Currency = *p.Currency
	}
	if p.PayFrequency != nil {
		s.PayFrequency = *p.PayFrequency
	}
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.SavingsLimit != nil {
		s.SavingsLimit = *p.SavingsLimit
	}
	if p.DebtReminders != nil {
		s.DebtReminders = *p.DebtReminders
	}
}
