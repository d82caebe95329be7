package model

// SnapshotVersion is the format version written into every export.
const SnapshotVersion = "1.0.0"

// Snapshot is the complete-dataset export payload. It is the sole interchange
// format: importing a snapshot must reproduce every record byte for byte,
// including ids and timestamps.
type Snapshot struct {
	Version               string                 `json:"version"`
	ExportedAt            string                 `json:"exportedAt"`
	User                  SnapshotUser           `json:"user"`
	Income                []Income               `json:"income"`
	Expenses              []Expense              `json:"expenses"`
	Envelopes             []Envelope             `json:"envelopes"`
	Bills                 []Bill                 `json:"bills"`
	Debts                 []DebtAccount          `json:"debts"`
	RecurringTransactions []RecurringTransaction `json:"recurringTransactions"`
	Categories            []Category             `json:"categories"`
	Metadata              SnapshotMetadata       `json:"metadata"`
}

// SnapshotUser wraps the singleton settings record in the export payload.
type SnapshotUser struct {
	Settings UserSettings `json:"settings"`
}

// SnapshotMetadata carries advisory information about a snapshot. Checksum is
// a cheap mismatch detector, not tamper-proofing.
type SnapshotMetadata struct {
	DateRange    DateRange `json:"dateRange"`
	Checksum     string    `json:"checksum"`
	TotalRecords int       `json:"totalRecords"`
}

// DateRange is the min/max transaction date across income and expenses.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// TotalRecords counts every entity in the snapshot except settings.
func (s *Snapshot) TotalRecords() int {
	return len(s.Income) + len(s.Expenses) + len(s.Envelopes) +
		len(s.Bills) + len(s.Debts) + len(s.Categories) +
		len(s.RecurringTransactions)
}
