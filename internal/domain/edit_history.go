package domain

import "time"

// FieldChange is one field-level diff inside an EditHistoryEntry. Structural
// fields (line items, derived totals) carry only the marker flag, never the
// values, to keep entries bounded and reviewable.
type FieldChange struct {
	Field      string `json:"field"`
	OldValue   string `json:"old_value,omitempty"`
	NewValue   string `json:"new_value,omitempty"`
	Structural bool   `json:"structural,omitempty"`
}

// EditHistoryEntry is appended per owning document in strictly non-decreasing
// EditedAt order. Entries survive deletion of the owning document and remain
// retrievable by document id.
type EditHistoryEntry struct {
	ID           int64         `json:"id"`
	DocumentID   string        `json:"document_id"`
	EditedBy     string        `json:"edited_by"`
	EditedByName string        `json:"edited_by_name"`
	EditedAt     time.Time     `json:"edited_at"`
	Changes      []FieldChange `json:"changes"`
}
