package models

import (
	"time"
)

// WorkflowHistoryEntry is an immutable audit record of one workflow status
// change. StatusFrom is nil for the entry written at product creation.
// Entries are append-only: never mutated or deleted, and they outlive the
// product they describe.
type WorkflowHistoryEntry struct {
	ID         string          `json:"id" db:"id"`
	ProductID  string          `json:"product_id" db:"product_id"`
	StatusFrom *WorkflowStatus `json:"status_from" db:"status_from"`
	StatusTo   WorkflowStatus  `json:"status_to" db:"status_to"`
	Notes      *string         `json:"notes,omitempty" db:"notes"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}
