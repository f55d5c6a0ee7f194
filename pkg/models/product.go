// Package models defines the domain models for the admin workflow service
package models

import (
	"time"
)

// ProductStatus represents the operational visibility of a product in the
// marketplace, independent of its editorial workflow state.
type ProductStatus string

const (
	ProductStatusActive          ProductStatus = "active"
	ProductStatusInactive        ProductStatus = "inactive"
	ProductStatusPendingApproval ProductStatus = "pending_approval"
)

// WorkflowStatus represents the editorial/publication state of a product.
type WorkflowStatus string

const (
	WorkflowStatusDraft         WorkflowStatus = "draft"
	WorkflowStatusPendingReview WorkflowStatus = "pending_review"
	WorkflowStatusApproved      WorkflowStatus = "approved"
	WorkflowStatusRejected      WorkflowStatus = "rejected"
	WorkflowStatusPublished     WorkflowStatus = "published"
)

// Product represents a health product as seen by the admin workflow.
type Product struct {
	ID             string         `json:"id" db:"id"`
	Name           string         `json:"name" db:"name"`
	Status         ProductStatus  `json:"status" db:"status"`
	WorkflowStatus WorkflowStatus `json:"workflow_status" db:"workflow_status"`

	// Health scoring. HealthScore is the editable 1-10 rating shown to
	// shoppers; AutoHealthScore is the last machine-computed value and is
	// retained even when an admin overrides the visible score.
	HealthScore     int  `json:"health_score" db:"health_score"`
	AutoHealthScore int  `json:"auto_health_score" db:"auto_health_score"`
	ManualOverride  bool `json:"manual_override" db:"manual_override"`

	// Ingredients is the ordered ingredient list the scorer runs over.
	Ingredients []string `json:"ingredients" db:"ingredients"`

	AdminNotes *string `json:"admin_notes,omitempty" db:"admin_notes"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
