// Package workflow defines the product review state machine. It is pure
// logic: the valid workflow statuses, the transition table between them, and
// nothing about how a transition is persisted.
package workflow

import (
	"errors"
	"fmt"

	"wellmart/backend/pkg/models"
)

var (
	// ErrInvalidStatus means the requested status is not one of the five
	// workflow statuses.
	ErrInvalidStatus = errors.New("invalid workflow status")
	// ErrInvalidTransition means the requested transition is not in the
	// transition table for the current status.
	ErrInvalidTransition = errors.New("invalid workflow transition")
)

// InitialStatus is the workflow status assigned to every new product.
const InitialStatus = models.WorkflowStatusDraft

// transitions maps each status to the statuses reachable from it.
// published is terminal; rejected can be resubmitted for review.
var transitions = map[models.WorkflowStatus][]models.WorkflowStatus{
	models.WorkflowStatusDraft:         {models.WorkflowStatusPendingReview},
	models.WorkflowStatusPendingReview: {models.WorkflowStatusApproved, models.WorkflowStatusRejected},
	models.WorkflowStatusApproved:      {models.WorkflowStatusPublished},
	models.WorkflowStatusRejected:      {models.WorkflowStatusPendingReview},
	models.WorkflowStatusPublished:     {},
}

// IsValidStatus reports whether s is one of the five workflow statuses.
func IsValidStatus(s models.WorkflowStatus) bool {
	_, ok := transitions[s]
	return ok
}

// NextStates returns the statuses reachable from the given status. The
// returned slice is a copy; callers may modify it.
func NextStates(from models.WorkflowStatus) []models.WorkflowStatus {
	next, ok := transitions[from]
	if !ok {
		return nil
	}
	out := make([]models.WorkflowStatus, len(next))
	copy(out, next)
	return out
}

// ValidateTransition checks that moving from one status to another is
// allowed by the transition table.
func ValidateTransition(from, to models.WorkflowStatus) error {
	if !IsValidStatus(from) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, from)
	}
	if !IsValidStatus(to) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, to)
	}
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}
