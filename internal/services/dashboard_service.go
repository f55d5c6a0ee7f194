package services

import (
	"context"

	"wellmart/backend/internal/repository"
	"wellmart/backend/pkg/models"
)

// WorkflowStats counts products per workflow status.
type WorkflowStats struct {
	Draft         int `json:"draft"`
	PendingReview int `json:"pending_review"`
	Approved      int `json:"approved"`
	Rejected      int `json:"rejected"`
	Published     int `json:"published"`
}

// TaskStats counts tasks per status plus the open high-priority backlog.
type TaskStats struct {
	Pending          int `json:"pending"`
	InProgress       int `json:"in_progress"`
	Completed        int `json:"completed"`
	HighPriorityOpen int `json:"high_priority_open"`
}

// DashboardStats is the aggregated view shown on the admin dashboard. It is
// derived on every read and never persisted.
type DashboardStats struct {
	TotalProducts int           `json:"total_products"`
	Workflow      WorkflowStats `json:"workflow"`
	Tasks         TaskStats     `json:"tasks"`
}

// DashboardService computes read-only summary counts over the current
// product and task collections.
type DashboardService struct {
	store repository.Store
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(store repository.Store) *DashboardService {
	return &DashboardService{store: store}
}

// Stats loads the current products and tasks and aggregates them in memory.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalProducts: len(products),
		Workflow:      AggregateWorkflow(products),
		Tasks:         AggregateTasks(tasks),
	}, nil
}

// AggregateWorkflow counts products by workflow status.
func AggregateWorkflow(products []*models.Product) WorkflowStats {
	var stats WorkflowStats
	for _, p := range products {
		switch p.WorkflowStatus {
		case models.WorkflowStatusDraft:
			stats.Draft++
		case models.WorkflowStatusPendingReview:
			stats.PendingReview++
		case models.WorkflowStatusApproved:
			stats.Approved++
		case models.WorkflowStatusRejected:
			stats.Rejected++
		case models.WorkflowStatusPublished:
			stats.Published++
		}
	}
	return stats
}

// AggregateTasks counts tasks by status. HighPriorityOpen is every
// high-priority task that is not yet completed.
func AggregateTasks(tasks []*models.WorkflowTask) TaskStats {
	var stats TaskStats
	for _, t := range tasks {
		switch t.Status {
		case models.TaskStatusPending:
			stats.Pending++
		case models.TaskStatusInProgress:
			stats.InProgress++
		case models.TaskStatusCompleted:
			stats.Completed++
		}
		if t.Priority == models.TaskPriorityHigh && t.Status != models.TaskStatusCompleted {
			stats.HighPriorityOpen++
		}
	}
	return stats
}
