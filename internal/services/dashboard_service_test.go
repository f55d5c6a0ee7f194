package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wellmart/backend/pkg/models"
)

func TestAggregateWorkflow(t *testing.T) {
	products := []*models.Product{
		{WorkflowStatus: models.WorkflowStatusDraft},
		{WorkflowStatus: models.WorkflowStatusDraft},
		{WorkflowStatus: models.WorkflowStatusPendingReview},
		{WorkflowStatus: models.WorkflowStatusApproved},
		{WorkflowStatus: models.WorkflowStatusRejected},
		{WorkflowStatus: models.WorkflowStatusPublished},
		{WorkflowStatus: models.WorkflowStatusPublished},
	}

	stats := AggregateWorkflow(products)
	assert.Equal(t, WorkflowStats{
		Draft:         2,
		PendingReview: 1,
		Approved:      1,
		Rejected:      1,
		Published:     2,
	}, stats)
}

func TestAggregateTasks(t *testing.T) {
	tasks := []*models.WorkflowTask{
		{Priority: models.TaskPriorityHigh, Status: models.TaskStatusPending},
		{Priority: models.TaskPriorityHigh, Status: models.TaskStatusInProgress},
		{Priority: models.TaskPriorityHigh, Status: models.TaskStatusCompleted},
		{Priority: models.TaskPriorityLow, Status: models.TaskStatusPending},
		{Priority: models.TaskPriorityMedium, Status: models.TaskStatusCompleted},
	}

	stats := AggregateTasks(tasks)
	assert.Equal(t, TaskStats{
		Pending:          2,
		InProgress:       1,
		Completed:        2,
		HighPriorityOpen: 2,
	}, stats)
}

func TestAggregateEmpty(t *testing.T) {
	assert.Equal(t, WorkflowStats{}, AggregateWorkflow(nil))
	assert.Equal(t, TaskStats{}, AggregateTasks(nil))
}

func TestDashboardStats(t *testing.T) {
	store := newFakeStore()
	logger := newTestLogger(t)
	products := NewProductService(store, logger)
	dashboard := NewDashboardService(store)
	ctx := context.Background()

	_, err := products.Create(ctx, &models.Product{Name: "Muesli"})
	require.NoError(t, err)
	_, err = products.Create(ctx, &models.Product{
		Name:           "Protein Shake",
		WorkflowStatus: models.WorkflowStatusPendingReview,
	})
	require.NoError(t, err)

	stats, err := dashboard.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalProducts)
	assert.Equal(t, 1, stats.Workflow.Draft)
	assert.Equal(t, 1, stats.Workflow.PendingReview)
	assert.Equal(t, 1, stats.Tasks.Pending)
	assert.Equal(t, 0, stats.Tasks.HighPriorityOpen)
}
