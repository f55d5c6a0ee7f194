package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"wellmart/backend/internal/logging"
	"wellmart/backend/internal/repository"
	"wellmart/backend/pkg/models"
)

var (
	// ErrInvalidPriority means the priority is not low, medium or high.
	ErrInvalidPriority = errors.New("invalid task priority")
	// ErrInvalidTaskStatus means the status is not pending, in_progress or
	// completed.
	ErrInvalidTaskStatus = errors.New("invalid task status")
)

// TaskService manages workflow tasks. Task lifecycle is deliberately
// independent of the product workflow: approving a product does not complete
// its review task.
type TaskService struct {
	store  repository.Store
	logger *logging.Logger
}

// NewTaskService creates a new TaskService.
func NewTaskService(store repository.Store, logger *logging.Logger) *TaskService {
	return &TaskService{store: store, logger: logger}
}

// Create opens a new task for a product. The product must exist; a pending
// task of the same type for the same product may not already exist.
func (s *TaskService) Create(ctx context.Context, taskType models.TaskType, productID string, priority models.TaskPriority) (*models.WorkflowTask, error) {
	switch priority {
	case models.TaskPriorityLow, models.TaskPriorityMedium, models.TaskPriorityHigh:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidPriority, priority)
	}

	if _, err := s.store.GetProduct(ctx, productID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task := &models.WorkflowTask{
		ID:        uuid.New().String(),
		TaskType:  taskType,
		ProductID: productID,
		Priority:  priority,
		Status:    models.TaskStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateTask(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info("task created",
		"task_id", task.ID,
		"task_type", task.TaskType,
		"product_id", productID,
		"priority", priority)
	return task, nil
}

// Get retrieves a task by id.
func (s *TaskService) Get(ctx context.Context, id string) (*models.WorkflowTask, error) {
	return s.store.GetTask(ctx, id)
}

// List returns all tasks.
func (s *TaskService) List(ctx context.Context) ([]*models.WorkflowTask, error) {
	return s.store.ListTasks(ctx)
}

// UpdateStatus sets a task's status. Any of the three statuses may be set
// from any other; reviewers routinely close a pending task directly.
func (s *TaskService) UpdateStatus(ctx context.Context, id string, status models.TaskStatus) (*models.WorkflowTask, error) {
	switch status {
	case models.TaskStatusPending, models.TaskStatusInProgress, models.TaskStatusCompleted:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidTaskStatus, status)
	}

	task, err := s.store.UpdateTaskStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.logger.Info("task status changed", "task_id", id, "status", status)
	return task, nil
}
