package repository

import (
	"context"
	"errors"

	"wellmart/backend/pkg/models"
)

var (
	// ErrNotFound is returned when a referenced product or task does not
	// exist in the store.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a workflow transition loses a race with a
	// concurrent update of the same product.
	ErrConflict = errors.New("concurrent modification")
	// ErrDuplicateTask is returned when a pending task already exists for
	// the same product and task type.
	ErrDuplicateTask = errors.New("pending task already exists")
)

// Store is the persistence interface for products, workflow tasks and the
// workflow history audit trail.
type Store interface {
	// CreateProduct inserts a product together with its initial history
	// entry and, when task is non-nil, an initial review task. All writes
	// happen in one transaction.
	CreateProduct(ctx context.Context, product *models.Product, entry *models.WorkflowHistoryEntry, task *models.WorkflowTask) error
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	ListProducts(ctx context.Context) ([]*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	// DeleteProduct removes the product row only. History entries and tasks
	// referencing it are retained for audit.
	DeleteProduct(ctx context.Context, id string) error

	// TransitionWorkflow applies a workflow status change atomically: the
	// product row is updated (guarded on the expected previous status), the
	// history entry is appended, and when task is non-nil a review task is
	// created unless an equivalent pending task already exists.
	TransitionWorkflow(ctx context.Context, product *models.Product, entry *models.WorkflowHistoryEntry, task *models.WorkflowTask) error
	ListHistory(ctx context.Context, productID string) ([]*models.WorkflowHistoryEntry, error)

	CreateTask(ctx context.Context, task *models.WorkflowTask) error
	GetTask(ctx context.Context, id string) (*models.WorkflowTask, error)
	ListTasks(ctx context.Context) ([]*models.WorkflowTask, error)
	UpdateTaskStatus(ctx context.Context, id string, status models.TaskStatus) (*models.WorkflowTask, error)
}
