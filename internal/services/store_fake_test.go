package services

import (
	"context"
	"sync"
	"time"

	"wellmart/backend/internal/repository"
	"wellmart/backend/pkg/models"
)

// fakeStore is an in-memory repository.Store with the same semantics as the
// Postgres implementation: transactional transitions guarded on the previous
// status, pending-task dedupe, and audit rows that survive product deletion.
type fakeStore struct {
	mu       sync.Mutex
	products map[string]*models.Product
	tasks    []*models.WorkflowTask
	history  []*models.WorkflowHistoryEntry

	failTransition error
}

func newFakeStore() *fakeStore {
	return &fakeStore{products: make(map[string]*models.Product)}
}

func (f *fakeStore) CreateProduct(_ context.Context, product *models.Product, entry *models.WorkflowHistoryEntry, task *models.WorkflowTask) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	cp := *product
	f.products[product.ID] = &cp
	f.history = append(f.history, entry)
	if task != nil && !f.hasPendingTaskLocked(task.ProductID, task.TaskType) {
		f.tasks = append(f.tasks, task)
	}
	return nil
}

func (f *fakeStore) GetProduct(_ context.Context, id string) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeStore) ListProducts(_ context.Context) ([]*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]*models.Product, 0, len(f.products))
	for _, p := range f.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeStore) UpdateProduct(_ context.Context, product *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	current, ok := f.products[product.ID]
	if !ok {
		return repository.ErrNotFound
	}
	cp := *product
	cp.WorkflowStatus = current.WorkflowStatus
	f.products[product.ID] = &cp
	return nil
}

func (f *fakeStore) DeleteProduct(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeStore) TransitionWorkflow(_ context.Context, product *models.Product, entry *models.WorkflowHistoryEntry, task *models.WorkflowTask) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failTransition != nil {
		return f.failTransition
	}

	current, ok := f.products[product.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if entry.StatusFrom == nil || current.WorkflowStatus != *entry.StatusFrom {
		return repository.ErrConflict
	}

	current.WorkflowStatus = product.WorkflowStatus
	current.UpdatedAt = product.UpdatedAt
	f.history = append(f.history, entry)
	if task != nil && !f.hasPendingTaskLocked(task.ProductID, task.TaskType) {
		f.tasks = append(f.tasks, task)
	}
	return nil
}

func (f *fakeStore) ListHistory(_ context.Context, productID string) ([]*models.WorkflowHistoryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*models.WorkflowHistoryEntry
	for _, e := range f.history {
		if e.ProductID == productID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateTask(_ context.Context, task *models.WorkflowTask) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if task.Status == models.TaskStatusPending && f.hasPendingTaskLocked(task.ProductID, task.TaskType) {
		return repository.ErrDuplicateTask
	}
	f.tasks = append(f.tasks, task)
	return nil
}

func (f *fakeStore) GetTask(_ context.Context, id string) (*models.WorkflowTask, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, t := range f.tasks {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) ListTasks(_ context.Context) ([]*models.WorkflowTask, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]*models.WorkflowTask, len(f.tasks))
	for i, t := range f.tasks {
		cp := *t
		out[i] = &cp
	}
	return out, nil
}

func (f *fakeStore) UpdateTaskStatus(_ context.Context, id string, status models.TaskStatus) (*models.WorkflowTask, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, t := range f.tasks {
		if t.ID == id {
			t.Status = status
			t.UpdatedAt = time.Now().UTC()
			cp := *t
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) hasPendingTaskLocked(productID string, taskType models.TaskType) bool {
	for _, t := range f.tasks {
		if t.ProductID == productID && t.TaskType == taskType && t.Status == models.TaskStatusPending {
			return true
		}
	}
	return false
}

func (f *fakeStore) tasksFor(productID string) []*models.WorkflowTask {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*models.WorkflowTask
	for _, t := range f.tasks {
		if t.ProductID == productID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out
}
