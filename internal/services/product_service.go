// Package services contains the application services sitting between the
// HTTP/MCP surfaces and the store.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"wellmart/backend/internal/healthscore"
	"wellmart/backend/internal/logging"
	"wellmart/backend/internal/repository"
	"wellmart/backend/internal/workflow"
	"wellmart/backend/pkg/models"
)

// ErrInvalidScore is returned when a manually set health score falls outside
// the 1-10 range.
var ErrInvalidScore = errors.New("invalid health score")

// ProductService manages products and their review workflow.
type ProductService struct {
	store       repository.Store
	logger      *logging.Logger
	transitions metric.Int64Counter
}

// NewProductService creates a new ProductService.
func NewProductService(store repository.Store, logger *logging.Logger) *ProductService {
	counter, err := otel.Meter("wellmart-admin").Int64Counter("workflow_transitions_total",
		metric.WithDescription("Number of workflow status transitions applied"))
	if err != nil {
		logger.Warn("workflow transition counter unavailable", "error", err)
	}
	return &ProductService{
		store:       store,
		logger:      logger,
		transitions: counter,
	}
}

// Create inserts a new product. The workflow status may be left empty or set
// to draft; setting it to pending_review models the admin submitting the
// product for review on save, which also opens a review task. The first
// history entry is written with a nil previous status.
func (s *ProductService) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	now := time.Now().UTC()
	product.ID = uuid.New().String()
	product.CreatedAt = now
	product.UpdatedAt = now

	if product.Ingredients == nil {
		product.Ingredients = []string{}
	}
	if product.ManualOverride && product.HealthScore != 0 {
		if product.HealthScore < 1 || product.HealthScore > 10 {
			return nil, fmt.Errorf("%w: %d is outside 1-10", ErrInvalidScore, product.HealthScore)
		}
	}
	if product.Status == "" {
		product.Status = models.ProductStatusActive
	}
	if product.WorkflowStatus == "" {
		product.WorkflowStatus = workflow.InitialStatus
	}
	if product.WorkflowStatus != workflow.InitialStatus {
		if err := workflow.ValidateTransition(workflow.InitialStatus, product.WorkflowStatus); err != nil {
			return nil, err
		}
	}

	auto := healthscore.Compute(product.Ingredients)
	product.AutoHealthScore = auto
	if !product.ManualOverride || product.HealthScore == 0 {
		product.HealthScore = auto
	}

	entry := &models.WorkflowHistoryEntry{
		ID:        uuid.New().String(),
		ProductID: product.ID,
		StatusTo:  product.WorkflowStatus,
		CreatedAt: now,
	}

	var task *models.WorkflowTask
	if product.WorkflowStatus == models.WorkflowStatusPendingReview {
		task = newReviewTask(product.ID, now)
	}

	if err := s.store.CreateProduct(ctx, product, entry, task); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.logger.Info("product created",
		"product_id", product.ID,
		"workflow_status", product.WorkflowStatus,
		"health_score", product.HealthScore)
	return product, nil
}

// Get retrieves a product by id.
func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	return s.store.GetProduct(ctx, id)
}

// List returns all products.
func (s *ProductService) List(ctx context.Context) ([]*models.Product, error) {
	return s.store.ListProducts(ctx)
}

// Update applies editable fields to an existing product and re-scores it.
// The auto score is always refreshed; the visible health score is only
// overwritten when manual override is off.
func (s *ProductService) Update(ctx context.Context, id string, updated *models.Product) (*models.Product, error) {
	current, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if updated.Name != "" {
		current.Name = updated.Name
	}
	if updated.Status != "" {
		current.Status = updated.Status
	}
	if updated.Ingredients != nil {
		current.Ingredients = updated.Ingredients
	}
	if updated.AdminNotes != nil {
		current.AdminNotes = updated.AdminNotes
	}
	current.ManualOverride = updated.ManualOverride
	if current.ManualOverride && updated.HealthScore != 0 {
		if updated.HealthScore < 1 || updated.HealthScore > 10 {
			return nil, fmt.Errorf("%w: %d is outside 1-10", ErrInvalidScore, updated.HealthScore)
		}
		current.HealthScore = updated.HealthScore
	}
	if current.Ingredients == nil {
		current.Ingredients = []string{}
	}

	auto := healthscore.Compute(current.Ingredients)
	current.AutoHealthScore = auto
	if !current.ManualOverride {
		current.HealthScore = auto
	}
	current.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateProduct(ctx, current); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return current, nil
}

// Delete removes a product. Its history and tasks are retained for audit.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteProduct(ctx, id)
}

// SetWorkflowStatus transitions a product's workflow status. The transition
// is validated against the state machine, and the product update, history
// append, and review-task creation happen in one store transaction.
func (s *ProductService) SetWorkflowStatus(ctx context.Context, id string, to models.WorkflowStatus, notes *string) (*models.Product, error) {
	if !workflow.IsValidStatus(to) {
		return nil, fmt.Errorf("%w: %q", workflow.ErrInvalidStatus, to)
	}

	product, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	from := product.WorkflowStatus
	if err := workflow.ValidateTransition(from, to); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product.WorkflowStatus = to
	product.UpdatedAt = now

	entry := &models.WorkflowHistoryEntry{
		ID:         uuid.New().String(),
		ProductID:  product.ID,
		StatusFrom: &from,
		StatusTo:   to,
		Notes:      notes,
		CreatedAt:  now,
	}

	var task *models.WorkflowTask
	if to == models.WorkflowStatusPendingReview {
		task = newReviewTask(product.ID, now)
	}

	if err := s.store.TransitionWorkflow(ctx, product, entry, task); err != nil {
		return nil, err
	}

	if s.transitions != nil {
		s.transitions.Add(ctx, 1, metric.WithAttributes(
			attribute.String("from", string(from)),
			attribute.String("to", string(to))))
	}
	s.logger.Info("workflow status changed",
		"product_id", product.ID,
		"from", from,
		"to", to)
	return product, nil
}

// RecomputeHealthScore re-runs the scorer over the product's current
// ingredient list. AutoHealthScore is always updated; HealthScore only when
// manual override is off.
func (s *ProductService) RecomputeHealthScore(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	product.AutoHealthScore = healthscore.Compute(product.Ingredients)
	if !product.ManualOverride {
		product.HealthScore = product.AutoHealthScore
	}
	product.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("recompute health score: %w", err)
	}
	return product, nil
}

// History returns the workflow audit trail for a product, oldest first.
func (s *ProductService) History(ctx context.Context, productID string) ([]*models.WorkflowHistoryEntry, error) {
	return s.store.ListHistory(ctx, productID)
}

func newReviewTask(productID string, now time.Time) *models.WorkflowTask {
	return &models.WorkflowTask{
		ID:        uuid.New().String(),
		TaskType:  models.TaskTypeReviewProduct,
		ProductID: productID,
		Priority:  models.TaskPriorityMedium,
		Status:    models.TaskStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
