package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"wellmart/backend/pkg/models"
)

// PostgresStore is a PostgreSQL implementation of the Store interface.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

const productColumns = "id, name, status, workflow_status, health_score, auto_health_score, manual_override, ingredients, admin_notes, created_at, updated_at"

func scanProduct(row pgx.Row) (*models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.Name, &p.Status, &p.WorkflowStatus, &p.HealthScore,
		&p.AutoHealthScore, &p.ManualOverride, &p.Ingredients, &p.AdminNotes,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// CreateProduct inserts a product, its initial history entry, and optionally
// an initial review task in one transaction.
func (s *PostgresStore) CreateProduct(ctx context.Context, product *models.Product, entry *models.WorkflowHistoryEntry, task *models.WorkflowTask) error {
	if product.Ingredients == nil {
		product.Ingredients = []string{}
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		"INSERT INTO products ("+productColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)",
		product.ID, product.Name, product.Status, product.WorkflowStatus,
		product.HealthScore, product.AutoHealthScore, product.ManualOverride,
		product.Ingredients, product.AdminNotes, product.CreatedAt, product.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}

	if err := insertHistory(ctx, tx, entry); err != nil {
		return err
	}

	if task != nil {
		if err := insertTask(ctx, tx, task); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// GetProduct retrieves a product by its ID.
func (s *PostgresStore) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	row := s.db.QueryRow(ctx, "SELECT "+productColumns+" FROM products WHERE id = $1", id)
	return scanProduct(row)
}

// ListProducts returns all products, newest first.
func (s *PostgresStore) ListProducts(ctx context.Context) ([]*models.Product, error) {
	rows, err := s.db.Query(ctx, "SELECT "+productColumns+" FROM products ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// UpdateProduct updates the mutable fields of a product. The workflow status
// is deliberately not written here; it only changes through
// TransitionWorkflow.
func (s *PostgresStore) UpdateProduct(ctx context.Context, product *models.Product) error {
	if product.Ingredients == nil {
		product.Ingredients = []string{}
	}
	tag, err := s.db.Exec(ctx,
		`UPDATE products SET name = $1, status = $2, health_score = $3,
			auto_health_score = $4, manual_override = $5, ingredients = $6,
			admin_notes = $7, updated_at = $8 WHERE id = $9`,
		product.Name, product.Status, product.HealthScore, product.AutoHealthScore,
		product.ManualOverride, product.Ingredients, product.AdminNotes,
		product.UpdatedAt, product.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteProduct removes the product row. Workflow history and tasks that
// reference the product are kept.
func (s *PostgresStore) DeleteProduct(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// TransitionWorkflow applies a workflow status change atomically. The product
// update is guarded on the expected previous status so two admins racing on
// the same product cannot both win.
func (s *PostgresStore) TransitionWorkflow(ctx context.Context, product *models.Product, entry *models.WorkflowHistoryEntry, task *models.WorkflowTask) error {
	if entry.StatusFrom == nil {
		return fmt.Errorf("transition entry missing previous status")
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		"UPDATE products SET workflow_status = $1, updated_at = $2 WHERE id = $3 AND workflow_status = $4",
		product.WorkflowStatus, product.UpdatedAt, product.ID, *entry.StatusFrom)
	if err != nil {
		return fmt.Errorf("update workflow status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)", product.ID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		return ErrConflict
	}

	if err := insertHistory(ctx, tx, entry); err != nil {
		return err
	}

	if task != nil {
		// the partial unique index on pending tasks makes re-submission a
		// no-op instead of a duplicate task
		_, err := tx.Exec(ctx,
			`INSERT INTO workflow_tasks (id, task_type, product_id, priority, status, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (product_id, task_type) WHERE status = 'pending' DO NOTHING`,
			task.ID, task.TaskType, task.ProductID, task.Priority, task.Status,
			task.CreatedAt, task.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert review task: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func insertHistory(ctx context.Context, tx pgx.Tx, entry *models.WorkflowHistoryEntry) error {
	_, err := tx.Exec(ctx,
		"INSERT INTO workflow_history (id, product_id, status_from, status_to, notes, created_at) VALUES ($1, $2, $3, $4, $5, $6)",
		entry.ID, entry.ProductID, entry.StatusFrom, entry.StatusTo, entry.Notes, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert history entry: %w", err)
	}
	return nil
}

// ListHistory returns the audit trail for a product in insertion order. The
// seq column breaks ties between entries written in the same instant.
func (s *PostgresStore) ListHistory(ctx context.Context, productID string) ([]*models.WorkflowHistoryEntry, error) {
	rows, err := s.db.Query(ctx,
		"SELECT id, product_id, status_from, status_to, notes, created_at FROM workflow_history WHERE product_id = $1 ORDER BY seq",
		productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.WorkflowHistoryEntry
	for rows.Next() {
		var e models.WorkflowHistoryEntry
		if err := rows.Scan(&e.ID, &e.ProductID, &e.StatusFrom, &e.StatusTo, &e.Notes, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

func insertTask(ctx context.Context, tx pgx.Tx, task *models.WorkflowTask) error {
	_, err := tx.Exec(ctx,
		"INSERT INTO workflow_tasks (id, task_type, product_id, priority, status, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7)",
		task.ID, task.TaskType, task.ProductID, task.Priority, task.Status,
		task.CreatedAt, task.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateTask
		}
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// CreateTask inserts a workflow task. A second pending task for the same
// product and task type is rejected with ErrDuplicateTask.
func (s *PostgresStore) CreateTask(ctx context.Context, task *models.WorkflowTask) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := insertTask(ctx, tx, task); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// GetTask retrieves a task by its ID.
func (s *PostgresStore) GetTask(ctx context.Context, id string) (*models.WorkflowTask, error) {
	var t models.WorkflowTask
	err := s.db.QueryRow(ctx,
		"SELECT id, task_type, product_id, priority, status, created_at, updated_at FROM workflow_tasks WHERE id = $1",
		id).Scan(&t.ID, &t.TaskType, &t.ProductID, &t.Priority, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// ListTasks returns all workflow tasks, newest first.
func (s *PostgresStore) ListTasks(ctx context.Context) ([]*models.WorkflowTask, error) {
	rows, err := s.db.Query(ctx,
		"SELECT id, task_type, product_id, priority, status, created_at, updated_at FROM workflow_tasks ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*models.WorkflowTask
	for rows.Next() {
		var t models.WorkflowTask
		if err := rows.Scan(&t.ID, &t.TaskType, &t.ProductID, &t.Priority, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, &t)
	}
	return tasks, rows.Err()
}

// UpdateTaskStatus sets a task's status and returns the updated task.
func (s *PostgresStore) UpdateTaskStatus(ctx context.Context, id string, status models.TaskStatus) (*models.WorkflowTask, error) {
	var t models.WorkflowTask
	err := s.db.QueryRow(ctx,
		`UPDATE workflow_tasks SET status = $1, updated_at = $2 WHERE id = $3
		 RETURNING id, task_type, product_id, priority, status, created_at, updated_at`,
		status, time.Now().UTC(), id).Scan(&t.ID, &t.TaskType, &t.ProductID, &t.Priority, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}
