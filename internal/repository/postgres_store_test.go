package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"wellmart/backend/pkg/models"
)

func newDraftProduct(name string) (*models.Product, *models.WorkflowHistoryEntry) {
	now := time.Now().UTC()
	p := &models.Product{
		ID:              uuid.New().String(),
		Name:            name,
		Status:          models.ProductStatusActive,
		WorkflowStatus:  models.WorkflowStatusDraft,
		HealthScore:     7,
		AutoHealthScore: 7,
		Ingredients:     []string{"water"},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	entry := &models.WorkflowHistoryEntry{
		ID:        uuid.New().String(),
		ProductID: p.ID,
		StatusTo:  models.WorkflowStatusDraft,
		CreatedAt: now,
	}
	return p, entry
}

func transitionEntry(p *models.Product, from, to models.WorkflowStatus, notes *string) *models.WorkflowHistoryEntry {
	return &models.WorkflowHistoryEntry{
		ID:         uuid.New().String(),
		ProductID:  p.ID,
		StatusFrom: &from,
		StatusTo:   to,
		Notes:      notes,
		CreatedAt:  time.Now().UTC(),
	}
}

func reviewTask(productID string) *models.WorkflowTask {
	now := time.Now().UTC()
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

func TestPostgresStore(t *testing.T) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test-db"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2)),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}()

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatal(err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatal(err)
	}
	defer pool.Close()

	_, err = pool.Exec(ctx, Schema)
	require.NoError(t, err)

	store := NewPostgresStore(pool)

	t.Run("create and get product", func(t *testing.T) {
		p, entry := newDraftProduct("Organic Granola")
		p.Ingredients = []string{"whole grain oats", "organic honey"}

		require.NoError(t, store.CreateProduct(ctx, p, entry, nil))

		got, err := store.GetProduct(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.Name, got.Name)
		assert.Equal(t, models.WorkflowStatusDraft, got.WorkflowStatus)
		assert.Equal(t, p.Ingredients, got.Ingredients)

		history, err := store.ListHistory(ctx, p.ID)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Nil(t, history[0].StatusFrom)
		assert.Equal(t, models.WorkflowStatusDraft, history[0].StatusTo)
	})

	t.Run("create with nil ingredients", func(t *testing.T) {
		p, entry := newDraftProduct("Mystery Snack")
		p.Ingredients = nil
		require.NoError(t, store.CreateProduct(ctx, p, entry, nil))

		got, err := store.GetProduct(ctx, p.ID)
		require.NoError(t, err)
		assert.Empty(t, got.Ingredients)

		got.Ingredients = nil
		got.UpdatedAt = time.Now().UTC()
		require.NoError(t, store.UpdateProduct(ctx, got))
		got, err = store.GetProduct(ctx, p.ID)
		require.NoError(t, err)
		assert.Empty(t, got.Ingredients)
	})

	t.Run("get missing product", func(t *testing.T) {
		_, err := store.GetProduct(ctx, uuid.New().String())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("transition appends history and creates task once", func(t *testing.T) {
		p, entry := newDraftProduct("Protein Bar")
		require.NoError(t, store.CreateProduct(ctx, p, entry, nil))

		p.WorkflowStatus = models.WorkflowStatusPendingReview
		p.UpdatedAt = time.Now().UTC()
		err := store.TransitionWorkflow(ctx, p,
			transitionEntry(p, models.WorkflowStatusDraft, models.WorkflowStatusPendingReview, nil),
			reviewTask(p.ID))
		require.NoError(t, err)

		got, err := store.GetProduct(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, models.WorkflowStatusPendingReview, got.WorkflowStatus)

		history, err := store.ListHistory(ctx, p.ID)
		require.NoError(t, err)
		require.Len(t, history, 2)
		require.NotNil(t, history[1].StatusFrom)
		assert.Equal(t, models.WorkflowStatusDraft, *history[1].StatusFrom)
		assert.Equal(t, models.WorkflowStatusPendingReview, history[1].StatusTo)

		// re-submission after rejection must not create a second pending task
		p.WorkflowStatus = models.WorkflowStatusRejected
		require.NoError(t, store.TransitionWorkflow(ctx, p,
			transitionEntry(p, models.WorkflowStatusPendingReview, models.WorkflowStatusRejected, nil), nil))
		p.WorkflowStatus = models.WorkflowStatusPendingReview
		require.NoError(t, store.TransitionWorkflow(ctx, p,
			transitionEntry(p, models.WorkflowStatusRejected, models.WorkflowStatusPendingReview, nil),
			reviewTask(p.ID)))

		tasks, err := store.ListTasks(ctx)
		require.NoError(t, err)
		count := 0
		for _, task := range tasks {
			if task.ProductID == p.ID {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})

	t.Run("history entries sharing a timestamp keep insertion order", func(t *testing.T) {
		p, entry := newDraftProduct("Green Tea")
		require.NoError(t, store.CreateProduct(ctx, p, entry, nil))

		now := time.Now().UTC()
		steps := []struct{ from, to models.WorkflowStatus }{
			{models.WorkflowStatusDraft, models.WorkflowStatusPendingReview},
			{models.WorkflowStatusPendingReview, models.WorkflowStatusApproved},
			{models.WorkflowStatusApproved, models.WorkflowStatusPublished},
		}
		for _, step := range steps {
			p.WorkflowStatus = step.to
			p.UpdatedAt = now
			e := transitionEntry(p, step.from, step.to, nil)
			e.CreatedAt = now
			require.NoError(t, store.TransitionWorkflow(ctx, p, e, nil))
		}

		history, err := store.ListHistory(ctx, p.ID)
		require.NoError(t, err)
		require.Len(t, history, 4)
		want := []models.WorkflowStatus{
			models.WorkflowStatusDraft,
			models.WorkflowStatusPendingReview,
			models.WorkflowStatusApproved,
			models.WorkflowStatusPublished,
		}
		for i, status := range want {
			assert.Equal(t, status, history[i].StatusTo)
		}
	})

	t.Run("transition guarded on previous status", func(t *testing.T) {
		p, entry := newDraftProduct("Trail Mix")
		require.NoError(t, store.CreateProduct(ctx, p, entry, nil))

		// simulate a racing admin: claim the product is pending_review when
		// it is still draft
		p.WorkflowStatus = models.WorkflowStatusApproved
		err := store.TransitionWorkflow(ctx, p,
			transitionEntry(p, models.WorkflowStatusPendingReview, models.WorkflowStatusApproved, nil), nil)
		assert.ErrorIs(t, err, ErrConflict)

		// no history must have been written for the failed transition
		history, err := store.ListHistory(ctx, p.ID)
		require.NoError(t, err)
		assert.Len(t, history, 1)
	})

	t.Run("transition on missing product", func(t *testing.T) {
		p, _ := newDraftProduct("Ghost Product")
		p.WorkflowStatus = models.WorkflowStatusPendingReview
		err := store.TransitionWorkflow(ctx, p,
			transitionEntry(p, models.WorkflowStatusDraft, models.WorkflowStatusPendingReview, nil), nil)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("duplicate pending task rejected", func(t *testing.T) {
		p, entry := newDraftProduct("Kale Chips")
		require.NoError(t, store.CreateProduct(ctx, p, entry, nil))

		require.NoError(t, store.CreateTask(ctx, reviewTask(p.ID)))
		err := store.CreateTask(ctx, reviewTask(p.ID))
		assert.ErrorIs(t, err, ErrDuplicateTask)
	})

	t.Run("update task status", func(t *testing.T) {
		p, entry := newDraftProduct("Chia Pudding")
		require.NoError(t, store.CreateProduct(ctx, p, entry, nil))
		task := reviewTask(p.ID)
		require.NoError(t, store.CreateTask(ctx, task))

		updated, err := store.UpdateTaskStatus(ctx, task.ID, models.TaskStatusCompleted)
		require.NoError(t, err)
		assert.Equal(t, models.TaskStatusCompleted, updated.Status)

		// a completed task no longer blocks a new pending one
		require.NoError(t, store.CreateTask(ctx, reviewTask(p.ID)))

		_, err = store.UpdateTaskStatus(ctx, uuid.New().String(), models.TaskStatusCompleted)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete product retains history and tasks", func(t *testing.T) {
		p, entry := newDraftProduct("Oat Milk")
		require.NoError(t, store.CreateProduct(ctx, p, entry, nil))
		task := reviewTask(p.ID)
		require.NoError(t, store.CreateTask(ctx, task))

		require.NoError(t, store.DeleteProduct(ctx, p.ID))
		_, err := store.GetProduct(ctx, p.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		history, err := store.ListHistory(ctx, p.ID)
		require.NoError(t, err)
		assert.Len(t, history, 1)

		got, err := store.GetTask(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, task.ID, got.ID)
	})
}
