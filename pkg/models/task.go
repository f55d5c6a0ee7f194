package models

import (
	"time"
)

// TaskType identifies the kind of review work a task represents.
type TaskType string

const (
	TaskTypeReviewProduct TaskType = "review_product"
)

// TaskPriority represents the urgency of a workflow task.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// TaskStatus represents the lifecycle state of a workflow task.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// WorkflowTask is a unit of review work tied to a product. The task's own
// lifecycle is tracked independently of the product's workflow status: the
// product may be deleted or transitioned without the task changing.
type WorkflowTask struct {
	ID        string       `json:"id" db:"id"`
	TaskType  TaskType     `json:"task_type" db:"task_type"`
	ProductID string       `json:"product_id" db:"product_id"`
	Priority  TaskPriority `json:"priority" db:"priority"`
	Status    TaskStatus   `json:"status" db:"status"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt time.Time    `json:"updated_at" db:"updated_at"`
}
