package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"wellmart/backend/pkg/models"
)

// CreateTaskRequest is the request body for opening a workflow task.
type CreateTaskRequest struct {
	TaskType  models.TaskType     `json:"task_type"`
	ProductID string              `json:"product_id"`
	Priority  models.TaskPriority `json:"priority"`
}

// UpdateTaskStatusRequest is the request body for moving a task through its
// lifecycle.
type UpdateTaskStatusRequest struct {
	Status models.TaskStatus `json:"status"`
}

// ListTasks returns all workflow tasks
// (GET /api/v1/tasks)
func (s *Server) ListTasks(c echo.Context) error {
	tasks, err := s.tasks.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	if tasks == nil {
		tasks = []*models.WorkflowTask{}
	}
	return c.JSON(http.StatusOK, tasks)
}

// CreateTask opens a new task for a product
// (POST /api/v1/tasks)
func (s *Server) CreateTask(c echo.Context) error {
	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	if req.ProductID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "product_id is required")
	}
	if req.TaskType == "" {
		req.TaskType = models.TaskTypeReviewProduct
	}
	if req.Priority == "" {
		req.Priority = models.TaskPriorityMedium
	}

	task, err := s.tasks.Create(c.Request().Context(), req.TaskType, req.ProductID, req.Priority)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, task)
}

// GetTask returns a single task
// (GET /api/v1/tasks/:id)
func (s *Server) GetTask(c echo.Context) error {
	task, err := s.tasks.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, task)
}

// UpdateTaskStatus sets a task's status
// (PATCH /api/v1/tasks/:id/status)
func (s *Server) UpdateTaskStatus(c echo.Context) error {
	var req UpdateTaskStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	if req.Status == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "status is required")
	}

	task, err := s.tasks.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, task)
}
