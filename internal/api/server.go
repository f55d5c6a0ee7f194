// Package api contains the HTTP handlers for the admin workflow REST API
package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"wellmart/backend/internal/repository"
	"wellmart/backend/internal/services"
	"wellmart/backend/internal/workflow"
)

// Server holds the dependencies for the API server.
type Server struct {
	products  *services.ProductService
	tasks     *services.TaskService
	dashboard *services.DashboardService
}

// NewServer creates a new Server.
func NewServer(products *services.ProductService, tasks *services.TaskService, dashboard *services.DashboardService) *Server {
	return &Server{
		products:  products,
		tasks:     tasks,
		dashboard: dashboard,
	}
}

// RegisterRoutes mounts all API routes on the given group.
func (s *Server) RegisterRoutes(g *echo.Group) {
	g.GET("/products", s.ListProducts)
	g.POST("/products", s.CreateProduct)
	g.GET("/products/:id", s.GetProduct)
	g.PUT("/products/:id", s.UpdateProduct)
	g.DELETE("/products/:id", s.DeleteProduct)
	g.POST("/products/:id/workflow-status", s.SetWorkflowStatus)
	g.POST("/products/:id/rescore", s.RescoreProduct)
	g.GET("/products/:id/history", s.ListHistory)

	g.GET("/tasks", s.ListTasks)
	g.POST("/tasks", s.CreateTask)
	g.GET("/tasks/:id", s.GetTask)
	g.PATCH("/tasks/:id/status", s.UpdateTaskStatus)

	g.GET("/dashboard/stats", s.DashboardStats)
}

// HealthStatus represents the health check response
type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
}

// HandleHealth returns basic health status (always returns 200 OK)
func (s *Server) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Service:   "wellmart-admin",
		Version:   "1.0.0",
	})
}

// httpError maps service and store errors onto HTTP status codes.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, workflow.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrInvalidTaskStatus),
		errors.Is(err, services.ErrInvalidScore):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, workflow.ErrInvalidTransition),
		errors.Is(err, repository.ErrConflict),
		errors.Is(err, repository.ErrDuplicateTask):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
