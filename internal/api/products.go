package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"wellmart/backend/pkg/models"
)

// CreateProductRequest is the request body for creating a product.
type CreateProductRequest struct {
	Name           string                `json:"name"`
	Status         models.ProductStatus  `json:"status"`
	WorkflowStatus models.WorkflowStatus `json:"workflow_status"`
	Ingredients    []string              `json:"ingredients"`
	AdminNotes     *string               `json:"admin_notes"`
	HealthScore    int                   `json:"health_score"`
	ManualOverride bool                  `json:"manual_override"`
}

// SetWorkflowStatusRequest is the request body for a workflow transition.
type SetWorkflowStatusRequest struct {
	Status models.WorkflowStatus `json:"status"`
	Notes  *string               `json:"notes"`
}

// ListProducts returns all products
// (GET /api/v1/products)
func (s *Server) ListProducts(c echo.Context) error {
	products, err := s.products.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, products)
}

// CreateProduct creates a new product in the review workflow
// (POST /api/v1/products)
func (s *Server) CreateProduct(c echo.Context) error {
	var req CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	product, err := s.products.Create(c.Request().Context(), &models.Product{
		Name:           req.Name,
		Status:         req.Status,
		WorkflowStatus: req.WorkflowStatus,
		Ingredients:    req.Ingredients,
		AdminNotes:     req.AdminNotes,
		HealthScore:    req.HealthScore,
		ManualOverride: req.ManualOverride,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, product)
}

// GetProduct returns a single product
// (GET /api/v1/products/:id)
func (s *Server) GetProduct(c echo.Context) error {
	product, err := s.products.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, product)
}

// UpdateProduct updates a product's editable fields and re-scores it
// (PUT /api/v1/products/:id)
func (s *Server) UpdateProduct(c echo.Context) error {
	var req CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body: "+err.Error())
	}

	product, err := s.products.Update(c.Request().Context(), c.Param("id"), &models.Product{
		Name:           req.Name,
		Status:         req.Status,
		Ingredients:    req.Ingredients,
		AdminNotes:     req.AdminNotes,
		HealthScore:    req.HealthScore,
		ManualOverride: req.ManualOverride,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct removes a product; its audit trail is retained
// (DELETE /api/v1/products/:id)
func (s *Server) DeleteProduct(c echo.Context) error {
	if err := s.products.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// SetWorkflowStatus transitions a product's workflow status
// (POST /api/v1/products/:id/workflow-status)
func (s *Server) SetWorkflowStatus(c echo.Context) error {
	var req SetWorkflowStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	if req.Status == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "status is required")
	}

	product, err := s.products.SetWorkflowStatus(c.Request().Context(), c.Param("id"), req.Status, req.Notes)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, product)
}

// RescoreProduct re-runs the health scorer over the product's ingredients
// (POST /api/v1/products/:id/rescore)
func (s *Server) RescoreProduct(c echo.Context) error {
	product, err := s.products.RecomputeHealthScore(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, product)
}

// ListHistory returns the workflow audit trail for a product, oldest first
// (GET /api/v1/products/:id/history)
func (s *Server) ListHistory(c echo.Context) error {
	history, err := s.products.History(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	if history == nil {
		history = []*models.WorkflowHistoryEntry{}
	}
	return c.JSON(http.StatusOK, history)
}
