package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// DashboardStats returns derived workflow and task counts
// (GET /api/v1/dashboard/stats)
func (s *Server) DashboardStats(c echo.Context) error {
	stats, err := s.dashboard.Stats(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, stats)
}
