package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ProblemDetails represents an RFC 7807 Problem Details response
type ProblemDetails struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail"`
	Instance string `json:"instance,omitempty"`
}

// ErrorHandler renders all handler errors as RFC 7807
// application/problem+json bodies. Install it as the echo server's
// HTTPErrorHandler.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	detail := err.Error()
	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		detail = fmt.Sprint(he.Message)
	}

	problem := ProblemDetails{
		Type:     "about:blank",
		Title:    http.StatusText(status),
		Status:   status,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	}

	if c.Request().Method == http.MethodHead {
		c.NoContent(status)
		return
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/problem+json")
	c.Response().WriteHeader(status)
	json.NewEncoder(c.Response()).Encode(problem)
}
