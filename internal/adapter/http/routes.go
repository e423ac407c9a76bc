package http

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers the health check and both search paths:
// the versioned /api/v1/interconnections and the legacy /interconnections.
func RegisterRoutes(e *echo.Echo, h *InterconnectionHandler) {
	e.GET("/health", h.Health)
	e.GET("/interconnections", h.SearchInterconnections)

	api := e.Group("/api/v1")
	api.GET("/interconnections", h.SearchInterconnections)
}
