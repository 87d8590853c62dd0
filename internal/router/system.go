package router

import (
	"github.com/deploylab/user-api/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes maps endpoints that are not business logic: the
// health check, the docs UI, and the static assets backing it.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/health", h.Health.CheckHealth)

	// Serves openapi.json and openapi.html.
	r.Static("/static", "static")

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
