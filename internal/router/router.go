// Package router initializes the Echo router: it installs the middleware
// chain, sets the global error handler, and maps route groups to their
// handlers.
package router

import (
	"github.com/deploylab/user-api/internal/handler"
	"github.com/deploylab/user-api/internal/middleware"
	"github.com/deploylab/user-api/internal/server"
	"github.com/labstack/echo/v4"
)

// New builds the Echo instance for the application.
//
// Middleware order matters: the New Relic transaction must exist before
// the context enhancer reads trace metadata, and the request id must be
// set before anything logs.
func New(s *server.Server, mw *middleware.Middlewares, h *handler.Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = mw.Global.GlobalErrorHandler

	e.Use(mw.Tracing.NewRelicMiddleware())
	e.Use(middleware.RequestID())
	e.Use(mw.ContextEnhancer.EnhanceContext())
	e.Use(mw.Tracing.EnhanceTracing())
	e.Use(mw.Global.CORS())
	e.Use(mw.Global.RequestLogger())
	e.Use(mw.Global.Recover())
	e.Use(mw.Global.Secure())

	registerUserRoutes(e, h)
	registerHelloRoutes(e, h)
	registerSystemRoutes(e, h)

	return e
}
