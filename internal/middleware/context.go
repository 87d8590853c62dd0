package middleware

import (
	"context"

	"github.com/deploylab/user-api/internal/logger"
	"github.com/deploylab/user-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

// LoggerKey is the key under which the request-scoped logger is stored in
// both Echo context and the Go request context.
const LoggerKey = "logger"

// ContextEnhancer builds a request-scoped child logger carrying
// request_id, method, path, and client IP, plus trace/span ids when a New
// Relic transaction exists, and stores it for the rest of the pipeline.
type ContextEnhancer struct {
	server *server.Server
}

// NewContextEnhancer creates a ContextEnhancer from the app container.
func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

// EnhanceContext returns the middleware that derives and stores the
// request-scoped logger. The parent logger is never mutated; each request
// gets its own child.
func (ce *ContextEnhancer) EnhanceContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := GetRequestID(c)

			contextLogger := ce.server.Logger.With().
				Str("request_id", requestID).
				Str("method", c.Request().Method).
				Str("path", c.Path()). // route template (e.g. "/api/users/:id"), not raw URL
				Str("ip", c.RealIP()).
				Logger()

			if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
				contextLogger = logger.WithTraceContext(contextLogger, txn)
			}

			c.Set(LoggerKey, &contextLogger)

			// Also store the logger in the Go request context so code
			// that only sees context.Context (repositories, jobs) can
			// log with request correlation.
			ctx := context.WithValue(c.Request().Context(), LoggerKey, &contextLogger) //nolint:staticcheck
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// GetLogger retrieves the request-scoped logger from Echo context. When
// EnhanceContext did not run it returns a no-op logger rather than nil.
func GetLogger(c echo.Context) *zerolog.Logger {
	if logger, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return logger
	}

	nop := zerolog.Nop()
	return &nop
}
