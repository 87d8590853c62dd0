package middleware

import (
	"github.com/deploylab/user-api/internal/server"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Middlewares groups all middleware components so router setup passes one
// object around instead of constructing middleware inline.
type Middlewares struct {
	// Global holds CORS, request logging, recovery, secure headers, and
	// the global error handler.
	Global *GlobalMiddlewares

	// ContextEnhancer enriches each request with a request-scoped logger
	// (request_id, method, path, ip, trace metadata).
	ContextEnhancer *ContextEnhancer

	// Tracing installs New Relic transactions and custom attributes.
	Tracing *TracingMiddleware
}

// NewMiddlewares constructs all middleware components from the application
// container. When New Relic is not configured, nrApp is nil and the tracing
// middleware degrades to a no-op.
func NewMiddlewares(s *server.Server) *Middlewares {
	var nrApp *newrelic.Application
	if s.LoggerService != nil {
		nrApp = s.LoggerService.GetApplication()
	}

	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, nrApp),
	}
}
