// Package middleware contains the Echo middleware stack: request IDs,
// request-scoped logger enrichment, New Relic tracing, and the global
// middlewares including the application-wide error handler.
package middleware
