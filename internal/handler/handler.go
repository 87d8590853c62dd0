// Package handler contains the HTTP endpoint implementations. Handlers
// bind and validate the request payload, call into the service layer, map
// absent results to not-found errors, and hand successful results to the
// shared pipeline, which wraps them in the response envelope.
package handler
