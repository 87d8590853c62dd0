// Package errs defines the application's error taxonomy.
//
// Every failure that reaches a client is expressed as an *HTTPError:
// a machine-readable code, a human-readable message, an HTTP status,
// and optionally a list of field-level validation errors. The global
// error handler is the single place that renders these into the
// response envelope.
package errs
