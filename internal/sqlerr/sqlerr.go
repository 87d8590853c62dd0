// Package sqlerr classifies database driver errors.
//
// It converts cryptic SQLSTATE codes from the postgres driver into
// application errors with user-presentable messages, e.g. a unique
// violation on the users email index becomes a 409 Conflict.
package sqlerr
