package sqlerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/deploylab/user-api/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleErrorUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		Severity:       "ERROR",
		Message:        `duplicate key value violates unique constraint "users_email_key"`,
		TableName:      "users",
		ConstraintName: "users_email_key",
	}

	err := HandleError(pgErr)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 409, httpErr.Status)
	assert.Equal(t, "USER_ALREADY_EXISTS", httpErr.Code)
	assert.Contains(t, httpErr.Message, "Email")
	assert.True(t, httpErr.Override)
}

func TestHandleErrorForeignKeyViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:       "23503",
		Severity:   "ERROR",
		TableName:  "users",
		ColumnName: "team_id",
	}

	err := HandleError(pgErr)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Status)
	assert.Equal(t, "USER_NOT_FOUND", httpErr.Code)
}

func TestHandleErrorNotNullViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:       "23502",
		Severity:   "ERROR",
		TableName:  "users",
		ColumnName: "email",
	}

	err := HandleError(pgErr)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Status)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "email", httpErr.Errors[0].Field)
}

func TestHandleErrorNoRows(t *testing.T) {
	err := HandleError(pgx.ErrNoRows)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 404, httpErr.Status)
}

func TestHandleErrorPassesThroughHTTPErrors(t *testing.T) {
	code := "USER_ALREADY_EXISTS"
	original := errs.NewConflictError("Email already in use", true, &code)

	err := HandleError(original)
	assert.Same(t, original, err)
}

func TestHandleErrorUnknownBecomesInternal(t *testing.T) {
	err := HandleError(errors.New("connection reset by peer"))

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 500, httpErr.Status)
}

func TestHandleErrorWrappedPgError(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		TableName:      "users",
		ConstraintName: "users_email_key",
	}
	wrapped := fmt.Errorf("create user: %w", pgErr)

	err := HandleError(wrapped)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 409, httpErr.Status)
}

func TestMapCode(t *testing.T) {
	assert.Equal(t, UniqueViolation, MapCode("23505"))
	assert.Equal(t, ForeignKeyViolation, MapCode("23503"))
	assert.Equal(t, NotNullViolation, MapCode("23502"))
	assert.Equal(t, CheckViolation, MapCode("23514"))
	assert.Equal(t, Other, MapCode("99999"))
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "email", extractColumnForUniqueViolation("users_email_key"))
	assert.Equal(t, "email", extractColumnForUniqueViolation("unique_users_email"))
	assert.Equal(t, "", extractColumnForUniqueViolation("pkey"))
	assert.Equal(t, "", extractColumnForUniqueViolation(""))
}
