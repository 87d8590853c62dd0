package repository

import (
	"context"

	"github.com/deploylab/user-api/internal/database"
	"github.com/deploylab/user-api/internal/entity"
	"github.com/deploylab/user-api/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

const (
	findAllUsersSQL = `
		SELECT id, name, email, created_at, updated_at
		FROM users
		ORDER BY id`

	findUserByIDSQL = `
		SELECT id, name, email, created_at, updated_at
		FROM users
		WHERE id = $1`

	findUserByEmailSQL = `
		SELECT id, name, email, created_at, updated_at
		FROM users
		WHERE LOWER(email) = LOWER($1)`

	searchUsersSQL = `
		SELECT id, name, email, created_at, updated_at
		FROM users
		WHERE name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%'
		ORDER BY id`

	createUserSQL = `
		INSERT INTO users (name, email)
		VALUES ($1, $2)
		RETURNING id, name, email, created_at, updated_at`

	updateUserSQL = `
		UPDATE users
		SET name = COALESCE($2, name),
		    email = COALESCE($3, email),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, email, created_at, updated_at`

	deleteUserSQL = `DELETE FROM users WHERE id = $1`

	userExistsSQL = `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`

	countUsersSQL = `SELECT COUNT(*) FROM users`
)

// PostgresUserRepository stores users in PostgreSQL via the shared pgx
// pool. Email uniqueness is enforced by the users_email_key index on
// LOWER(email); violations surface as raw pgconn errors so the global
// error handler can classify them.
type PostgresUserRepository struct {
	db *database.Database
}

// NewPostgresUserRepository creates a user repository backed by the given
// database.
func NewPostgresUserRepository(db *database.Database) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *PostgresUserRepository) queryUsers(ctx context.Context, sql string, args ...any) ([]entity.User, error) {
	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query users")
	}
	defer rows.Close()

	users := make([]entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan user row")
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate user rows")
	}
	return users, nil
}

// FindAll returns every stored user ordered by id.
func (r *PostgresUserRepository) FindAll(ctx context.Context) ([]entity.User, error) {
	return r.queryUsers(ctx, findAllUsersSQL)
}

// FindByID returns the user with the given id, or nil when absent.
func (r *PostgresUserRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	u, err := scanUser(r.db.Pool.QueryRow(ctx, findUserByIDSQL, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "find user by id")
	}
	return u, nil
}

// FindByEmail returns the user matching email case-insensitively, or nil
// when absent.
func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := scanUser(r.db.Pool.QueryRow(ctx, findUserByEmailSQL, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "find user by email")
	}
	return u, nil
}

// Search returns users whose name or email contains query
// case-insensitively, ordered by id.
func (r *PostgresUserRepository) Search(ctx context.Context, query string) ([]entity.User, error) {
	return r.queryUsers(ctx, searchUsersSQL, query)
}

// Create inserts a new user. Duplicate emails come back as the driver's
// unique-violation error, which the error funnel maps to a conflict.
func (r *PostgresUserRepository) Create(ctx context.Context, name, email string) (*entity.User, error) {
	var fieldErrors []errs.FieldError
	if name == "" {
		fieldErrors = append(fieldErrors, errs.FieldError{Field: "name", Error: "is required"})
	}
	if email == "" {
		fieldErrors = append(fieldErrors, errs.FieldError{Field: "email", Error: "is required"})
	}
	if len(fieldErrors) > 0 {
		return nil, errs.NewBadRequestError("Validation failed", true, nil, fieldErrors, nil)
	}

	u, err := scanUser(r.db.Pool.QueryRow(ctx, createUserSQL, name, email))
	if err != nil {
		// Keep the pg error intact for SQLSTATE classification downstream.
		return nil, err
	}
	return u, nil
}

// Update applies the non-nil fields and refreshes updated_at. Returns nil
// when id is unknown.
func (r *PostgresUserRepository) Update(ctx context.Context, id int64, fields entity.UserUpdate) (*entity.User, error) {
	u, err := scanUser(r.db.Pool.QueryRow(ctx, updateUserSQL, id, fields.Name, fields.Email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Delete removes the record, reporting whether a row was deleted.
func (r *PostgresUserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, deleteUserSQL, id)
	if err != nil {
		return false, errors.Wrap(err, "delete user")
	}
	return tag.RowsAffected() > 0, nil
}

// Exists reports whether a user with the given id is stored.
func (r *PostgresUserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := r.db.Pool.QueryRow(ctx, userExistsSQL, id).Scan(&exists); err != nil {
		return false, errors.Wrap(err, "check user exists")
	}
	return exists, nil
}

// Count returns the number of stored users.
func (r *PostgresUserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.Pool.QueryRow(ctx, countUsersSQL).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "count users")
	}
	return count, nil
}
