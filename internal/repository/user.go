package repository

import (
	"context"

	"github.com/deploylab/user-api/internal/entity"
)

// UserRepository abstracts persistence for user entities.
//
// Lookups signal "absent" with a nil value and nil error; a non-nil error
// always means the store itself failed. Delete reports a miss as (false,
// nil). Keeping the two outcomes separate leaves status mapping at the
// HTTP boundary unambiguous.
type UserRepository interface {
	// FindAll returns every stored user in store iteration order.
	FindAll(ctx context.Context) ([]entity.User, error)

	// FindByID returns the user with the given id, or nil when absent.
	FindByID(ctx context.Context, id int64) (*entity.User, error)

	// FindByEmail returns the user matching email case-insensitively,
	// or nil when absent.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Search returns users whose name or email contains query as a
	// case-insensitive substring.
	Search(ctx context.Context, query string) ([]entity.User, error)

	// Create persists a new user, assigning id and timestamps. It fails
	// with a validation error when name or email is empty; duplicate
	// emails surface as the store's uniqueness failure.
	Create(ctx context.Context, name, email string) (*entity.User, error)

	// Update merges the given fields over the stored record and
	// refreshes UpdatedAt. Returns nil when id is unknown.
	Update(ctx context.Context, id int64, fields entity.UserUpdate) (*entity.User, error)

	// Delete removes the record. Returns false when id is unknown.
	Delete(ctx context.Context, id int64) (bool, error)

	// Exists reports whether a user with the given id is stored.
	Exists(ctx context.Context, id int64) (bool, error)

	// Count returns the number of stored users.
	Count(ctx context.Context) (int64, error)
}
