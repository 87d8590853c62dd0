package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/deploylab/user-api/internal/entity"
	"github.com/deploylab/user-api/internal/errs"
)

// MemoryUserRepository keeps users in a mutex-guarded map. It is the
// store behind the "memory" driver and the test suite.
//
// The email uniqueness check runs inside the same critical section as the
// insert, so check-and-insert is atomic: two concurrent creates with the
// same email cannot both succeed.
type MemoryUserRepository struct {
	mu     sync.RWMutex
	users  map[int64]entity.User
	nextID int64
}

// NewMemoryUserRepository creates an empty in-memory user store.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users:  make(map[int64]entity.User),
		nextID: 1,
	}
}

// FindAll returns all stored users ordered by id.
func (r *MemoryUserRepository) FindAll(ctx context.Context) ([]entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// FindByID returns the user with the given id, or nil when absent.
func (r *MemoryUserRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if u, ok := r.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

// FindByEmail returns the user matching email case-insensitively, or nil.
func (r *MemoryUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if u := r.findByEmailLocked(email); u != nil {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

// findByEmailLocked must be called with at least the read lock held.
func (r *MemoryUserRepository) findByEmailLocked(email string) *entity.User {
	for id := range r.users {
		u := r.users[id]
		if strings.EqualFold(u.Email, email) {
			return &u
		}
	}
	return nil
}

// Search returns users whose name or email contains query
// case-insensitively, ordered by id.
func (r *MemoryUserRepository) Search(ctx context.Context, query string) ([]entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(query)
	out := make([]entity.User, 0)
	for _, u := range r.users {
		if strings.Contains(strings.ToLower(u.Name), needle) ||
			strings.Contains(strings.ToLower(u.Email), needle) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Create validates the inputs and inserts a new user with a fresh id.
// Ids come from a monotonically increasing counter and are never reused.
func (r *MemoryUserRepository) Create(ctx context.Context, name, email string) (*entity.User, error) {
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

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing := r.findByEmailLocked(email); existing != nil {
		code := "USER_ALREADY_EXISTS"
		return nil, errs.NewConflictError("A User with this Email already exists", true, &code)
	}

	now := time.Now().UTC()
	u := entity.User{
		ID:        r.nextID,
		Name:      name,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.nextID++
	r.users[u.ID] = u

	return &u, nil
}

// Update merges the given fields over the stored record and refreshes
// UpdatedAt. Returns nil when id is unknown.
func (r *MemoryUserRepository) Update(ctx context.Context, id int64, fields entity.UserUpdate) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}

	if fields.Name != nil {
		u.Name = *fields.Name
	}
	if fields.Email != nil {
		u.Email = *fields.Email
	}
	u.UpdatedAt = time.Now().UTC()

	r.users[id] = u
	return &u, nil
}

// Delete removes the record, reporting whether anything was deleted.
func (r *MemoryUserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return false, nil
	}
	delete(r.users, id)
	return true, nil
}

// Exists reports whether a user with the given id is stored.
func (r *MemoryUserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.users[id]
	return ok, nil
}

// Count returns the number of stored users.
func (r *MemoryUserRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.users)), nil
}
