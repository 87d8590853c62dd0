package service

import (
	"context"

	"github.com/deploylab/user-api/internal/entity"
	"github.com/deploylab/user-api/internal/errs"
	"github.com/deploylab/user-api/internal/logger"
	"github.com/deploylab/user-api/internal/repository"
	"github.com/deploylab/user-api/internal/server"
	"github.com/rs/zerolog"
)

// UserService implements user business logic on top of the user
// repository: uniqueness enforcement on create and the welcome email side
// effect. Read and delete operations pass through to the store; the
// handlers decide how absent results map to HTTP.
type UserService struct {
	server *server.Server
	users  repository.UserRepository
	logger zerolog.Logger
}

// NewUserService constructs the user service.
func NewUserService(s *server.Server, users repository.UserRepository) *UserService {
	log := logger.WithModule(s.Logger, "UserService")

	return &UserService{
		server: s,
		users:  users,
		logger: log,
	}
}

// GetAllUsers returns every stored user.
func (s *UserService) GetAllUsers(ctx context.Context) ([]entity.User, error) {
	return s.users.FindAll(ctx)
}

// GetUserByID returns the user with the given id, or nil when absent.
func (s *UserService) GetUserByID(ctx context.Context, id int64) (*entity.User, error) {
	return s.users.FindByID(ctx, id)
}

// GetUserByEmail returns the user matching email, or nil when absent.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	return s.users.FindByEmail(ctx, email)
}

// SearchUsers returns users whose name or email contains query.
func (s *UserService) SearchUsers(ctx context.Context, query string) ([]entity.User, error) {
	return s.users.Search(ctx, query)
}

// CountUsers returns the number of stored users.
func (s *UserService) CountUsers(ctx context.Context) (int64, error) {
	return s.users.Count(ctx)
}

// CreateUser creates a user after checking the email is not already taken,
// then enqueues the welcome email. The pre-check gives a clean conflict
// for the common case; the store's unique index stays authoritative under
// races.
func (s *UserService) CreateUser(ctx context.Context, name, email string) (*entity.User, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		code := "USER_ALREADY_EXISTS"
		return nil, errs.NewConflictError("Email already in use", true, &code)
	}

	user, err := s.users.Create(ctx, name, email)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Str("email", user.Email).
		Msg("user created")

	// Best effort: a broken queue must not fail the create.
	if s.server.Job != nil {
		if err := s.server.Job.EnqueueWelcomeEmail(user.Email, user.Name); err != nil {
			s.logger.Error().Err(err).
				Int64("user_id", user.ID).
				Msg("failed to enqueue welcome email")
		}
	}

	return user, nil
}

// UpdateUser applies a partial update. Returns nil when id is unknown.
func (s *UserService) UpdateUser(ctx context.Context, id int64, fields entity.UserUpdate) (*entity.User, error) {
	user, err := s.users.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	if user != nil {
		s.logger.Info().Int64("user_id", user.ID).Msg("user updated")
	}
	return user, nil
}

// DeleteUser removes the user, reporting whether anything was deleted.
func (s *UserService) DeleteUser(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.users.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.logger.Info().Int64("user_id", id).Msg("user deleted")
	}
	return deleted, nil
}
