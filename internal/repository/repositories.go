package repository

import (
	"github.com/deploylab/user-api/internal/server"
)

// Repositories is the container for all repository instances, injected
// into the service layer.
type Repositories struct {
	Users UserRepository
}

// NewRepositories constructs the repository container, selecting the user
// store implementation from the configured storage driver. The in-memory
// store is used whenever no database pool is available.
func NewRepositories(s *server.Server) *Repositories {
	var users UserRepository
	if s.DB != nil {
		users = NewPostgresUserRepository(s.DB)
	} else {
		users = NewMemoryUserRepository()
	}

	return &Repositories{
		Users: users,
	}
}
