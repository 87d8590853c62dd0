package service

import (
	"github.com/deploylab/user-api/internal/repository"
	"github.com/deploylab/user-api/internal/server"
)

// Services is the container for all service instances, injected into the
// handler layer.
type Services struct {
	User  *UserService
	Hello *HelloService
}

// NewServices constructs the service container from the app container and
// repositories.
func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	return &Services{
		User:  NewUserService(s, repos.Users),
		Hello: NewHelloService(s),
	}
}
