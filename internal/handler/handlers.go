package handler

import (
	"github.com/deploylab/user-api/internal/server"
	"github.com/deploylab/user-api/internal/service"
)

// Handlers groups all HTTP handlers so the router receives one object
// instead of many.
type Handlers struct {
	User    *UserHandler
	Hello   *HelloHandler
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		User:    NewUserHandler(s, services.User),
		Hello:   NewHelloHandler(s, services.Hello),
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
	}
}
