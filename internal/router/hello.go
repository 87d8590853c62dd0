package router

import (
	"net/http"

	"github.com/deploylab/user-api/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerHelloRoutes maps the greeting endpoints.
func registerHelloRoutes(r *echo.Echo, h *handler.Handlers) {
	hello := r.Group("/api/hello")

	hello.GET("", handler.Handle(h.Hello.Handler, h.Hello.Greet, http.StatusOK, &handler.HelloRequest{}))
	hello.GET("/random", handler.Handle(h.Hello.Handler, h.Hello.Random, http.StatusOK, &handler.EmptyRequest{}))
	hello.GET("/languages", handler.Handle(h.Hello.Handler, h.Hello.Languages, http.StatusOK, &handler.EmptyRequest{}))
	hello.GET("/personalized/:name", handler.Handle(h.Hello.Handler, h.Hello.Personalized, http.StatusOK, &handler.PersonalizedHelloRequest{}))
}
