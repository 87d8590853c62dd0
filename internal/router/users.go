package router

import (
	"net/http"

	"github.com/deploylab/user-api/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerUserRoutes maps the user CRUD endpoints. The export route is
// registered before :id so Echo does not treat "export" as an id.
func registerUserRoutes(r *echo.Echo, h *handler.Handlers) {
	users := r.Group("/api/users")

	users.GET("", handler.Handle(h.User.Handler, h.User.List, http.StatusOK, &handler.ListUsersRequest{}))
	users.POST("", handler.Handle(h.User.Handler, h.User.Create, http.StatusCreated, &handler.CreateUserRequest{}))
	users.GET("/export", handler.HandleFile(h.User.Handler, h.User.Export, http.StatusOK, &handler.ExportUsersRequest{}, "users.csv", "text/csv"))
	users.GET("/:id", handler.Handle(h.User.Handler, h.User.Get, http.StatusOK, &handler.GetUserRequest{}))
	users.PUT("/:id", handler.Handle(h.User.Handler, h.User.Update, http.StatusOK, &handler.UpdateUserRequest{}))
	users.DELETE("/:id", handler.Handle(h.User.Handler, h.User.Delete, http.StatusOK, &handler.DeleteUserRequest{}))
}
