package handler

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/deploylab/user-api/internal/entity"
	"github.com/deploylab/user-api/internal/errs"
	"github.com/deploylab/user-api/internal/response"
	"github.com/deploylab/user-api/internal/server"
	"github.com/deploylab/user-api/internal/service"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var validate = validator.New()

// CreateUserRequest is the payload for POST /api/users.
type CreateUserRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=255"`
	Email string `json:"email" validate:"required,email"`
}

func (r *CreateUserRequest) Validate() error {
	return validate.Struct(r)
}

// ListUsersRequest carries the optional search query for GET /api/users.
type ListUsersRequest struct {
	Search string `query:"search"`
}

func (r *ListUsersRequest) Validate() error {
	return validate.Struct(r)
}

// GetUserRequest carries the path id for GET /api/users/:id. Binding a
// non-numeric id fails with a 400 before the handler runs.
type GetUserRequest struct {
	ID int64 `param:"id" validate:"required"`
}

func (r *GetUserRequest) Validate() error {
	return validate.Struct(r)
}

// UpdateUserRequest is the payload for PUT /api/users/:id. Both fields are
// optional; nil means "leave unchanged".
type UpdateUserRequest struct {
	ID    int64   `param:"id" validate:"required"`
	Name  *string `json:"name" validate:"omitempty,min=1,max=255"`
	Email *string `json:"email" validate:"omitempty,email"`
}

func (r *UpdateUserRequest) Validate() error {
	return validate.Struct(r)
}

// DeleteUserRequest carries the path id for DELETE /api/users/:id.
type DeleteUserRequest struct {
	ID int64 `param:"id" validate:"required"`
}

func (r *DeleteUserRequest) Validate() error {
	return validate.Struct(r)
}

// ExportUsersRequest is the (empty) payload for GET /api/users/export.
type ExportUsersRequest struct{}

func (r *ExportUsersRequest) Validate() error {
	return nil
}

// UserHandler exposes the user CRUD endpoints on top of UserService.
type UserHandler struct {
	Handler
	users *service.UserService
}

// NewUserHandler constructs the user handler.
func NewUserHandler(s *server.Server, users *service.UserService) *UserHandler {
	return &UserHandler{
		Handler: NewHandler(s),
		users:   users,
	}
}

// ListUsersResponse is the data payload for GET /api/users.
type ListUsersResponse struct {
	Users []entity.User `json:"users"`
	Count int           `json:"count"`
}

// List returns all users, or those matching the search query when one is
// given.
func (h *UserHandler) List(c echo.Context, req *ListUsersRequest) (*ListUsersResponse, error) {
	ctx := c.Request().Context()

	var users []entity.User
	var err error
	if req.Search != "" {
		users, err = h.users.SearchUsers(ctx, req.Search)
	} else {
		users, err = h.users.GetAllUsers(ctx)
	}
	if err != nil {
		return nil, err
	}

	return &ListUsersResponse{
		Users: users,
		Count: len(users),
	}, nil
}

// Get returns a single user by id.
func (h *UserHandler) Get(c echo.Context, req *GetUserRequest) (*entity.User, error) {
	user, err := h.users.GetUserByID(c.Request().Context(), req.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.NewNotFoundError("User not found", true, nil)
	}
	return user, nil
}

// Create creates a new user.
func (h *UserHandler) Create(c echo.Context, req *CreateUserRequest) (*entity.User, error) {
	return h.users.CreateUser(c.Request().Context(), req.Name, req.Email)
}

// Update applies a partial update to an existing user.
func (h *UserHandler) Update(c echo.Context, req *UpdateUserRequest) (*entity.User, error) {
	user, err := h.users.UpdateUser(c.Request().Context(), req.ID, entity.UserUpdate{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.NewNotFoundError("User not found", true, nil)
	}
	return user, nil
}

// Delete removes a user. The success envelope carries a message and null
// data.
func (h *UserHandler) Delete(c echo.Context, req *DeleteUserRequest) (interface{}, error) {
	deleted, err := h.users.DeleteUser(c.Request().Context(), req.ID)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, errs.NewNotFoundError("User not found", true, nil)
	}
	return response.SuccessMessage("User deleted successfully", nil), nil
}

// Export renders all users as a CSV download.
func (h *UserHandler) Export(c echo.Context, req *ExportUsersRequest) ([]byte, error) {
	users, err := h.users.GetAllUsers(c.Request().Context())
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"id", "name", "email", "created_at", "updated_at"}); err != nil {
		return nil, err
	}
	for _, u := range users {
		record := []string{
			strconv.FormatInt(u.ID, 10),
			u.Name,
			u.Email,
			u.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
			u.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
