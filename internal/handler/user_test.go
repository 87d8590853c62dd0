package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deploylab/user-api/internal/config"
	"github.com/deploylab/user-api/internal/entity"
	"github.com/deploylab/user-api/internal/handler"
	"github.com/deploylab/user-api/internal/middleware"
	"github.com/deploylab/user-api/internal/repository"
	"github.com/deploylab/user-api/internal/router"
	"github.com/deploylab/user-api/internal/server"
	"github.com/deploylab/user-api/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// envelope mirrors the response wire format with data left raw so tests
// can decode it into the expected payload type.
type envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Error   string              `json:"error"`
	Errors  []map[string]string `json:"errors"`
	Code    string              `json:"code"`
}

type listPayload struct {
	Users []entity.User `json:"users"`
	Count int           `json:"count"`
}

// newTestRouter assembles the full HTTP stack over the in-memory user
// store: real middleware chain, real global error handler, no database.
func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()

	nop := zerolog.Nop()
	cfg := &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			Port:               "8080",
			CORSAllowedOrigins: []string{"*"},
		},
		Storage: config.StorageConfig{Driver: config.DriverMemory},
	}

	srv := &server.Server{
		Config: cfg,
		Logger: &nop,
	}

	repos := repository.NewRepositories(srv)
	services := service.NewServices(srv, repos)
	handlers := handler.NewHandlers(srv, services)
	middlewares := middleware.NewMiddlewares(srv)

	return router.New(srv, middlewares, handlers)
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func createUser(t *testing.T, e *echo.Echo, name, email string) entity.User {
	t.Helper()

	rec, env := doJSON(t, e, http.MethodPost, "/api/users",
		fmt.Sprintf(`{"name": %q, "email": %q}`, name, email))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var u entity.User
	require.NoError(t, json.Unmarshal(env.Data, &u))
	return u
}

func TestCreateUserEndpoint(t *testing.T) {
	e := newTestRouter(t)

	rec, env := doJSON(t, e, http.MethodPost, "/api/users",
		`{"name": "Ada Lovelace", "email": "ada@example.com"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Success)

	var u entity.User
	require.NoError(t, json.Unmarshal(env.Data, &u))
	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, "Ada Lovelace", u.Name)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.False(t, u.CreatedAt.IsZero())
}

func TestCreateUserDuplicateEmailEndpoint(t *testing.T) {
	e := newTestRouter(t)
	createUser(t, e, "Ada", "ada@example.com")

	rec, env := doJSON(t, e, http.MethodPost, "/api/users",
		`{"name": "Imposter", "email": "ada@example.com"}`)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "USER_ALREADY_EXISTS", env.Code)
	assert.NotEmpty(t, env.Error)
	assert.Equal(t, env.Message, env.Error)
}

func TestCreateUserValidationEndpoint(t *testing.T) {
	e := newTestRouter(t)

	rec, env := doJSON(t, e, http.MethodPost, "/api/users", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Errors)

	rec, env = doJSON(t, e, http.MethodPost, "/api/users",
		`{"name": "Ada", "email": "not-an-email"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotEmpty(t, env.Errors)
	assert.Equal(t, "email", env.Errors[0]["field"])
}

func TestCreateUserMalformedBodyEndpoint(t *testing.T) {
	e := newTestRouter(t)

	rec, env := doJSON(t, e, http.MethodPost, "/api/users", `{"name": `)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
}

func TestGetUserEndpoint(t *testing.T) {
	e := newTestRouter(t)
	created := createUser(t, e, "Ada", "ada@example.com")

	rec, env := doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/users/%d", created.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	var u entity.User
	require.NoError(t, json.Unmarshal(env.Data, &u))
	assert.Equal(t, created.ID, u.ID)
}

func TestGetUserNotFoundEndpoint(t *testing.T) {
	e := newTestRouter(t)

	rec, env := doJSON(t, e, http.MethodGet, "/api/users/999", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Error)
}

func TestGetUserNonNumericIDEndpoint(t *testing.T) {
	e := newTestRouter(t)

	rec, env := doJSON(t, e, http.MethodGet, "/api/users/abc", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
}

func TestListUsersEndpoint(t *testing.T) {
	e := newTestRouter(t)
	createUser(t, e, "Ada Lovelace", "ada@example.com")
	createUser(t, e, "Grace Hopper", "grace@example.com")

	rec, env := doJSON(t, e, http.MethodGet, "/api/users", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	var payload listPayload
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.Equal(t, 2, payload.Count)
	require.Len(t, payload.Users, 2)
	assert.Equal(t, "Ada Lovelace", payload.Users[0].Name)
}

func TestListUsersEmptyEndpoint(t *testing.T) {
	e := newTestRouter(t)

	rec, env := doJSON(t, e, http.MethodGet, "/api/users", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload listPayload
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.Equal(t, 0, payload.Count)
	assert.NotNil(t, payload.Users)
}

func TestSearchUsersEndpoint(t *testing.T) {
	e := newTestRouter(t)
	createUser(t, e, "Ada Lovelace", "ada@example.com")
	createUser(t, e, "Grace Hopper", "grace@navy.mil")

	rec, env := doJSON(t, e, http.MethodGet, "/api/users?search=navy", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload listPayload
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	require.Equal(t, 1, payload.Count)
	assert.Equal(t, "Grace Hopper", payload.Users[0].Name)
}

func TestUpdateUserEndpoint(t *testing.T) {
	e := newTestRouter(t)
	created := createUser(t, e, "Ada", "ada@example.com")

	rec, env := doJSON(t, e, http.MethodPut, fmt.Sprintf("/api/users/%d", created.ID),
		`{"name": "Ada Lovelace"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var u entity.User
	require.NoError(t, json.Unmarshal(env.Data, &u))
	assert.Equal(t, "Ada Lovelace", u.Name)
	// Email untouched by the partial update.
	assert.Equal(t, "ada@example.com", u.Email)
}

func TestUpdateUserNotFoundEndpoint(t *testing.T) {
	e := newTestRouter(t)

	rec, env := doJSON(t, e, http.MethodPut, "/api/users/999", `{"name": "Nobody"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Success)
}

func TestUpdateUserInvalidEmailEndpoint(t *testing.T) {
	e := newTestRouter(t)
	created := createUser(t, e, "Ada", "ada@example.com")

	rec, _ := doJSON(t, e, http.MethodPut, fmt.Sprintf("/api/users/%d", created.ID),
		`{"email": "nope"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteUserEndpoint(t *testing.T) {
	e := newTestRouter(t)
	created := createUser(t, e, "Ada", "ada@example.com")

	rec, env := doJSON(t, e, http.MethodDelete, fmt.Sprintf("/api/users/%d", created.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "User deleted successfully", env.Message)
	assert.Nil(t, env.Data)

	rec, _ = doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/users/%d", created.ID), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteUserNotFoundEndpoint(t *testing.T) {
	e := newTestRouter(t)

	rec, env := doJSON(t, e, http.MethodDelete, "/api/users/999", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Success)
}

func TestExportUsersEndpoint(t *testing.T) {
	e := newTestRouter(t)
	createUser(t, e, "Ada", "ada@example.com")
	createUser(t, e, "Grace", "grace@example.com")

	req := httptest.NewRequest(http.MethodGet, "/api/users/export", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "users.csv")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,name,email,created_at,updated_at", strings.TrimSpace(lines[0]))
	assert.Contains(t, lines[1], "ada@example.com")
}

func TestUnknownRouteEndpoint(t *testing.T) {
	e := newTestRouter(t)

	rec, env := doJSON(t, e, http.MethodGet, "/api/nope", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Route not found", env.Message)
}
