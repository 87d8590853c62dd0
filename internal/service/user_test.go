package service

import (
	"context"
	"testing"

	"github.com/deploylab/user-api/internal/entity"
	"github.com/deploylab/user-api/internal/errs"
	"github.com/deploylab/user-api/internal/repository"
	"github.com/deploylab/user-api/internal/server"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserService() *UserService {
	nop := zerolog.Nop()
	srv := &server.Server{Logger: &nop}
	return NewUserService(srv, repository.NewMemoryUserRepository())
}

func TestCreateUser(t *testing.T) {
	svc := newTestUserService()
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, "Ada Lovelace", "ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.NotZero(t, u.ID)
	assert.Equal(t, "ada@example.com", u.Email)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc := newTestUserService()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "Ada", "ada@example.com")
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, "Imposter", "ada@example.com")
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 409, httpErr.Status)
	assert.Equal(t, "USER_ALREADY_EXISTS", httpErr.Code)
}

func TestCreateUserDuplicateEmailDifferentCase(t *testing.T) {
	svc := newTestUserService()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "Ada", "ada@example.com")
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, "Imposter", "ADA@EXAMPLE.COM")
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 409, httpErr.Status)
}

func TestGetUserByIDMiss(t *testing.T) {
	svc := newTestUserService()

	u, err := svc.GetUserByID(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestUpdateUser(t *testing.T) {
	svc := newTestUserService()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, "Ada", "ada@example.com")
	require.NoError(t, err)

	email := "lovelace@example.com"
	updated, err := svc.UpdateUser(ctx, created.ID, entity.UserUpdate{Email: &email})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Ada", updated.Name)
	assert.Equal(t, "lovelace@example.com", updated.Email)
}

func TestDeleteUser(t *testing.T) {
	svc := newTestUserService()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, "Ada", "ada@example.com")
	require.NoError(t, err)

	deleted, err := svc.DeleteUser(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.DeleteUser(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestSearchUsers(t *testing.T) {
	svc := newTestUserService()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "Ada Lovelace", "ada@example.com")
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, "Grace Hopper", "grace@example.com")
	require.NoError(t, err)

	results, err := svc.SearchUsers(ctx, "grace")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Grace Hopper", results[0].Name)
}
