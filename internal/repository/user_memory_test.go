package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/deploylab/user-api/internal/entity"
	"github.com/deploylab/user-api/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCreateAssignsIDAndTimestamps(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	u, err := repo.Create(ctx, "Ada Lovelace", "ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, u)

	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, "Ada Lovelace", u.Name)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.False(t, u.CreatedAt.IsZero())
	assert.Equal(t, u.CreatedAt, u.UpdatedAt)

	found, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, *u, *found)

	u2, err := repo.Create(ctx, "Grace Hopper", "grace@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(2), u2.ID)
}

func TestMemoryCreateRejectsEmptyFields(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, "", "ada@example.com")
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Status)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "name", httpErr.Errors[0].Field)

	_, err = repo.Create(ctx, "Ada", "")
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Status)
}

func TestMemoryCreateDuplicateEmailConflicts(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, "Ada", "ada@example.com")
	require.NoError(t, err)

	_, err = repo.Create(ctx, "Imposter", "ADA@Example.COM")
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 409, httpErr.Status)
	assert.Equal(t, "USER_ALREADY_EXISTS", httpErr.Code)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMemoryConcurrentCreateSameEmail(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	const attempts = 20

	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, "Ada", "ada@example.com")
			results <- err
		}()
	}

	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		}
	}

	assert.Equal(t, 1, succeeded)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMemoryFindMissesReturnNil(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	u, err := repo.FindByID(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = repo.FindByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestMemoryFindByEmailCaseInsensitive(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, "Ada", "Ada@Example.com")
	require.NoError(t, err)

	found, err := repo.FindByEmail(ctx, "ada@example.COM")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)
}

func TestMemoryUpdatePartial(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, "Ada", "ada@example.com")
	require.NoError(t, err)

	newName := "Ada Lovelace"
	updated, err := repo.Update(ctx, created.ID, entity.UserUpdate{Name: &newName})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Ada Lovelace", updated.Name)
	assert.Equal(t, "ada@example.com", updated.Email)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
}

func TestMemoryUpdateUnknownIDReturnsNil(t *testing.T) {
	repo := NewMemoryUserRepository()

	name := "Nobody"
	u, err := repo.Update(context.Background(), 99, entity.UserUpdate{Name: &name})
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestMemoryDelete(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, "Ada", "ada@example.com")
	require.NoError(t, err)

	deleted, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	u, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestMemoryDeleteFreesEmailForReuse(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	first, err := repo.Create(ctx, "Ada", "ada@example.com")
	require.NoError(t, err)

	_, err = repo.Delete(ctx, first.ID)
	require.NoError(t, err)

	second, err := repo.Create(ctx, "Ada Again", "ada@example.com")
	require.NoError(t, err)

	// Ids are never reused.
	assert.Greater(t, second.ID, first.ID)
}

func TestMemorySearch(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, "Ada Lovelace", "ada@example.com")
	require.NoError(t, err)
	_, err = repo.Create(ctx, "Grace Hopper", "grace@navy.mil")
	require.NoError(t, err)
	_, err = repo.Create(ctx, "Alan Turing", "alan@bletchley.uk")
	require.NoError(t, err)

	results, err := repo.Search(ctx, "LOVELACE")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Ada Lovelace", results[0].Name)

	// Matches email too.
	results, err = repo.Search(ctx, "navy")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Grace Hopper", results[0].Name)

	results, err = repo.Search(ctx, "a")
	require.NoError(t, err)
	assert.Len(t, results, 3)

	results, err = repo.Search(ctx, "zzz")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestMemoryExists(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	exists, err := repo.Exists(ctx, 1)
	require.NoError(t, err)
	assert.False(t, exists)

	created, err := repo.Create(ctx, "Ada", "ada@example.com")
	require.NoError(t, err)

	exists, err = repo.Exists(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestMemoryFindAllOrderedByID(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	for _, u := range []struct{ name, email string }{
		{"Ada", "ada@example.com"},
		{"Grace", "grace@example.com"},
		{"Alan", "alan@example.com"},
	} {
		_, err := repo.Create(ctx, u.name, u.email)
		require.NoError(t, err)
	}

	users, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)

	for i := 1; i < len(users); i++ {
		assert.Less(t, users[i-1].ID, users[i].ID)
	}
}
