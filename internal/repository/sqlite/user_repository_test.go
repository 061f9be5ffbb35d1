package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book-catalog/internal/domain"
	"book-catalog/internal/repository"
)

func TestUserRepository_UpsertAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(setupTestDB(t))
	require.NoError(t, repo.Init(ctx))

	user := &domain.User{Username: "admin", PasswordHash: "hash-1", Role: domain.RoleAdmin}
	id, err := repo.Upsert(ctx, user)
	require.NoError(t, err)
	assert.NotZero(t, id)

	again := &domain.User{Username: "admin", PasswordHash: "hash-2", Role: domain.RoleUser}
	id2, err := repo.Upsert(ctx, again)
	require.NoError(t, err)
	assert.Equal(t, id, id2)

	got, err := repo.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "hash-2", got.PasswordHash)
	assert.Equal(t, domain.RoleUser, got.Role)
}

func TestUserRepository_GetMissing(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(setupTestDB(t))
	require.NoError(t, repo.Init(ctx))

	_, err := repo.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_ReplaceAllRemovesAbsentUsers(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(setupTestDB(t))
	require.NoError(t, repo.Init(ctx))

	require.NoError(t, repo.ReplaceAll(ctx, []*domain.User{
		{Username: "admin", PasswordHash: "hash-a", Role: domain.RoleAdmin},
		{Username: "user", PasswordHash: "hash-u", Role: domain.RoleUser},
	}))
	before, err := repo.GetByUsername(ctx, "user")
	require.NoError(t, err)

	require.NoError(t, repo.ReplaceAll(ctx, []*domain.User{
		{Username: "user", PasswordHash: "hash-u2", Role: domain.RoleUser},
	}))

	_, err = repo.GetByUsername(ctx, "admin")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	after, err := repo.GetByUsername(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, before.ID, after.ID)
	assert.Equal(t, "hash-u2", after.PasswordHash)
}

func TestUserRepository_ReplaceAllEmptyClearsTable(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(setupTestDB(t))
	require.NoError(t, repo.Init(ctx))

	_, err := repo.Upsert(ctx, &domain.User{Username: "admin", PasswordHash: "hash", Role: domain.RoleAdmin})
	require.NoError(t, err)

	require.NoError(t, repo.ReplaceAll(ctx, nil))

	_, err = repo.GetByUsername(ctx, "admin")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
