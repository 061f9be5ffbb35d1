package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"book-catalog/internal/domain"
	"book-catalog/internal/repository"
	"book-catalog/internal/repository/sqlite"
)

type testRepos struct {
	books repository.BookRepository
	users repository.UserRepository
}

func setupRepos(t *testing.T) testRepos {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "books.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repos := testRepos{
		books: sqlite.NewBookRepository(db),
		users: sqlite.NewUserRepository(db),
	}
	ctx := context.Background()
	require.NoError(t, repos.books.Init(ctx))
	require.NoError(t, repos.users.Init(ctx))
	return repos
}

func seededUserService(t *testing.T, repos testRepos) UserService {
	t.Helper()
	users := NewUserService(repos.users, bcrypt.MinCost)
	require.NoError(t, users.Seed(context.Background(), []UserSeed{
		{Username: "admin", Password: "password123", Role: domain.RoleAdmin},
		{Username: "user", Password: "userpassword", Role: domain.RoleUser},
	}))
	return users
}

func mustDate(t *testing.T, value string) domain.Date {
	t.Helper()
	d, err := domain.ParseDate(value)
	require.NoError(t, err)
	return d
}
