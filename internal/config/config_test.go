package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("BOOKS_AUTH_JWTSECRET", "s3cret")
	t.Setenv("BOOKS_DATABASE_PATH", "/tmp/catalog.db")
	t.Setenv("BOOKS_AUTH_USERS", "admin:password123:admin")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr)
	assert.Equal(t, "/tmp/catalog.db", cfg.Database.Path)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, 30, cfg.Auth.TokenTTLMinutes)
	assert.Equal(t, 5, cfg.Events.Capacity)
	assert.Equal(t, "book-exports", cfg.Storage.KeyPrefix)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	var cfg Config
	assert.ErrorContains(t, cfg.Validate(), "jwt secret")

	cfg.Auth.JWTSecret = "x"
	assert.ErrorContains(t, cfg.Validate(), "at least one user")

	cfg.Auth.Users = "broken"
	assert.Error(t, cfg.Validate())
}

func TestUserEntries(t *testing.T) {
	var cfg Config
	cfg.Auth.Users = " admin:password123:admin , user:pa:ss:USER ,"

	entries, err := cfg.UserEntries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, UserEntry{Username: "admin", Password: "password123", Role: "admin"}, entries[0])
	assert.Equal(t, UserEntry{Username: "user", Password: "pa:ss", Role: "user"}, entries[1])

	cfg.Auth.Users = "admin:admin"
	_, err = cfg.UserEntries()
	assert.Error(t, err)

	cfg.Auth.Users = "admin::admin"
	_, err = cfg.UserEntries()
	assert.Error(t, err)
}

func TestLoadDotEnv_DoesNotOverrideEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("# comment\nBOOKS_TEST_A=\"from-file\"\nBOOKS_TEST_B=file\n"), 0o600))
	t.Setenv("BOOKS_TEST_B", "from-env")
	t.Setenv("BOOKS_TEST_A", "")
	os.Unsetenv("BOOKS_TEST_A")

	loadDotEnv(path)
	t.Cleanup(func() { os.Unsetenv("BOOKS_TEST_A") })

	assert.Equal(t, "from-file", os.Getenv("BOOKS_TEST_A"))
	assert.Equal(t, "from-env", os.Getenv("BOOKS_TEST_B"))
}
