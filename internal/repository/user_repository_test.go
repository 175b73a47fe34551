package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/smart-todo/internal/models"
)

func newTestUserRepository(t *testing.T) (UserRepository, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	repo, err := NewUserRepository(path)
	require.NoError(t, err)

	return repo, path
}

func TestNewUserRepository_CreatesEmptyFile(t *testing.T) {
	_, path := newTestUserRepository(t)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "credentials:")
	assert.Contains(t, string(data), "usernames: {}")
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo, path := newTestUserRepository(t)

	err := repo.Create(&models.User{Username: "alice", PasswordHash: "$2a$hash", DisplayName: "Alice"})
	require.NoError(t, err)

	user, err := repo.FindByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "$2a$hash", user.PasswordHash)
	assert.Equal(t, "Alice", user.DisplayName)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "alice:")
	assert.Contains(t, string(data), "password:")
	assert.Contains(t, string(data), "name: Alice")
}

func TestUserRepository_UsernamesAreCaseSensitive(t *testing.T) {
	repo, _ := newTestUserRepository(t)

	require.NoError(t, repo.Create(&models.User{Username: "bob", PasswordHash: "h"}))

	_, err := repo.FindByUsername("Bob")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_DuplicateKeepsOriginal(t *testing.T) {
	repo, _ := newTestUserRepository(t)

	require.NoError(t, repo.Create(&models.User{Username: "carol", PasswordHash: "first"}))
	err := repo.Create(&models.User{Username: "carol", PasswordHash: "second"})
	assert.ErrorIs(t, err, ErrUserExists)

	user, err := repo.FindByUsername("carol")
	require.NoError(t, err)
	assert.Equal(t, "first", user.PasswordHash)
}

func TestUserRepository_ReadsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "credentials:\n  usernames:\n    dave:\n      password: secret-hash\n      name: Dave\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	repo, err := NewUserRepository(path)
	require.NoError(t, err)

	user, err := repo.FindByUsername("dave")
	require.NoError(t, err)
	assert.Equal(t, "secret-hash", user.PasswordHash)
	assert.Equal(t, "Dave", user.DisplayName)
}

func TestUserRepository_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("credentials: [unterminated"), 0o600))

	repo, err := NewUserRepository(path)
	require.NoError(t, err)

	_, err = repo.FindByUsername("anyone")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUserNotFound)
}
