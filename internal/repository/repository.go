package repository

import (
	"context"
	"errors"

	"github.com/yukikurage/smart-todo/internal/models"
)

var (
	// ErrUserNotFound is returned when the credentials file has no entry for a username.
	ErrUserNotFound = errors.New("user repository: user not found")
	// ErrUserExists is returned when creating a username that is already present.
	ErrUserExists = errors.New("user repository: user already exists")
	// ErrInvalidUsername is returned when a username cannot be used as a storage key.
	ErrInvalidUsername = errors.New("repository: invalid username")
)

// UserRepository defines the interface for credential data access
type UserRepository interface {
	// Create adds a new account and persists the whole credentials file
	Create(user *models.User) error

	// FindByUsername finds an account by its exact username
	FindByUsername(username string) (*models.User, error)
}

// WorkspaceRepository loads and saves one user's tasks and notes as a whole.
type WorkspaceRepository interface {
	// Load returns the stored workspace. Tasks is never nil. Notes is nil
	// when nothing was ever stored for the user, so the caller can seed it.
	Load(ctx context.Context, username string) (*models.Workspace, error)

	// Save overwrites the stored workspace with ws
	Save(ctx context.Context, username string, ws *models.Workspace) error
}
