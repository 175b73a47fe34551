package repository

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/yukikurage/smart-todo/internal/models"
	"gopkg.in/yaml.v3"
)

type credentialsFile struct {
	Credentials struct {
		Usernames map[string]*models.User `yaml:"usernames"`
	} `yaml:"credentials"`
}

// YAMLUserRepository keeps accounts in a YAML file shaped as
// credentials.usernames.<username> = {password, name}.
type YAMLUserRepository struct {
	path string
	mu   sync.Mutex
}

// NewUserRepository creates a UserRepository backed by the YAML file at
// path. The file is created with an empty mapping if it does not exist.
func NewUserRepository(path string) (UserRepository, error) {
	r := &YAMLUserRepository{path: path}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if dir := filepath.Dir(path); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create credentials directory: %w", err)
			}
		}
		if err := r.write(newCredentialsFile()); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat credentials file: %w", err)
	}

	return r, nil
}

// Create adds a new account. The whole file is rewritten in place.
func (r *YAMLUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	creds, err := r.read()
	if err != nil {
		return err
	}

	if _, exists := creds.Credentials.Usernames[user.Username]; exists {
		return ErrUserExists
	}

	creds.Credentials.Usernames[user.Username] = &models.User{
		PasswordHash: user.PasswordHash,
		DisplayName:  user.DisplayName,
	}

	return r.write(creds)
}

// FindByUsername finds an account by username
func (r *YAMLUserRepository) FindByUsername(username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	creds, err := r.read()
	if err != nil {
		return nil, err
	}

	entry, ok := creds.Credentials.Usernames[username]
	if !ok || entry == nil {
		return nil, ErrUserNotFound
	}

	return &models.User{
		Username:     username,
		PasswordHash: entry.PasswordHash,
		DisplayName:  entry.DisplayName,
	}, nil
}

func newCredentialsFile() *credentialsFile {
	creds := &credentialsFile{}
	creds.Credentials.Usernames = map[string]*models.User{}
	return creds
}

func (r *YAMLUserRepository) read() (*credentialsFile, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	creds := newCredentialsFile()
	if err := yaml.Unmarshal(data, creds); err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}
	if creds.Credentials.Usernames == nil {
		creds.Credentials.Usernames = map[string]*models.User{}
	}

	return creds, nil
}

func (r *YAMLUserRepository) write(creds *credentialsFile) error {
	data, err := yaml.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to encode credentials file: %w", err)
	}

	if err := os.WriteFile(r.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}

	return nil
}
