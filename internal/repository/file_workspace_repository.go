package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/yukikurage/smart-todo/internal/models"
)

// FileWorkspaceRepository stores each workspace as data_<username>.json in dir.
type FileWorkspaceRepository struct {
	dir string
}

// NewFileWorkspaceRepository creates a WorkspaceRepository rooted at dir.
func NewFileWorkspaceRepository(dir string) WorkspaceRepository {
	return &FileWorkspaceRepository{dir: dir}
}

// Path returns the data file used for username.
func (r *FileWorkspaceRepository) Path(username string) (string, error) {
	if username == "" || username == "." || username == ".." ||
		strings.ContainsAny(username, `/\`) || strings.ContainsRune(username, 0) {
		return "", fmt.Errorf("%w: %q", ErrInvalidUsername, username)
	}
	return filepath.Join(r.dir, "data_"+username+".json"), nil
}

// Load reads the user's data file. A missing file yields an empty
// workspace with nil Notes.
func (r *FileWorkspaceRepository) Load(ctx context.Context, username string) (*models.Workspace, error) {
	path, err := r.Path(username)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &models.Workspace{Tasks: []models.Task{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	var ws models.Workspace
	if err := json.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("failed to parse data file: %w", err)
	}
	if ws.Tasks == nil {
		ws.Tasks = []models.Task{}
	}

	return &ws, nil
}

// Save overwrites the user's data file with the whole workspace.
func (r *FileWorkspaceRepository) Save(ctx context.Context, username string, ws *models.Workspace) error {
	path, err := r.Path(username)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(ws.Clone(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode data file: %w", err)
	}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write data file: %w", err)
	}

	return nil
}
