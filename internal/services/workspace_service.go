package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/yukikurage/smart-todo/internal/logger"
	"github.com/yukikurage/smart-todo/internal/models"
	"github.com/yukikurage/smart-todo/internal/repository"
	"github.com/yukikurage/smart-todo/internal/utils"
)

// WorkspaceService keeps each signed-in user's workspace in memory and
// writes the whole workspace back after every mutation.
//
// A failed save leaves the mutation applied in memory; memory and disk
// stay apart until the next successful save.
type WorkspaceService struct {
	repo  repository.WorkspaceRepository
	log   *logger.Logger
	now   func() time.Time
	newID func() string

	mu    sync.Mutex
	cache map[string]*models.Workspace
}

// NewWorkspaceService creates a new WorkspaceService.
func NewWorkspaceService(repo repository.WorkspaceRepository, log *logger.Logger) *WorkspaceService {
	return &WorkspaceService{
		repo:  repo,
		log:   log,
		now:   time.Now,
		newID: utils.NewID,
		cache: make(map[string]*models.Workspace),
	}
}

// Open loads the user's workspace from storage if it isn't cached yet.
func (s *WorkspaceService) Open(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.workspace(ctx, username)
	return err
}

// Close drops the cached workspace, e.g. on logout.
func (s *WorkspaceService) Close(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.cache, username)
}

// Snapshot returns a copy of the user's workspace.
func (s *WorkspaceService) Snapshot(ctx context.Context, username string) (*models.Workspace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ws, err := s.workspace(ctx, username)
	if err != nil {
		return nil, err
	}
	return ws.Clone(), nil
}

// Mutate runs fn against the live workspace and saves it afterwards. If fn
// returns an error nothing is saved, so fn must validate before changing
// anything.
func (s *WorkspaceService) Mutate(ctx context.Context, username string, fn func(ws *models.Workspace) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ws, err := s.workspace(ctx, username)
	if err != nil {
		return err
	}

	if err := fn(ws); err != nil {
		return err
	}

	if err := s.repo.Save(ctx, username, ws); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("workspace save failed, keeping in-memory changes")
		return fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}

	return nil
}

// workspace returns the cached workspace, loading it on first access.
// Callers must hold s.mu.
func (s *WorkspaceService) workspace(ctx context.Context, username string) (*models.Workspace, error) {
	if ws, ok := s.cache[username]; ok {
		return ws, nil
	}

	ws, err := s.repo.Load(ctx, username)
	if err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("workspace load failed")
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}

	if ws.Tasks == nil {
		ws.Tasks = []models.Task{}
	}
	if ws.Notes == nil {
		ws.Notes = models.DefaultNotes()
	}

	// Records written before ids existed get one now.
	for i := range ws.Tasks {
		if ws.Tasks[i].ID == "" {
			ws.Tasks[i].ID = s.newID()
		}
	}
	for i := range ws.Notes {
		if ws.Notes[i].ID == "" {
			ws.Notes[i].ID = s.newID()
		}
	}

	s.cache[username] = ws
	return ws, nil
}
