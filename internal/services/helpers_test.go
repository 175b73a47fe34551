package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/yukikurage/smart-todo/internal/logger"
	"github.com/yukikurage/smart-todo/internal/models"
)

var errDiskFull = errors.New("disk full")

// memoryWorkspaceRepo stores encoded copies so tests see exactly what a
// real backend would have persisted.
type memoryWorkspaceRepo struct {
	mu       sync.Mutex
	data     map[string]*models.Workspace
	saves    int
	failSave bool
	failLoad bool
}

func newMemoryWorkspaceRepo() *memoryWorkspaceRepo {
	return &memoryWorkspaceRepo{data: map[string]*models.Workspace{}}
}

func (r *memoryWorkspaceRepo) Load(_ context.Context, username string) (*models.Workspace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failLoad {
		return nil, errDiskFull
	}
	ws, ok := r.data[username]
	if !ok {
		return &models.Workspace{Tasks: []models.Task{}}, nil
	}
	return ws.Clone(), nil
}

func (r *memoryWorkspaceRepo) Save(_ context.Context, username string, ws *models.Workspace) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failSave {
		return errDiskFull
	}
	r.saves++
	r.data[username] = ws.Clone()
	return nil
}

func (r *memoryWorkspaceRepo) stored(username string) *models.Workspace {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.data[username]
}

type fixedClock struct {
	t time.Time
}

func (c *fixedClock) now() time.Time { return c.t }

type sequentialIDs struct {
	n int
}

func (s *sequentialIDs) next() string {
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

var testNow = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

func newTestWorkspaceService(t *testing.T, repo *memoryWorkspaceRepo) *WorkspaceService {
	t.Helper()

	svc := NewWorkspaceService(repo, logger.Nop())
	clock := &fixedClock{t: testNow}
	ids := &sequentialIDs{}
	svc.now = clock.now
	svc.newID = ids.next
	return svc
}
