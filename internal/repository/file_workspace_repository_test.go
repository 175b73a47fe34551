package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/smart-todo/internal/models"
)

func sampleWorkspace() *models.Workspace {
	return &models.Workspace{
		Tasks: []models.Task{
			{
				ID:            "t1",
				Text:          "Buy milk",
				Priority:      models.PriorityHigh,
				PriorityValue: 0,
				DueDate:       "2024-06-01",
				Details:       "2%",
				CreatedAt:     "2024-05-30 09:15:00",
			},
			{
				ID:            "t2",
				Text:          "File taxes",
				Completed:     true,
				Priority:      models.PriorityLow,
				PriorityValue: 2,
				DueDate:       "2024-04-15",
				CreatedAt:     "2024-03-01 18:00:00",
			},
		},
		Notes: []models.Note{
			{ID: "n1", Title: "Shopping List", Content: "eggs"},
		},
	}
}

func TestFileWorkspaceRepository_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	repo := NewFileWorkspaceRepository(dir)
	ctx := context.Background()

	ws := sampleWorkspace()
	require.NoError(t, repo.Save(ctx, "alice", ws))

	loaded, err := repo.Load(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, ws.Tasks, loaded.Tasks)
	assert.Equal(t, ws.Notes, loaded.Notes)

	_, err = os.Stat(filepath.Join(dir, "data_alice.json"))
	assert.NoError(t, err)
}

func TestFileWorkspaceRepository_MissingFile(t *testing.T) {
	repo := NewFileWorkspaceRepository(t.TempDir())

	ws, err := repo.Load(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, ws.Tasks)
	assert.Empty(t, ws.Tasks)
	assert.Nil(t, ws.Notes)
}

func TestFileWorkspaceRepository_EmptyNotesStayEmpty(t *testing.T) {
	repo := NewFileWorkspaceRepository(t.TempDir())
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "erin", &models.Workspace{}))

	ws, err := repo.Load(ctx, "erin")
	require.NoError(t, err)
	assert.NotNil(t, ws.Notes)
	assert.Empty(t, ws.Notes)
}

func TestFileWorkspaceRepository_FlatFormat(t *testing.T) {
	dir := t.TempDir()
	repo := NewFileWorkspaceRepository(dir)

	require.NoError(t, repo.Save(context.Background(), "frank", sampleWorkspace()))

	data, err := os.ReadFile(filepath.Join(dir, "data_frank.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"todos": [`)
	assert.Contains(t, string(data), `"due_date": "2024-06-01"`)
	assert.Contains(t, string(data), `"created_at": "2024-05-30 09:15:00"`)
	assert.NotContains(t, string(data), `"frank"`)
}

func TestFileWorkspaceRepository_LegacyRecordDefaults(t *testing.T) {
	dir := t.TempDir()
	legacy := `{"todos":[{"task":"old","completed":false,"priority":"Medium"}],"notes":[{"title":"t","content":"c"}]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data_gina.json"), []byte(legacy), 0o644))

	ws, err := NewFileWorkspaceRepository(dir).Load(context.Background(), "gina")
	require.NoError(t, err)
	require.Len(t, ws.Tasks, 1)
	assert.Equal(t, 2, ws.Tasks[0].PriorityValue)
	assert.Empty(t, ws.Tasks[0].ID)
	require.Len(t, ws.Notes, 1)
}

func TestFileWorkspaceRepository_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data_hal.json"), []byte("{not json"), 0o644))

	_, err := NewFileWorkspaceRepository(dir).Load(context.Background(), "hal")
	assert.Error(t, err)
}

func TestFileWorkspaceRepository_RejectsPathUsernames(t *testing.T) {
	repo := NewFileWorkspaceRepository(t.TempDir())

	for _, name := range []string{"", "..", "../etc", `a\b`} {
		_, err := repo.Load(context.Background(), name)
		assert.ErrorIs(t, err, ErrInvalidUsername, name)
	}
}

func TestFileWorkspaceRepository_WriteFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	repo := NewFileWorkspaceRepository(filepath.Join(blocker, "data"))
	err := repo.Save(context.Background(), "ivy", sampleWorkspace())
	assert.Error(t, err)
}
