package services

import (
	"context"

	"github.com/yukikurage/smart-todo/internal/models"
)

// NoteService handles the user's free-form notes.
type NoteService struct {
	workspaces *WorkspaceService
}

// NewNoteService creates a new NoteService.
func NewNoteService(workspaces *WorkspaceService) *NoteService {
	return &NoteService{
		workspaces: workspaces,
	}
}

// UpdateNoteInput carries the new title and content of a note.
type UpdateNoteInput struct {
	Title   string
	Content string
}

// AddNote appends a placeholder note.
func (s *NoteService) AddNote(ctx context.Context, username string) (*models.Note, error) {
	note := models.Note{
		ID:      s.workspaces.newID(),
		Title:   models.NewNoteTitle,
		Content: models.NewNoteContent,
	}

	err := s.workspaces.Mutate(ctx, username, func(ws *models.Workspace) error {
		ws.Notes = append(ws.Notes, note)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &note, nil
}

// UpdateNote replaces the title and content of a note.
func (s *NoteService) UpdateNote(ctx context.Context, username, noteID string, input UpdateNoteInput) (*models.Note, error) {
	var updated models.Note
	err := s.workspaces.Mutate(ctx, username, func(ws *models.Workspace) error {
		i := indexOfNote(ws.Notes, noteID)
		if i < 0 {
			return ErrNoteNotFound
		}
		ws.Notes[i].Title = input.Title
		ws.Notes[i].Content = input.Content
		updated = ws.Notes[i]
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// DeleteNote removes a note.
func (s *NoteService) DeleteNote(ctx context.Context, username, noteID string) error {
	return s.workspaces.Mutate(ctx, username, func(ws *models.Workspace) error {
		i := indexOfNote(ws.Notes, noteID)
		if i < 0 {
			return ErrNoteNotFound
		}
		ws.Notes = append(ws.Notes[:i], ws.Notes[i+1:]...)
		return nil
	})
}

// ListNotes returns the user's notes. A user without stored notes gets the
// five default notes.
func (s *NoteService) ListNotes(ctx context.Context, username string) ([]models.Note, error) {
	ws, err := s.workspaces.Snapshot(ctx, username)
	if err != nil {
		return nil, err
	}
	return ws.Notes, nil
}

// GetNote returns a single note.
func (s *NoteService) GetNote(ctx context.Context, username, noteID string) (*models.Note, error) {
	notes, err := s.ListNotes(ctx, username)
	if err != nil {
		return nil, err
	}
	i := indexOfNote(notes, noteID)
	if i < 0 {
		return nil, ErrNoteNotFound
	}
	return &notes[i], nil
}

// NoteIDAt translates a list position to a note id.
func (s *NoteService) NoteIDAt(ctx context.Context, username string, index int) (string, error) {
	notes, err := s.ListNotes(ctx, username)
	if err != nil {
		return "", err
	}
	if index < 0 || index >= len(notes) {
		return "", ErrIndexOutOfRange
	}
	return notes[index].ID, nil
}

func indexOfNote(notes []models.Note, id string) int {
	for i := range notes {
		if notes[i].ID == id {
			return i
		}
	}
	return -1
}
