package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/smart-todo/internal/constants"
	"github.com/yukikurage/smart-todo/internal/models"
)

var (
	ErrAIServiceNotConfigured = errors.New("AI service not configured")
	ErrAINoTasksGenerated     = errors.New("AI did not generate any tasks")
	ErrAINoValidTasks         = errors.New("no valid tasks could be created from AI output")
	ErrAIRequestFailed        = errors.New("failed to generate tasks")
)

// SuggestService proposes tasks from the content of a note.
type SuggestService struct {
	notes     *NoteService
	suggester TaskSuggester
	now       func() time.Time
}

// NewSuggestService creates a new SuggestService. A nil suggester disables
// suggestions.
func NewSuggestService(notes *NoteService, suggester TaskSuggester) *SuggestService {
	return &SuggestService{
		notes:     notes,
		suggester: suggester,
		now:       time.Now,
	}
}

// Enabled reports whether a suggester is configured.
func (s *SuggestService) Enabled() bool {
	return s != nil && s.suggester != nil
}

// SuggestFromNote sends the note's title and content to the suggester and
// returns the usable results.
func (s *SuggestService) SuggestFromNote(ctx context.Context, username, noteID string) ([]SuggestedTask, error) {
	if !s.Enabled() {
		return nil, ErrAIServiceNotConfigured
	}

	note, err := s.notes.GetNote(ctx, username, noteID)
	if err != nil {
		return nil, err
	}

	raw, err := s.suggester.SuggestTasks(ctx, noteText(note))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAIRequestFailed, err)
	}

	if len(raw) == 0 {
		return nil, ErrAINoTasksGenerated
	}

	return s.validSuggestions(raw)
}

func (s *SuggestService) validSuggestions(raw []SuggestedTask) ([]SuggestedTask, error) {
	today := s.now().Format(constants.DateLayout)

	valid := make([]SuggestedTask, 0, len(raw))
	for _, t := range raw {
		if strings.TrimSpace(t.Task) == "" {
			continue
		}

		p, err := parsePriority(t.Priority)
		if err != nil {
			p = models.PriorityLow
		}
		t.Priority = string(p)

		// Unparseable or past dates fall back to "no date".
		if t.DueDate != "" {
			d, err := time.Parse(constants.DateLayout, t.DueDate)
			if err != nil || d.Format(constants.DateLayout) < today {
				t.DueDate = ""
			}
		}

		valid = append(valid, t)
		if len(valid) == constants.MaxSuggestedTasks {
			break
		}
	}

	if len(valid) == 0 {
		return nil, ErrAINoValidTasks
	}

	return valid, nil
}

func noteText(n *models.Note) string {
	if n.Title == "" {
		return n.Content
	}
	return n.Title + "\n\n" + n.Content
}
