package services

import (
	"context"
	"strings"
	"time"

	"github.com/yukikurage/smart-todo/internal/constants"
	"github.com/yukikurage/smart-todo/internal/models"
	"github.com/yukikurage/smart-todo/internal/view"
)

// TaskService handles task business logic
type TaskService struct {
	workspaces *WorkspaceService
}

// NewTaskService creates a new TaskService
func NewTaskService(workspaces *WorkspaceService) *TaskService {
	return &TaskService{
		workspaces: workspaces,
	}
}

// AddTaskInput represents input for creating a task
type AddTaskInput struct {
	Text     string
	Priority string
	DueDate  string
	Details  string
}

// ListTasksInput represents the filter and sort for listing tasks
type ListTasksInput struct {
	ShowCompleted bool
	Sort          string
}

// AddTask validates the input and appends a new task.
// An empty priority means Low and an empty due date means today.
func (s *TaskService) AddTask(ctx context.Context, username string, input AddTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, ErrTaskTextRequired
	}

	priority, err := parsePriority(input.Priority)
	if err != nil {
		return nil, err
	}

	now := s.workspaces.now()
	dueDate, err := parseDueDate(input.DueDate, now)
	if err != nil {
		return nil, err
	}

	task := models.Task{
		ID:            s.workspaces.newID(),
		Text:          input.Text,
		Completed:     false,
		Priority:      priority,
		PriorityValue: priority.Rank(),
		DueDate:       dueDate,
		Details:       input.Details,
		CreatedAt:     now.Format(constants.TimestampLayout),
	}

	err = s.workspaces.Mutate(ctx, username, func(ws *models.Workspace) error {
		ws.Tasks = append(ws.Tasks, task)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &task, nil
}

// ToggleTask flips the completed flag of a task
func (s *TaskService) ToggleTask(ctx context.Context, username, taskID string) (*models.Task, error) {
	var updated models.Task
	err := s.workspaces.Mutate(ctx, username, func(ws *models.Workspace) error {
		i := indexOfTask(ws.Tasks, taskID)
		if i < 0 {
			return ErrTaskNotFound
		}
		ws.Tasks[i].Completed = !ws.Tasks[i].Completed
		updated = ws.Tasks[i]
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// DeleteTask removes a task
func (s *TaskService) DeleteTask(ctx context.Context, username, taskID string) error {
	return s.workspaces.Mutate(ctx, username, func(ws *models.Workspace) error {
		i := indexOfTask(ws.Tasks, taskID)
		if i < 0 {
			return ErrTaskNotFound
		}
		ws.Tasks = append(ws.Tasks[:i], ws.Tasks[i+1:]...)
		return nil
	})
}

// Tasks returns the user's tasks in insertion order
func (s *TaskService) Tasks(ctx context.Context, username string) ([]models.Task, error) {
	ws, err := s.workspaces.Snapshot(ctx, username)
	if err != nil {
		return nil, err
	}
	return ws.Tasks, nil
}

// ListTasks returns the user's tasks filtered and sorted for display
func (s *TaskService) ListTasks(ctx context.Context, username string, input ListTasksInput) ([]models.Task, error) {
	mode, ok := view.ParseSortMode(input.Sort)
	if !ok {
		return nil, ErrInvalidSortMode
	}

	tasks, err := s.Tasks(ctx, username)
	if err != nil {
		return nil, err
	}

	return view.Apply(tasks, view.Query{ShowCompleted: input.ShowCompleted, Sort: mode}), nil
}

// TaskIDAt translates a position in the insertion-ordered list to a task id
func (s *TaskService) TaskIDAt(ctx context.Context, username string, index int) (string, error) {
	tasks, err := s.Tasks(ctx, username)
	if err != nil {
		return "", err
	}
	if index < 0 || index >= len(tasks) {
		return "", ErrIndexOutOfRange
	}
	return tasks[index].ID, nil
}

// Stats computes completion statistics over all of the user's tasks
func (s *TaskService) Stats(ctx context.Context, username string) (view.Stats, error) {
	tasks, err := s.Tasks(ctx, username)
	if err != nil {
		return view.Stats{}, err
	}
	return view.ComputeStats(tasks), nil
}

func indexOfTask(tasks []models.Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// parsePriority accepts High/Medium/Low in any case. Empty means Low.
func parsePriority(s string) (models.Priority, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return models.PriorityLow, nil
	}
	for _, p := range models.Priorities {
		if strings.EqualFold(s, string(p)) {
			return p, nil
		}
	}
	return "", ErrInvalidPriority
}

func parseDueDate(s string, now time.Time) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now.Format(constants.DateLayout), nil
	}
	d, err := time.Parse(constants.DateLayout, s)
	if err != nil {
		return "", ErrInvalidDueDate
	}
	return d.Format(constants.DateLayout), nil
}
