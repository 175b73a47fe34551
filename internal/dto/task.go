package dto

import (
	"github.com/yukikurage/smart-todo/internal/models"
	"github.com/yukikurage/smart-todo/internal/services"
	"github.com/yukikurage/smart-todo/internal/utils"
	"github.com/yukikurage/smart-todo/internal/view"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID            string          `json:"id"`
	Task          string          `json:"task"`
	Completed     bool            `json:"completed"`
	Priority      models.Priority `json:"priority"`
	PriorityValue int             `json:"priority_value"`
	DueDate       string          `json:"due_date"`
	Details       string          `json:"details"`
	CreatedAt     string          `json:"created_at"`
}

// TaskListResponse represents a paginated, filtered and sorted list of tasks
type TaskListResponse struct {
	Tasks      []TaskDTO                `json:"tasks"`
	Sort       string                   `json:"sort"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// NoteDTO represents a note in API responses
type NoteDTO struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NoteListResponse wraps the user's notes
type NoteListResponse struct {
	Notes []NoteDTO `json:"notes"`
}

// StatsDTO is the completion summary for the dashboard
type StatsDTO = view.Stats

// SuggestedTaskDTO is a task proposed from a note
type SuggestedTaskDTO struct {
	Task     string `json:"task"`
	Priority string `json:"priority"`
	DueDate  string `json:"due_date"`
	Details  string `json:"details"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		Username: user.Username,
		Name:     user.DisplayName,
	}
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:            task.ID,
		Task:          task.Text,
		Completed:     task.Completed,
		Priority:      task.Priority,
		PriorityValue: task.PriorityValue,
		DueDate:       task.DueDate,
		Details:       task.Details,
		CreatedAt:     task.CreatedAt,
	}
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	out := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		out[i] = ToTaskDTO(t)
	}
	return out
}

// ToNoteDTO converts a Note model to NoteDTO
func ToNoteDTO(note models.Note) NoteDTO {
	return NoteDTO{
		ID:      note.ID,
		Title:   note.Title,
		Content: note.Content,
	}
}

// ToNoteDTOs converts a slice of notes
func ToNoteDTOs(notes []models.Note) []NoteDTO {
	out := make([]NoteDTO, len(notes))
	for i, n := range notes {
		out[i] = ToNoteDTO(n)
	}
	return out
}

// ToSuggestedTaskDTOs converts AI suggestions
func ToSuggestedTaskDTOs(tasks []services.SuggestedTask) []SuggestedTaskDTO {
	out := make([]SuggestedTaskDTO, len(tasks))
	for i, t := range tasks {
		out[i] = SuggestedTaskDTO(t)
	}
	return out
}
