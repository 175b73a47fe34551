// Package view derives display data from a workspace: filtered and sorted
// task lists and completion statistics. It holds no state.
package view

import (
	"sort"
	"strings"

	"github.com/yukikurage/smart-todo/internal/models"
)

// SortMode selects the ordering of a task listing.
type SortMode string

const (
	SortRaw      SortMode = ""
	SortPriority SortMode = "priority"
	SortDueDate  SortMode = "due_date"
	SortCreated  SortMode = "created_date"
)

// ParseSortMode accepts the query values and the form labels
// ("Priority", "Due date", "Created date"). Empty and "raw" keep
// insertion order.
func ParseSortMode(s string) (SortMode, bool) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
	switch SortMode(key) {
	case SortRaw, "raw":
		return SortRaw, true
	case SortPriority:
		return SortPriority, true
	case SortDueDate:
		return SortDueDate, true
	case SortCreated:
		return SortCreated, true
	}
	return SortRaw, false
}

// FilterTasks returns a new slice, dropping completed tasks unless
// showCompleted is set.
func FilterTasks(tasks []models.Task, showCompleted bool) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if showCompleted || !t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// SortTasks stable-sorts tasks in place by mode. Ties keep their
// original relative order.
func SortTasks(tasks []models.Task, mode SortMode) {
	switch mode {
	case SortPriority:
		sort.SliceStable(tasks, func(i, j int) bool {
			if tasks[i].PriorityValue != tasks[j].PriorityValue {
				return tasks[i].PriorityValue < tasks[j].PriorityValue
			}
			return tasks[i].DueDate < tasks[j].DueDate
		})
	case SortDueDate:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].DueDate < tasks[j].DueDate
		})
	case SortCreated:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].CreatedAt > tasks[j].CreatedAt
		})
	}
}

// Query is the filter and sort selection for one task listing.
type Query struct {
	ShowCompleted bool
	Sort          SortMode
}

// Apply filters then sorts a copy of tasks.
func Apply(tasks []models.Task, q Query) []models.Task {
	out := FilterTasks(tasks, q.ShowCompleted)
	SortTasks(out, q.Sort)
	return out
}

// PriorityCounts tallies pending tasks per priority.
type PriorityCounts struct {
	High   int `json:"High"`
	Medium int `json:"Medium"`
	Low    int `json:"Low"`
}

// Stats summarises completion over a user's tasks.
type Stats struct {
	CompletedCount int `json:"completed_count"`
	TotalCount     int `json:"total_count"`
	// CompletionPercent is nil when there are no tasks.
	CompletionPercent     *int           `json:"completion_percent,omitempty"`
	PendingPriorityCounts PriorityCounts `json:"pending_priority_counts"`
}

// ComputeStats counts completed tasks and the priority spread of pending ones.
func ComputeStats(tasks []models.Task) Stats {
	var s Stats
	s.TotalCount = len(tasks)

	for _, t := range tasks {
		if t.Completed {
			s.CompletedCount++
			continue
		}
		switch t.Priority {
		case models.PriorityHigh:
			s.PendingPriorityCounts.High++
		case models.PriorityMedium:
			s.PendingPriorityCounts.Medium++
		default:
			s.PendingPriorityCounts.Low++
		}
	}

	if s.TotalCount > 0 {
		pct := s.CompletedCount * 100 / s.TotalCount
		s.CompletionPercent = &pct
	}

	return s
}
