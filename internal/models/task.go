package models

import "encoding/json"

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Priorities lists every priority in rank order.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Rank is the sort key stored as priority_value: High=0, Medium=1, Low=2.
// Anything unknown ranks as Low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// Valid reports whether p is one of the three known priorities.
func (p Priority) Valid() bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// Task is a to-do item. DueDate and CreatedAt keep their persisted string
// form ("2006-01-02" and "2006-01-02 15:04:05") because sorting compares
// them lexicographically.
type Task struct {
	ID            string   `json:"id"`
	Text          string   `json:"task"`
	Completed     bool     `json:"completed"`
	Priority      Priority `json:"priority"`
	PriorityValue int      `json:"priority_value"`
	DueDate       string   `json:"due_date"`
	Details       string   `json:"details"`
	CreatedAt     string   `json:"created_at"`
}

// UnmarshalJSON defaults a missing priority_value to Low (2).
func (t *Task) UnmarshalJSON(data []byte) error {
	type taskAlias Task
	aux := struct {
		*taskAlias
		PriorityValue *int `json:"priority_value"`
	}{taskAlias: (*taskAlias)(t)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if aux.PriorityValue != nil {
		t.PriorityValue = *aux.PriorityValue
	} else {
		t.PriorityValue = PriorityLow.Rank()
	}
	return nil
}
