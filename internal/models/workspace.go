package models

// Workspace is the per-user slice of tasks and notes. It is persisted as a
// whole on every mutation.
type Workspace struct {
	Tasks []Task `json:"todos"`
	Notes []Note `json:"notes"`
}

// Clone returns a deep copy so callers can't alias the cached slices.
// The copy never carries nil slices.
func (w *Workspace) Clone() *Workspace {
	tasks := make([]Task, len(w.Tasks))
	copy(tasks, w.Tasks)
	notes := make([]Note, len(w.Notes))
	copy(notes, w.Notes)
	return &Workspace{Tasks: tasks, Notes: notes}
}
