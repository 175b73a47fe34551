package models

const (
	NewNoteTitle   = "New Note"
	NewNoteContent = "Write your note here..."
)

type Note struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// DefaultNotes returns the notes every new workspace starts with.
// IDs are left empty for the caller to assign.
func DefaultNotes() []Note {
	return []Note{
		{Title: "Meeting Notes", Content: "Meeting notes go here..."},
		{Title: "Important Deadlines", Content: "Important deadlines..."},
		{Title: "Project Ideas", Content: "Project ideas..."},
		{Title: "Shopping List", Content: "Shopping list..."},
		{Title: "Reminders", Content: "Reminders..."},
	}
}
