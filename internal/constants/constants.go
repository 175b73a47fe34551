package constants

// Session and context keys
const (
	SessionCookieName  = "todo_session"
	ContextKeyUsername = "username"
)

// Session lifetime, matching the 30 day cookie expiry of the login page
const SessionMaxAgeSeconds = 86400 * 30

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// Date formats used by persisted task records
const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04:05"
)

// MaxSuggestedTasks caps how many suggestions are returned for one note
const MaxSuggestedTasks = 20
