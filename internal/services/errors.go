package services

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by every service. Handlers map these with errors.Is.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrIndexOutOfRange    = errors.New("index out of range")
	ErrPersistenceFailure = errors.New("failed to persist data")
)

// Specific causes. Each wraps one of the categories above.
var (
	ErrUsernameRequired = fmt.Errorf("%w: username is required", ErrInvalidInput)
	ErrPasswordRequired = fmt.Errorf("%w: password is required", ErrInvalidInput)
	ErrInvalidUsername  = fmt.Errorf("%w: username may not contain path separators", ErrInvalidInput)
	ErrTaskTextRequired = fmt.Errorf("%w: task text is required", ErrInvalidInput)
	ErrInvalidPriority  = fmt.Errorf("%w: priority must be High, Medium or Low", ErrInvalidInput)
	ErrInvalidDueDate   = fmt.Errorf("%w: due date must be formatted YYYY-MM-DD", ErrInvalidInput)
	ErrInvalidSortMode  = fmt.Errorf("%w: unknown sort mode", ErrInvalidInput)

	ErrTaskNotFound = fmt.Errorf("task not found: %w", ErrIndexOutOfRange)
	ErrNoteNotFound = fmt.Errorf("note not found: %w", ErrIndexOutOfRange)

	ErrUserNotFound = errors.New("user not found")
)
