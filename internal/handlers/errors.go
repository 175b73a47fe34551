package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/smart-todo/internal/errors"
	"github.com/yukikurage/smart-todo/internal/logger"
	"github.com/yukikurage/smart-todo/internal/services"
)

// respondServiceError maps a service error to a JSON error response.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrUsernameTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c, err.Error())
	case errors.Is(err, services.ErrIndexOutOfRange),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrPersistenceFailure):
		apierrors.PersistenceFailure(c, err.Error())
	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.ServiceUnavailable(c, err.Error())
	case errors.Is(err, services.ErrAIRequestFailed):
		apierrors.BadGateway(c, err.Error())
	case errors.Is(err, services.ErrAINoTasksGenerated),
		errors.Is(err, services.ErrAINoValidTasks):
		apierrors.NotFound(c, err.Error())
	default:
		logger.FromContext(c.Request.Context()).Error().Err(err).Msg("unhandled service error")
		apierrors.InternalError(c, "Internal server error")
	}
}

// userMessage turns a service error into the sentence shown on the page.
func userMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrTaskTextRequired):
		return "Please enter a task."
	case errors.Is(err, services.ErrInvalidInput):
		return err.Error()
	case errors.Is(err, services.ErrUsernameTaken):
		return "Username already exists."
	case errors.Is(err, services.ErrInvalidCredentials):
		return "Username/password is incorrect."
	case errors.Is(err, services.ErrIndexOutOfRange):
		return "That item no longer exists. The list has been refreshed."
	case errors.Is(err, services.ErrPersistenceFailure):
		return "Error saving data: " + err.Error()
	default:
		return "Something went wrong."
	}
}

// idResolver maps a list position to a record id.
type idResolver func(ctx context.Context, username string, index int) (string, error)

// resolveID reads the :id path segment. A plain decimal number is treated
// as a position in the insertion-ordered list.
func resolveID(c *gin.Context, username string, byIndex idResolver) (string, error) {
	raw := c.Param("id")
	if index, err := strconv.Atoi(raw); err == nil {
		return byIndex(c.Request.Context(), username, index)
	}
	return raw, nil
}
