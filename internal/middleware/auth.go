package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/smart-todo/internal/constants"
	apierrors "github.com/yukikurage/smart-todo/internal/errors"
)

// RequireAuth checks if the user is authenticated via session
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		username, ok := sessionUsername(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		// Store username in context for easy access in handlers
		c.Set(constants.ContextKeyUsername, username)
		c.Next()
	}
}

// RequirePageAuth is RequireAuth for HTML pages: anonymous visitors are
// redirected to the login page instead of getting a JSON error.
func RequirePageAuth(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, ok := sessionUsername(c)
		if !ok {
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUsername, username)
		c.Next()
	}
}

// GetUsername retrieves the current username from context
func GetUsername(c *gin.Context) (string, bool) {
	v, exists := c.Get(constants.ContextKeyUsername)
	if !exists {
		return "", false
	}

	username, ok := v.(string)
	if !ok || username == "" {
		return "", false
	}
	return username, true
}

// SessionUsername reads the username straight from the session, for
// routes that are served both signed in and signed out.
func SessionUsername(c *gin.Context) (string, bool) {
	return sessionUsername(c)
}

func sessionUsername(c *gin.Context) (string, bool) {
	session := sessions.Default(c)
	username, ok := session.Get(constants.ContextKeyUsername).(string)
	if !ok || username == "" {
		return "", false
	}
	return username, true
}
