package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/smart-todo/internal/constants"
	"github.com/yukikurage/smart-todo/internal/dto"
	apierrors "github.com/yukikurage/smart-todo/internal/errors"
	"github.com/yukikurage/smart-todo/internal/services"
)

func TestAuthHandler_Register(t *testing.T) {
	env := setupTestEnv(t, nil)

	w := env.doJSON(t, http.MethodPost, "/api/auth/register", map[string]string{
		"username": "newuser",
		"password": "supersecret",
		"name":     "New User",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	response := decode[dto.UserDTO](t, w)
	assert.Equal(t, "newuser", response.Username)
	assert.Equal(t, "New User", response.Name)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestAuthHandler_RegisterDuplicate(t *testing.T) {
	env := setupTestEnv(t, nil)

	payload := map[string]string{"username": "dup", "password": "pw"}
	require.Equal(t, http.StatusCreated, env.doJSON(t, http.MethodPost, "/api/auth/register", payload).Code)

	w := env.doJSON(t, http.MethodPost, "/api/auth/register", payload)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, apierrors.ErrCodeAlreadyExists, decode[apierrors.APIError](t, w).Code)
}

func TestAuthHandler_RegisterMissingPassword(t *testing.T) {
	env := setupTestEnv(t, nil)

	w := env.doJSON(t, http.MethodPost, "/api/auth/register", map[string]string{"username": "x"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apierrors.ErrCodeInvalidInput, decode[apierrors.APIError](t, w).Code)
}

func TestAuthHandler_LoginAndMe(t *testing.T) {
	env := setupTestEnv(t, nil)
	env.signIn(t, "existing")

	require.Contains(t, env.cookies, constants.SessionCookieName, "expected session cookie to be set")

	w := env.get(t, "/api/auth/me")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "existing", decode[dto.UserDTO](t, w).Username)
}

func TestAuthHandler_LoginWrongPassword(t *testing.T) {
	env := setupTestEnv(t, nil)

	_, err := env.authService.Register(services.RegisterInput{Username: "alice", Password: "right"})
	require.NoError(t, err)

	w := env.doJSON(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "alice",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, apierrors.ErrCodeInvalidCredentials, decode[apierrors.APIError](t, w).Code)

	assert.Equal(t, http.StatusUnauthorized, env.get(t, "/api/auth/me").Code)
}

func TestAuthHandler_Logout(t *testing.T) {
	env := setupTestEnv(t, nil)
	env.signIn(t, "alice")

	w := env.doJSON(t, http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, http.StatusUnauthorized, env.get(t, "/api/auth/me").Code)
	assert.Equal(t, http.StatusUnauthorized, env.get(t, "/api/tasks").Code)
}

func TestAuthHandler_GetCurrentUser_NoContext(t *testing.T) {
	env := setupTestEnv(t, nil)
	handler := NewAuthHandler(env.authService, env.workspaces)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)

	handler.GetCurrentUser(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_GetCurrentUser_FromContext(t *testing.T) {
	env := setupTestEnv(t, nil)
	_, err := env.authService.Register(services.RegisterInput{Username: "current-user", Password: "pw"})
	require.NoError(t, err)

	handler := NewAuthHandler(env.authService, env.workspaces)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	c.Set(constants.ContextKeyUsername, "current-user")

	handler.GetCurrentUser(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "current-user", decode[dto.UserDTO](t, w).Username)
}
