package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/smart-todo/internal/constants"
	"github.com/yukikurage/smart-todo/internal/dto"
	apierrors "github.com/yukikurage/smart-todo/internal/errors"
	"github.com/yukikurage/smart-todo/internal/middleware"
	"github.com/yukikurage/smart-todo/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
	workspaces  *services.WorkspaceService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, workspaces *services.WorkspaceService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		workspaces:  workspaces,
	}
}

type registerRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
	Name     string `json:"name" form:"name"`
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Register creates a new account. The caller still has to log in.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Register(services.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// Login authenticates a user, loads their workspace and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.login(c, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// login is shared by the JSON and the form endpoints.
func (h *AuthHandler) login(c *gin.Context, req loginRequest) (*dto.UserDTO, error) {
	user, err := h.authService.Login(services.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	if err := h.workspaces.Open(c.Request.Context(), user.Username); err != nil {
		return nil, err
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyUsername, user.Username)
	if err := session.Save(); err != nil {
		return nil, err
	}

	out := dto.ToUserDTO(*user)
	return &out, nil
}

// Logout removes the authentication session and drops the cached workspace.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.logout(c)

	session := sessions.Default(c)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

func (h *AuthHandler) logout(c *gin.Context) {
	session := sessions.Default(c)
	if username, ok := middleware.SessionUsername(c); ok {
		h.workspaces.Close(username)
	}
	session.Clear()
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.authService.GetUser(username)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}
