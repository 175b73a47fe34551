package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/smart-todo/internal/constants"
	"github.com/yukikurage/smart-todo/internal/dto"
	"github.com/yukikurage/smart-todo/internal/logger"
	"github.com/yukikurage/smart-todo/internal/middleware"
	"github.com/yukikurage/smart-todo/internal/models"
	"github.com/yukikurage/smart-todo/internal/services"
	"github.com/yukikurage/smart-todo/internal/view"
)

const (
	flashSuccess = "success"
	flashError   = "error"
)

// Page shell locations. Signed-out visitors are sent to LoginPath.
const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

type sortOption struct {
	Value string
	Label string
}

var sortOptions = []sortOption{
	{Value: string(view.SortPriority), Label: "Priority"},
	{Value: string(view.SortDueDate), Label: "Due date"},
	{Value: string(view.SortCreated), Label: "Created date"},
}

type flashes struct {
	Success []string
	Error   []string
}

// PageHandler serves the HTML page shell. Each form post runs one store
// operation, stores the outcome as a flash message and redirects back.
type PageHandler struct {
	auth  *AuthHandler
	tasks *services.TaskService
	notes *services.NoteService
	now   func() time.Time
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(auth *AuthHandler, tasks *services.TaskService, notes *services.NoteService) *PageHandler {
	return &PageHandler{
		auth:  auth,
		tasks: tasks,
		notes: notes,
		now:   time.Now,
	}
}

// Index sends visitors to the dashboard or the login page.
func (h *PageHandler) Index(c *gin.Context) {
	if _, ok := middleware.SessionUsername(c); ok {
		c.Redirect(http.StatusSeeOther, DashboardPath)
		return
	}
	c.Redirect(http.StatusSeeOther, LoginPath)
}

// LoginPage renders the login and registration forms.
func (h *PageHandler) LoginPage(c *gin.Context) {
	if _, ok := middleware.SessionUsername(c); ok {
		c.Redirect(http.StatusSeeOther, DashboardPath)
		return
	}

	c.HTML(http.StatusOK, "login.html", gin.H{
		"Flashes": popFlashes(c),
	})
}

// Login handles the login form.
func (h *PageHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.redirectWithError(c, LoginPath, services.ErrInvalidCredentials)
		return
	}

	if _, err := h.auth.login(c, req); err != nil {
		h.redirectWithError(c, LoginPath, err)
		return
	}

	c.Redirect(http.StatusSeeOther, DashboardPath)
}

// Register handles the registration form.
func (h *PageHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		h.redirectWithError(c, LoginPath, services.ErrInvalidInput)
		return
	}

	_, err := h.auth.authService.Register(services.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
	})
	switch {
	case err == nil:
		h.redirectWithSuccess(c, LoginPath, "Account created successfully! Please login.")
	case req.Username == "" || req.Password == "":
		h.redirectWithMessage(c, LoginPath, flashError, "Please enter both username and password!")
	default:
		h.redirectWithError(c, LoginPath, err)
	}
}

// Logout clears the session.
func (h *PageHandler) Logout(c *gin.Context) {
	h.auth.logout(c)
	if err := sessions.Default(c).Save(); err != nil {
		logger.FromContext(c.Request.Context()).Error().Err(err).Msg("failed to clear session")
	}
	c.Redirect(http.StatusSeeOther, LoginPath)
}

// Dashboard renders tasks, notes and statistics for the signed-in user.
// Query: show_completed (default true), sort (default priority).
func (h *PageHandler) Dashboard(c *gin.Context) {
	username, _ := middleware.GetUsername(c)
	ctx := c.Request.Context()

	showCompleted := true
	if v, err := strconv.ParseBool(c.Query("show_completed")); err == nil {
		showCompleted = v
	}
	sortMode := c.DefaultQuery("sort", string(view.SortPriority))

	data := gin.H{
		"User":          dto.UserDTO{Username: username, Name: username},
		"Priorities":    models.Priorities,
		"SortOptions":   sortOptions,
		"ShowCompleted": showCompleted,
		"Sort":          sortMode,
		"Today":         h.today(),
	}

	if user, err := h.auth.authService.GetUser(username); err == nil {
		data["User"] = dto.ToUserDTO(*user)
	}

	var errs []string

	tasks, err := h.tasks.ListTasks(ctx, username, services.ListTasksInput{
		ShowCompleted: showCompleted,
		Sort:          sortMode,
	})
	if err != nil {
		errs = append(errs, "Error processing tasks: "+userMessage(err))
	}
	data["Tasks"] = tasks

	notes, err := h.notes.ListNotes(ctx, username)
	if err != nil {
		errs = append(errs, "Error loading notes: "+userMessage(err))
	}
	data["Notes"] = notes

	stats, err := h.tasks.Stats(ctx, username)
	if err != nil {
		errs = append(errs, "Error calculating statistics: "+userMessage(err))
	}
	data["Stats"] = stats

	f := popFlashes(c)
	f.Error = append(f.Error, errs...)
	data["Flashes"] = f

	c.HTML(http.StatusOK, "dashboard.html", data)
}

// AddTask handles the add-task form.
func (h *PageHandler) AddTask(c *gin.Context) {
	username, _ := middleware.GetUsername(c)

	var req createTaskRequest
	if err := c.ShouldBind(&req); err != nil {
		h.redirectWithError(c, DashboardPath, services.ErrInvalidInput)
		return
	}

	_, err := h.tasks.AddTask(c.Request.Context(), username, services.AddTaskInput{
		Text:     req.Task,
		Priority: req.Priority,
		DueDate:  req.DueDate,
		Details:  req.Details,
	})
	if err != nil {
		h.redirectWithError(c, DashboardPath, err)
		return
	}

	h.redirectWithSuccess(c, DashboardPath, "Task added successfully!")
}

// ToggleTask handles the complete/undo button.
func (h *PageHandler) ToggleTask(c *gin.Context) {
	username, _ := middleware.GetUsername(c)

	id, err := resolveID(c, username, h.tasks.TaskIDAt)
	if err == nil {
		_, err = h.tasks.ToggleTask(c.Request.Context(), username, id)
	}
	h.redirectBack(c, err)
}

// DeleteTask handles the task delete button.
func (h *PageHandler) DeleteTask(c *gin.Context) {
	username, _ := middleware.GetUsername(c)

	id, err := resolveID(c, username, h.tasks.TaskIDAt)
	if err == nil {
		err = h.tasks.DeleteTask(c.Request.Context(), username, id)
	}
	h.redirectBack(c, err)
}

// AddNote handles the add-note button.
func (h *PageHandler) AddNote(c *gin.Context) {
	username, _ := middleware.GetUsername(c)

	_, err := h.notes.AddNote(c.Request.Context(), username)
	h.redirectBack(c, err)
}

// UpdateNote handles the note edit form.
func (h *PageHandler) UpdateNote(c *gin.Context) {
	username, _ := middleware.GetUsername(c)

	var req updateNoteRequest
	if err := c.ShouldBind(&req); err != nil {
		h.redirectWithError(c, DashboardPath, services.ErrInvalidInput)
		return
	}

	id, err := resolveID(c, username, h.notes.NoteIDAt)
	if err == nil {
		_, err = h.notes.UpdateNote(c.Request.Context(), username, id, services.UpdateNoteInput{
			Title:   req.Title,
			Content: req.Content,
		})
	}
	h.redirectBack(c, err)
}

// DeleteNote handles the note delete button.
func (h *PageHandler) DeleteNote(c *gin.Context) {
	username, _ := middleware.GetUsername(c)

	id, err := resolveID(c, username, h.notes.NoteIDAt)
	if err == nil {
		err = h.notes.DeleteNote(c.Request.Context(), username, id)
	}
	h.redirectBack(c, err)
}

// redirectBack returns to the dashboard, flashing err if there is one.
func (h *PageHandler) redirectBack(c *gin.Context, err error) {
	if err != nil {
		h.redirectWithError(c, DashboardPath, err)
		return
	}
	c.Redirect(http.StatusSeeOther, DashboardPath)
}

func (h *PageHandler) redirectWithError(c *gin.Context, target string, err error) {
	logger.FromContext(c.Request.Context()).Debug().Err(err).Str("path", c.FullPath()).Msg("form action failed")
	h.redirectWithMessage(c, target, flashError, userMessage(err))
}

func (h *PageHandler) redirectWithSuccess(c *gin.Context, target, msg string) {
	h.redirectWithMessage(c, target, flashSuccess, msg)
}

func (h *PageHandler) redirectWithMessage(c *gin.Context, target, kind, msg string) {
	session := sessions.Default(c)
	session.AddFlash(msg, kind)
	if err := session.Save(); err != nil {
		logger.FromContext(c.Request.Context()).Error().Err(err).Msg("failed to save flash message")
	}
	c.Redirect(http.StatusSeeOther, target)
}

func (h *PageHandler) today() string {
	return h.now().Format(constants.DateLayout)
}

// popFlashes reads and clears the pending flash messages.
func popFlashes(c *gin.Context) flashes {
	session := sessions.Default(c)

	var f flashes
	for _, v := range session.Flashes(flashSuccess) {
		if s, ok := v.(string); ok {
			f.Success = append(f.Success, s)
		}
	}
	for _, v := range session.Flashes(flashError) {
		if s, ok := v.(string); ok {
			f.Error = append(f.Error, s)
		}
	}

	if len(f.Success) > 0 || len(f.Error) > 0 {
		if err := session.Save(); err != nil {
			logger.FromContext(c.Request.Context()).Error().Err(err).Msg("failed to clear flash messages")
		}
	}
	return f
}
