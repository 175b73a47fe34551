package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/smart-todo/internal/dto"
	apierrors "github.com/yukikurage/smart-todo/internal/errors"
	"github.com/yukikurage/smart-todo/internal/middleware"
	"github.com/yukikurage/smart-todo/internal/services"
	"github.com/yukikurage/smart-todo/internal/utils"
	"github.com/yukikurage/smart-todo/internal/view"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

type createTaskRequest struct {
	Task     string `json:"task" form:"task"`
	Priority string `json:"priority" form:"priority"`
	DueDate  string `json:"due_date" form:"due_date"`
	Details  string `json:"details" form:"details"`
}

// ListTasks returns the current user's tasks.
// Query: show_completed (bool), sort (priority|due_date|created_date), page, limit.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	showCompleted := true
	if v := c.Query("show_completed"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			apierrors.BadRequestWithDetails(c, "Invalid show_completed", gin.H{
				"param": "show_completed",
				"value": v,
			})
			return
		}
		showCompleted = b
	}
	sort := c.Query("sort")

	tasks, err := h.taskService.ListTasks(c.Request.Context(), username, services.ListTasksInput{
		ShowCompleted: showCompleted,
		Sort:          sort,
	})
	if errors.Is(err, services.ErrInvalidSortMode) {
		apierrors.BadRequestWithDetails(c, err.Error(), gin.H{
			"param":   "sort",
			"value":   sort,
			"allowed": []string{string(view.SortPriority), string(view.SortDueDate), string(view.SortCreated)},
		})
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	params := utils.GetPaginationParams(c)
	page := utils.Paginate(tasks, params)

	c.JSON(http.StatusOK, dto.TaskListResponse{
		Tasks: dto.ToTaskDTOs(page),
		Sort:  sort,
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int64(len(tasks)),
		},
	})
}

// CreateTask adds a task for the current user
func (h *TaskHandler) CreateTask(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.AddTask(c.Request.Context(), username, services.AddTaskInput{
		Text:     req.Task,
		Priority: req.Priority,
		DueDate:  req.DueDate,
		Details:  req.Details,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// ToggleTask flips the completed flag of a task
func (h *TaskHandler) ToggleTask(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, err := resolveID(c, username, h.taskService.TaskIDAt)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	task, err := h.taskService.ToggleTask(c.Request.Context(), username, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask removes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, err := resolveID(c, username, h.taskService.TaskIDAt)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), username, id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// GetStats returns completion statistics over all tasks
func (h *TaskHandler) GetStats(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	stats, err := h.taskService.Stats(c.Request.Context(), username)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatsDTO(stats))
}
