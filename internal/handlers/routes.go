package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/smart-todo/internal/middleware"
)

// Router bundles the handlers mounted by RegisterRoutes.
type Router struct {
	Auth  *AuthHandler
	Tasks *TaskHandler
	Notes *NoteHandler
	Pages *PageHandler
}

// RegisterRoutes mounts the page shell, the JSON API and the health check.
// Session middleware and HTML templates must already be installed on r.
func (rt *Router) RegisterRoutes(r *gin.Engine) {
	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Smart Todo is running",
		})
	})

	// Page shell
	r.GET("/", rt.Pages.Index)
	r.GET(LoginPath, rt.Pages.LoginPage)
	r.POST(LoginPath, rt.Pages.Login)
	r.POST("/register", rt.Pages.Register)
	r.POST("/logout", rt.Pages.Logout)

	pages := r.Group("")
	pages.Use(middleware.RequirePageAuth(LoginPath))
	{
		pages.GET(DashboardPath, rt.Pages.Dashboard)
		pages.POST("/tasks", rt.Pages.AddTask)
		pages.POST("/tasks/:id/toggle", rt.Pages.ToggleTask)
		pages.POST("/tasks/:id/delete", rt.Pages.DeleteTask)
		pages.POST("/notes", rt.Pages.AddNote)
		pages.POST("/notes/:id", rt.Pages.UpdateNote)
		pages.POST("/notes/:id/delete", rt.Pages.DeleteNote)
	}

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", rt.Auth.Register)
			auth.POST("/login", rt.Auth.Login)
			auth.POST("/logout", rt.Auth.Logout)
			auth.GET("/me", middleware.RequireAuth(), rt.Auth.GetCurrentUser)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", rt.Tasks.ListTasks)
			tasks.POST("", rt.Tasks.CreateTask)
			tasks.GET("/stats", rt.Tasks.GetStats)
			tasks.POST("/:id/toggle", rt.Tasks.ToggleTask)
			tasks.DELETE("/:id", rt.Tasks.DeleteTask)
		}

		// Note routes (protected)
		notes := api.Group("/notes")
		notes.Use(middleware.RequireAuth())
		{
			notes.GET("", rt.Notes.ListNotes)
			notes.POST("", rt.Notes.CreateNote)
			notes.PUT("/:id", rt.Notes.UpdateNote)
			notes.DELETE("/:id", rt.Notes.DeleteNote)
			notes.POST("/:id/suggest-tasks", rt.Notes.SuggestTasks)
		}
	}
}
