package main

import (
	"net/http"
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/smart-todo/internal/config"
	"github.com/yukikurage/smart-todo/internal/constants"
	"github.com/yukikurage/smart-todo/internal/database"
	"github.com/yukikurage/smart-todo/internal/handlers"
	"github.com/yukikurage/smart-todo/internal/logger"
	"github.com/yukikurage/smart-todo/internal/middleware"
	"github.com/yukikurage/smart-todo/internal/repository"
	"github.com/yukikurage/smart-todo/internal/services"
	"github.com/yukikurage/smart-todo/internal/web"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.NewLogger("server", "info").Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.NewLogger("server", cfg.LogLevel)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Credentials file is created on first start
	userRepo, err := repository.NewUserRepository(cfg.CredentialsFile)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.CredentialsFile).Msg("failed to open credentials file")
	}

	workspaceRepo, err := newWorkspaceRepository(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StorageDriver).Msg("failed to set up workspace storage")
	}

	store, err := newSessionStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.SessionStore).Msg("failed to create session store")
	}

	// Initialize AI service
	var suggester services.TaskSuggester
	if cfg.OpenAIAPIKey != "" {
		suggester = services.NewAIService(cfg.OpenAIAPIKey)
	}

	// Initialize services
	authService := services.NewAuthService(userRepo)
	workspaces := services.NewWorkspaceService(workspaceRepo, log)
	taskService := services.NewTaskService(workspaces)
	noteService := services.NewNoteService(workspaces)
	suggestService := services.NewSuggestService(noteService, suggester)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, workspaces)
	router := &handlers.Router{
		Auth:  authHandler,
		Tasks: handlers.NewTaskHandler(taskService),
		Notes: handlers.NewNoteHandler(noteService, suggestService),
		Pages: handlers.NewPageHandler(authHandler, taskService, noteService),
	}

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery(), middleware.TraceID(log), middleware.RequestLogger())
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.SetHTMLTemplate(web.MustTemplates())
	router.RegisterRoutes(r)

	// Start server
	addr := ":" + cfg.Port
	log.Info().
		Str("addr", addr).
		Str("storage", cfg.StorageDriver).
		Str("sessions", cfg.SessionStore).
		Bool("suggestions", suggestService.Enabled()).
		Msg("server starting")
	if err := r.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}

// newWorkspaceRepository picks flat files or one of the SQL backends.
func newWorkspaceRepository(cfg *config.Config, log *logger.Logger) (repository.WorkspaceRepository, error) {
	if cfg.StorageDriver == config.StorageFile {
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, err
		}
		return repository.NewFileWorkspaceRepository(cfg.DataDir), nil
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := repository.MigrateWorkspaceTables(db); err != nil {
		return nil, err
	}

	log.Info().Str("driver", cfg.StorageDriver).Msg("database connected")
	return repository.NewGormWorkspaceRepository(db), nil
}

// newSessionStore builds the cookie or redis session backend.
func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	switch cfg.SessionStore {
	case config.SessionStoreRedis:
		redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
		rs, err := redisStore.NewStore(
			10,        // Redis pool size
			"tcp",     // network type
			redisAddr, // Redis address from config
			"",        // password (empty = no password)
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			return nil, err
		}
		store = rs
	default:
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	}

	// Configure session options based on environment
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   constants.SessionMaxAgeSeconds,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}
