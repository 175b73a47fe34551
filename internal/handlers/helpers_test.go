package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/smart-todo/internal/constants"
	"github.com/yukikurage/smart-todo/internal/logger"
	"github.com/yukikurage/smart-todo/internal/repository"
	"github.com/yukikurage/smart-todo/internal/services"
	"github.com/yukikurage/smart-todo/internal/web"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router      *gin.Engine
	dataDir     string
	authService *services.AuthService
	workspaces  *services.WorkspaceService
	tasks       *services.TaskService
	notes       *services.NoteService
	cookies     map[string]*http.Cookie
}

func setupTestEnv(t *testing.T, suggester services.TaskSuggester) *testEnv {
	t.Helper()

	dir := t.TempDir()
	userRepo, err := repository.NewUserRepository(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)

	authService := services.NewAuthService(userRepo)
	workspaces := services.NewWorkspaceService(repository.NewFileWorkspaceRepository(dir), logger.Nop())
	taskService := services.NewTaskService(workspaces)
	noteService := services.NewNoteService(workspaces)
	suggestService := services.NewSuggestService(noteService, suggester)

	authHandler := NewAuthHandler(authService, workspaces)
	rt := &Router{
		Auth:  authHandler,
		Tasks: NewTaskHandler(taskService),
		Notes: NewNoteHandler(noteService, suggestService),
		Pages: NewPageHandler(authHandler, taskService, noteService),
	}

	r := gin.New()
	r.SetHTMLTemplate(web.MustTemplates())
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	rt.RegisterRoutes(r)

	return &testEnv{
		router:      r,
		dataDir:     dir,
		authService: authService,
		workspaces:  workspaces,
		tasks:       taskService,
		notes:       noteService,
		cookies:     map[string]*http.Cookie{},
	}
}

// do sends a request carrying the cookies collected so far and remembers
// any cookies set by the response.
func (e *testEnv) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	for _, c := range e.cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		e.cookies[c.Name] = c
	}
	return w
}

func (e *testEnv) doJSON(t *testing.T, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return e.do(t, req)
}

func (e *testEnv) doForm(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(t, req)
}

func (e *testEnv) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	return e.do(t, httptest.NewRequest(http.MethodGet, path, nil))
}

// signIn registers username and logs in through the JSON API.
func (e *testEnv) signIn(t *testing.T, username string) {
	t.Helper()

	_, err := e.authService.Register(services.RegisterInput{Username: username, Password: "password"})
	require.NoError(t, err)

	w := e.doJSON(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": username,
		"password": "password",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
