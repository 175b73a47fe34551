package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/smart-todo/internal/dto"
	apierrors "github.com/yukikurage/smart-todo/internal/errors"
	"github.com/yukikurage/smart-todo/internal/middleware"
	"github.com/yukikurage/smart-todo/internal/services"
)

// NoteHandler serves the notes endpoints.
type NoteHandler struct {
	noteService    *services.NoteService
	suggestService *services.SuggestService
}

// NewNoteHandler creates a new NoteHandler. suggestService may be nil.
func NewNoteHandler(noteService *services.NoteService, suggestService *services.SuggestService) *NoteHandler {
	return &NoteHandler{
		noteService:    noteService,
		suggestService: suggestService,
	}
}

type updateNoteRequest struct {
	Title   string `json:"title" form:"title"`
	Content string `json:"content" form:"content"`
}

// ListNotes returns the current user's notes.
func (h *NoteHandler) ListNotes(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	notes, err := h.noteService.ListNotes(c.Request.Context(), username)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NoteListResponse{Notes: dto.ToNoteDTOs(notes)})
}

// CreateNote appends a placeholder note.
func (h *NoteHandler) CreateNote(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	note, err := h.noteService.AddNote(c.Request.Context(), username)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToNoteDTO(*note))
}

// UpdateNote replaces a note's title and content.
func (h *NoteHandler) UpdateNote(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req updateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	id, err := resolveID(c, username, h.noteService.NoteIDAt)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	note, err := h.noteService.UpdateNote(c.Request.Context(), username, id, services.UpdateNoteInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToNoteDTO(*note))
}

// DeleteNote removes a note.
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, err := resolveID(c, username, h.noteService.NoteIDAt)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := h.noteService.DeleteNote(c.Request.Context(), username, id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Note deleted successfully"})
}

// SuggestTasks proposes tasks from a note's content. Nothing is stored.
func (h *NoteHandler) SuggestTasks(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if !h.suggestService.Enabled() {
		apierrors.ServiceUnavailable(c, "AI service is not configured")
		return
	}

	id, err := resolveID(c, username, h.noteService.NoteIDAt)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	suggestions, err := h.suggestService.SuggestFromNote(c.Request.Context(), username, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": dto.ToSuggestedTaskDTOs(suggestions)})
}
