package handlers

import (
	"net/http"

	"omninote-api/gemini"
	"omninote-api/models"
	"omninote-api/pkg/events"
	"omninote-api/pkg/notify"
	"omninote-api/repository"
	"omninote-api/types"

	"github.com/gin-gonic/gin"
)

// NotesHandler serves the notes collection, the note selection and the
// text-producing AI operations that merge back into a note.
type NotesHandler struct {
	store    *repository.Store
	ai       gemini.Service
	notifier notify.Notifier
}

func NewNotesHandler(store *repository.Store, ai gemini.Service, notifier notify.Notifier) *NotesHandler {
	return &NotesHandler{store: store, ai: ai, notifier: notifier}
}

func (h *NotesHandler) publish(eventType, id string) {
	if h.notifier != nil {
		h.notifier.Publish(events.EntityChanged{Type: eventType, ID: id})
	}
}

// CreateNote creates a default note, puts it first and selects it.
func (h *NotesHandler) CreateNote(c *gin.Context) {
	note, err := h.store.CreateNote()
	if err != nil {
		respondStoreError(c, err)
		return
	}
	h.publish(events.NoteCreated, note.ID)
	c.JSON(http.StatusCreated, types.NewSuccessResponse(note))
}

// GetNotes returns the filtered, sorted note view along with the tag universe.
// Query params: search, tag, priority, sortBy ("updated" default, or "title").
func (h *NotesHandler) GetNotes(c *gin.Context) {
	q := repository.NoteQuery{
		Search: c.Query("search"),
		Tag:    c.Query("tag"),
		SortBy: c.DefaultQuery("sortBy", "updated"),
	}
	if p := c.Query("priority"); p != "" {
		pr := models.Priority(p)
		if !pr.Valid() {
			c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "unknown priority"))
			return
		}
		q.Priority = pr
	}
	if q.SortBy != "updated" && q.SortBy != "title" {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "sortBy must be \"updated\" or \"title\""))
		return
	}

	notes := h.store.ListNotes(q)
	c.JSON(http.StatusOK, types.NewSuccessResponse(gin.H{
		"notes": notes,
		"total": len(notes),
		"tags":  h.store.AllTags(),
	}))
}

func (h *NotesHandler) GetNote(c *gin.Context) {
	note, err := h.store.GetNote(c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(note))
}

// UpdateNote merges the given fields into the note. The merge itself is
// permissive; only the priority value is checked when present.
func (h *NotesHandler) UpdateNote(c *gin.Context) {
	var req types.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeInvalidRequest, "invalid request body"))
		return
	}
	if req.Priority != nil && !req.Priority.Valid() {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "unknown priority"))
		return
	}

	note, err := h.store.UpdateNote(c.Param("id"), repository.NoteUpdate{
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
		Priority: req.Priority,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	h.publish(events.NoteUpdated, note.ID)
	c.JSON(http.StatusOK, types.NewSuccessResponse(note))
}

func (h *NotesHandler) DeleteNote(c *gin.Context) {
	id := c.Param("id")
	if err := h.store.DeleteNote(id); err != nil {
		respondStoreError(c, err)
		return
	}
	h.publish(events.NoteDeleted, id)
	c.Status(http.StatusNoContent)
}

// ShareNote returns the note's stable share id, assigning one on first use.
// Repeat shares do not mutate the note and emit no change event.
func (h *NotesHandler) ShareNote(c *gin.Context) {
	id := c.Param("id")
	sharedID, assigned, err := h.store.ShareNote(id)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if assigned {
		h.publish(events.NoteUpdated, id)
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(gin.H{
		"sharedId": sharedID,
		"url":      "/#/share/" + sharedID,
	}))
}

// Summarize asks the model for a concise summary of the note content and
// appends it to the note as a delimited AI Summary block. Notes with no
// content are rejected before any model call is made.
func (h *NotesHandler) Summarize(c *gin.Context) {
	id := c.Param("id")
	note, err := h.store.GetNote(id)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if note.Content == "" {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "note has no content to summarize"))
		return
	}

	summary, err := h.ai.SummarizeNote(c.Request.Context(), note.Content)
	if err != nil {
		c.JSON(http.StatusBadGateway, types.NewErrorResponse(types.ErrorCodeAIRequestFailed, "Failed to get summary. Please try again."))
		return
	}

	// Appended against the content as it is now, so a user edit that landed
	// while the model call was in flight stays in the note.
	updated, err := h.store.AppendToContent(id, "**AI Summary:**\n"+summary)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	h.publish(events.NoteUpdated, id)
	c.JSON(http.StatusOK, types.NewSuccessResponse(updated))
}

// GetSelection returns the currently selected note id, null when none.
func (h *NotesHandler) GetSelection(c *gin.Context) {
	var noteID interface{}
	if id := h.store.Selected(); id != "" {
		noteID = id
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(gin.H{"noteId": noteID}))
}

// SetSelection sets or clears the selected note. A null or absent noteId
// clears the selection.
func (h *NotesHandler) SetSelection(c *gin.Context) {
	var req types.SetSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeInvalidRequest, "invalid request body"))
		return
	}
	id := ""
	if req.NoteID != nil {
		id = *req.NoteID
	}
	if err := h.store.Select(id); err != nil {
		respondStoreError(c, err)
		return
	}
	var noteID interface{}
	if id != "" {
		noteID = id
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(gin.H{"noteId": noteID}))
}

// AddBrainDumpItem appends a fresh empty item to the note's brain dump.
func (h *NotesHandler) AddBrainDumpItem(c *gin.Context) {
	id := c.Param("id")
	note, err := h.store.AddBrainDumpItem(id)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	h.publish(events.NoteUpdated, id)
	c.JSON(http.StatusCreated, types.NewSuccessResponse(note))
}

func (h *NotesHandler) UpdateBrainDumpItem(c *gin.Context) {
	var req types.UpdateBrainDumpItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeInvalidRequest, "invalid request body"))
		return
	}
	if req.Priority != nil && !req.Priority.Valid() {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "unknown priority"))
		return
	}

	id := c.Param("id")
	note, err := h.store.UpdateBrainDumpItem(id, c.Param("itemId"), repository.BrainDumpUpdate{
		Text:         req.Text,
		Priority:     req.Priority,
		ReminderDate: req.ReminderDate,
		ReminderTime: req.ReminderTime,
		Completed:    req.Completed,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	h.publish(events.NoteUpdated, id)
	c.JSON(http.StatusOK, types.NewSuccessResponse(note))
}

func (h *NotesHandler) RemoveBrainDumpItem(c *gin.Context) {
	id := c.Param("id")
	note, err := h.store.RemoveBrainDumpItem(id, c.Param("itemId"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	h.publish(events.NoteUpdated, id)
	c.JSON(http.StatusOK, types.NewSuccessResponse(note))
}
