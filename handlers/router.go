package handlers

import (
	"errors"
	"net/http"

	"omninote-api/gemini"
	"omninote-api/middleware"
	"omninote-api/pkg/notify"
	"omninote-api/repository"
	"omninote-api/types"
	"omninote-api/websocket"

	"github.com/gin-gonic/gin"
)

// NewRouter assembles the full HTTP surface. The hub may be nil, in which case
// the change feed endpoint is not registered (tests use this).
func NewRouter(store *repository.Store, ai gemini.Service, notifier notify.Notifier, hub *websocket.Hub) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RateLimitMiddleware())

	r.GET("/health", HealthCheck)
	if hub != nil {
		r.GET("/ws", websocket.ServeWS(hub))
	}

	notesHandler := NewNotesHandler(store, ai, notifier)
	attachmentsHandler := NewAttachmentsHandler(store, ai, notifier)
	transcriptionHandler := NewTranscriptionHandler(store, ai, notifier)
	tasksHandler := NewTasksHandler(store, notifier)
	remindersHandler := NewRemindersHandler(store, notifier)

	r.POST("/notes", notesHandler.CreateNote)
	r.GET("/notes", notesHandler.GetNotes)
	r.GET("/notes/:id", notesHandler.GetNote)
	r.PATCH("/notes/:id", notesHandler.UpdateNote)
	r.DELETE("/notes/:id", notesHandler.DeleteNote)
	r.POST("/notes/:id/share", notesHandler.ShareNote)
	r.POST("/notes/:id/summarize", notesHandler.Summarize)
	r.POST("/notes/:id/braindump", notesHandler.AddBrainDumpItem)
	r.PATCH("/notes/:id/braindump/:itemId", notesHandler.UpdateBrainDumpItem)
	r.DELETE("/notes/:id/braindump/:itemId", notesHandler.RemoveBrainDumpItem)

	r.GET("/selection", notesHandler.GetSelection)
	r.PUT("/selection", notesHandler.SetSelection)

	r.POST("/notes/:id/images", attachmentsHandler.AppendImages)
	r.DELETE("/notes/:id/images/:index", attachmentsHandler.RemoveImage)
	r.POST("/notes/:id/images/:index/extract", attachmentsHandler.ExtractText)

	r.POST("/transcriptions", transcriptionHandler.Create)

	r.POST("/tasks", tasksHandler.CreateTask)
	r.GET("/tasks", tasksHandler.GetTasks)
	r.PATCH("/tasks/:id", tasksHandler.UpdateTask)
	r.PATCH("/tasks/:id/toggle", tasksHandler.ToggleTask)
	r.DELETE("/tasks/:id", tasksHandler.DeleteTask)

	r.POST("/reminders", remindersHandler.CreateReminder)
	r.GET("/reminders", remindersHandler.GetReminders)
	r.PATCH("/reminders/:id/toggle", remindersHandler.ToggleReminder)
	r.DELETE("/reminders/:id", remindersHandler.DeleteReminder)

	return r
}

// respondStoreError maps repository errors onto HTTP status codes.
func respondStoreError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "not found"))
		return
	}
	c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
}
