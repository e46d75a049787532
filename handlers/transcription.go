package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"omninote-api/gemini"
	"omninote-api/initializers"
	"omninote-api/models"
	"omninote-api/pkg/events"
	"omninote-api/pkg/notify"
	"omninote-api/repository"
	"omninote-api/types"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

// TranscriptionHandler runs the meeting audio pipeline: ingest a recording,
// send it through the model, and materialize the structured result as a new
// tagged note. Nothing is stored when the model call fails.
type TranscriptionHandler struct {
	store    *repository.Store
	ai       gemini.Service
	notifier notify.Notifier
}

func NewTranscriptionHandler(store *repository.Store, ai gemini.Service, notifier notify.Notifier) *TranscriptionHandler {
	return &TranscriptionHandler{store: store, ai: ai, notifier: notifier}
}

// Create accepts a recording as a multipart file under "file" (the upload
// path) or as base64 JSON (the in-browser recorder path), validates it against
// the upload policy, and creates the meeting note.
func (h *TranscriptionHandler) Create(c *gin.Context) {
	var (
		data  []byte
		title string
	)

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		fh, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeInvalidRequest, "missing audio file"))
			return
		}
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeInvalidRequest, fmt.Sprintf("cannot open %q", fh.Filename)))
			return
		}
		data, err = io.ReadAll(io.LimitReader(f, initializers.Conf.MaxSize+1))
		f.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeInvalidRequest, fmt.Sprintf("cannot read %q", fh.Filename)))
			return
		}
		title = "Upload: " + fh.Filename
	} else {
		var req types.TranscribeRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Audio == "" {
			c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeInvalidRequest, "missing audio payload"))
			return
		}
		var err error
		data, err = decodeDataURL(req.Audio)
		if err != nil {
			c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeInvalidRequest, err.Error()))
			return
		}
		title = "Meeting: " + time.Now().Format("2006-01-02 15:04")
	}

	mt := mimetype.Detect(data)
	if err := initializers.CheckAudioAllowed(int64(len(data)), mt.String()); err != nil {
		c.JSON(http.StatusUnsupportedMediaType, types.NewErrorResponse(types.ErrorCodeUnsupportedMedia, err.Error()))
		return
	}

	result, err := h.ai.ProcessMeetingAudio(c.Request.Context(), data, mt.String())
	if err != nil {
		c.JSON(http.StatusBadGateway, types.NewErrorResponse(types.ErrorCodeAIRequestFailed, "Transcription failed. Please check the console and try again."))
		return
	}

	note, err := h.store.InsertNote(models.Note{
		Title:           title,
		Content:         result.Minutes + "\n\n---\n**Full Transcript:**\n" + result.Transcript,
		Tags:            []string{"AI-Transcription", "Meeting"},
		Priority:        models.PriorityMedium,
		Images:          []string{},
		IsMeetingMinute: true,
		ActionItems:     result.ActionItems,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if h.notifier != nil {
		h.notifier.Publish(events.EntityChanged{Type: events.NoteCreated, ID: note.ID})
	}
	c.JSON(http.StatusCreated, types.NewSuccessResponse(note))
}
