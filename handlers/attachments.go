package handlers

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"omninote-api/gemini"
	"omninote-api/initializers"
	"omninote-api/pkg/events"
	"omninote-api/pkg/notify"
	"omninote-api/repository"
	"omninote-api/types"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

// AttachmentsHandler is the ingest boundary for captured images. Payloads are
// sniffed and checked against the upload policy before any note mutation, so a
// rejected capture leaves the note untouched.
type AttachmentsHandler struct {
	store    *repository.Store
	ai       gemini.Service
	notifier notify.Notifier
}

func NewAttachmentsHandler(store *repository.Store, ai gemini.Service, notifier notify.Notifier) *AttachmentsHandler {
	return &AttachmentsHandler{store: store, ai: ai, notifier: notifier}
}

func (h *AttachmentsHandler) publish(eventType, id string) {
	if h.notifier != nil {
		h.notifier.Publish(events.EntityChanged{Type: eventType, ID: id})
	}
}

// AppendImages appends one or more images to a note. Two request shapes are
// accepted: multipart form files under "files" (the file picker path), and a
// JSON body of data URLs (the camera and screen capture paths, where the
// browser already encoded the frame). Every payload is validated before the
// first one is stored; one bad payload rejects the whole batch.
func (h *AttachmentsHandler) AppendImages(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.store.GetNote(id); err != nil {
		respondStoreError(c, err)
		return
	}

	var payloads []string
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeInvalidRequest, "invalid multipart form"))
			return
		}
		payloads, err = h.collectMultipartImages(form.File["files"], form.File["file"])
		if err != nil {
			c.JSON(http.StatusUnsupportedMediaType, types.NewErrorResponse(types.ErrorCodeUnsupportedMedia, err.Error()))
			return
		}
	} else {
		var req types.AppendImagesRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeInvalidRequest, "invalid request body"))
			return
		}
		if err := checkImagePayloads(req.Images); err != nil {
			c.JSON(http.StatusUnsupportedMediaType, types.NewErrorResponse(types.ErrorCodeUnsupportedMedia, err.Error()))
			return
		}
		payloads = req.Images
	}
	if len(payloads) == 0 {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "no images in request"))
		return
	}

	note, err := h.store.AddImages(id, payloads)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	h.publish(events.NoteUpdated, id)
	c.JSON(http.StatusOK, types.NewSuccessResponse(note))
}

func (h *AttachmentsHandler) collectMultipartImages(files, fallback []*multipart.FileHeader) ([]string, error) {
	if len(files) == 0 {
		files = fallback
	}

	var payloads []string
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("cannot open %q: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(io.LimitReader(f, initializers.Conf.MaxSize+1))
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("cannot read %q: %w", fh.Filename, err)
		}
		mt := mimetype.Detect(data)
		if err := initializers.CheckImageAllowed(int64(len(data)), mt.String()); err != nil {
			return nil, err
		}
		payloads = append(payloads, "data:"+mt.String()+";base64,"+base64.StdEncoding.EncodeToString(data))
	}
	return payloads, nil
}

// checkImagePayloads validates every already-encoded payload against the
// upload policy. One bad payload rejects the whole batch.
func checkImagePayloads(payloads []string) error {
	for _, payload := range payloads {
		data, err := decodeDataURL(payload)
		if err != nil {
			return err
		}
		mt := mimetype.Detect(data)
		if err := initializers.CheckImageAllowed(int64(len(data)), mt.String()); err != nil {
			return err
		}
	}
	return nil
}

// RemoveImage removes the image at the given position from the note.
func (h *AttachmentsHandler) RemoveImage(c *gin.Context) {
	id := c.Param("id")
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "image index must be an integer"))
		return
	}
	note, err := h.store.RemoveImage(id, index)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	h.publish(events.NoteUpdated, id)
	c.JSON(http.StatusOK, types.NewSuccessResponse(note))
}

// ExtractText asks the model to transcribe the text visible in one stored
// image and appends the result to the note as a delimited block.
func (h *AttachmentsHandler) ExtractText(c *gin.Context) {
	id := c.Param("id")
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "image index must be an integer"))
		return
	}
	payload, err := h.store.ImageAt(id, index)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	text, err := h.ai.ExtractTextFromImage(c.Request.Context(), payload)
	if err != nil {
		c.JSON(http.StatusBadGateway, types.NewErrorResponse(types.ErrorCodeAIRequestFailed, "Failed to extract text from image."))
		return
	}

	note, err := h.store.AppendToContent(id, "**AI Extracted Text:**\n"+text)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	h.publish(events.NoteUpdated, id)
	c.JSON(http.StatusOK, types.NewSuccessResponse(note))
}

// decodeDataURL decodes a data URL or bare base64 payload into raw bytes.
func decodeDataURL(payload string) ([]byte, error) {
	raw := payload
	if strings.HasPrefix(payload, "data:") {
		_, after, found := strings.Cut(payload, ",")
		if !found {
			return nil, fmt.Errorf("malformed data URL")
		}
		raw = after
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(raw)
	}
	if err != nil {
		return nil, fmt.Errorf("payload is not valid base64")
	}
	return data, nil
}
