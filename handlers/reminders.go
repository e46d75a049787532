package handlers

import (
	"net/http"

	"omninote-api/pkg/events"
	"omninote-api/pkg/notify"
	"omninote-api/repository"
	"omninote-api/types"

	"github.com/gin-gonic/gin"
)

// RemindersHandler serves the reminders list. Reminders are inert records;
// nothing in the service fires them.
type RemindersHandler struct {
	store    *repository.Store
	notifier notify.Notifier
}

func NewRemindersHandler(store *repository.Store, notifier notify.Notifier) *RemindersHandler {
	return &RemindersHandler{store: store, notifier: notifier}
}

func (h *RemindersHandler) publish(eventType, id string) {
	if h.notifier != nil {
		h.notifier.Publish(events.EntityChanged{Type: eventType, ID: id})
	}
}

func (h *RemindersHandler) CreateReminder(c *gin.Context) {
	var req types.CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeInvalidRequest, "invalid request body"))
		return
	}
	if req.Message == "" {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "message is required"))
		return
	}
	if !types.ValidTimeOfDay(req.Time) {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "time must be zero-padded HH:MM"))
		return
	}
	if req.Frequency != "" && !req.Frequency.Valid() {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "unknown frequency"))
		return
	}

	rem, err := h.store.CreateReminder(req.Message, req.Time, req.Recurring, req.Frequency)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	h.publish(events.ReminderCreated, rem.ID)
	c.JSON(http.StatusCreated, types.NewSuccessResponse(rem))
}

func (h *RemindersHandler) GetReminders(c *gin.Context) {
	reminders := h.store.ListReminders()
	c.JSON(http.StatusOK, types.NewSuccessResponse(gin.H{
		"reminders": reminders,
		"total":     len(reminders),
	}))
}

// ToggleReminder flips the enabled flag. Disabled reminders remain listed.
func (h *RemindersHandler) ToggleReminder(c *gin.Context) {
	rem, err := h.store.ToggleReminder(c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	h.publish(events.ReminderUpdated, rem.ID)
	c.JSON(http.StatusOK, types.NewSuccessResponse(rem))
}

func (h *RemindersHandler) DeleteReminder(c *gin.Context) {
	id := c.Param("id")
	if err := h.store.DeleteReminder(id); err != nil {
		respondStoreError(c, err)
		return
	}
	h.publish(events.ReminderDeleted, id)
	c.Status(http.StatusNoContent)
}
