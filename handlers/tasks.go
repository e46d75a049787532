package handlers

import (
	"net/http"

	"omninote-api/pkg/events"
	"omninote-api/pkg/notify"
	"omninote-api/repository"
	"omninote-api/types"

	"github.com/gin-gonic/gin"
)

// TasksHandler serves today's timebox schedule.
type TasksHandler struct {
	store    *repository.Store
	notifier notify.Notifier
}

func NewTasksHandler(store *repository.Store, notifier notify.Notifier) *TasksHandler {
	return &TasksHandler{store: store, notifier: notifier}
}

func (h *TasksHandler) publish(eventType, id string) {
	if h.notifier != nil {
		h.notifier.Publish(events.EntityChanged{Type: eventType, ID: id})
	}
}

// CreateTask schedules a block for today. Both time bounds must be zero-padded
// "HH:MM"; the schedule sort depends on that format.
func (h *TasksHandler) CreateTask(c *gin.Context) {
	var req types.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeInvalidRequest, "invalid request body"))
		return
	}
	if req.Title == "" {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "title is required"))
		return
	}
	if req.Priority != "" && !req.Priority.Valid() {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "unknown priority"))
		return
	}
	if !types.ValidTimeOfDay(req.StartTime) || !types.ValidTimeOfDay(req.EndTime) {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "startTime and endTime must be zero-padded HH:MM"))
		return
	}

	task, err := h.store.CreateTask(req.Title, req.Priority, req.StartTime, req.EndTime)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	h.publish(events.TaskCreated, task.ID)
	c.JSON(http.StatusCreated, types.NewSuccessResponse(task))
}

// GetTasks returns today's schedule ordered by start time.
func (h *TasksHandler) GetTasks(c *gin.Context) {
	tasks := h.store.ListTasks()
	c.JSON(http.StatusOK, types.NewSuccessResponse(gin.H{
		"tasks": tasks,
		"total": len(tasks),
	}))
}

func (h *TasksHandler) UpdateTask(c *gin.Context) {
	var req types.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeInvalidRequest, "invalid request body"))
		return
	}
	if req.Priority != nil && !req.Priority.Valid() {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "unknown priority"))
		return
	}
	if req.StartTime != nil && !types.ValidTimeOfDay(*req.StartTime) {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "startTime must be zero-padded HH:MM"))
		return
	}
	if req.EndTime != nil && !types.ValidTimeOfDay(*req.EndTime) {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "endTime must be zero-padded HH:MM"))
		return
	}

	task, err := h.store.UpdateTask(c.Param("id"), repository.TaskUpdate{
		Title:     req.Title,
		Priority:  req.Priority,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Completed: req.Completed,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	h.publish(events.TaskUpdated, task.ID)
	c.JSON(http.StatusOK, types.NewSuccessResponse(task))
}

// ToggleTask flips the completed flag.
func (h *TasksHandler) ToggleTask(c *gin.Context) {
	task, err := h.store.ToggleTask(c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	h.publish(events.TaskUpdated, task.ID)
	c.JSON(http.StatusOK, types.NewSuccessResponse(task))
}

func (h *TasksHandler) DeleteTask(c *gin.Context) {
	id := c.Param("id")
	if err := h.store.DeleteTask(id); err != nil {
		respondStoreError(c, err)
		return
	}
	h.publish(events.TaskDeleted, id)
	c.Status(http.StatusNoContent)
}
