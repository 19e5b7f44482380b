package handler

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-comments-api/internal/model"
	"github.com/BuzzLyutic/task-comments-api/internal/service"
	"github.com/BuzzLyutic/task-comments-api/pkg/respond"
)

type taskUpdatedResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
	Title   string `json:"title"`
}

type TaskHandler struct {
	service *service.TaskService
	logger  *zap.Logger
}

func NewTaskHandler(srv *service.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		service: srv,
		logger:  logger,
	}
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.service.List(r.Context())
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, tasks)
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.TaskInput
	if err := decodeBody(r, &req); err != nil {
		handleErrors(w, r, h.logger, fmt.Errorf("decode task body: %w", err))
		return
	}

	task, err := h.service.Create(r.Context(), req)
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/tasks/%d", task.ID))
	respond.JSON(w, r, http.StatusCreated, task)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respond.Error(w, r, http.StatusNotFound, msgTaskNotFound)
		return
	}

	var req model.TaskInput
	if err := decodeBody(r, &req); err != nil {
		handleErrors(w, r, h.logger, fmt.Errorf("decode task body: %w", err))
		return
	}

	task, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, taskUpdatedResponse{
		Message: "Task updated",
		ID:      task.ID,
		Title:   task.Title,
	})
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respond.Error(w, r, http.StatusNotFound, msgTaskNotFound)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}

	respond.NoContent(w, r)
}
