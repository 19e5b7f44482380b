package handler

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-comments-api/internal/model"
	"github.com/BuzzLyutic/task-comments-api/internal/service"
	"github.com/BuzzLyutic/task-comments-api/pkg/respond"
)

type commentUpdatedResponse struct {
	Message string `json:"message"`
	Content string `json:"content"`
}

type CommentHandler struct {
	service *service.CommentService
	logger  *zap.Logger
}

func NewCommentHandler(srv *service.CommentService, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{
		service: srv,
		logger:  logger,
	}
}

// Create handles POST /api/tasks/{id}/comments.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathID(r)
	if !ok {
		respond.Error(w, r, http.StatusNotFound, msgTaskNotFound)
		return
	}

	var req model.CommentInput
	if err := decodeBody(r, &req); err != nil {
		handleErrors(w, r, h.logger, fmt.Errorf("decode comment body: %w", err))
		return
	}

	comment, err := h.service.Create(r.Context(), taskID, req)
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusCreated, comment)
}

// List handles GET /api/tasks/{id}/comments.
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathID(r)
	if !ok {
		respond.Error(w, r, http.StatusNotFound, msgTaskNotFound)
		return
	}

	comments, err := h.service.ListByTask(r.Context(), taskID)
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, comments)
}

func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respond.Error(w, r, http.StatusNotFound, msgCommentNotFound)
		return
	}

	var req model.CommentInput
	if err := decodeBody(r, &req); err != nil {
		handleErrors(w, r, h.logger, fmt.Errorf("decode comment body: %w", err))
		return
	}

	comment, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, commentUpdatedResponse{
		Message: "Comment updated",
		Content: comment.Content,
	})
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respond.Error(w, r, http.StatusNotFound, msgCommentNotFound)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}

	respond.NoContent(w, r)
}
