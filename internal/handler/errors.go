package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-comments-api/internal/service"
	"github.com/BuzzLyutic/task-comments-api/pkg/respond"
)

const (
	msgTaskNotFound    = "Task not found"
	msgCommentNotFound = "Comment not found"
	msgInternal        = "Internal server error"
)

// handleErrors maps service errors onto status codes and {"message": ...} bodies.
func handleErrors(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		respond.Error(w, r, http.StatusBadRequest, ve.Message)
	case errors.Is(err, service.ErrTaskNotFound):
		respond.Error(w, r, http.StatusNotFound, msgTaskNotFound)
	case errors.Is(err, service.ErrCommentNotFound):
		respond.Error(w, r, http.StatusNotFound, msgCommentNotFound)
	default:
		logger.Error("internal error",
			zap.Error(err),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
		respond.Error(w, r, http.StatusInternalServerError, msgInternal)
	}
}

// decodeBody reads a JSON object into dst. An empty body leaves dst untouched
// so that required fields are reported as missing.
func decodeBody(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// pathID reads the {id} URL parameter. ok is false when it is not a positive integer.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
