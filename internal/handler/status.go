package handler

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-comments-api/pkg/respond"
)

const homeMessage = "Task API is running! Access the API at /api/tasks"

// Pinger is satisfied by the storage handle.
type Pinger interface {
	Ping(ctx context.Context) error
}

func Home(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, r, http.StatusOK, map[string]string{"message": homeMessage})
}

// Health reports whether storage answers a ping.
func Health(db Pinger, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			logger.Warn("health check failed", zap.Error(err))
			respond.JSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		respond.JSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	}
}
