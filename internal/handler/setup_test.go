package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-comments-api/internal/model"
	"github.com/BuzzLyutic/task-comments-api/internal/repo"
	"github.com/BuzzLyutic/task-comments-api/internal/service"
	"github.com/BuzzLyutic/task-comments-api/internal/testutil"
)

func setupRouter(t *testing.T) (http.Handler, *repo.Store) {
	t.Helper()

	store := repo.NewSQLiteStore(testutil.SetupSQLite(t))
	logger := zap.NewNop()

	router := NewRouter(RouterDeps{
		Tasks:    NewTaskHandler(service.NewTaskService(store.Tasks), logger),
		Comments: NewCommentHandler(service.NewCommentService(store.Tasks, store.Comments), logger),
		DB:       store,
		Logger:   logger,
	})
	return router, store
}

func do(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v), "body: %s", w.Body.String())
	return v
}

func createTask(t *testing.T, h http.Handler, title string) model.Task {
	t.Helper()

	w := do(t, h, http.MethodPost, "/api/tasks", map[string]string{"title": title})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[model.Task](t, w)
}

func createComment(t *testing.T, h http.Handler, taskID int64, content string) model.Comment {
	t.Helper()

	w := do(t, h, http.MethodPost, fmt.Sprintf("/api/tasks/%d/comments", taskID), map[string]string{"content": content})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[model.Comment](t, w)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
