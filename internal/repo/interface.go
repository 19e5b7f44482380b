package repo

import (
	"context"

	"github.com/BuzzLyutic/task-comments-api/internal/model"
)

// TaskRepository определяет интерфейс для работы с задачами
type TaskRepository interface {
	Create(ctx context.Context, title string) (model.Task, error)
	Get(ctx context.Context, id int64) (model.Task, error)
	List(ctx context.Context) ([]model.Task, error)
	UpdateTitle(ctx context.Context, id int64, title string) (model.Task, error)
	// Delete removes the task together with all of its comments in one transaction.
	Delete(ctx context.Context, id int64) error
	// Seed inserts t with its explicit id unless a task with that id exists.
	Seed(ctx context.Context, t model.Task) (bool, error)
}

// CommentRepository определяет интерфейс для работы с комментариями
type CommentRepository interface {
	Create(ctx context.Context, c model.Comment) (model.Comment, error)
	Get(ctx context.Context, id int64) (model.Comment, error)
	ListByTask(ctx context.Context, taskID int64) ([]model.Comment, error)
	UpdateContent(ctx context.Context, id int64, content string) (model.Comment, error)
	Delete(ctx context.Context, id int64) error
}
