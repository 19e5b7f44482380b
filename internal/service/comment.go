package service

import (
	"context"
	"errors"
	"time"

	"github.com/BuzzLyutic/task-comments-api/internal/model"
	"github.com/BuzzLyutic/task-comments-api/internal/repo"
)

const (
	msgMissingCommentContent = "Missing comment content"
	msgMissingUpdateContent  = "Missing update content"
)

type CommentService struct {
	tasks    repo.TaskRepository
	comments repo.CommentRepository
	now      func() time.Time
}

func NewCommentService(tasks repo.TaskRepository, comments repo.CommentRepository) *CommentService {
	return &CommentService{
		tasks:    tasks,
		comments: comments,
		now:      time.Now,
	}
}

// Create attaches a new comment to the task. created_at is always set here.
func (s *CommentService) Create(ctx context.Context, taskID int64, in model.CommentInput) (model.Comment, error) {
	if _, err := s.tasks.Get(ctx, taskID); err != nil {
		return model.Comment{}, notFound(err, ErrTaskNotFound)
	}

	content, ok := required(in.Content)
	if !ok {
		return model.Comment{}, &ValidationError{Field: "content", Message: msgMissingCommentContent}
	}

	c, err := s.comments.Create(ctx, model.Comment{
		TaskID:    taskID,
		Content:   content,
		CreatedAt: s.now().UTC().Truncate(time.Microsecond),
	})
	if errors.Is(err, repo.ErrorInvalidReference) {
		// задачу удалили между проверкой и вставкой
		return c, ErrTaskNotFound
	}
	return c, err
}

func (s *CommentService) ListByTask(ctx context.Context, taskID int64) ([]model.Comment, error) {
	if _, err := s.tasks.Get(ctx, taskID); err != nil {
		return nil, notFound(err, ErrTaskNotFound)
	}
	return s.comments.ListByTask(ctx, taskID)
}

func (s *CommentService) Update(ctx context.Context, id int64, in model.CommentInput) (model.Comment, error) {
	content, ok := required(in.Content)
	if !ok {
		if _, err := s.comments.Get(ctx, id); err != nil {
			return model.Comment{}, notFound(err, ErrCommentNotFound)
		}
		return model.Comment{}, &ValidationError{Field: "content", Message: msgMissingUpdateContent}
	}

	c, err := s.comments.UpdateContent(ctx, id, content)
	if err != nil {
		return c, notFound(err, ErrCommentNotFound)
	}
	return c, nil
}

func (s *CommentService) Delete(ctx context.Context, id int64) error {
	return notFound(s.comments.Delete(ctx, id), ErrCommentNotFound)
}
