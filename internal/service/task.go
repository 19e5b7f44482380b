package service

import (
	"context"
	"strings"

	"github.com/BuzzLyutic/task-comments-api/internal/model"
	"github.com/BuzzLyutic/task-comments-api/internal/repo"
)

const (
	msgMissingTaskTitle   = "Missing task title"
	msgMissingUpdateTitle = "Missing update content (title)"
)

type TaskService struct {
	repo repo.TaskRepository
}

func NewTaskService(repo repo.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

func (s *TaskService) List(ctx context.Context) ([]model.Task, error) {
	return s.repo.List(ctx)
}

func (s *TaskService) Create(ctx context.Context, in model.TaskInput) (model.Task, error) {
	title, ok := required(in.Title)
	if !ok {
		return model.Task{}, &ValidationError{Field: "title", Message: msgMissingTaskTitle}
	}
	return s.repo.Create(ctx, title)
}

// Update overwrites the title. An unknown id wins over a missing title.
func (s *TaskService) Update(ctx context.Context, id int64, in model.TaskInput) (model.Task, error) {
	title, ok := required(in.Title)
	if !ok {
		if _, err := s.repo.Get(ctx, id); err != nil {
			return model.Task{}, notFound(err, ErrTaskNotFound)
		}
		return model.Task{}, &ValidationError{Field: "title", Message: msgMissingUpdateTitle}
	}

	t, err := s.repo.UpdateTitle(ctx, id, title)
	if err != nil {
		return t, notFound(err, ErrTaskNotFound)
	}
	return t, nil
}

// Delete removes the task and every comment attached to it.
func (s *TaskService) Delete(ctx context.Context, id int64) error {
	return notFound(s.repo.Delete(ctx, id), ErrTaskNotFound)
}

// EnsureSeed creates the task with the given id and title if it is absent.
func (s *TaskService) EnsureSeed(ctx context.Context, id int64, title string) (bool, error) {
	return s.repo.Seed(ctx, model.Task{ID: id, Title: title})
}

// required returns the trimmed-non-empty value of a pointer field.
func required(v *string) (string, bool) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return "", false
	}
	return *v, true
}
