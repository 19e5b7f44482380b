package service

import (
	"errors"
	"fmt"

	"github.com/BuzzLyutic/task-comments-api/internal/repo"
)

var (
	ErrTaskNotFound    = fmt.Errorf("task %w", repo.ErrorNotFound)
	ErrCommentNotFound = fmt.Errorf("comment %w", repo.ErrorNotFound)
)

// ValidationError reports a request body that lacks a required field.
// Message is safe to return to the client.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// notFound swaps a repository not-found error for the entity-specific one.
func notFound(err, target error) error {
	if errors.Is(err, repo.ErrorNotFound) {
		return target
	}
	return err
}
