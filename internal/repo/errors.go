package repo

import "errors"

var (
	ErrorNotFound = errors.New("not found")
	// ErrorInvalidReference is returned when a row points at a parent that does not exist.
	ErrorInvalidReference = errors.New("invalid reference")
)
