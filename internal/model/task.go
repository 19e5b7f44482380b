package model

type Task struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// TaskInput is the body accepted by task create and update.
// A nil field means the key was absent or null.
type TaskInput struct {
	Title *string `json:"title"`
}
