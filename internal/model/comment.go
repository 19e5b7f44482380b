package model

import "time"

type Comment struct {
	ID        int64     `json:"id"`
	TaskID    int64     `json:"-"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type CommentInput struct {
	Content *string `json:"content"`
}
