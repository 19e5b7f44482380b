package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/task-comments-api/internal/model"
	"github.com/BuzzLyutic/task-comments-api/internal/repo/schema"
)

const pgForeignKeyViolation = "23503"

// EnsurePostgresSchema creates the task and comment tables if they are missing.
func EnsurePostgresSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema.Postgres); err != nil {
		return fmt.Errorf("apply postgres schema: %w", err)
	}
	return nil
}

type TaskRepo struct { // Репозиторий задач поверх PostgreSQL
	pool *pgxpool.Pool
}

func NewTaskRepo(pool *pgxpool.Pool) *TaskRepo {
	return &TaskRepo{pool: pool}
}

func (r *TaskRepo) Create(ctx context.Context, title string) (model.Task, error) {
	var t model.Task
	err := r.pool.QueryRow(ctx, `
		INSERT INTO task (title)
		VALUES ($1)
		RETURNING id, title
	`, title).Scan(&t.ID, &t.Title)
	return t, err
}

func (r *TaskRepo) Get(ctx context.Context, id int64) (model.Task, error) {
	var t model.Task
	err := r.pool.QueryRow(ctx, `SELECT id, title FROM task WHERE id = $1`, id).Scan(&t.ID, &t.Title)
	if errors.Is(err, pgx.ErrNoRows) {
		return t, ErrorNotFound
	}
	return t, err
}

func (r *TaskRepo) List(ctx context.Context) ([]model.Task, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, title FROM task ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.Title); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepo) UpdateTitle(ctx context.Context, id int64, title string) (model.Task, error) {
	var t model.Task
	err := r.pool.QueryRow(ctx, `
		UPDATE task
		SET title = $2
		WHERE id = $1
		RETURNING id, title
	`, id, title).Scan(&t.ID, &t.Title)
	if errors.Is(err, pgx.ErrNoRows) {
		return t, ErrorNotFound
	}
	return t, err
}

func (r *TaskRepo) Delete(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM comment WHERE task_id = $1", id); err != nil {
		return fmt.Errorf("delete comments of task %d: %w", id, err)
	}
	cmd, err := tx.Exec(ctx, "DELETE FROM task WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return tx.Commit(ctx)
}

func (r *TaskRepo) Seed(ctx context.Context, t model.Task) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `
		INSERT INTO task (id, title) VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING
	`, t.ID, t.Title)
	if err != nil {
		return false, err
	}
	// Explicit ids bypass the identity sequence, so move it past the highest id.
	if _, err := tx.Exec(ctx, `
		SELECT setval(pg_get_serial_sequence('task', 'id'), (SELECT MAX(id) FROM task))
	`); err != nil {
		return false, fmt.Errorf("advance task id sequence: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

type CommentRepo struct { // Репозиторий комментариев поверх PostgreSQL
	pool *pgxpool.Pool
}

func NewCommentRepo(pool *pgxpool.Pool) *CommentRepo {
	return &CommentRepo{pool: pool}
}

func (r *CommentRepo) Create(ctx context.Context, c model.Comment) (model.Comment, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO comment (content, created_at, task_id)
		VALUES ($1, $2, $3)
		RETURNING id, content, created_at, task_id
	`, c.Content, c.CreatedAt, c.TaskID).Scan(&c.ID, &c.Content, &c.CreatedAt, &c.TaskID)
	c.CreatedAt = c.CreatedAt.UTC()
	return c, r.mapError(err)
}

func (r *CommentRepo) Get(ctx context.Context, id int64) (model.Comment, error) {
	var c model.Comment
	err := r.pool.QueryRow(ctx, `
		SELECT id, content, created_at, task_id
		FROM comment
		WHERE id = $1
	`, id).Scan(&c.ID, &c.Content, &c.CreatedAt, &c.TaskID)
	if errors.Is(err, pgx.ErrNoRows) {
		return c, ErrorNotFound
	}
	c.CreatedAt = c.CreatedAt.UTC()
	return c, err
}

func (r *CommentRepo) ListByTask(ctx context.Context, taskID int64) ([]model.Comment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, content, created_at, task_id
		FROM comment
		WHERE task_id = $1
		ORDER BY id
	`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]model.Comment, 0)
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.Content, &c.CreatedAt, &c.TaskID); err != nil {
			return nil, err
		}
		c.CreatedAt = c.CreatedAt.UTC()
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *CommentRepo) UpdateContent(ctx context.Context, id int64, content string) (model.Comment, error) {
	var c model.Comment
	err := r.pool.QueryRow(ctx, `
		UPDATE comment
		SET content = $2
		WHERE id = $1
		RETURNING id, content, created_at, task_id
	`, id, content).Scan(&c.ID, &c.Content, &c.CreatedAt, &c.TaskID)
	if errors.Is(err, pgx.ErrNoRows) {
		return c, ErrorNotFound
	}
	c.CreatedAt = c.CreatedAt.UTC()
	return c, err
}

func (r *CommentRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM comment WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}

func (r *CommentRepo) mapError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return ErrorInvalidReference
	}
	return err
}

var (
	_ TaskRepository    = (*TaskRepo)(nil)
	_ CommentRepository = (*CommentRepo)(nil)
)
