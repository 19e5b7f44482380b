package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/BuzzLyutic/task-comments-api/internal/model"
	"github.com/BuzzLyutic/task-comments-api/internal/repo/schema"
)

// OpenSQLite opens a SQLite database at dsn with foreign keys enforced and
// the schema applied.
func OpenSQLite(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// PRAGMAs are per connection; a single connection keeps them in effect
	// and also keeps ":memory:" databases from splitting per connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	for _, pragma := range []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema.SQLite); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply sqlite schema: %w", err)
	}
	return db, nil
}

type SQLiteTaskRepo struct {
	db *sql.DB
}

func NewSQLiteTaskRepo(db *sql.DB) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: db}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, title string) (model.Task, error) {
	var t model.Task
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO task (title) VALUES (?) RETURNING id, title`,
		title,
	).Scan(&t.ID, &t.Title)
	return t, err
}

func (r *SQLiteTaskRepo) Get(ctx context.Context, id int64) (model.Task, error) {
	var t model.Task
	err := r.db.QueryRowContext(ctx, `SELECT id, title FROM task WHERE id = ?`, id).Scan(&t.ID, &t.Title)
	if errors.Is(err, sql.ErrNoRows) {
		return t, ErrorNotFound
	}
	return t, err
}

func (r *SQLiteTaskRepo) List(ctx context.Context) ([]model.Task, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title FROM task ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.Title); err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *SQLiteTaskRepo) UpdateTitle(ctx context.Context, id int64, title string) (model.Task, error) {
	var t model.Task
	err := r.db.QueryRowContext(ctx,
		`UPDATE task SET title = ? WHERE id = ? RETURNING id, title`,
		title, id,
	).Scan(&t.ID, &t.Title)
	if errors.Is(err, sql.ErrNoRows) {
		return t, ErrorNotFound
	}
	return t, err
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM comment WHERE task_id = ?`, id); err != nil {
		return fmt.Errorf("delete comments of task %d: %w", id, err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM task WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrorNotFound
	}
	return tx.Commit()
}

func (r *SQLiteTaskRepo) Seed(ctx context.Context, t model.Task) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO task (id, title) VALUES (?, ?) ON CONFLICT (id) DO NOTHING`,
		t.ID, t.Title,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type SQLiteCommentRepo struct {
	db *sql.DB
}

func NewSQLiteCommentRepo(db *sql.DB) *SQLiteCommentRepo {
	return &SQLiteCommentRepo{db: db}
}

func (r *SQLiteCommentRepo) Create(ctx context.Context, c model.Comment) (model.Comment, error) {
	var createdAt string
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO comment (content, created_at, task_id) VALUES (?, ?, ?)
		 RETURNING id, content, created_at, task_id`,
		c.Content, formatTime(c.CreatedAt), c.TaskID,
	).Scan(&c.ID, &c.Content, &createdAt, &c.TaskID)
	if err != nil {
		return c, r.mapError(err)
	}
	c.CreatedAt, err = parseTime(createdAt)
	return c, err
}

func (r *SQLiteCommentRepo) Get(ctx context.Context, id int64) (model.Comment, error) {
	c, err := scanComment(r.db.QueryRowContext(ctx,
		`SELECT id, content, created_at, task_id FROM comment WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return c, ErrorNotFound
	}
	return c, err
}

func (r *SQLiteCommentRepo) ListByTask(ctx context.Context, taskID int64) ([]model.Comment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, content, created_at, task_id FROM comment WHERE task_id = ? ORDER BY id`,
		taskID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying comments for task: %w", err)
	}
	defer rows.Close()

	comments := make([]model.Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning comment row: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *SQLiteCommentRepo) UpdateContent(ctx context.Context, id int64, content string) (model.Comment, error) {
	c, err := scanComment(r.db.QueryRowContext(ctx,
		`UPDATE comment SET content = ? WHERE id = ? RETURNING id, content, created_at, task_id`,
		content, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return c, ErrorNotFound
	}
	return c, err
}

func (r *SQLiteCommentRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comment WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrorNotFound
	}
	return nil
}

func (r *SQLiteCommentRepo) mapError(err error) error {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY {
		return ErrorInvalidReference
	}
	if strings.Contains(strings.ToLower(err.Error()), "foreign key constraint failed") {
		return ErrorInvalidReference
	}
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanComment(row rowScanner) (model.Comment, error) {
	var (
		c         model.Comment
		createdAt string
	)
	if err := row.Scan(&c.ID, &c.Content, &createdAt, &c.TaskID); err != nil {
		return c, err
	}
	t, err := parseTime(createdAt)
	if err != nil {
		return c, err
	}
	c.CreatedAt = t
	return c, nil
}

// Timestamps are stored as RFC 3339 text in UTC.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse created_at %q: %w", s, err)
	}
	return t.UTC(), nil
}

var (
	_ TaskRepository    = (*SQLiteTaskRepo)(nil)
	_ CommentRepository = (*SQLiteCommentRepo)(nil)
)
