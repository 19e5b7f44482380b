package repo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/task-comments-api/internal/config"
)

// Store bundles the repositories of one storage backend with its lifecycle.
type Store struct {
	Tasks    TaskRepository
	Comments CommentRepository

	ping  func(ctx context.Context) error
	close func()
}

// Open connects to the backend selected by cfg, applies the schema and
// returns ready repositories.
func Open(ctx context.Context, cfg config.Config) (*Store, error) {
	switch cfg.Driver() {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg)
	default:
		db, err := OpenSQLite(ctx, cfg.SQLiteDSN())
		if err != nil {
			return nil, err
		}
		return NewSQLiteStore(db), nil
	}
}

func openPostgres(ctx context.Context, cfg config.Config) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := EnsurePostgresSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return NewPostgresStore(pool), nil
}

func NewPostgresStore(pool *pgxpool.Pool) *Store {
	return &Store{
		Tasks:    NewTaskRepo(pool),
		Comments: NewCommentRepo(pool),
		ping:     pool.Ping,
		close:    pool.Close,
	}
}

func NewSQLiteStore(db *sql.DB) *Store {
	return &Store{
		Tasks:    NewSQLiteTaskRepo(db),
		Comments: NewSQLiteCommentRepo(db),
		ping:     db.PingContext,
		close:    func() { _ = db.Close() },
	}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

func (s *Store) Close() {
	s.close()
}
