// Package postgres implements the store interfaces on a pgx connection pool.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/samir9187/todolist-backend/internal/config"
	"github.com/samir9187/todolist-backend/internal/store"
)

// Store wraps a pgx pool and hands out the per-collection stores.
type Store struct {
	pool *pgxpool.Pool
}

// New connects to Postgres with the simple query protocol (PgBouncer
// compatible), a per-statement timeout and bounded pool sizing, and
// ensures the schema exists.
func New(ctx context.Context, cfg *config.Config) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	poolCfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	poolCfg.ConnConfig.RuntimeParams["application_name"] = "todolist-backend"
	poolCfg.ConnConfig.RuntimeParams["statement_timeout"] = fmt.Sprintf("%d", cfg.Database.QueryTimeout.Milliseconds())
	poolCfg.MaxConns = cfg.Database.MaxConns
	poolCfg.MinConns = cfg.Database.MinConns
	poolCfg.MaxConnLifetime = cfg.Database.MaxLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			display_name TEXT,
			avatar_url TEXT,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS todos (
			id UUID PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			is_completed BOOLEAN NOT NULL DEFAULT FALSE,
			completed_on TIMESTAMPTZ,
			user_id UUID NOT NULL REFERENCES users(id),
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_todos_user_completed ON todos (user_id, is_completed)`,
		`CREATE TABLE IF NOT EXISTS auth_verifications (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id),
			email TEXT NOT NULL,
			code TEXT NOT NULL,
			expires_at TIMESTAMPTZ NOT NULL,
			used BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL
		)`,
	}
	for _, stmt := range ddl {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Users() store.UserStore                 { return &UserStore{pool: s.pool} }
func (s *Store) Todos() store.TodoStore                 { return &TodoStore{pool: s.pool} }
func (s *Store) Verifications() store.VerificationStore { return &VerificationStore{pool: s.pool} }

func (s *Store) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

func (s *Store) Close() { s.pool.Close() }
