package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/samir9187/todolist-backend/internal/models"
	"github.com/samir9187/todolist-backend/internal/store"
)

// UserStore implements store.UserStore on Postgres.
type UserStore struct {
	pool *pgxpool.Pool
}

func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	// Check for an existing account first so the common case reports a
	// clean duplicate instead of a constraint error.
	var existingID uuid.UUID
	err := s.pool.QueryRow(ctx,
		`SELECT id FROM users WHERE email = $1`, user.Email).Scan(&existingID)
	if err == nil {
		return store.ErrDuplicateEmail
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("check existing user: %w", err)
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err = s.pool.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, display_name, avatar_url, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID, user.Email, user.PasswordHash, user.DisplayName, user.AvatarURL, now, now)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.scanUser(s.pool.QueryRow(ctx,
		`SELECT id, email, password_hash, display_name, avatar_url, created_at, updated_at
		 FROM users WHERE id = $1`, id))
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.scanUser(s.pool.QueryRow(ctx,
		`SELECT id, email, password_hash, display_name, avatar_url, created_at, updated_at
		 FROM users WHERE email = $1`, email))
}

func (s *UserStore) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`,
		passwordHash, time.Now(), id)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *UserStore) scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.AvatarURL, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &u, nil
}
