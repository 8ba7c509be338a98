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

const verificationColumns = `id, user_id, email, code, expires_at, used, created_at`

// VerificationStore implements store.VerificationStore on Postgres.
type VerificationStore struct {
	pool *pgxpool.Pool
}

func (s *VerificationStore) Create(ctx context.Context, v *models.Verification) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	v.CreatedAt = time.Now()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO auth_verifications (id, user_id, email, code, expires_at, used, created_at)
		 VALUES ($1, $2, $3, $4, $5, FALSE, $6)`,
		v.ID, v.UserID, v.Email, v.Code, v.ExpiresAt, v.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert verification: %w", err)
	}
	return nil
}

func (s *VerificationStore) LatestValid(ctx context.Context, userID uuid.UUID) (*models.Verification, error) {
	return scanVerification(s.pool.QueryRow(ctx,
		`SELECT `+verificationColumns+` FROM auth_verifications
		 WHERE user_id = $1 AND used = FALSE AND expires_at > NOW()
		 ORDER BY created_at DESC LIMIT 1`, userID))
}

func (s *VerificationStore) Latest(ctx context.Context, userID uuid.UUID, email string) (*models.Verification, error) {
	return scanVerification(s.pool.QueryRow(ctx,
		`SELECT `+verificationColumns+` FROM auth_verifications
		 WHERE user_id = $1 AND email = $2
		 ORDER BY created_at DESC LIMIT 1`, userID, email))
}

func (s *VerificationStore) LatestByCode(ctx context.Context, userID uuid.UUID, email, code string) (*models.Verification, error) {
	return scanVerification(s.pool.QueryRow(ctx,
		`SELECT `+verificationColumns+` FROM auth_verifications
		 WHERE user_id = $1 AND email = $2 AND code = $3
		 ORDER BY created_at DESC LIMIT 1`, userID, email, code))
}

func (s *VerificationStore) MarkUsed(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE auth_verifications SET used = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark verification used: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func scanVerification(row pgx.Row) (*models.Verification, error) {
	var v models.Verification
	err := row.Scan(&v.ID, &v.UserID, &v.Email, &v.Code, &v.ExpiresAt, &v.Used, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("scan verification: %w", err)
	}
	return &v, nil
}
