package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/samir9187/todolist-backend/internal/models"
	"github.com/samir9187/todolist-backend/internal/store"
)

const verificationColumns = `id, user_id, email, code, expires_at, used, created_at`

// VerificationStore implements store.VerificationStore on SQLite.
type VerificationStore struct {
	db *sql.DB
}

func (s *VerificationStore) Create(ctx context.Context, v *models.Verification) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	v.CreatedAt = time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO auth_verifications (id, user_id, email, code, expires_at, used, created_at)
		 VALUES (?, ?, ?, ?, ?, FALSE, ?)`,
		v.ID.String(), v.UserID.String(), v.Email, v.Code, v.ExpiresAt, v.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert verification: %w", err)
	}
	return nil
}

func (s *VerificationStore) LatestValid(ctx context.Context, userID uuid.UUID) (*models.Verification, error) {
	return scanVerificationRow(s.db.QueryRowContext(ctx,
		`SELECT `+verificationColumns+` FROM auth_verifications
		 WHERE user_id = ? AND used = FALSE AND expires_at > ?
		 ORDER BY created_at DESC LIMIT 1`, userID.String(), time.Now().UTC()))
}

func (s *VerificationStore) Latest(ctx context.Context, userID uuid.UUID, email string) (*models.Verification, error) {
	return scanVerificationRow(s.db.QueryRowContext(ctx,
		`SELECT `+verificationColumns+` FROM auth_verifications
		 WHERE user_id = ? AND email = ?
		 ORDER BY created_at DESC LIMIT 1`, userID.String(), email))
}

func (s *VerificationStore) LatestByCode(ctx context.Context, userID uuid.UUID, email, code string) (*models.Verification, error) {
	return scanVerificationRow(s.db.QueryRowContext(ctx,
		`SELECT `+verificationColumns+` FROM auth_verifications
		 WHERE user_id = ? AND email = ? AND code = ?
		 ORDER BY created_at DESC LIMIT 1`, userID.String(), email, code))
}

func (s *VerificationStore) MarkUsed(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE auth_verifications SET used = TRUE WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("mark verification used: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func scanVerificationRow(row *sql.Row) (*models.Verification, error) {
	var (
		v          models.Verification
		id, userID string
	)
	err := row.Scan(&id, &userID, &v.Email, &v.Code, &v.ExpiresAt, &v.Used, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("scan verification: %w", err)
	}
	if v.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parse verification id: %w", err)
	}
	if v.UserID, err = uuid.Parse(userID); err != nil {
		return nil, fmt.Errorf("parse verification user id: %w", err)
	}
	return &v, nil
}
