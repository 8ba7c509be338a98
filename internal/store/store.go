// Package store defines the persistence interfaces the HTTP handlers are
// written against. Two backends implement them: postgres (pgx) for
// deployments and sqlite (modernc) for local development and tests.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/samir9187/todolist-backend/internal/models"
)

var (
	// ErrNotFound is returned when a record does not exist or is not
	// owned by the requesting user. The two cases are deliberately
	// indistinguishable.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail is returned when registering an email that is
	// already taken.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserStore persists user accounts.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// TodoStore persists todo items. Every lookup and mutation is scoped to the
// owning user; a todo belonging to someone else behaves exactly like a
// missing one.
type TodoStore interface {
	Create(ctx context.Context, todo *models.Todo) error
	ListActive(ctx context.Context, userID uuid.UUID) ([]models.Todo, error)
	ListCompleted(ctx context.Context, userID uuid.UUID) ([]models.Todo, error)
	Get(ctx context.Context, id, userID uuid.UUID) (*models.Todo, error)
	GetCompleted(ctx context.Context, id, userID uuid.UUID) (*models.Todo, error)
	// Update replaces title, description and the completion flag in one
	// statement. CompletedOn is set to now when isCompleted is true and
	// cleared otherwise. Returns the updated row.
	Update(ctx context.Context, id, userID uuid.UUID, title, description string, isCompleted bool) (*models.Todo, error)
	// MarkComplete sets isCompleted and stamps CompletedOn. Returns the
	// updated row.
	MarkComplete(ctx context.Context, id, userID uuid.UUID) (*models.Todo, error)
	// Delete hard-deletes the todo and returns the deleted row.
	Delete(ctx context.Context, id, userID uuid.UUID) (*models.Todo, error)
}

// VerificationStore persists password-reset codes.
type VerificationStore interface {
	Create(ctx context.Context, v *models.Verification) error
	// LatestValid returns the newest unused, unexpired code for the user,
	// or ErrNotFound.
	LatestValid(ctx context.Context, userID uuid.UUID) (*models.Verification, error)
	// Latest returns the newest code for the user and email regardless of
	// state, or ErrNotFound.
	Latest(ctx context.Context, userID uuid.UUID, email string) (*models.Verification, error)
	// LatestByCode returns the newest record matching user, email and
	// code, or ErrNotFound.
	LatestByCode(ctx context.Context, userID uuid.UUID, email, code string) (*models.Verification, error)
	MarkUsed(ctx context.Context, id uuid.UUID) error
}

// Store aggregates the per-collection stores behind one connection.
type Store interface {
	Users() UserStore
	Todos() TodoStore
	Verifications() VerificationStore
	Ping(ctx context.Context) error
	Close()
}
