package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	// UserIDContextKey carries the authenticated user's id.
	UserIDContextKey contextKey = "user_id"
	// EmailContextKey carries the authenticated user's email.
	EmailContextKey contextKey = "email"
)

// WithUserID returns a context carrying the authenticated user's identity.
func WithUserID(ctx context.Context, userID uuid.UUID, email string) context.Context {
	ctx = context.WithValue(ctx, UserIDContextKey, userID)
	return context.WithValue(ctx, EmailContextKey, email)
}

// GetUserIDFromContext extracts the authenticated user id set by the auth
// middleware.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(UserIDContextKey).(uuid.UUID)
	return id, ok
}

// GetEmailFromContext extracts the authenticated user's email.
func GetEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(EmailContextKey).(string)
	return email, ok
}
