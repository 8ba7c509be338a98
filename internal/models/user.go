package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. Users are immutable after
// registration apart from the password hash, which the reset flow may
// replace.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Hidden from JSON responses
	DisplayName  *string   `json:"displayName" db:"display_name"`
	AvatarURL    *string   `json:"avatarUrl" db:"avatar_url"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}
