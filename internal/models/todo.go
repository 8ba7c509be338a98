package models

import (
	"time"

	"github.com/google/uuid"
)

// Todo is a single todo item owned by exactly one user.
//
// CompletedOn is non-nil if and only if IsCompleted is true; every write
// path in the store layer maintains that pairing.
type Todo struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	IsCompleted bool       `json:"isCompleted" db:"is_completed"`
	CompletedOn *time.Time `json:"completedOn" db:"completed_on"`
	UserID      uuid.UUID  `json:"userId" db:"user_id"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}
