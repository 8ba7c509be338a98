package dto

// CreateTodoRequest represents the request payload for creating a todo
type CreateTodoRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// UpdateTodoRequest represents the request payload for updating a todo.
// This is a full replace: all three fields are written on every update.
type UpdateTodoRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	IsCompleted bool   `json:"isCompleted"`
}

// TodoResponse represents a todo item in API responses
type TodoResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	IsCompleted bool    `json:"isCompleted"`
	CompletedOn *string `json:"completedOn"`
	UserID      string  `json:"userId"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}
