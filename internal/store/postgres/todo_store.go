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

const todoColumns = `id, title, description, is_completed, completed_on, user_id, created_at, updated_at`

// TodoStore implements store.TodoStore on Postgres. Every mutation is a
// single statement with RETURNING, so concurrent writers degrade to
// last-write-wins without partial updates.
type TodoStore struct {
	pool *pgxpool.Pool
}

func (s *TodoStore) Create(ctx context.Context, todo *models.Todo) error {
	if todo.ID == uuid.Nil {
		todo.ID = uuid.New()
	}
	now := time.Now()
	todo.IsCompleted = false
	todo.CompletedOn = nil
	todo.CreatedAt = now
	todo.UpdatedAt = now

	_, err := s.pool.Exec(ctx,
		`INSERT INTO todos (id, title, description, is_completed, completed_on, user_id, created_at, updated_at)
		 VALUES ($1, $2, $3, FALSE, NULL, $4, $5, $6)`,
		todo.ID, todo.Title, todo.Description, todo.UserID, now, now)
	if err != nil {
		return fmt.Errorf("insert todo: %w", err)
	}
	return nil
}

func (s *TodoStore) ListActive(ctx context.Context, userID uuid.UUID) ([]models.Todo, error) {
	return s.list(ctx,
		`SELECT `+todoColumns+` FROM todos
		 WHERE user_id = $1 AND is_completed = FALSE
		 ORDER BY created_at`, userID)
}

func (s *TodoStore) ListCompleted(ctx context.Context, userID uuid.UUID) ([]models.Todo, error) {
	return s.list(ctx,
		`SELECT `+todoColumns+` FROM todos
		 WHERE user_id = $1 AND is_completed = TRUE
		 ORDER BY created_at`, userID)
}

func (s *TodoStore) Get(ctx context.Context, id, userID uuid.UUID) (*models.Todo, error) {
	return scanTodo(s.pool.QueryRow(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE id = $1 AND user_id = $2`,
		id, userID))
}

func (s *TodoStore) GetCompleted(ctx context.Context, id, userID uuid.UUID) (*models.Todo, error) {
	return scanTodo(s.pool.QueryRow(ctx,
		`SELECT `+todoColumns+` FROM todos
		 WHERE id = $1 AND user_id = $2 AND is_completed = TRUE`,
		id, userID))
}

func (s *TodoStore) Update(ctx context.Context, id, userID uuid.UUID, title, description string, isCompleted bool) (*models.Todo, error) {
	now := time.Now()
	var completedOn *time.Time
	if isCompleted {
		completedOn = &now
	}
	return scanTodo(s.pool.QueryRow(ctx,
		`UPDATE todos
		 SET title = $1, description = $2, is_completed = $3, completed_on = $4, updated_at = $5
		 WHERE id = $6 AND user_id = $7
		 RETURNING `+todoColumns,
		title, description, isCompleted, completedOn, now, id, userID))
}

func (s *TodoStore) MarkComplete(ctx context.Context, id, userID uuid.UUID) (*models.Todo, error) {
	now := time.Now()
	return scanTodo(s.pool.QueryRow(ctx,
		`UPDATE todos
		 SET is_completed = TRUE, completed_on = $1, updated_at = $1
		 WHERE id = $2 AND user_id = $3
		 RETURNING `+todoColumns,
		now, id, userID))
}

func (s *TodoStore) Delete(ctx context.Context, id, userID uuid.UUID) (*models.Todo, error) {
	return scanTodo(s.pool.QueryRow(ctx,
		`DELETE FROM todos WHERE id = $1 AND user_id = $2 RETURNING `+todoColumns,
		id, userID))
}

func (s *TodoStore) list(ctx context.Context, query string, userID uuid.UUID) ([]models.Todo, error) {
	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query todos: %w", err)
	}
	defer rows.Close()

	todos := make([]models.Todo, 0)
	for rows.Next() {
		var t models.Todo
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.IsCompleted, &t.CompletedOn,
			&t.UserID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

func scanTodo(row pgx.Row) (*models.Todo, error) {
	var t models.Todo
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.IsCompleted, &t.CompletedOn,
		&t.UserID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("scan todo: %w", err)
	}
	return &t, nil
}
