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

const todoColumns = `id, title, description, is_completed, completed_on, user_id, created_at, updated_at`

// TodoStore implements store.TodoStore on SQLite. database/sql has no
// RETURNING support worth relying on across drivers, so mutations run the
// write and re-read the row; with a single connection that pairing is not
// interleaved with other writers.
type TodoStore struct {
	db *sql.DB
}

func (s *TodoStore) Create(ctx context.Context, todo *models.Todo) error {
	if todo.ID == uuid.Nil {
		todo.ID = uuid.New()
	}
	now := time.Now().UTC()
	todo.IsCompleted = false
	todo.CompletedOn = nil
	todo.CreatedAt = now
	todo.UpdatedAt = now

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO todos (id, title, description, is_completed, completed_on, user_id, created_at, updated_at)
		 VALUES (?, ?, ?, FALSE, NULL, ?, ?, ?)`,
		todo.ID.String(), todo.Title, todo.Description, todo.UserID.String(), now, now)
	if err != nil {
		return fmt.Errorf("insert todo: %w", err)
	}
	return nil
}

func (s *TodoStore) ListActive(ctx context.Context, userID uuid.UUID) ([]models.Todo, error) {
	return s.list(ctx,
		`SELECT `+todoColumns+` FROM todos
		 WHERE user_id = ? AND is_completed = FALSE
		 ORDER BY created_at`, userID)
}

func (s *TodoStore) ListCompleted(ctx context.Context, userID uuid.UUID) ([]models.Todo, error) {
	return s.list(ctx,
		`SELECT `+todoColumns+` FROM todos
		 WHERE user_id = ? AND is_completed = TRUE
		 ORDER BY created_at`, userID)
}

func (s *TodoStore) Get(ctx context.Context, id, userID uuid.UUID) (*models.Todo, error) {
	return scanTodoRow(s.db.QueryRowContext(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE id = ? AND user_id = ?`,
		id.String(), userID.String()))
}

func (s *TodoStore) GetCompleted(ctx context.Context, id, userID uuid.UUID) (*models.Todo, error) {
	return scanTodoRow(s.db.QueryRowContext(ctx,
		`SELECT `+todoColumns+` FROM todos
		 WHERE id = ? AND user_id = ? AND is_completed = TRUE`,
		id.String(), userID.String()))
}

func (s *TodoStore) Update(ctx context.Context, id, userID uuid.UUID, title, description string, isCompleted bool) (*models.Todo, error) {
	now := time.Now().UTC()
	var completedOn any
	if isCompleted {
		completedOn = now
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE todos
		 SET title = ?, description = ?, is_completed = ?, completed_on = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		title, description, isCompleted, completedOn, now, id.String(), userID.String())
	if err != nil {
		return nil, fmt.Errorf("update todo: %w", err)
	}
	if err := requireRow(res); err != nil {
		return nil, err
	}
	return s.Get(ctx, id, userID)
}

func (s *TodoStore) MarkComplete(ctx context.Context, id, userID uuid.UUID) (*models.Todo, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`UPDATE todos
		 SET is_completed = TRUE, completed_on = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		now, now, id.String(), userID.String())
	if err != nil {
		return nil, fmt.Errorf("mark todo complete: %w", err)
	}
	if err := requireRow(res); err != nil {
		return nil, err
	}
	return s.Get(ctx, id, userID)
}

func (s *TodoStore) Delete(ctx context.Context, id, userID uuid.UUID) (*models.Todo, error) {
	todo, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM todos WHERE id = ? AND user_id = ?`,
		id.String(), userID.String())
	if err != nil {
		return nil, fmt.Errorf("delete todo: %w", err)
	}
	if err := requireRow(res); err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *TodoStore) list(ctx context.Context, query string, userID uuid.UUID) ([]models.Todo, error) {
	rows, err := s.db.QueryContext(ctx, query, userID.String())
	if err != nil {
		return nil, fmt.Errorf("query todos: %w", err)
	}
	defer rows.Close()

	todos := make([]models.Todo, 0)
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, *todo)
	}
	return todos, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(row rowScanner) (*models.Todo, error) {
	var (
		t           models.Todo
		id, userID  string
		completedOn sql.NullTime
	)
	err := row.Scan(&id, &t.Title, &t.Description, &t.IsCompleted, &completedOn,
		&userID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("scan todo: %w", err)
	}
	if t.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parse todo id: %w", err)
	}
	if t.UserID, err = uuid.Parse(userID); err != nil {
		return nil, fmt.Errorf("parse todo owner id: %w", err)
	}
	if completedOn.Valid {
		t.CompletedOn = &completedOn.Time
	}
	return &t, nil
}

func scanTodoRow(row *sql.Row) (*models.Todo, error) {
	todo, err := scanTodo(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return todo, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
