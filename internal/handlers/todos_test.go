package handlers_test

import (
	"net/http"
	"testing"

	"github.com/samir9187/todolist-backend/internal/dto"
)

// TestTodoLifecycle walks the happy path end to end: register, log in,
// create a todo, see it in the active list, complete it, and find it in
// the completed list with a completion timestamp.
func TestTodoLifecycle(t *testing.T) {
	env := newTestEnv(t)
	auth := env.register(t, "flow@example.com", "secret123")
	token := auth.Token

	todo := env.createTodo(t, token, "write report", "quarterly numbers")
	if todo.IsCompleted || todo.CompletedOn != nil {
		t.Fatalf("new todo should be active: %+v", todo)
	}

	// Active list contains exactly the new todo.
	resp := env.doJSON(t, http.MethodGet, "/api/todos", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list active: expected 200, got %d", resp.StatusCode)
	}
	active := decodeBody[[]dto.TodoResponse](t, resp)
	if len(active) != 1 || active[0].ID != todo.ID {
		t.Fatalf("expected [%s] active, got %+v", todo.ID, active)
	}

	// Complete it.
	resp = env.doJSON(t, http.MethodPut, "/api/todos/complete/"+todo.ID, token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("mark complete: expected 200, got %d", resp.StatusCode)
	}
	done := decodeBody[dto.TodoResponse](t, resp)
	if !done.IsCompleted || done.CompletedOn == nil {
		t.Fatalf("completed todo missing completion state: %+v", done)
	}

	// Active list is now empty.
	resp = env.doJSON(t, http.MethodGet, "/api/todos", token, nil)
	active = decodeBody[[]dto.TodoResponse](t, resp)
	if len(active) != 0 {
		t.Fatalf("expected empty active list, got %+v", active)
	}

	// The completed list (keyed by the caller's own user id) has it.
	resp = env.doJSON(t, http.MethodGet, "/api/todos/complete/"+auth.User.ID, token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list completed: expected 200, got %d", resp.StatusCode)
	}
	completed := decodeBody[[]dto.TodoResponse](t, resp)
	if len(completed) != 1 || completed[0].ID != todo.ID {
		t.Fatalf("expected [%s] completed, got %+v", todo.ID, completed)
	}

	// A completed todo can also be fetched individually by its own id.
	resp = env.doJSON(t, http.MethodGet, "/api/todos/complete/"+todo.ID, token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get completed: expected 200, got %d", resp.StatusCode)
	}
	single := decodeBody[dto.TodoResponse](t, resp)
	if single.ID != todo.ID || !single.IsCompleted {
		t.Fatalf("unexpected completed todo: %+v", single)
	}
}

func TestCreateTodo_Validation(t *testing.T) {
	env := newTestEnv(t)
	auth := env.register(t, "val@example.com", "secret123")

	tests := []struct {
		name string
		req  dto.CreateTodoRequest
	}{
		{"missing title", dto.CreateTodoRequest{Description: "d"}},
		{"missing description", dto.CreateTodoRequest{Title: "t"}},
		{"whitespace title", dto.CreateTodoRequest{Title: "   ", Description: "d"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := env.doJSON(t, http.MethodPost, "/api/todos", auth.Token, tt.req)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", resp.StatusCode)
			}
		})
	}
}

func TestUpdateTodo(t *testing.T) {
	env := newTestEnv(t)
	auth := env.register(t, "upd@example.com", "secret123")
	todo := env.createTodo(t, auth.Token, "draft", "first pass")

	resp := env.doJSON(t, http.MethodPut, "/api/todos/"+todo.ID, auth.Token,
		dto.UpdateTodoRequest{Title: "final", Description: "second pass", IsCompleted: true})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: expected 200, got %d", resp.StatusCode)
	}
	updated := decodeBody[dto.TodoResponse](t, resp)
	if updated.Title != "final" || updated.Description != "second pass" {
		t.Fatalf("unexpected content after update: %+v", updated)
	}
	if !updated.IsCompleted || updated.CompletedOn == nil {
		t.Fatalf("completing via update must stamp completedOn: %+v", updated)
	}

	// Reopening clears the completion timestamp.
	resp = env.doJSON(t, http.MethodPut, "/api/todos/"+todo.ID, auth.Token,
		dto.UpdateTodoRequest{Title: "final", Description: "second pass", IsCompleted: false})
	reopened := decodeBody[dto.TodoResponse](t, resp)
	if reopened.IsCompleted || reopened.CompletedOn != nil {
		t.Fatalf("reopening must clear completedOn: %+v", reopened)
	}
}

func TestUpdateTodo_Validation(t *testing.T) {
	env := newTestEnv(t)
	auth := env.register(t, "updval@example.com", "secret123")
	todo := env.createTodo(t, auth.Token, "keep", "me")

	resp := env.doJSON(t, http.MethodPut, "/api/todos/"+todo.ID, auth.Token,
		dto.UpdateTodoRequest{Title: "", Description: "", IsCompleted: false})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestDeleteTodo(t *testing.T) {
	env := newTestEnv(t)
	auth := env.register(t, "del@example.com", "secret123")
	todo := env.createTodo(t, auth.Token, "temp", "to delete")

	resp := env.doJSON(t, http.MethodDelete, "/api/todos/"+todo.ID, auth.Token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", resp.StatusCode)
	}
	deleted := decodeBody[dto.TodoResponse](t, resp)
	if deleted.ID != todo.ID {
		t.Fatalf("expected deleted todo %s, got %s", todo.ID, deleted.ID)
	}

	// Deleting the same todo again is a 404.
	resp = env.doJSON(t, http.MethodDelete, "/api/todos/"+todo.ID, auth.Token, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", resp.StatusCode)
	}
}

func TestTodos_NotFoundAndBadID(t *testing.T) {
	env := newTestEnv(t)
	auth := env.register(t, "nf@example.com", "secret123")

	resp := env.doJSON(t, http.MethodGet, "/api/todos/4b4f3f1e-9f6e-4a8e-8f0f-0000000000aa", auth.Token, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown id: expected 404, got %d", resp.StatusCode)
	}

	resp = env.doJSON(t, http.MethodGet, "/api/todos/not-a-uuid", auth.Token, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("malformed id: expected 400, got %d", resp.StatusCode)
	}
}

func TestTodos_RequireAuth(t *testing.T) {
	env := newTestEnv(t)

	resp := env.doJSON(t, http.MethodGet, "/api/todos", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", resp.StatusCode)
	}
}

// TestTodos_OwnerIsolation verifies that one user's todos are invisible
// and immutable to another user, and that listing another user's
// completed todos is refused.
func TestTodos_OwnerIsolation(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice@example.com", "secret123")
	bob := env.register(t, "bob@example.com", "secret123")

	todo := env.createTodo(t, alice.Token, "private", "alice's business")

	if resp := env.doJSON(t, http.MethodGet, "/api/todos/"+todo.ID, bob.Token, nil); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("foreign get: expected 404, got %d", resp.StatusCode)
	}
	if resp := env.doJSON(t, http.MethodPut, "/api/todos/"+todo.ID, bob.Token,
		dto.UpdateTodoRequest{Title: "hijack", Description: "x", IsCompleted: true}); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("foreign update: expected 404, got %d", resp.StatusCode)
	}
	if resp := env.doJSON(t, http.MethodPut, "/api/todos/complete/"+todo.ID, bob.Token, nil); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("foreign complete: expected 404, got %d", resp.StatusCode)
	}
	if resp := env.doJSON(t, http.MethodDelete, "/api/todos/"+todo.ID, bob.Token, nil); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("foreign delete: expected 404, got %d", resp.StatusCode)
	}

	// Bob cannot read Alice's completed list by passing her user id.
	env.doJSON(t, http.MethodPut, "/api/todos/complete/"+todo.ID, alice.Token, nil)
	resp := env.doJSON(t, http.MethodGet, "/api/todos/complete/"+alice.User.ID, bob.Token, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("foreign completed list: expected 404, got %d", resp.StatusCode)
	}

	// Alice still sees her todo, untouched except for the completion.
	resp = env.doJSON(t, http.MethodGet, "/api/todos/"+todo.ID, alice.Token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("owner get: expected 200, got %d", resp.StatusCode)
	}
	got := decodeBody[dto.TodoResponse](t, resp)
	if got.Title != "private" {
		t.Fatalf("todo was modified by a foreign caller: %+v", got)
	}
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/healthz", "/livez", "/readyz"} {
		resp := env.doJSON(t, http.MethodGet, path, "", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, resp.StatusCode)
		}
	}
}
