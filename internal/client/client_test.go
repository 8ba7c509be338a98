package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/samir9187/todolist-backend/internal/client"
	"github.com/samir9187/todolist-backend/internal/config"
	"github.com/samir9187/todolist-backend/internal/handlers"
	"github.com/samir9187/todolist-backend/internal/routes"
	"github.com/samir9187/todolist-backend/internal/store/sqlite"
)

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()

	st, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(st.Close)

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:         "test-secret",
			AccessTokenTTL: time.Hour,
			ResetTokenTTL:  10 * time.Minute,
		},
	}
	h := routes.Handlers{
		Auth:           handlers.NewAuthHandler(st, cfg).WithBcryptCost(bcrypt.MinCost),
		Todos:          handlers.NewTodosHandler(st, cfg),
		Health:         handlers.NewHealthHandler(st),
		ForgotPassword: handlers.NewForgotPasswordHandler(st, cfg),
	}
	srv := httptest.NewServer(routes.SetupRoutes(h, cfg))
	t.Cleanup(srv.Close)
	return srv
}

func newLoggedInClient(t *testing.T, srv *httptest.Server, email string) *client.Client {
	t.Helper()
	ctx := context.Background()

	c := client.New(srv.URL)
	if _, err := c.Register(ctx, email, "secret123"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := c.Login(ctx, email, "secret123"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if c.UserID() == "" {
		t.Fatal("expected UserID after login")
	}
	return c
}

func TestClient_Lifecycle(t *testing.T) {
	srv := newBackend(t)
	c := newLoggedInClient(t, srv, "client@example.com")
	ctx := context.Background()

	todo, err := c.CreateTodo(ctx, "buy milk", "two liters")
	if err != nil {
		t.Fatalf("CreateTodo: %v", err)
	}

	active := c.Active()
	if len(active) != 1 || active[0].ID != todo.ID {
		t.Fatalf("expected active view [%s], got %+v", todo.ID, active)
	}
	if len(c.Completed()) != 0 {
		t.Fatal("expected empty completed view")
	}

	done, err := c.MarkComplete(ctx, todo.ID)
	if err != nil {
		t.Fatalf("MarkComplete: %v", err)
	}
	if !done.IsCompleted || done.CompletedOn == nil {
		t.Fatalf("expected completion state, got %+v", done)
	}

	if len(c.Active()) != 0 {
		t.Fatal("expected empty active view after completion")
	}
	completed := c.Completed()
	if len(completed) != 1 || completed[0].ID != todo.ID {
		t.Fatalf("expected completed view [%s], got %+v", todo.ID, completed)
	}

	if _, err := c.DeleteTodo(ctx, todo.ID); err != nil {
		t.Fatalf("DeleteTodo: %v", err)
	}
	if len(c.Active()) != 0 || len(c.Completed()) != 0 {
		t.Fatal("expected both views empty after delete")
	}
}

func TestClient_UpdateTodo(t *testing.T) {
	srv := newBackend(t)
	c := newLoggedInClient(t, srv, "update@example.com")
	ctx := context.Background()

	todo, err := c.CreateTodo(ctx, "draft", "first pass")
	if err != nil {
		t.Fatalf("CreateTodo: %v", err)
	}

	updated, err := c.UpdateTodo(ctx, todo.ID, "final", "second pass", true)
	if err != nil {
		t.Fatalf("UpdateTodo: %v", err)
	}
	if updated.Title != "final" || !updated.IsCompleted {
		t.Fatalf("unexpected todo after update: %+v", updated)
	}
	if len(c.Completed()) != 1 {
		t.Fatalf("expected the updated todo in the completed view, got %+v", c.Completed())
	}
}

func TestClient_Filter(t *testing.T) {
	srv := newBackend(t)
	c := newLoggedInClient(t, srv, "filter@example.com")
	ctx := context.Background()

	if _, err := c.CreateTodo(ctx, "Buy milk", "from the corner shop"); err != nil {
		t.Fatalf("CreateTodo: %v", err)
	}
	if _, err := c.CreateTodo(ctx, "Write report", "quarterly numbers"); err != nil {
		t.Fatalf("CreateTodo: %v", err)
	}

	// Case-insensitive, matches title or description.
	if got := c.FilterActive("MILK"); len(got) != 1 || got[0].Title != "Buy milk" {
		t.Fatalf("FilterActive(MILK) = %+v", got)
	}
	if got := c.FilterActive("quarterly"); len(got) != 1 || got[0].Title != "Write report" {
		t.Fatalf("FilterActive(quarterly) = %+v", got)
	}
	if got := c.FilterActive(""); len(got) != 2 {
		t.Fatalf("empty filter should return everything, got %+v", got)
	}
	if got := c.FilterActive("no such text"); len(got) != 0 {
		t.Fatalf("expected no matches, got %+v", got)
	}
}

func TestClient_APIError(t *testing.T) {
	srv := newBackend(t)
	c := newLoggedInClient(t, srv, "err@example.com")
	ctx := context.Background()

	_, err := c.Todo(ctx, "4b4f3f1e-9f6e-4a8e-8f0f-0000000000aa")
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", apiErr.StatusCode)
	}
	if apiErr.Response.Error == "" {
		t.Fatal("expected a decoded error body")
	}
}

func TestClient_Unauthenticated(t *testing.T) {
	srv := newBackend(t)
	c := client.New(srv.URL)

	_, err := c.CreateTodo(context.Background(), "nope", "no token")
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", apiErr.StatusCode)
	}
}
