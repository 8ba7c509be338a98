package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/samir9187/todolist-backend/internal/config"
	"github.com/samir9187/todolist-backend/internal/dto"
	"github.com/samir9187/todolist-backend/internal/handlers"
	"github.com/samir9187/todolist-backend/internal/routes"
	"github.com/samir9187/todolist-backend/internal/store/sqlite"
)

// testEnv runs the full HTTP stack against a throwaway SQLite database.
type testEnv struct {
	srv *httptest.Server
	st  *sqlite.Store
}

func newTestEnv(t *testing.T) *testEnv {
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

	return &testEnv{srv: srv, st: st}
}

// doJSON issues a request with an optional bearer token and JSON body.
func (e *testEnv) doJSON(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req, err := http.NewRequest(method, e.srv.URL+path, &buf)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return out
}

// register creates an account through the API and returns the auth payload.
func (e *testEnv) register(t *testing.T, email, password string) dto.AuthResponse {
	t.Helper()
	resp := e.doJSON(t, http.MethodPost, "/api/auth/register", "",
		dto.RegisterRequest{Email: email, Password: password})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d", email, resp.StatusCode)
	}
	return decodeBody[dto.AuthResponse](t, resp)
}

// createTodo creates a todo through the API.
func (e *testEnv) createTodo(t *testing.T, token, title, description string) dto.TodoResponse {
	t.Helper()
	resp := e.doJSON(t, http.MethodPost, "/api/todos", token,
		dto.CreateTodoRequest{Title: title, Description: description})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create todo %q: expected 201, got %d", title, resp.StatusCode)
	}
	return decodeBody[dto.TodoResponse](t, resp)
}
