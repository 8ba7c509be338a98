package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/samir9187/todolist-backend/internal/models"
	"github.com/samir9187/todolist-backend/internal/store"
	"github.com/samir9187/todolist-backend/internal/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(st.Close)
	return st
}

func createTestUser(t *testing.T, st *sqlite.Store, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "hash"}
	if err := st.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

func TestUserStore_CreateAndGet(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	user := createTestUser(t, st, "a@example.com")
	if user.ID == uuid.Nil {
		t.Fatal("expected user ID to be set")
	}

	byEmail, err := st.Users().GetByEmail(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if byEmail.ID != user.ID {
		t.Fatalf("expected id %s, got %s", user.ID, byEmail.ID)
	}

	byID, err := st.Users().GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if byID.Email != "a@example.com" {
		t.Fatalf("expected email a@example.com, got %s", byID.Email)
	}
}

func TestUserStore_DuplicateEmail(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	createTestUser(t, st, "dup@example.com")

	err := st.Users().Create(ctx, &models.User{Email: "dup@example.com", PasswordHash: "other"})
	if !errors.Is(err, store.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestUserStore_GetMissing(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	if _, err := st.Users().GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := st.Users().GetByID(ctx, uuid.New()); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserStore_UpdatePassword(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	user := createTestUser(t, st, "pw@example.com")

	if err := st.Users().UpdatePassword(ctx, user.ID, "newhash"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}

	got, err := st.Users().GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.PasswordHash != "newhash" {
		t.Fatalf("expected updated hash, got %q", got.PasswordHash)
	}

	if err := st.Users().UpdatePassword(ctx, uuid.New(), "x"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing user, got %v", err)
	}
}
