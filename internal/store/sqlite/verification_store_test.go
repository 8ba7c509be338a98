package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/samir9187/todolist-backend/internal/models"
	"github.com/samir9187/todolist-backend/internal/store"
)

func TestVerificationStore_Lifecycle(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, st, "otp@example.com")

	v := &models.Verification{
		UserID:    user.ID,
		Email:     user.Email,
		Code:      "123456",
		ExpiresAt: time.Now().UTC().Add(3 * time.Minute),
	}
	if err := st.Verifications().Create(ctx, v); err != nil {
		t.Fatalf("Create: %v", err)
	}

	valid, err := st.Verifications().LatestValid(ctx, user.ID)
	if err != nil {
		t.Fatalf("LatestValid: %v", err)
	}
	if valid.Code != "123456" {
		t.Fatalf("expected code 123456, got %s", valid.Code)
	}

	byCode, err := st.Verifications().LatestByCode(ctx, user.ID, user.Email, "123456")
	if err != nil {
		t.Fatalf("LatestByCode: %v", err)
	}
	if byCode.ID != v.ID {
		t.Fatalf("expected verification %s, got %s", v.ID, byCode.ID)
	}

	if err := st.Verifications().MarkUsed(ctx, v.ID); err != nil {
		t.Fatalf("MarkUsed: %v", err)
	}
	if _, err := st.Verifications().LatestValid(ctx, user.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after MarkUsed, got %v", err)
	}

	// Latest still returns the used record for audit-style lookups.
	latest, err := st.Verifications().Latest(ctx, user.ID, user.Email)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if !latest.Used {
		t.Fatal("expected latest verification to be marked used")
	}
}

func TestVerificationStore_Expired(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, st, "expired@example.com")

	v := &models.Verification{
		UserID:    user.ID,
		Email:     user.Email,
		Code:      "654321",
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
	}
	if err := st.Verifications().Create(ctx, v); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := st.Verifications().LatestValid(ctx, user.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for expired code, got %v", err)
	}
}
