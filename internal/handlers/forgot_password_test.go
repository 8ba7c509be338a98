package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/samir9187/todolist-backend/internal/dto"
)

// TestPasswordResetFlow drives the whole reset sequence: request a code,
// verify it for a reset token, set a new password, and log in with it.
// Email is not configured in tests, so the code is read from the store.
func TestPasswordResetFlow(t *testing.T) {
	env := newTestEnv(t)
	auth := env.register(t, "reset@example.com", "oldpass123")

	resp := env.doJSON(t, http.MethodPost, "/api/auth/forgot-password", "",
		dto.ForgotPasswordRequest{Email: "reset@example.com"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("forgot-password: expected 200, got %d", resp.StatusCode)
	}

	userID, err := uuid.Parse(auth.User.ID)
	if err != nil {
		t.Fatalf("parse user id: %v", err)
	}
	v, err := env.st.Verifications().LatestValid(context.Background(), userID)
	if err != nil {
		t.Fatalf("no stored verification code: %v", err)
	}

	resp = env.doJSON(t, http.MethodPost, "/api/auth/verify-otp", "",
		dto.VerifyOTPRequest{Email: "reset@example.com", Code: v.Code})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("verify-otp: expected 200, got %d", resp.StatusCode)
	}
	otp := decodeBody[dto.VerifyOTPResponse](t, resp)
	if otp.ResetToken == "" {
		t.Fatal("expected a reset token")
	}

	resp = env.doJSON(t, http.MethodPost, "/api/auth/reset-password", "",
		dto.ResetPasswordRequest{ResetToken: otp.ResetToken, NewPassword: "newpass456"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("reset-password: expected 200, got %d", resp.StatusCode)
	}

	// Old password is dead, new one works.
	resp = env.doJSON(t, http.MethodPost, "/api/auth/login", "",
		dto.LoginRequest{Email: "reset@example.com", Password: "oldpass123"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("old password login: expected 401, got %d", resp.StatusCode)
	}
	resp = env.doJSON(t, http.MethodPost, "/api/auth/login", "",
		dto.LoginRequest{Email: "reset@example.com", Password: "newpass456"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("new password login: expected 200, got %d", resp.StatusCode)
	}

	// The reset token is single use.
	resp = env.doJSON(t, http.MethodPost, "/api/auth/reset-password", "",
		dto.ResetPasswordRequest{ResetToken: otp.ResetToken, NewPassword: "another789"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("reused reset token: expected 401, got %d", resp.StatusCode)
	}
}

func TestForgotPassword_UnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	resp := env.doJSON(t, http.MethodPost, "/api/auth/forgot-password", "",
		dto.ForgotPasswordRequest{Email: "ghost@example.com"})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestForgotPassword_Cooldown(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "cool@example.com", "secret123")

	first := env.doJSON(t, http.MethodPost, "/api/auth/forgot-password", "",
		dto.ForgotPasswordRequest{Email: "cool@example.com"})
	if first.StatusCode != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", first.StatusCode)
	}

	second := env.doJSON(t, http.MethodPost, "/api/auth/forgot-password", "",
		dto.ForgotPasswordRequest{Email: "cool@example.com"})
	if second.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("second request while code valid: expected 429, got %d", second.StatusCode)
	}
}

func TestVerifyOTP_WrongCode(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "wrongotp@example.com", "secret123")

	resp := env.doJSON(t, http.MethodPost, "/api/auth/forgot-password", "",
		dto.ForgotPasswordRequest{Email: "wrongotp@example.com"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("forgot-password: expected 200, got %d", resp.StatusCode)
	}

	resp = env.doJSON(t, http.MethodPost, "/api/auth/verify-otp", "",
		dto.VerifyOTPRequest{Email: "wrongotp@example.com", Code: "000000"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("wrong code: expected 401, got %d", resp.StatusCode)
	}
}
