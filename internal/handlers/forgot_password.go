package handlers

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/samir9187/todolist-backend/internal/config"
	"github.com/samir9187/todolist-backend/internal/dto"
	"github.com/samir9187/todolist-backend/internal/middleware"
	"github.com/samir9187/todolist-backend/internal/models"
	"github.com/samir9187/todolist-backend/internal/store"
	"github.com/samir9187/todolist-backend/internal/utils"
)

const verificationCodeTTL = 3 * time.Minute

// ForgotPasswordHandler handles the email verification-code reset flow
type ForgotPasswordHandler struct {
	store  store.Store
	config *config.Config
	email  *utils.EmailService
}

// NewForgotPasswordHandler creates a new ForgotPasswordHandler instance
func NewForgotPasswordHandler(st store.Store, cfg *config.Config) *ForgotPasswordHandler {
	return &ForgotPasswordHandler{
		store:  st,
		config: cfg,
		email:  utils.NewEmailService(&cfg.Email),
	}
}

// ForgotPassword sends a verification code to the user's email
// @Summary Request password reset
// @Description Send a 6-digit verification code to the user's email
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "Email address"
// @Success 200 {object} dto.ForgotPasswordResponse "Verification code sent"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 429 {object} dto.ErrorResponse "Code already sent"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/forgot-password [post]
func (h *ForgotPasswordHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.ForgotPasswordRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	if req.Email == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing required field", "Email is required")
		return
	}

	user, err := h.store.Users().GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "User not found", "No account found with this email")
		} else {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		}
		return
	}

	// Re-requesting while a code is still valid just tells the caller to
	// wait; it does not invalidate the outstanding code.
	if existing, err := h.store.Verifications().LatestValid(r.Context(), user.ID); err == nil {
		remaining := time.Until(existing.ExpiresAt)
		utils.WriteErrorResponse(w, http.StatusTooManyRequests,
			"Code already sent",
			fmt.Sprintf("Please wait %d seconds before requesting a new code", int(remaining.Seconds())))
		return
	}

	code, err := generateVerificationCode(6)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to generate code", err.Error())
		return
	}

	v := &models.Verification{
		UserID:    user.ID,
		Email:     req.Email,
		Code:      code,
		ExpiresAt: time.Now().Add(verificationCodeTTL),
	}
	if err := h.store.Verifications().Create(r.Context(), v); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to store verification code", err.Error())
		return
	}

	if h.config.IsEmailConfigured() {
		if err := h.email.SendVerificationCode(req.Email, code); err != nil {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to send email", err.Error())
			return
		}
	} else {
		// Development fallback. The code is short-lived and single use.
		log.Printf("verification code for %s: %s", req.Email, code)
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.ForgotPasswordResponse{
		Message:   "Verification code has been sent to your email",
		Email:     req.Email,
		ExpiresIn: "3 minutes",
	})
}

// VerifyOTP verifies the code and returns a reset token
// @Summary Verify OTP
// @Description Verify the 6-digit code and get a temporary reset token
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.VerifyOTPRequest true "Email and verification code"
// @Success 200 {object} dto.VerifyOTPResponse "OTP verified successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid or expired code"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/verify-otp [post]
func (h *ForgotPasswordHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.VerifyOTPRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	if req.Email == "" || req.Code == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing required fields", "Email and code are required")
		return
	}

	user, err := h.store.Users().GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "User not found", "No account found with this email")
		} else {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		}
		return
	}

	v, err := h.store.Verifications().Latest(r.Context(), user.ID, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid code", "No verification code found")
		} else {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		}
		return
	}

	if v.Used {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Code already used", "This verification code has already been used")
		return
	}
	if time.Now().After(v.ExpiresAt) {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Code expired", "Verification code has expired. Please request a new one")
		return
	}
	if v.Code != req.Code {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid code", "The verification code you entered is incorrect")
		return
	}

	resetToken, err := middleware.GenerateResetToken(user.ID, req.Email, req.Code, &h.config.JWT)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to generate reset token", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.VerifyOTPResponse{
		Message:    "OTP verified successfully",
		ResetToken: resetToken,
		ExpiresIn:  "10 minutes",
	})
}

// ResetPassword resets the user's password using a reset token
// @Summary Reset password
// @Description Set a new password using the reset token from OTP verification
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordRequest true "Reset token and new password"
// @Success 200 {object} dto.ResetPasswordResponse "Password reset successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid or expired reset token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/reset-password [post]
func (h *ForgotPasswordHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.ResetPasswordRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	if req.ResetToken == "" || req.NewPassword == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing required fields", "Reset token and new password are required")
		return
	}
	if len(req.NewPassword) < 6 {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Password too short", "Password must be at least 6 characters long")
		return
	}

	claims, err := middleware.ValidateResetToken(req.ResetToken, &h.config.JWT)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid reset token", err.Error())
		return
	}

	v, err := h.store.Verifications().LatestByCode(r.Context(), claims.UserID, claims.Email, claims.Code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid verification", "No matching verification found")
		} else {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		}
		return
	}

	if v.Used {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Code already used", "This verification code has already been used")
		return
	}
	if time.Now().After(v.ExpiresAt) {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Code expired", "Verification code has expired")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to hash password", err.Error())
		return
	}

	if err := h.store.Users().UpdatePassword(r.Context(), claims.UserID, string(hashedPassword)); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to update password", err.Error())
		return
	}
	if err := h.store.Verifications().MarkUsed(r.Context(), v.ID); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to mark code as used", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.ResetPasswordResponse{
		Message: "Password has been reset successfully",
	})
}

// generateVerificationCode generates a random n-digit verification code
func generateVerificationCode(length int) (string, error) {
	const digits = "0123456789"
	code := make([]byte, length)

	for i := range code {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", err
		}
		code[i] = digits[num.Int64()]
	}

	return string(code), nil
}
