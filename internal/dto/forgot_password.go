package dto

// ForgotPasswordRequest represents the request to start a password reset
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ForgotPasswordResponse confirms that a verification code was sent
type ForgotPasswordResponse struct {
	Message   string `json:"message"`
	Email     string `json:"email"`
	ExpiresIn string `json:"expiresIn"`
}

// VerifyOTPRequest represents the email/code pair to verify
type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required"`
}

// VerifyOTPResponse carries the temporary reset token
type VerifyOTPResponse struct {
	Message    string `json:"message"`
	ResetToken string `json:"resetToken"`
	ExpiresIn  string `json:"expiresIn"`
}

// ResetPasswordRequest represents the final password reset step
type ResetPasswordRequest struct {
	ResetToken  string `json:"resetToken" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// ResetPasswordResponse confirms the password change
type ResetPasswordResponse struct {
	Message string `json:"message"`
}
