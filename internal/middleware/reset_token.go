package middleware

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/samir9187/todolist-backend/internal/config"
)

// ResetTokenClaims represents the JWT claims for a password reset token
type ResetTokenClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Code   string    `json:"code"`
	jwt.RegisteredClaims
}

// GenerateResetToken generates a temporary JWT token for password reset
func GenerateResetToken(userID uuid.UUID, email, code string, cfg *config.JWTConfig) (string, error) {
	expirationTime := time.Now().Add(cfg.ResetTokenTTL)

	claims := &ResetTokenClaims{
		UserID: userID,
		Email:  email,
		Code:   code,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "todolist-backend",
			Subject:   "password_reset",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

// ValidateResetToken validates and parses the reset token
func ValidateResetToken(tokenString string, cfg *config.JWTConfig) (*ResetTokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ResetTokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(cfg.Secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*ResetTokenClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	// Access tokens must not pass as reset tokens.
	if claims.Subject != "password_reset" {
		return nil, errors.New("invalid token type")
	}

	return claims, nil
}
