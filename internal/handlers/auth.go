package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/samir9187/todolist-backend/internal/config"
	"github.com/samir9187/todolist-backend/internal/dto"
	"github.com/samir9187/todolist-backend/internal/middleware"
	"github.com/samir9187/todolist-backend/internal/models"
	"github.com/samir9187/todolist-backend/internal/store"
	"github.com/samir9187/todolist-backend/internal/utils"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	store      store.Store
	config     *config.Config
	bcryptCost int
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(st store.Store, cfg *config.Config) *AuthHandler {
	return &AuthHandler{store: st, config: cfg, bcryptCost: bcrypt.DefaultCost}
}

// WithBcryptCost overrides the password hashing cost and returns the
// handler. Tests use a low cost so registering accounts stays fast.
func (h *AuthHandler) WithBcryptCost(cost int) *AuthHandler {
	h.bcryptCost = cost
	return h
}

// Register handles user registration
// @Summary Register a new user
// @Description Create a new user account with email and password
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "User registration data"
// @Success 201 {object} dto.AuthResponse "User created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.RegisterRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing required fields", "Email and password are required")
		return
	}

	// The password never touches the store or the logs in plaintext.
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.bcryptCost)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to hash password", err.Error())
		return
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		DisplayName:  req.DisplayName,
	}
	if err := h.store.Users().Create(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			utils.WriteErrorResponse(w, http.StatusConflict, "User already exists", "Email already registered")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to create user", err.Error())
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, &h.config.JWT)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to generate token", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.AuthResponse{
		User:  userResponse(user),
		Token: token,
	})
}

// Login handles user login
// @Summary Login user
// @Description Authenticate user with email and password
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.LoginRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	if req.Email == "" || req.Password == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing required fields", "Email and password are required")
		return
	}

	// Unknown email and wrong password answer identically so a caller
	// cannot probe which addresses are registered.
	user, err := h.store.Users().GetByEmail(r.Context(), req.Email)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid credentials", "Email or password is incorrect")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid credentials", "Email or password is incorrect")
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, &h.config.JWT)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to generate token", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.AuthResponse{
		User:  userResponse(user),
		Token: token,
	})
}

// GetProfile returns the current user's profile
// @Summary Get user profile
// @Description Get the current authenticated user's profile information
// @Tags authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse "User profile retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /api/auth/profile [get]
func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "User not authenticated")
		return
	}

	user, err := h.store.Users().GetByID(r.Context(), userID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, "User not found", "No account for the authenticated user")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, userResponse(user))
}

func userResponse(u *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          u.ID.String(),
		Email:       u.Email,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   u.UpdatedAt.Format(time.RFC3339),
	}
}
