package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	googleOAuth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/samir9187/todolist-backend/internal/config"
	"github.com/samir9187/todolist-backend/internal/dto"
	"github.com/samir9187/todolist-backend/internal/middleware"
	"github.com/samir9187/todolist-backend/internal/models"
	"github.com/samir9187/todolist-backend/internal/store"
	"github.com/samir9187/todolist-backend/internal/utils"
)

// GoogleAuthHandler handles Google OAuth authentication
type GoogleAuthHandler struct {
	store        store.Store
	oauth2Config *oauth2.Config
	config       *config.Config
}

// NewGoogleAuthHandler creates a new GoogleAuthHandler instance
func NewGoogleAuthHandler(st store.Store, cfg *config.Config) *GoogleAuthHandler {
	oauth2Config := &oauth2.Config{
		ClientID:     cfg.GoogleOAuth.ClientID,
		ClientSecret: cfg.GoogleOAuth.ClientSecret,
		RedirectURL:  cfg.GoogleOAuth.RedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	return &GoogleAuthHandler{
		store:        st,
		oauth2Config: oauth2Config,
		config:       cfg,
	}
}

// GoogleLogin initiates Google OAuth login
// @Summary Google OAuth login
// @Description Initiate Google OAuth login flow
// @Tags authentication
// @Produce json
// @Success 200 {object} dto.GoogleLoginResponse "Google OAuth URL"
// @Router /api/auth/google/login [get]
func (h *GoogleAuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// State parameter for CSRF protection
	state := uuid.New().String()
	authURL := h.oauth2Config.AuthCodeURL(state, oauth2.AccessTypeOffline)

	utils.WriteJSONResponse(w, http.StatusOK, dto.GoogleLoginResponse{
		AuthURL: authURL,
		State:   state,
	})
}

// GoogleCallback handles the Google OAuth callback
// @Summary Google OAuth callback
// @Description Handle Google OAuth callback with authorization code
// @Tags authentication
// @Produce json
// @Param code query string true "Authorization code from Google"
// @Param state query string false "State parameter for CSRF protection"
// @Success 302 "Redirect to frontend with token"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid authorization code"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/google/callback [get]
func (h *GoogleAuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing authorization code", "Authorization code is required")
		return
	}

	token, err := h.oauth2Config.Exchange(r.Context(), code)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid authorization code", err.Error())
		return
	}

	userInfo, err := h.getGoogleUserInfo(r, token.AccessToken)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to get user info", err.Error())
		return
	}

	user, err := h.store.Users().GetByEmail(r.Context(), userInfo.Email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
			return
		}
		user, err = h.createGoogleUser(r, userInfo)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to create user", err.Error())
			return
		}
	}

	jwtToken, err := middleware.GenerateToken(user.ID, user.Email, &h.config.JWT)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to generate token", err.Error())
		return
	}

	redirectURL := fmt.Sprintf("%s?token=%s&user_id=%s&email=%s&provider=google&is_verified=%t",
		h.config.GoogleOAuth.FrontendCallbackURL,
		url.QueryEscape(jwtToken),
		user.ID.String(),
		url.QueryEscape(user.Email),
		userInfo.Verified)

	http.Redirect(w, r, redirectURL, http.StatusFound)
}

// getGoogleUserInfo fetches user information from Google
func (h *GoogleAuthHandler) getGoogleUserInfo(r *http.Request, accessToken string) (*dto.GoogleUserInfo, error) {
	service, err := googleOAuth2.NewService(r.Context(), option.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
	})))
	if err != nil {
		return nil, err
	}

	userInfo, err := service.Userinfo.Get().Do()
	if err != nil {
		return nil, err
	}

	verified := false
	if userInfo.VerifiedEmail != nil {
		verified = *userInfo.VerifiedEmail
	}

	return &dto.GoogleUserInfo{
		ID:       userInfo.Id,
		Email:    userInfo.Email,
		Name:     userInfo.Name,
		Picture:  userInfo.Picture,
		Verified: verified,
	}, nil
}

// createGoogleUser creates a new account from Google OAuth data. The
// password hash stays empty, so password login is impossible for the
// account until a reset sets one.
func (h *GoogleAuthHandler) createGoogleUser(r *http.Request, googleUser *dto.GoogleUserInfo) (*models.User, error) {
	user := &models.User{
		Email:        googleUser.Email,
		PasswordHash: "",
		DisplayName:  &googleUser.Name,
		AvatarURL:    &googleUser.Picture,
	}
	if err := h.store.Users().Create(r.Context(), user); err != nil {
		return nil, err
	}
	return user, nil
}
