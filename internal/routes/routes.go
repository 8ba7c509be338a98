package routes

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/samir9187/todolist-backend/internal/config"
	"github.com/samir9187/todolist-backend/internal/handlers"
	"github.com/samir9187/todolist-backend/internal/middleware"
)

// Handlers bundles everything SetupRoutes needs to mount.
type Handlers struct {
	Auth           *handlers.AuthHandler
	Todos          *handlers.TodosHandler
	Health         *handlers.HealthHandler
	ForgotPassword *handlers.ForgotPasswordHandler
	GoogleAuth     *handlers.GoogleAuthHandler
}

// SetupRoutes configures all application routes and returns the mux, so
// callers (and tests) can wrap or mount it as they like.
func SetupRoutes(h Handlers, cfg *config.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Health check routes
	mux.HandleFunc("/healthz", h.Health.HealthCheck)
	mux.HandleFunc("/livez", h.Health.LivenessCheck)
	mux.HandleFunc("/readyz", h.Health.ReadinessCheck)

	// Authentication routes
	mux.HandleFunc("/api/auth/register", h.Auth.Register)
	mux.HandleFunc("/api/auth/login", h.Auth.Login)
	mux.HandleFunc("/api/auth/profile", middleware.AuthMiddleware(h.Auth.GetProfile, &cfg.JWT))
	mux.HandleFunc("/api/auth/forgot-password", h.ForgotPassword.ForgotPassword)
	mux.HandleFunc("/api/auth/verify-otp", h.ForgotPassword.VerifyOTP)
	mux.HandleFunc("/api/auth/reset-password", h.ForgotPassword.ResetPassword)
	if h.GoogleAuth != nil {
		mux.HandleFunc("/api/auth/google/login", h.GoogleAuth.GoogleLogin)
		mux.HandleFunc("/api/auth/google/callback", h.GoogleAuth.GoogleCallback)
	}

	// Todo routes; the handler dispatches on method and path suffix
	mux.HandleFunc("/api/todos", middleware.AuthMiddleware(h.Todos.Todos, &cfg.JWT))
	mux.HandleFunc("/api/todos/", middleware.AuthMiddleware(h.Todos.Todos, &cfg.JWT))

	// API documentation
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// Root route
	mux.HandleFunc("/", rootHandler)

	return mux
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("TodoList backend is running."))
}
