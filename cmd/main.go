// @title TodoList Backend API
// @version 1.0
// @description REST API for the TodoList application: registration, login and owner-scoped todo CRUD.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/cors"

	_ "github.com/samir9187/todolist-backend/docs" // swagger spec registration
	"github.com/samir9187/todolist-backend/internal/config"
	"github.com/samir9187/todolist-backend/internal/handlers"
	"github.com/samir9187/todolist-backend/internal/routes"
	"github.com/samir9187/todolist-backend/internal/store"
	"github.com/samir9187/todolist-backend/internal/store/postgres"
	"github.com/samir9187/todolist-backend/internal/store/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	st, err := openStore(cfg)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer st.Close()
	log.Printf("store ready (driver=%s)", cfg.Store.Driver)

	h := routes.Handlers{
		Auth:           handlers.NewAuthHandler(st, cfg),
		Todos:          handlers.NewTodosHandler(st, cfg),
		Health:         handlers.NewHealthHandler(st),
		ForgotPassword: handlers.NewForgotPasswordHandler(st, cfg),
	}
	if cfg.IsGoogleOAuthConfigured() {
		h.GoogleAuth = handlers.NewGoogleAuthHandler(st, cfg)
	}
	mux := routes.SetupRoutes(h, cfg)

	// The SPA calls from a different origin, so CORS is mandatory.
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           c.Handler(mux),
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		log.Printf("HTTP server listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped.")
}

func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Driver {
	case "postgres":
		return postgres.New(context.Background(), cfg)
	case "sqlite":
		return sqlite.New(cfg.Store.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
