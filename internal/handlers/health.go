package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/samir9187/todolist-backend/internal/dto"
	"github.com/samir9187/todolist-backend/internal/store"
	"github.com/samir9187/todolist-backend/internal/utils"
)

// HealthHandler handles health check related requests
type HealthHandler struct {
	store store.Store
}

// NewHealthHandler creates a new HealthHandler instance
func NewHealthHandler(st store.Store) *HealthHandler {
	return &HealthHandler{store: st}
}

// HealthCheck handles basic health check (no database)
// @Summary Basic health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /healthz [get]
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, dto.HealthResponse{Status: "ok"})
}

// LivenessCheck handles process liveness check
// @Summary Process liveness check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /livez [get]
func (h *HealthHandler) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, dto.HealthResponse{Status: "alive"})
}

// ReadinessCheck handles readiness check (includes store connectivity)
// @Summary Readiness check including store connectivity
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /readyz [get]
func (h *HealthHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		utils.WriteJSONResponse(w, http.StatusServiceUnavailable, dto.HealthResponse{
			Status:  "degraded",
			Details: map[string]any{"store": err.Error()},
		})
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.HealthResponse{
		Status:  "ready",
		Details: map[string]any{"store": "ok"},
	})
}
