package handler

import (
	"context"
	"net/http"

	"lecturer/internal/health"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// HealthChecker is implemented by *health.Probe.
type HealthChecker interface {
	Check(ctx context.Context) (*health.Status, error)
	CheckReadiness(ctx context.Context) (*health.Status, error)
	CheckLiveness() *health.Status
}

// HealthHandler serves the unauthenticated probe endpoints
type HealthHandler struct {
	probe  HealthChecker
	logger zerolog.Logger
}

func NewHealthHandler(probe HealthChecker, logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{probe: probe, logger: logger}
}

func (h *HealthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.check)
	r.Get("/health/ready", h.ready)
	r.Get("/health/live", h.live)
}

// check godoc
// @Summary Deep health check
// @Description Verifies database connectivity and reports uptime.
// @Tags health
// @Produce json
// @Success 200 {object} health.Status
// @Failure 503 {object} health.Status
// @Router /health [get]
func (h *HealthHandler) check(w http.ResponseWriter, r *http.Request) {
	status, err := h.probe.Check(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// ready godoc
// @Summary Readiness probe
// @Tags health
// @Produce json
// @Success 200 {object} health.Status
// @Failure 503 {object} health.Status
// @Router /health/ready [get]
func (h *HealthHandler) ready(w http.ResponseWriter, r *http.Request) {
	status, err := h.probe.CheckReadiness(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// live godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} health.Status
// @Router /health/live [get]
func (h *HealthHandler) live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.probe.CheckLiveness())
}
