package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/Yachtguy502/Analyze-Active-Listings/pkg/contracts"
	api "github.com/Yachtguy502/Analyze-Active-Listings/pkg/contracts/api/v1"
)

// HealthHandler handles health-related HTTP requests
type HealthHandler struct {
	startTime time.Time
	logger    *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(logger *slog.Logger) *HealthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthHandler{
		startTime: time.Now(),
		logger:    logger.With(slog.String("handler", "health")),
	}
}

// HealthCheck handles GET /api/health
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "health check",
		slog.Duration("uptime", time.Since(h.startTime)))
	render.JSON(w, r, api.HealthResponse{Status: "ok", Version: contracts.Version})
}

// Version handles GET /api/version
func (h *HealthHandler) Version(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, contracts.GetVersionInfo())
}
