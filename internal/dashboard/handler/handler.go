// Package handler exposes the dashboard endpoint.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"aguasur/internal/dashboard/service"
	"aguasur/pkg/platform/httputil"
	"aguasur/pkg/requestcontext"
)

// Service defines the dashboard operation the handler depends on.
type Service interface {
	Build(ctx context.Context) (*service.Dashboard, error)
}

// Handler wires the dashboard endpoint to the dashboard service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a dashboard handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the dashboard endpoint on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/dashboard", h.HandleDashboard)
}

// HandleDashboard handles GET /dashboard requests.
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	dashboard, err := h.service.Build(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "dashboard build failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "dashboard built",
		"request_id", requestID,
		"alerts", len(dashboard.Alerts),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, dashboard)
}
