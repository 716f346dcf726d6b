// Package handler wires tank endpoints to the tank service.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"aguasur/internal/tank/models"
	"aguasur/internal/tank/service"
	"aguasur/pkg/domain"
	"aguasur/pkg/platform/httputil"
	"aguasur/pkg/requestcontext"
)

// Service defines the tank operations the handler depends on.
type Service interface {
	Register(ctx context.Context, in service.RegisterInput) (*models.Tank, error)
	Get(ctx context.Context, id domain.TankID) (*models.Tank, error)
	List(ctx context.Context, f service.ListFilter) ([]*models.Tank, error)
	ListForHousehold(ctx context.Context, householdID domain.HouseholdID) ([]*models.Tank, error)
	MapPoints(ctx context.Context) ([]service.MapPoint, error)
	ChangeStatus(ctx context.Context, id domain.TankID, status string) (*models.Tank, error)
	UpdateLevel(ctx context.Context, id domain.TankID, liters int) (*models.Tank, error)
}

// Handler wires tank endpoints to the tank service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a tank handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts tank endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/tanks", h.HandleRegister)
	r.Get("/tanks", h.HandleList)
	r.Get("/tanks/map", h.HandleMap)
	r.Get("/tanks/{tankID}", h.HandleGet)
	r.Put("/tanks/{tankID}/status", h.HandleChangeStatus)
	r.Put("/tanks/{tankID}/level", h.HandleUpdateLevel)
	r.Get("/households/{householdID}/tanks", h.HandleListForHousehold)
}

// HandleRegister handles POST /tanks requests.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[*RegisterRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	tank, err := h.service.Register(ctx, req.ToInput())
	if err != nil {
		h.logger.ErrorContext(ctx, "tank registration failed",
			"request_id", requestID,
			"location", req.Location,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "tank registered",
		"request_id", requestID,
		"tank_id", tank.ID,
		"category", tank.Category,
		"capacity_liters", tank.Capacity,
	)
	httputil.WriteJSON(w, http.StatusCreated, tank)
}

// HandleGet handles GET /tanks/{tankID} requests.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := domain.ParseTankID(chi.URLParam(r, "tankID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	tank, err := h.service.Get(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, tank)
}

// HandleList handles GET /tanks requests. Query parameters narrow the
// listing: band (empty, critical, low, priority), category, operational.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	tanks, err := h.service.List(ctx, service.ListFilter{
		Category:        q.Get("category"),
		OperationalOnly: q.Get("operational") == "true",
		Band:            service.LevelBand(q.Get("band")),
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "tank listing failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, tanks)
}

// HandleListForHousehold handles GET /households/{householdID}/tanks requests.
func (h *Handler) HandleListForHousehold(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	householdID, err := domain.ParseHouseholdID(chi.URLParam(r, "householdID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	tanks, err := h.service.ListForHousehold(ctx, householdID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, tanks)
}

// HandleMap handles GET /tanks/map requests.
func (h *Handler) HandleMap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	points, err := h.service.MapPoints(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, points)
}

// HandleChangeStatus handles PUT /tanks/{tankID}/status requests.
func (h *Handler) HandleChangeStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	id, err := domain.ParseTankID(chi.URLParam(r, "tankID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[*ChangeStatusRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	tank, err := h.service.ChangeStatus(ctx, id, req.Status)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "tank status changed",
		"request_id", requestID,
		"tank_id", tank.ID,
		"status", tank.Status,
	)
	httputil.WriteJSON(w, http.StatusOK, tank)
}

// HandleUpdateLevel handles PUT /tanks/{tankID}/level requests.
func (h *Handler) HandleUpdateLevel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	id, err := domain.ParseTankID(chi.URLParam(r, "tankID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[*UpdateLevelRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	tank, err := h.service.UpdateLevel(ctx, id, req.Level)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "tank level updated",
		"request_id", requestID,
		"tank_id", tank.ID,
		"level_liters", tank.Level,
	)
	httputil.WriteJSON(w, http.StatusOK, tank)
}
