// Package handler wires household endpoints to the household service.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"aguasur/internal/household/models"
	"aguasur/internal/household/service"
	"aguasur/pkg/domain"
	"aguasur/pkg/platform/httputil"
	"aguasur/pkg/requestcontext"
)

// Service defines the household operations the handler depends on.
type Service interface {
	Register(ctx context.Context, in service.RegisterInput) (*models.Household, error)
	Get(ctx context.Context, id domain.HouseholdID) (*models.Household, error)
	List(ctx context.Context, f service.ListFilter) ([]*models.Household, error)
	Zones(ctx context.Context) ([]string, error)
	Deactivate(ctx context.Context, id domain.HouseholdID) (*models.Household, error)
	Reactivate(ctx context.Context, id domain.HouseholdID) (*models.Household, error)
}

// Handler wires household endpoints to the household service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a household handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts household endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/households", h.HandleRegister)
	r.Get("/households", h.HandleList)
	r.Get("/households/zones", h.HandleZones)
	r.Get("/households/{householdID}", h.HandleGet)
	r.Post("/households/{householdID}/deactivate", h.HandleDeactivate)
	r.Post("/households/{householdID}/reactivate", h.HandleReactivate)
}

// HandleRegister handles POST /households requests.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[*RegisterRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	household, err := h.service.Register(ctx, req.ToInput())
	if err != nil {
		h.logger.ErrorContext(ctx, "household registration failed",
			"request_id", requestID,
			"contact", req.Contact,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "household registered",
		"request_id", requestID,
		"household_id", household.ID,
		"zone", household.Zone,
	)
	httputil.WriteJSON(w, http.StatusCreated, household)
}

// HandleGet handles GET /households/{householdID} requests.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := domain.ParseHouseholdID(chi.URLParam(r, "householdID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	household, err := h.service.Get(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, household)
}

// HandleList handles GET /households requests. Query parameters narrow
// the listing: search, zone, with_tank, active.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	filter := service.ListFilter{
		ActiveOnly:  q.Get("active") == "true",
		Zone:        q.Get("zone"),
		AddressLike: q.Get("search"),
	}
	if v := q.Get("with_tank"); v != "" {
		withTank := v == "true"
		filter.WithTank = &withTank
	}

	households, err := h.service.List(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "household listing failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, households)
}

// HandleZones handles GET /households/zones requests.
func (h *Handler) HandleZones(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	zones, err := h.service.Zones(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string][]string{"zones": zones})
}

// HandleDeactivate handles POST /households/{householdID}/deactivate requests.
func (h *Handler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	h.toggleActive(w, r, h.service.Deactivate, "household deactivated")
}

// HandleReactivate handles POST /households/{householdID}/reactivate requests.
func (h *Handler) HandleReactivate(w http.ResponseWriter, r *http.Request) {
	h.toggleActive(w, r, h.service.Reactivate, "household reactivated")
}

func (h *Handler) toggleActive(w http.ResponseWriter, r *http.Request, op func(context.Context, domain.HouseholdID) (*models.Household, error), event string) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	id, err := domain.ParseHouseholdID(chi.URLParam(r, "householdID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	household, err := op(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, event,
		"request_id", requestID,
		"household_id", household.ID,
	)
	httputil.WriteJSON(w, http.StatusOK, household)
}
