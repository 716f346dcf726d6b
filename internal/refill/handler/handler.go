// Package handler wires refill endpoints to the refill service.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"aguasur/internal/refill/models"
	"aguasur/internal/refill/service"
	"aguasur/pkg/domain"
	dErrors "aguasur/pkg/domain-errors"
	"aguasur/pkg/platform/httputil"
	"aguasur/pkg/requestcontext"
)

// Service defines the refill operations the handler depends on.
type Service interface {
	Record(ctx context.Context, in service.RecordInput) (*models.RefillRecord, error)
	Get(ctx context.Context, id domain.RefillID) (*models.RefillRecord, error)
	List(ctx context.Context, f service.ListFilter) ([]*models.RefillRecord, error)
	LatestForTank(ctx context.Context, tankID domain.TankID) (*models.RefillRecord, error)
	Providers(ctx context.Context) ([]string, error)
	Statistics(ctx context.Context) (service.Stats, error)
}

// Handler wires refill endpoints to the refill service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a refill handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts refill endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/refills", h.HandleRecord)
	r.Get("/refills", h.HandleList)
	r.Get("/refills/stats", h.HandleStats)
	r.Get("/refills/providers", h.HandleProviders)
	r.Get("/refills/{refillID}", h.HandleGet)
	r.Get("/tanks/{tankID}/refills/latest", h.HandleLatestForTank)
}

// HandleRecord handles POST /refills requests.
func (h *Handler) HandleRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[*RecordRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	record, err := h.service.Record(ctx, req.ToInput())
	if err != nil {
		h.logger.ErrorContext(ctx, "refill recording failed",
			"request_id", requestID,
			"tank_id", req.TankID,
			"liters", req.Liters,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "refill recorded",
		"request_id", requestID,
		"refill_id", record.ID,
		"tank_id", record.TankID,
		"liters", record.Liters,
		"level_after", record.LevelAfter,
	)
	httputil.WriteJSON(w, http.StatusCreated, record)
}

// HandleGet handles GET /refills/{refillID} requests.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := domain.ParseRefillID(chi.URLParam(r, "refillID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	record, err := h.service.Get(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, record)
}

// HandleList handles GET /refills requests. Query parameters narrow the
// listing: tank_id, provider, from, to (RFC 3339 dates), limit.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	var filter service.ListFilter
	if v := q.Get("tank_id"); v != "" {
		tankID, err := domain.ParseTankID(v)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		filter.TankID = &tankID
	}
	filter.Provider = q.Get("provider")
	if v := q.Get("from"); v != "" {
		from, err := parseDate(v, "from")
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		filter.From = from
	}
	if v := q.Get("to"); v != "" {
		to, err := parseDate(v, "to")
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		filter.To = to
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "limit must be a positive integer"))
			return
		}
		filter.Limit = limit
	}

	records, err := h.service.List(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "refill listing failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, records)
}

// HandleLatestForTank handles GET /tanks/{tankID}/refills/latest requests.
func (h *Handler) HandleLatestForTank(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tankID, err := domain.ParseTankID(chi.URLParam(r, "tankID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	record, err := h.service.LatestForTank(ctx, tankID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, record)
}

// HandleProviders handles GET /refills/providers requests.
func (h *Handler) HandleProviders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	providers, err := h.service.Providers(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string][]string{"providers": providers})
}

// HandleStats handles GET /refills/stats requests.
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.service.Statistics(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, stats)
}

func parseDate(value, param string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, dErrors.Newf(dErrors.CodeInvalidInput, "%s must be an RFC 3339 timestamp or YYYY-MM-DD date", param)
}
