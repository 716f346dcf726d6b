// Package handler wires incident report endpoints to the report service.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"aguasur/internal/report/models"
	"aguasur/internal/report/service"
	"aguasur/pkg/domain"
	dErrors "aguasur/pkg/domain-errors"
	"aguasur/pkg/platform/httputil"
	"aguasur/pkg/requestcontext"
)

// Service defines the report operations the handler depends on.
type Service interface {
	Create(ctx context.Context, in service.CreateInput) (*models.IncidentReport, error)
	Get(ctx context.Context, id domain.ReportID) (*models.IncidentReport, error)
	List(ctx context.Context, f service.ListFilter) ([]*models.IncidentReport, error)
	ChangeStatus(ctx context.Context, id domain.ReportID, status string) (*models.IncidentReport, error)
	Resolve(ctx context.Context, id domain.ReportID, notes string) (*models.IncidentReport, error)
	Escalate(ctx context.Context, id domain.ReportID) (*models.IncidentReport, error)
	Statistics(ctx context.Context) (service.Stats, error)
}

// Handler wires report endpoints to the report service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a report handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts report endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/reports", h.HandleCreate)
	r.Get("/reports", h.HandleList)
	r.Get("/reports/stats", h.HandleStats)
	r.Get("/reports/{reportID}", h.HandleGet)
	r.Put("/reports/{reportID}/status", h.HandleChangeStatus)
	r.Post("/reports/{reportID}/resolve", h.HandleResolve)
	r.Post("/reports/{reportID}/escalate", h.HandleEscalate)
}

// HandleCreate handles POST /reports requests.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[*CreateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	report, err := h.service.Create(ctx, req.ToInput())
	if err != nil {
		h.logger.ErrorContext(ctx, "report creation failed",
			"request_id", requestID,
			"household_id", req.HouseholdID,
			"category", req.Category,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "report created",
		"request_id", requestID,
		"report_id", report.ID,
		"category", report.Category,
		"urgency", report.Urgency,
	)
	httputil.WriteJSON(w, http.StatusCreated, report)
}

// HandleGet handles GET /reports/{reportID} requests.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := domain.ParseReportID(chi.URLParam(r, "reportID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	report, err := h.service.Get(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, report)
}

// HandleList handles GET /reports requests. Query parameters narrow the
// listing: urgent=true, household_id, tank_id, category, status, urgency,
// from, to, limit.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	filter := service.ListFilter{
		Category:         q.Get("category"),
		Status:           q.Get("status"),
		Urgency:          q.Get("urgency"),
		UrgentUnresolved: q.Get("urgent") == "true",
	}
	if v := q.Get("household_id"); v != "" {
		householdID, err := domain.ParseHouseholdID(v)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		filter.HouseholdID = &householdID
	}
	if v := q.Get("tank_id"); v != "" {
		tankID, err := domain.ParseTankID(v)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		filter.TankID = &tankID
	}
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

	reports, err := h.service.List(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "report listing failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, reports)
}

// HandleChangeStatus handles PUT /reports/{reportID}/status requests.
func (h *Handler) HandleChangeStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	id, err := domain.ParseReportID(chi.URLParam(r, "reportID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[*ChangeStatusRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	report, err := h.service.ChangeStatus(ctx, id, req.Status)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "report status changed",
		"request_id", requestID,
		"report_id", report.ID,
		"status", report.Status,
	)
	httputil.WriteJSON(w, http.StatusOK, report)
}

// HandleResolve handles POST /reports/{reportID}/resolve requests.
func (h *Handler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	id, err := domain.ParseReportID(chi.URLParam(r, "reportID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[*ResolveRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	report, err := h.service.Resolve(ctx, id, req.Notes)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "report resolved",
		"request_id", requestID,
		"report_id", report.ID,
	)
	httputil.WriteJSON(w, http.StatusOK, report)
}

// HandleEscalate handles POST /reports/{reportID}/escalate requests.
func (h *Handler) HandleEscalate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	id, err := domain.ParseReportID(chi.URLParam(r, "reportID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	report, err := h.service.Escalate(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "report escalated",
		"request_id", requestID,
		"report_id", report.ID,
		"urgency", report.Urgency,
	)
	httputil.WriteJSON(w, http.StatusOK, report)
}

// HandleStats handles GET /reports/stats requests.
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
