// Package service implements incident report use cases: intake with
// urgency normalization, triage transitions, and resolution.
package service

import (
	"context"
	"errors"
	"time"

	householdstore "aguasur/internal/household/store"
	"aguasur/internal/platform/metrics"
	"aguasur/internal/report/models"
	"aguasur/internal/report/store"
	tankstore "aguasur/internal/tank/store"
	"aguasur/pkg/domain"
	dErrors "aguasur/pkg/domain-errors"
	"aguasur/pkg/platform/sentinel"
	"aguasur/pkg/requestcontext"
)

// Service orchestrates the incident report lifecycle.
type Service struct {
	reports    store.Store
	households householdstore.Store
	tanks      tankstore.Store
	metrics    *metrics.Metrics
}

// New constructs a report service. metrics may be nil in tests.
func New(reports store.Store, households householdstore.Store, tanks tankstore.Store, m *metrics.Metrics) *Service {
	return &Service{reports: reports, households: households, tanks: tanks, metrics: m}
}

// CreateInput carries the primitive inputs for filing a report.
type CreateInput struct {
	HouseholdID domain.HouseholdID
	Category    string
	Description string
	Urgency     string
	TankID      *domain.TankID
	Latitude    *float64
	Longitude   *float64
}

// Create files a report for a household. The household must exist, and a
// referenced tank must exist. A water_running_out report filed at low
// urgency is raised to medium: running out of water is never a
// low-priority event.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.IncidentReport, error) {
	category, err := models.ParseReportCategory(in.Category)
	if err != nil {
		return nil, err
	}
	urgency, err := models.ParseUrgency(in.Urgency)
	if err != nil {
		return nil, err
	}
	if category == models.CategoryWaterRunningOut && urgency == models.UrgencyLow {
		urgency = models.UrgencyMedium
	}

	if _, err := s.households.FindByID(ctx, in.HouseholdID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "household not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "lookup household")
	}
	if in.TankID != nil {
		if _, err := s.tanks.FindByID(ctx, *in.TankID); err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return nil, dErrors.New(dErrors.CodeNotFound, "tank not found")
			}
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "lookup tank")
		}
	}

	report, err := models.NewIncidentReport(
		domain.NewReportID(),
		in.HouseholdID,
		category,
		in.Description,
		urgency,
		in.TankID,
		in.Latitude,
		in.Longitude,
		requestcontext.Now(ctx),
	)
	if err != nil {
		return nil, err
	}

	if err := s.reports.Save(ctx, report); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "save report")
	}

	if s.metrics != nil {
		s.metrics.ReportsCreated.Inc()
	}
	return report, nil
}

// Get retrieves a report by ID.
func (s *Service) Get(ctx context.Context, id domain.ReportID) (*models.IncidentReport, error) {
	report, err := s.reports.FindByID(ctx, id)
	if err != nil {
		return nil, translateErr(err)
	}
	return report, nil
}

// ListFilter narrows report listings. Zero value lists everything.
type ListFilter struct {
	HouseholdID      *domain.HouseholdID
	TankID           *domain.TankID
	Category         string
	Status           string
	Urgency          string
	UrgentUnresolved bool
	From             time.Time
	To               time.Time
	Limit            int
}

// List returns reports matching the filter, newest first.
func (s *Service) List(ctx context.Context, f ListFilter) ([]*models.IncidentReport, error) {
	var (
		reports []*models.IncidentReport
		err     error
	)
	switch {
	case f.UrgentUnresolved:
		reports, err = s.reports.FindUrgentUnresolved(ctx)
	case f.HouseholdID != nil:
		reports, err = s.reports.FindByHousehold(ctx, *f.HouseholdID)
	case f.TankID != nil:
		reports, err = s.reports.FindByTank(ctx, *f.TankID)
	case f.Category != "":
		var category models.ReportCategory
		category, err = models.ParseReportCategory(f.Category)
		if err != nil {
			return nil, err
		}
		reports, err = s.reports.FindByCategory(ctx, category)
	case f.Status != "":
		var status models.ReportStatus
		status, err = models.ParseReportStatus(f.Status)
		if err != nil {
			return nil, err
		}
		reports, err = s.reports.FindByStatus(ctx, status)
	case f.Urgency != "":
		var urgency models.Urgency
		urgency, err = models.ParseUrgency(f.Urgency)
		if err != nil {
			return nil, err
		}
		reports, err = s.reports.FindByUrgency(ctx, urgency)
	case !f.From.IsZero() || !f.To.IsZero():
		reports, err = s.reports.FindByDateRange(ctx, f.From, f.To)
	case f.Limit > 0:
		reports, err = s.reports.FindRecent(ctx, f.Limit)
	default:
		reports, err = s.reports.FindAll(ctx)
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list reports")
	}
	return reports, nil
}

// ChangeStatus moves a report through its triage workflow.
func (s *Service) ChangeStatus(ctx context.Context, id domain.ReportID, status string) (*models.IncidentReport, error) {
	next, err := models.ParseReportStatus(status)
	if err != nil {
		return nil, err
	}
	report, err := s.reports.FindByID(ctx, id)
	if err != nil {
		return nil, translateErr(err)
	}
	if err := report.ChangeStatus(next, requestcontext.Now(ctx)); err != nil {
		return nil, err
	}
	if err := s.reports.Update(ctx, report); err != nil {
		return nil, translateErr(err)
	}
	return report, nil
}

// Resolve marks a report resolved with optional resolution notes.
func (s *Service) Resolve(ctx context.Context, id domain.ReportID, notes string) (*models.IncidentReport, error) {
	report, err := s.reports.FindByID(ctx, id)
	if err != nil {
		return nil, translateErr(err)
	}
	report.Resolve(notes, requestcontext.Now(ctx))
	if err := s.reports.Update(ctx, report); err != nil {
		return nil, translateErr(err)
	}
	if s.metrics != nil {
		s.metrics.ReportsResolved.Inc()
	}
	return report, nil
}

// Escalate bumps a report's urgency one level.
func (s *Service) Escalate(ctx context.Context, id domain.ReportID) (*models.IncidentReport, error) {
	report, err := s.reports.FindByID(ctx, id)
	if err != nil {
		return nil, translateErr(err)
	}
	report.Escalate()
	if err := s.reports.Update(ctx, report); err != nil {
		return nil, translateErr(err)
	}
	return report, nil
}

// Stats aggregates the report backlog by workflow state.
type Stats struct {
	Total            int `json:"total"`
	Pending          int `json:"pending"`
	InReview         int `json:"in_review"`
	InProgress       int `json:"in_progress"`
	Resolved         int `json:"resolved"`
	Closed           int `json:"closed"`
	UrgentUnresolved int `json:"urgent_unresolved"`
}

// Statistics returns backlog counts per status plus the urgent backlog.
func (s *Service) Statistics(ctx context.Context) (Stats, error) {
	var stats Stats
	var err error

	if stats.Total, err = s.reports.CountAll(ctx); err != nil {
		return Stats{}, dErrors.Wrap(err, dErrors.CodeInternal, "count reports")
	}
	byStatus := []struct {
		status models.ReportStatus
		into   *int
	}{
		{models.StatusPending, &stats.Pending},
		{models.StatusInReview, &stats.InReview},
		{models.StatusInProgress, &stats.InProgress},
		{models.StatusResolved, &stats.Resolved},
		{models.StatusClosed, &stats.Closed},
	}
	for _, b := range byStatus {
		if *b.into, err = s.reports.CountByStatus(ctx, b.status); err != nil {
			return Stats{}, dErrors.Wrap(err, dErrors.CodeInternal, "count reports by status")
		}
	}
	if stats.UrgentUnresolved, err = s.reports.CountUrgentUnresolved(ctx); err != nil {
		return Stats{}, dErrors.Wrap(err, dErrors.CodeInternal, "count urgent reports")
	}
	return stats, nil
}

func translateErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "report not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "report storage failure")
}
