// Package store defines the incident-report persistence gateway and its
// implementations. Reports are never deleted; resolution is a status.
//
// Error contract (all implementations):
//   - Find* methods wrap sentinel.ErrNotFound when the entity is absent
//   - Infrastructure failures come back wrapped with context
package store

import (
	"context"
	"time"

	"aguasur/internal/report/models"
	"aguasur/pkg/domain"
)

// Store is the persistence gateway for incident reports.
type Store interface {
	Save(ctx context.Context, r *models.IncidentReport) error
	Update(ctx context.Context, r *models.IncidentReport) error

	FindByID(ctx context.Context, id domain.ReportID) (*models.IncidentReport, error)
	// FindAll returns every report, most recent first.
	FindAll(ctx context.Context) ([]*models.IncidentReport, error)
	FindByHousehold(ctx context.Context, householdID domain.HouseholdID) ([]*models.IncidentReport, error)
	FindByTank(ctx context.Context, tankID domain.TankID) ([]*models.IncidentReport, error)
	FindByCategory(ctx context.Context, category models.ReportCategory) ([]*models.IncidentReport, error)
	FindByStatus(ctx context.Context, status models.ReportStatus) ([]*models.IncidentReport, error)
	FindByUrgency(ctx context.Context, urgency models.Urgency) ([]*models.IncidentReport, error)
	FindPending(ctx context.Context) ([]*models.IncidentReport, error)
	// FindUrgentUnresolved selects reports with urgency high/critical that
	// are still pending or in review.
	FindUrgentUnresolved(ctx context.Context) ([]*models.IncidentReport, error)
	FindByDate(ctx context.Context, day time.Time) ([]*models.IncidentReport, error)
	FindByDateRange(ctx context.Context, from, to time.Time) ([]*models.IncidentReport, error)
	FindRecent(ctx context.Context, limit int) ([]*models.IncidentReport, error)

	CountAll(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status models.ReportStatus) (int, error)
	CountByCategory(ctx context.Context, category models.ReportCategory) (int, error)
	CountUrgentUnresolved(ctx context.Context) (int, error)
}
