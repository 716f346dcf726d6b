package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"aguasur/internal/report/models"
	"aguasur/pkg/domain"
	"aguasur/pkg/platform/sentinel"
)

// InMemoryStore keeps incident reports in a mutex-guarded map for tests and
// dev mode.
type InMemoryStore struct {
	mu      sync.RWMutex
	reports map[domain.ReportID]*models.IncidentReport
}

// NewMemory constructs an empty in-memory report store.
func NewMemory() *InMemoryStore {
	return &InMemoryStore{
		reports: make(map[domain.ReportID]*models.IncidentReport),
	}
}

func (s *InMemoryStore) Save(_ context.Context, r *models.IncidentReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[r.ID] = r
	return nil
}

func (s *InMemoryStore) Update(_ context.Context, r *models.IncidentReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reports[r.ID]; !ok {
		return fmt.Errorf("report not found: %w", sentinel.ErrNotFound)
	}
	s.reports[r.ID] = r
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id domain.ReportID) (*models.IncidentReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.reports[id]; ok {
		return r, nil
	}
	return nil, fmt.Errorf("report not found: %w", sentinel.ErrNotFound)
}

// filter returns matching reports, most recent first.
func (s *InMemoryStore) filter(pred func(*models.IncidentReport) bool) []*models.IncidentReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.IncidentReport, 0, len(s.reports))
	for _, r := range s.reports {
		if pred(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReportedAt.After(out[j].ReportedAt) })
	return out
}

func (s *InMemoryStore) FindAll(_ context.Context) ([]*models.IncidentReport, error) {
	return s.filter(func(*models.IncidentReport) bool { return true }), nil
}

func (s *InMemoryStore) FindByHousehold(_ context.Context, householdID domain.HouseholdID) ([]*models.IncidentReport, error) {
	return s.filter(func(r *models.IncidentReport) bool { return r.HouseholdID == householdID }), nil
}

func (s *InMemoryStore) FindByTank(_ context.Context, tankID domain.TankID) ([]*models.IncidentReport, error) {
	return s.filter(func(r *models.IncidentReport) bool {
		return r.TankID != nil && *r.TankID == tankID
	}), nil
}

func (s *InMemoryStore) FindByCategory(_ context.Context, category models.ReportCategory) ([]*models.IncidentReport, error) {
	return s.filter(func(r *models.IncidentReport) bool { return r.Category == category }), nil
}

func (s *InMemoryStore) FindByStatus(_ context.Context, status models.ReportStatus) ([]*models.IncidentReport, error) {
	return s.filter(func(r *models.IncidentReport) bool { return r.Status == status }), nil
}

func (s *InMemoryStore) FindByUrgency(_ context.Context, urgency models.Urgency) ([]*models.IncidentReport, error) {
	return s.filter(func(r *models.IncidentReport) bool { return r.Urgency == urgency }), nil
}

func (s *InMemoryStore) FindPending(_ context.Context) ([]*models.IncidentReport, error) {
	return s.filter(func(r *models.IncidentReport) bool { return r.IsPending() }), nil
}

func urgentUnresolved(r *models.IncidentReport) bool {
	return r.IsUrgent() && (r.Status == models.StatusPending || r.Status == models.StatusInReview)
}

func (s *InMemoryStore) FindUrgentUnresolved(_ context.Context) ([]*models.IncidentReport, error) {
	return s.filter(urgentUnresolved), nil
}

func (s *InMemoryStore) FindByDate(_ context.Context, day time.Time) ([]*models.IncidentReport, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)
	return s.filter(func(r *models.IncidentReport) bool {
		return !r.ReportedAt.Before(start) && r.ReportedAt.Before(end)
	}), nil
}

func (s *InMemoryStore) FindByDateRange(_ context.Context, from, to time.Time) ([]*models.IncidentReport, error) {
	return s.filter(func(r *models.IncidentReport) bool {
		return !r.ReportedAt.Before(from) && !r.ReportedAt.After(to)
	}), nil
}

func (s *InMemoryStore) FindRecent(ctx context.Context, limit int) ([]*models.IncidentReport, error) {
	reports, _ := s.FindAll(ctx)
	if limit > 0 && len(reports) > limit {
		reports = reports[:limit]
	}
	return reports, nil
}

func (s *InMemoryStore) CountAll(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reports), nil
}

func (s *InMemoryStore) CountByStatus(_ context.Context, status models.ReportStatus) (int, error) {
	return len(s.filter(func(r *models.IncidentReport) bool { return r.Status == status })), nil
}

func (s *InMemoryStore) CountByCategory(_ context.Context, category models.ReportCategory) (int, error) {
	return len(s.filter(func(r *models.IncidentReport) bool { return r.Category == category })), nil
}

func (s *InMemoryStore) CountUrgentUnresolved(_ context.Context) (int, error) {
	return len(s.filter(urgentUnresolved)), nil
}
