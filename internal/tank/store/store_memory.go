package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"aguasur/internal/tank/models"
	"aguasur/pkg/domain"
	"aguasur/pkg/platform/sentinel"
)

// InMemoryStore keeps tanks in a mutex-guarded map for tests and dev mode.
type InMemoryStore struct {
	mu    sync.RWMutex
	tanks map[domain.TankID]*models.Tank
}

// NewMemory constructs an empty in-memory tank store.
func NewMemory() *InMemoryStore {
	return &InMemoryStore{
		tanks: make(map[domain.TankID]*models.Tank),
	}
}

func (s *InMemoryStore) Save(_ context.Context, t *models.Tank) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tanks[t.ID] = t
	return nil
}

func (s *InMemoryStore) Update(_ context.Context, t *models.Tank) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tanks[t.ID]; !ok {
		return fmt.Errorf("tank not found: %w", sentinel.ErrNotFound)
	}
	s.tanks[t.ID] = t
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id domain.TankID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tanks[id]; !ok {
		return fmt.Errorf("tank not found: %w", sentinel.ErrNotFound)
	}
	delete(s.tanks, id)
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id domain.TankID) (*models.Tank, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t, ok := s.tanks[id]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("tank not found: %w", sentinel.ErrNotFound)
}

func (s *InMemoryStore) filter(pred func(*models.Tank) bool) []*models.Tank {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Tank, 0, len(s.tanks))
	for _, t := range s.tanks {
		if pred(t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Location < out[j].Location })
	return out
}

func (s *InMemoryStore) FindAll(_ context.Context) ([]*models.Tank, error) {
	return s.filter(func(*models.Tank) bool { return true }), nil
}

func (s *InMemoryStore) FindByCategory(_ context.Context, category models.TankCategory) ([]*models.Tank, error) {
	return s.filter(func(t *models.Tank) bool { return t.Category == category }), nil
}

func (s *InMemoryStore) FindByHousehold(_ context.Context, householdID domain.HouseholdID) ([]*models.Tank, error) {
	return s.filter(func(t *models.Tank) bool {
		return t.HouseholdID != nil && *t.HouseholdID == householdID
	}), nil
}

func (s *InMemoryStore) FindOperational(_ context.Context) ([]*models.Tank, error) {
	return s.filter(func(t *models.Tank) bool { return t.IsOperational() }), nil
}

// FindCritical and FindLow only consider operational tanks: a tank out of
// service is a maintenance problem, not a supply-level one.
func (s *InMemoryStore) FindCritical(_ context.Context, thresholdPct float64) ([]*models.Tank, error) {
	return s.filter(func(t *models.Tank) bool { return t.IsOperational() && t.IsCritical(thresholdPct) }), nil
}

func (s *InMemoryStore) FindLow(_ context.Context, thresholdPct float64) ([]*models.Tank, error) {
	return s.filter(func(t *models.Tank) bool { return t.IsOperational() && t.IsLow(thresholdPct) }), nil
}

func (s *InMemoryStore) FindEmpty(_ context.Context) ([]*models.Tank, error) {
	return s.filter(func(t *models.Tank) bool { return t.IsEmpty() }), nil
}

func (s *InMemoryStore) FindPriority(_ context.Context) ([]*models.Tank, error) {
	return s.filter(func(t *models.Tank) bool { return t.IsPriority() }), nil
}

func (s *InMemoryStore) FindWithCoordinates(_ context.Context) ([]*models.Tank, error) {
	return s.filter(func(t *models.Tank) bool { return t.HasCoordinates() }), nil
}

func (s *InMemoryStore) CountAll(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tanks), nil
}

func (s *InMemoryStore) CountByCategory(_ context.Context, category models.TankCategory) (int, error) {
	return len(s.filter(func(t *models.Tank) bool { return t.Category == category })), nil
}

func (s *InMemoryStore) SumCapacity(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, t := range s.tanks {
		total += t.Capacity
	}
	return total, nil
}

func (s *InMemoryStore) SumLevel(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, t := range s.tanks {
		total += t.Level
	}
	return total, nil
}
