package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"aguasur/internal/refill/models"
	"aguasur/pkg/domain"
	"aguasur/pkg/platform/sentinel"
)

// InMemoryStore keeps refill records in a mutex-guarded map for tests and
// dev mode.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[domain.RefillID]*models.RefillRecord
}

// NewMemory constructs an empty in-memory refill store.
func NewMemory() *InMemoryStore {
	return &InMemoryStore{
		records: make(map[domain.RefillID]*models.RefillRecord),
	}
}

func (s *InMemoryStore) Save(_ context.Context, r *models.RefillRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[r.ID] = r
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id domain.RefillID) (*models.RefillRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.records[id]; ok {
		return r, nil
	}
	return nil, fmt.Errorf("refill record not found: %w", sentinel.ErrNotFound)
}

// filter returns matching records, most recent first.
func (s *InMemoryStore) filter(pred func(*models.RefillRecord) bool) []*models.RefillRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.RefillRecord, 0, len(s.records))
	for _, r := range s.records {
		if pred(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SuppliedAt.After(out[j].SuppliedAt) })
	return out
}

func (s *InMemoryStore) FindAll(_ context.Context) ([]*models.RefillRecord, error) {
	return s.filter(func(*models.RefillRecord) bool { return true }), nil
}

func (s *InMemoryStore) FindByTank(_ context.Context, tankID domain.TankID) ([]*models.RefillRecord, error) {
	return s.filter(func(r *models.RefillRecord) bool { return r.TankID == tankID }), nil
}

func (s *InMemoryStore) FindByDate(_ context.Context, day time.Time) ([]*models.RefillRecord, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)
	return s.filter(func(r *models.RefillRecord) bool {
		return !r.SuppliedAt.Before(start) && r.SuppliedAt.Before(end)
	}), nil
}

func (s *InMemoryStore) FindByDateRange(_ context.Context, from, to time.Time) ([]*models.RefillRecord, error) {
	return s.filter(func(r *models.RefillRecord) bool {
		return !r.SuppliedAt.Before(from) && !r.SuppliedAt.After(to)
	}), nil
}

func (s *InMemoryStore) FindByProvider(_ context.Context, provider string) ([]*models.RefillRecord, error) {
	return s.filter(func(r *models.RefillRecord) bool { return r.Provider == provider }), nil
}

func (s *InMemoryStore) FindLatestForTank(ctx context.Context, tankID domain.TankID) (*models.RefillRecord, error) {
	records, _ := s.FindByTank(ctx, tankID)
	if len(records) == 0 {
		return nil, fmt.Errorf("refill record not found: %w", sentinel.ErrNotFound)
	}
	return records[0], nil
}

func (s *InMemoryStore) FindRecent(ctx context.Context, limit int) ([]*models.RefillRecord, error) {
	records, _ := s.FindAll(ctx)
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (s *InMemoryStore) CountAll(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

func (s *InMemoryStore) CountByTank(_ context.Context, tankID domain.TankID) (int, error) {
	return len(s.filter(func(r *models.RefillRecord) bool { return r.TankID == tankID })), nil
}

func (s *InMemoryStore) SumLiters(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, r := range s.records {
		total += r.Liters
	}
	return total, nil
}

func (s *InMemoryStore) SumCost(_ context.Context) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0.0
	for _, r := range s.records {
		total += r.Cost
	}
	return total, nil
}

func (s *InMemoryStore) ListProviders(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]bool)
	providers := make([]string, 0)
	for _, r := range s.records {
		if !seen[r.Provider] {
			seen[r.Provider] = true
			providers = append(providers, r.Provider)
		}
	}
	sort.Strings(providers)
	return providers, nil
}
