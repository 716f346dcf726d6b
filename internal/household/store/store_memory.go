package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"aguasur/internal/household/models"
	"aguasur/pkg/domain"
	"aguasur/pkg/platform/sentinel"
)

// InMemoryStore keeps households in a mutex-guarded map for tests and dev
// mode. It is the reference implementation of the Store contract.
type InMemoryStore struct {
	mu         sync.RWMutex
	households map[domain.HouseholdID]*models.Household
}

// NewMemory constructs an empty in-memory household store.
func NewMemory() *InMemoryStore {
	return &InMemoryStore{
		households: make(map[domain.HouseholdID]*models.Household),
	}
}

func (s *InMemoryStore) Save(_ context.Context, h *models.Household) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.households[h.ID] = h
	return nil
}

func (s *InMemoryStore) Update(_ context.Context, h *models.Household) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.households[h.ID]; !ok {
		return fmt.Errorf("household not found: %w", sentinel.ErrNotFound)
	}
	s.households[h.ID] = h
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id domain.HouseholdID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.households[id]; !ok {
		return fmt.Errorf("household not found: %w", sentinel.ErrNotFound)
	}
	delete(s.households, id)
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id domain.HouseholdID) (*models.Household, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if h, ok := s.households[id]; ok {
		return h, nil
	}
	return nil, fmt.Errorf("household not found: %w", sentinel.ErrNotFound)
}

// filter returns households matching pred, sorted by address for stable
// listings.
func (s *InMemoryStore) filter(pred func(*models.Household) bool) []*models.Household {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Household, 0, len(s.households))
	for _, h := range s.households {
		if pred(h) {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Address < out[j].Address })
	return out
}

func (s *InMemoryStore) FindAll(_ context.Context) ([]*models.Household, error) {
	return s.filter(func(*models.Household) bool { return true }), nil
}

func (s *InMemoryStore) FindActive(_ context.Context) ([]*models.Household, error) {
	return s.filter(func(h *models.Household) bool { return h.Active }), nil
}

func (s *InMemoryStore) FindByZone(_ context.Context, zone string) ([]*models.Household, error) {
	return s.filter(func(h *models.Household) bool { return h.Zone == zone }), nil
}

func (s *InMemoryStore) FindWithTank(_ context.Context) ([]*models.Household, error) {
	return s.filter(func(h *models.Household) bool { return h.HasTank }), nil
}

func (s *InMemoryStore) FindWithoutTank(_ context.Context) ([]*models.Household, error) {
	return s.filter(func(h *models.Household) bool { return !h.HasTank }), nil
}

func (s *InMemoryStore) SearchByAddress(_ context.Context, fragment string) ([]*models.Household, error) {
	needle := strings.ToLower(fragment)
	return s.filter(func(h *models.Household) bool {
		return strings.Contains(strings.ToLower(h.Address), needle)
	}), nil
}

func (s *InMemoryStore) FindByContact(_ context.Context, contact string) (*models.Household, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, h := range s.households {
		if h.Contact == contact {
			return h, nil
		}
	}
	return nil, fmt.Errorf("household not found: %w", sentinel.ErrNotFound)
}

func (s *InMemoryStore) CountAll(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.households), nil
}

func (s *InMemoryStore) CountByZone(_ context.Context, zone string) (int, error) {
	return len(s.filter(func(h *models.Household) bool { return h.Zone == zone })), nil
}

func (s *InMemoryStore) ListZones(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]bool)
	zones := make([]string, 0)
	for _, h := range s.households {
		if !seen[h.Zone] {
			seen[h.Zone] = true
			zones = append(zones, h.Zone)
		}
	}
	sort.Strings(zones)
	return zones, nil
}
