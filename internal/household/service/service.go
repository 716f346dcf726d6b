// Package service implements household use cases: registration under the
// unique-contact rule, lookups, and activation lifecycle.
package service

import (
	"context"
	"errors"
	"strings"

	"aguasur/internal/household/models"
	"aguasur/internal/household/store"
	"aguasur/internal/platform/metrics"
	"aguasur/pkg/domain"
	dErrors "aguasur/pkg/domain-errors"
	"aguasur/pkg/platform/sentinel"
	"aguasur/pkg/requestcontext"
)

// Service orchestrates household lifecycle management.
type Service struct {
	households store.Store
	metrics    *metrics.Metrics
}

// New constructs a household service. metrics may be nil in tests.
func New(households store.Store, m *metrics.Metrics) *Service {
	return &Service{households: households, metrics: m}
}

// RegisterInput carries the primitive inputs for household registration.
type RegisterInput struct {
	Address          string
	Occupants        int
	Contact          string
	StorageCapacity  int
	HasTank          bool
	Zone             string
	DailyConsumption *float64
}

// Register creates a household after checking the contact is not already
// registered. The uniqueness check happens before construction so a
// duplicate fails fast with a conflict rather than a validation error.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.Household, error) {
	contact := strings.TrimSpace(in.Contact)
	if contact != "" {
		_, err := s.households.FindByContact(ctx, contact)
		switch {
		case err == nil:
			return nil, dErrors.Newf(dErrors.CodeConflict, "a household is already registered with contact %s", contact)
		case !errors.Is(err, sentinel.ErrNotFound):
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "check contact uniqueness")
		}
	}

	h, err := models.NewHousehold(
		domain.NewHouseholdID(),
		in.Address,
		in.Occupants,
		contact,
		in.StorageCapacity,
		in.HasTank,
		in.Zone,
		in.DailyConsumption,
		requestcontext.Now(ctx),
	)
	if err != nil {
		return nil, err
	}

	if err := s.households.Save(ctx, h); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "save household")
	}

	if s.metrics != nil {
		s.metrics.HouseholdsRegistered.Inc()
	}
	return h, nil
}

// Get retrieves a household by ID.
func (s *Service) Get(ctx context.Context, id domain.HouseholdID) (*models.Household, error) {
	h, err := s.households.FindByID(ctx, id)
	if err != nil {
		return nil, translateErr(err)
	}
	return h, nil
}

// ListFilter narrows household listings. Zero value lists everything.
type ListFilter struct {
	ActiveOnly  bool
	Zone        string
	WithTank    *bool
	AddressLike string
}

// List returns households matching the filter, applied in precedence order:
// address search, zone, tank ownership, active.
func (s *Service) List(ctx context.Context, f ListFilter) ([]*models.Household, error) {
	var (
		households []*models.Household
		err        error
	)
	switch {
	case f.AddressLike != "":
		households, err = s.households.SearchByAddress(ctx, f.AddressLike)
	case f.Zone != "":
		households, err = s.households.FindByZone(ctx, f.Zone)
	case f.WithTank != nil && *f.WithTank:
		households, err = s.households.FindWithTank(ctx)
	case f.WithTank != nil && !*f.WithTank:
		households, err = s.households.FindWithoutTank(ctx)
	case f.ActiveOnly:
		households, err = s.households.FindActive(ctx)
	default:
		households, err = s.households.FindAll(ctx)
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list households")
	}
	return households, nil
}

// Zones lists the distinct zone labels in use.
func (s *Service) Zones(ctx context.Context) ([]string, error) {
	zones, err := s.households.ListZones(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list zones")
	}
	return zones, nil
}

// Deactivate removes a household from active dispatch consideration.
func (s *Service) Deactivate(ctx context.Context, id domain.HouseholdID) (*models.Household, error) {
	h, err := s.households.FindByID(ctx, id)
	if err != nil {
		return nil, translateErr(err)
	}
	h.Deactivate()
	if err := s.households.Update(ctx, h); err != nil {
		return nil, translateErr(err)
	}
	return h, nil
}

// Reactivate restores a household to active dispatch consideration.
func (s *Service) Reactivate(ctx context.Context, id domain.HouseholdID) (*models.Household, error) {
	h, err := s.households.FindByID(ctx, id)
	if err != nil {
		return nil, translateErr(err)
	}
	h.Activate()
	if err := s.households.Update(ctx, h); err != nil {
		return nil, translateErr(err)
	}
	return h, nil
}

func translateErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "household not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "household storage failure")
}
