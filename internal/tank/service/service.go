// Package service implements tank use cases: registration with family
// ownership wiring, level queries, and operational status transitions.
package service

import (
	"context"
	"errors"

	householdstore "aguasur/internal/household/store"
	"aguasur/internal/platform/metrics"
	"aguasur/internal/tank/models"
	"aguasur/internal/tank/store"
	"aguasur/pkg/domain"
	dErrors "aguasur/pkg/domain-errors"
	"aguasur/pkg/platform/sentinel"
	"aguasur/pkg/requestcontext"
)

// Service orchestrates tank lifecycle and supply-level queries.
type Service struct {
	tanks       store.Store
	households  householdstore.Store
	metrics     *metrics.Metrics
	criticalPct float64
	lowPct      float64
}

// New constructs a tank service with the given level thresholds.
// Pass zero thresholds to use the model defaults.
func New(tanks store.Store, households householdstore.Store, m *metrics.Metrics, criticalPct, lowPct float64) *Service {
	if criticalPct <= 0 {
		criticalPct = models.DefaultCriticalPct
	}
	if lowPct <= 0 {
		lowPct = models.DefaultLowPct
	}
	return &Service{
		tanks:       tanks,
		households:  households,
		metrics:     m,
		criticalPct: criticalPct,
		lowPct:      lowPct,
	}
}

// RegisterInput carries the primitive inputs for tank registration.
type RegisterInput struct {
	Location    string
	Category    string
	Capacity    int
	Level       int
	Latitude    *float64
	Longitude   *float64
	HouseholdID *domain.HouseholdID
}

// Register creates a tank. A family tank linked to a household flips the
// household's has_tank flag when it was not yet marked as an owner.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.Tank, error) {
	category, err := models.ParseTankCategory(in.Category)
	if err != nil {
		return nil, err
	}

	if category == models.CategoryFamily && in.HouseholdID != nil {
		h, err := s.households.FindByID(ctx, *in.HouseholdID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return nil, dErrors.New(dErrors.CodeNotFound, "household not found")
			}
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "lookup owning household")
		}
		if !h.HasTank {
			h.HasTank = true
			if err := s.households.Update(ctx, h); err != nil {
				return nil, dErrors.Wrap(err, dErrors.CodeInternal, "mark household as tank owner")
			}
		}
	}

	t, err := models.NewTank(
		domain.NewTankID(),
		in.Location,
		category,
		in.Capacity,
		in.Level,
		in.Latitude,
		in.Longitude,
		in.HouseholdID,
		requestcontext.Now(ctx),
	)
	if err != nil {
		return nil, err
	}

	if err := s.tanks.Save(ctx, t); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "save tank")
	}

	if s.metrics != nil {
		s.metrics.TanksRegistered.Inc()
	}
	return t, nil
}

// Get retrieves a tank by ID.
func (s *Service) Get(ctx context.Context, id domain.TankID) (*models.Tank, error) {
	t, err := s.tanks.FindByID(ctx, id)
	if err != nil {
		return nil, translateErr(err)
	}
	return t, nil
}

// LevelBand selects tanks by supply condition.
type LevelBand string

// Level bands accepted by List.
const (
	BandAll      LevelBand = ""
	BandEmpty    LevelBand = "empty"
	BandCritical LevelBand = "critical"
	BandLow      LevelBand = "low"
	BandPriority LevelBand = "priority"
)

// ListFilter narrows tank listings. Zero value lists everything.
type ListFilter struct {
	Category        string
	OperationalOnly bool
	Band            LevelBand
}

// List returns tanks matching the filter, applied in precedence order:
// level band, category, operational.
func (s *Service) List(ctx context.Context, f ListFilter) ([]*models.Tank, error) {
	var (
		tanks []*models.Tank
		err   error
	)
	switch {
	case f.Band == BandEmpty:
		tanks, err = s.tanks.FindEmpty(ctx)
	case f.Band == BandCritical:
		tanks, err = s.tanks.FindCritical(ctx, s.criticalPct)
	case f.Band == BandLow:
		tanks, err = s.tanks.FindLow(ctx, s.lowPct)
	case f.Band == BandPriority:
		tanks, err = s.tanks.FindPriority(ctx)
	case f.Category != "":
		var category models.TankCategory
		category, err = models.ParseTankCategory(f.Category)
		if err != nil {
			return nil, err
		}
		tanks, err = s.tanks.FindByCategory(ctx, category)
	case f.OperationalOnly:
		tanks, err = s.tanks.FindOperational(ctx)
	default:
		tanks, err = s.tanks.FindAll(ctx)
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list tanks")
	}
	return tanks, nil
}

// ListForHousehold returns the tanks linked to a household.
func (s *Service) ListForHousehold(ctx context.Context, householdID domain.HouseholdID) ([]*models.Tank, error) {
	tanks, err := s.tanks.FindByHousehold(ctx, householdID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list tanks for household")
	}
	return tanks, nil
}

// MapPoint is a tank projected for map rendering. Only tanks with
// coordinates appear on the map.
type MapPoint struct {
	ID          domain.TankID       `json:"id"`
	Location    string              `json:"location"`
	Category    models.TankCategory `json:"category"`
	Latitude    float64             `json:"latitude"`
	Longitude   float64             `json:"longitude"`
	FillPercent float64             `json:"fill_percent"`
	Status      models.TankStatus   `json:"status"`
	IsPriority  bool                `json:"is_priority"`
}

// MapPoints projects geolocated tanks for map display.
func (s *Service) MapPoints(ctx context.Context) ([]MapPoint, error) {
	tanks, err := s.tanks.FindWithCoordinates(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list geolocated tanks")
	}
	points := make([]MapPoint, 0, len(tanks))
	for _, t := range tanks {
		points = append(points, MapPoint{
			ID:          t.ID,
			Location:    t.Location,
			Category:    t.Category,
			Latitude:    *t.Latitude,
			Longitude:   *t.Longitude,
			FillPercent: t.FillPercent(),
			Status:      t.Status,
			IsPriority:  t.IsPriority(),
		})
	}
	return points, nil
}

// ChangeStatus transitions a tank's operational status.
func (s *Service) ChangeStatus(ctx context.Context, id domain.TankID, status string) (*models.Tank, error) {
	next, err := models.ParseTankStatus(status)
	if err != nil {
		return nil, err
	}
	t, err := s.tanks.FindByID(ctx, id)
	if err != nil {
		return nil, translateErr(err)
	}
	if err := t.ChangeStatus(next, requestcontext.Now(ctx)); err != nil {
		return nil, err
	}
	if err := s.tanks.Update(ctx, t); err != nil {
		return nil, translateErr(err)
	}
	return t, nil
}

// UpdateLevel sets a tank's water level from a manual reading.
func (s *Service) UpdateLevel(ctx context.Context, id domain.TankID, liters int) (*models.Tank, error) {
	t, err := s.tanks.FindByID(ctx, id)
	if err != nil {
		return nil, translateErr(err)
	}
	if err := t.UpdateLevel(liters, requestcontext.Now(ctx)); err != nil {
		return nil, err
	}
	if err := s.tanks.Update(ctx, t); err != nil {
		return nil, translateErr(err)
	}
	return t, nil
}

func translateErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "tank not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "tank storage failure")
}
