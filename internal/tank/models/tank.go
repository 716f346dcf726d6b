package models

import (
	"strings"
	"time"

	"aguasur/pkg/domain"
	dErrors "aguasur/pkg/domain-errors"
)

// Default fill-percentage thresholds for level alerts. Callers may pass
// their own thresholds to IsCritical/IsLow.
const (
	DefaultCriticalPct = 20.0
	DefaultLowPct      = 40.0
)

// Tank is a water storage unit, privately or communally owned.
//
// Invariants:
//   - Location is non-empty (trimmed)
//   - Capacity > 0 liters
//   - 0 <= Level <= Capacity at all times
//   - Level changes only through Fill, Consume and UpdateLevel, all of
//     which refresh UpdatedAt
type Tank struct {
	ID          domain.TankID       `json:"id"`
	Location    string              `json:"location"`
	Category    TankCategory        `json:"category"`
	Capacity    int                 `json:"capacity_liters"`
	Level       int                 `json:"level_liters"`
	Latitude    *float64            `json:"latitude,omitempty"`
	Longitude   *float64            `json:"longitude,omitempty"`
	HouseholdID *domain.HouseholdID `json:"household_id,omitempty"`
	Status      TankStatus          `json:"status"`
	InstalledAt time.Time           `json:"installed_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// NewTank validates and constructs a Tank. Status defaults to operational.
func NewTank(id domain.TankID, location string, category TankCategory, capacity, level int, lat, lng *float64, householdID *domain.HouseholdID, now time.Time) (*Tank, error) {
	location = strings.TrimSpace(location)

	if location == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "location cannot be empty")
	}
	if !category.IsValid() {
		return nil, dErrors.Newf(dErrors.CodeValidation, "invalid tank category: %s", category)
	}
	if capacity <= 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "capacity must be greater than zero")
	}
	if level < 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "level cannot be negative")
	}
	if level > capacity {
		return nil, dErrors.New(dErrors.CodeValidation, "level cannot exceed capacity")
	}

	return &Tank{
		ID:          id,
		Location:    location,
		Category:    category,
		Capacity:    capacity,
		Level:       level,
		Latitude:    lat,
		Longitude:   lng,
		HouseholdID: householdID,
		Status:      StatusOperational,
		InstalledAt: now,
		UpdatedAt:   now,
	}, nil
}

// FillPercent returns the fill level as a percentage of capacity.
func (t *Tank) FillPercent() float64 {
	if t.Capacity == 0 {
		return 0
	}
	return float64(t.Level) / float64(t.Capacity) * 100
}

// IsEmpty reports whether the tank holds no water.
func (t *Tank) IsEmpty() bool {
	return t.Level == 0
}

// IsFull reports whether the tank is at capacity.
func (t *Tank) IsFull() bool {
	return t.Level >= t.Capacity
}

// IsCritical reports whether the fill percentage is at or below the given
// threshold.
func (t *Tank) IsCritical(thresholdPct float64) bool {
	return t.FillPercent() <= thresholdPct
}

// IsLow reports whether the fill percentage is at or below the given
// threshold.
func (t *Tank) IsLow(thresholdPct float64) bool {
	return t.FillPercent() <= thresholdPct
}

// IsPriority reports whether the tank serves a school or health center.
// Priority tanks are refilled ahead of family and communal ones.
func (t *Tank) IsPriority() bool {
	return t.Category == CategorySchool || t.Category == CategoryHealthCenter
}

// LitersToFull returns how many liters the tank can still take.
func (t *Tank) LitersToFull() int {
	return t.Capacity - t.Level
}

// HasCoordinates reports whether the tank carries a GPS position.
func (t *Tank) HasCoordinates() bool {
	return t.Latitude != nil && t.Longitude != nil
}

// Fill adds liters to the tank, clamping at capacity. Water delivered past
// the brim spills; that is not an error, the excess is simply discarded.
func (t *Tank) Fill(liters int, now time.Time) error {
	if liters <= 0 {
		return dErrors.New(dErrors.CodeValidation, "liters must be greater than zero")
	}
	t.Level = min(t.Level+liters, t.Capacity)
	t.UpdatedAt = now
	return nil
}

// Consume removes liters from the tank. Fails without mutating when the
// requested amount exceeds the current level.
func (t *Tank) Consume(liters int, now time.Time) error {
	if liters <= 0 {
		return dErrors.New(dErrors.CodeValidation, "liters must be greater than zero")
	}
	if liters > t.Level {
		return dErrors.Newf(dErrors.CodeValidation, "not enough water: %dL available, %dL requested", t.Level, liters)
	}
	t.Level -= liters
	t.UpdatedAt = now
	return nil
}

// UpdateLevel sets the level to an absolute measured value.
func (t *Tank) UpdateLevel(level int, now time.Time) error {
	if level < 0 {
		return dErrors.New(dErrors.CodeValidation, "level cannot be negative")
	}
	if level > t.Capacity {
		return dErrors.Newf(dErrors.CodeValidation, "level (%dL) cannot exceed capacity (%dL)", level, t.Capacity)
	}
	t.Level = level
	t.UpdatedAt = now
	return nil
}

// ChangeStatus moves the tank to a new operational status.
func (t *Tank) ChangeStatus(status TankStatus, now time.Time) error {
	if !status.IsValid() {
		return dErrors.Newf(dErrors.CodeValidation, "invalid tank status: %s", status)
	}
	t.Status = status
	t.UpdatedAt = now
	return nil
}

// IsOperational reports whether the tank can take refills.
func (t *Tank) IsOperational() bool {
	return t.Status == StatusOperational
}
