package models

import (
	"strings"
	"time"

	"aguasur/pkg/domain"
	dErrors "aguasur/pkg/domain-errors"
)

// litersPerPersonPerDay is the minimum-subsistence heuristic used when a
// household does not report its own consumption figure.
const litersPerPersonPerDay = 50

// Household is a registered family/home in the coverage zone.
//
// Invariants:
//   - Address, Contact and Zone are non-empty (trimmed)
//   - Occupants > 0
//   - StorageCapacity > 0 liters
//   - Contact is unique across all households (enforced at the service
//     layer via the store lookup, not here)
//   - RegisteredAt is immutable after construction
type Household struct {
	ID               domain.HouseholdID `json:"id"`
	Address          string             `json:"address"`
	Occupants        int                `json:"occupants"`
	Contact          string             `json:"contact"`
	StorageCapacity  int                `json:"storage_capacity_liters"`
	HasTank          bool               `json:"has_tank"`
	Zone             string             `json:"zone"`
	DailyConsumption float64            `json:"daily_consumption_liters"`
	Active           bool               `json:"active"`
	RegisteredAt     time.Time          `json:"registered_at"`
}

// NewHousehold validates and constructs a Household. When dailyConsumption
// is nil the figure is derived as occupants x 50 L/day.
func NewHousehold(id domain.HouseholdID, address string, occupants int, contact string, storageCapacity int, hasTank bool, zone string, dailyConsumption *float64, now time.Time) (*Household, error) {
	address = strings.TrimSpace(address)
	contact = strings.TrimSpace(contact)
	zone = strings.TrimSpace(zone)

	if address == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "address cannot be empty")
	}
	if occupants <= 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "occupant count must be greater than zero")
	}
	if contact == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "contact cannot be empty")
	}
	if storageCapacity <= 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "storage capacity must be greater than zero")
	}
	if zone == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "zone cannot be empty")
	}
	if dailyConsumption != nil && *dailyConsumption < 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "daily consumption cannot be negative")
	}

	h := &Household{
		ID:              id,
		Address:         address,
		Occupants:       occupants,
		Contact:         contact,
		StorageCapacity: storageCapacity,
		HasTank:         hasTank,
		Zone:            zone,
		Active:          true,
		RegisteredAt:    now,
	}
	if dailyConsumption != nil {
		h.DailyConsumption = *dailyConsumption
	} else {
		h.DailyConsumption = h.EstimatedDailyConsumption()
	}
	return h, nil
}

// EstimatedDailyConsumption derives the household's consumption from its
// occupant count at 50 L per person per day.
func (h *Household) EstimatedDailyConsumption() float64 {
	return float64(h.Occupants * litersPerPersonPerDay)
}

// AutonomyDays estimates how many days the given liters last at the
// household's average consumption. Zero consumption yields zero days.
func (h *Household) AutonomyDays(currentLiters float64) float64 {
	if h.DailyConsumption <= 0 {
		return 0
	}
	return currentLiters / h.DailyConsumption
}

// NeedsWaterUrgently reports whether the household's remaining autonomy
// falls below minDays.
func (h *Household) NeedsWaterUrgently(currentLiters, minDays float64) bool {
	return h.AutonomyDays(currentLiters) < minDays
}

// UpdateConsumption replaces the average daily consumption figure.
func (h *Household) UpdateConsumption(litersPerDay float64) error {
	if litersPerDay < 0 {
		return dErrors.New(dErrors.CodeValidation, "daily consumption cannot be negative")
	}
	h.DailyConsumption = litersPerDay
	return nil
}

// Deactivate removes the household from active dispatch consideration.
func (h *Household) Deactivate() {
	h.Active = false
}

// Activate restores the household to active dispatch consideration.
func (h *Household) Activate() {
	h.Active = true
}
