package models

import (
	"strings"
	"time"

	"aguasur/pkg/domain"
	dErrors "aguasur/pkg/domain-errors"
)

// RefillRecord is the historical fact that a tank received water from a
// provider at a cost. Records are immutable once created: corrections are
// new records, never edits.
//
// Invariants:
//   - Liters > 0, Cost >= 0, Provider non-empty
//   - 0 <= LevelBefore <= LevelAfter (the clamp at capacity means LevelAfter
//     is not necessarily LevelBefore + Liters)
type RefillRecord struct {
	ID          domain.RefillID `json:"id"`
	TankID      domain.TankID   `json:"tank_id"`
	SuppliedAt  time.Time       `json:"supplied_at"`
	Liters      int             `json:"liters"`
	Cost        float64         `json:"cost"`
	Provider    string          `json:"provider"`
	LevelBefore int             `json:"level_before"`
	LevelAfter  int             `json:"level_after"`
	Notes       string          `json:"notes,omitempty"`
}

// NewRefillRecord validates and constructs an immutable refill record.
func NewRefillRecord(id domain.RefillID, tankID domain.TankID, liters int, cost float64, provider string, levelBefore, levelAfter int, notes string, now time.Time) (*RefillRecord, error) {
	provider = strings.TrimSpace(provider)
	notes = strings.TrimSpace(notes)

	if tankID.IsZero() {
		return nil, dErrors.New(dErrors.CodeValidation, "tank id is required")
	}
	if liters <= 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "supplied liters must be greater than zero")
	}
	if cost < 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "cost cannot be negative")
	}
	if provider == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "provider cannot be empty")
	}
	if levelBefore < 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "level before cannot be negative")
	}
	if levelAfter < levelBefore {
		return nil, dErrors.New(dErrors.CodeValidation, "level after cannot be less than level before")
	}

	return &RefillRecord{
		ID:          id,
		TankID:      tankID,
		SuppliedAt:  now,
		Liters:      liters,
		Cost:        cost,
		Provider:    provider,
		LevelBefore: levelBefore,
		LevelAfter:  levelAfter,
		Notes:       notes,
	}, nil
}

// CostPerLiter returns the unit cost of this delivery.
func (r *RefillRecord) CostPerLiter() float64 {
	if r.Liters == 0 {
		return 0
	}
	return r.Cost / float64(r.Liters)
}

// IsFullRefill reports whether the delivery topped the tank off.
func (r *RefillRecord) IsFullRefill(tankCapacity int) bool {
	return r.LevelAfter >= tankCapacity
}

// PercentOfCapacity returns the delivered volume as a share of the tank's
// capacity.
func (r *RefillRecord) PercentOfCapacity(tankCapacity int) float64 {
	if tankCapacity == 0 {
		return 0
	}
	return float64(r.Liters) / float64(tankCapacity) * 100
}
