// Package domain holds shared identifier types for the water access system.
//
// Each entity gets its own UUID-backed type so the compiler rejects passing
// a household ID where a tank ID is expected. Construct IDs from external
// input via the Parse functions; direct casting bypasses validation.
package domain

import (
	"github.com/google/uuid"

	dErrors "aguasur/pkg/domain-errors"
)

// Typed entity identifiers.
type (
	HouseholdID uuid.UUID
	TankID      uuid.UUID
	RefillID    uuid.UUID
	ReportID    uuid.UUID
)

func (id HouseholdID) String() string { return uuid.UUID(id).String() }
func (id TankID) String() string      { return uuid.UUID(id).String() }
func (id RefillID) String() string    { return uuid.UUID(id).String() }
func (id ReportID) String() string    { return uuid.UUID(id).String() }

// IsZero reports whether the ID is the nil UUID.
func (id HouseholdID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }
func (id TankID) IsZero() bool      { return uuid.UUID(id) == uuid.Nil }
func (id RefillID) IsZero() bool    { return uuid.UUID(id) == uuid.Nil }
func (id ReportID) IsZero() bool    { return uuid.UUID(id) == uuid.Nil }

// NewHouseholdID generates a fresh household identifier.
func NewHouseholdID() HouseholdID { return HouseholdID(uuid.New()) }

// NewTankID generates a fresh tank identifier.
func NewTankID() TankID { return TankID(uuid.New()) }

// NewRefillID generates a fresh refill record identifier.
func NewRefillID() RefillID { return RefillID(uuid.New()) }

// NewReportID generates a fresh incident report identifier.
func NewReportID() ReportID { return ReportID(uuid.New()) }

func parseUUID(raw, what string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s id cannot be empty", what)
	}
	u, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "invalid %s id", what)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s id cannot be nil", what)
	}
	return u, nil
}

// ParseHouseholdID validates external input as a household ID.
func ParseHouseholdID(raw string) (HouseholdID, error) {
	u, err := parseUUID(raw, "household")
	return HouseholdID(u), err
}

// ParseTankID validates external input as a tank ID.
func ParseTankID(raw string) (TankID, error) {
	u, err := parseUUID(raw, "tank")
	return TankID(u), err
}

// ParseRefillID validates external input as a refill record ID.
func ParseRefillID(raw string) (RefillID, error) {
	u, err := parseUUID(raw, "refill")
	return RefillID(u), err
}

// ParseReportID validates external input as an incident report ID.
func ParseReportID(raw string) (ReportID, error) {
	u, err := parseUUID(raw, "report")
	return ReportID(u), err
}
