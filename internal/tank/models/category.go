package models

import dErrors "aguasur/pkg/domain-errors"

// TankCategory distinguishes who a storage tank serves.
// Invariant: the value must be one of the supported categories.
//
// Usage: construct via ParseTankCategory at trust boundaries to enforce the
// allowlist; direct casting bypasses validation.
type TankCategory string

const (
	CategoryFamily       TankCategory = "family"
	CategoryCommunal     TankCategory = "communal"
	CategorySchool       TankCategory = "school"
	CategoryHealthCenter TankCategory = "health_center"
)

// validCategories is the single source of truth for valid tank categories.
var validCategories = map[TankCategory]bool{
	CategoryFamily:       true,
	CategoryCommunal:     true,
	CategorySchool:       true,
	CategoryHealthCenter: true,
}

// ParseTankCategory constructs a TankCategory from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported.
func ParseTankCategory(s string) (TankCategory, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "tank category cannot be empty")
	}
	c := TankCategory(s)
	if !c.IsValid() {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "invalid tank category: %s", s)
	}
	return c, nil
}

// IsValid checks if the category is one of the supported enum values.
func (c TankCategory) IsValid() bool {
	return validCategories[c]
}

func (c TankCategory) String() string {
	return string(c)
}

// TankStatus is the operational state of a tank.
type TankStatus string

const (
	StatusOperational      TankStatus = "operational"
	StatusDamaged          TankStatus = "damaged"
	StatusUnderMaintenance TankStatus = "under_maintenance"
	StatusInactive         TankStatus = "inactive"
)

var validStatuses = map[TankStatus]bool{
	StatusOperational:      true,
	StatusDamaged:          true,
	StatusUnderMaintenance: true,
	StatusInactive:         true,
}

// ParseTankStatus constructs a TankStatus from external input.
func ParseTankStatus(s string) (TankStatus, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "tank status cannot be empty")
	}
	st := TankStatus(s)
	if !st.IsValid() {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "invalid tank status: %s", s)
	}
	return st, nil
}

// IsValid checks if the status is one of the supported enum values.
func (s TankStatus) IsValid() bool {
	return validStatuses[s]
}

func (s TankStatus) String() string {
	return string(s)
}
