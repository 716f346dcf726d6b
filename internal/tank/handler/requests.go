package handler

import (
	"strings"

	"aguasur/internal/tank/service"
	"aguasur/pkg/domain"
	dErrors "aguasur/pkg/domain-errors"
)

// RegisterRequest is the HTTP request body for POST /tanks.
type RegisterRequest struct {
	Location    string   `json:"location"`
	Category    string   `json:"category"`
	Capacity    int      `json:"capacity_liters"`
	Level       int      `json:"level_liters"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	HouseholdID string   `json:"household_id,omitempty"`

	parsedHouseholdID *domain.HouseholdID
}

// Validate checks the request shape and parses the optional household
// reference. Both coordinates must be present or both absent.
func (r *RegisterRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	r.Location = strings.TrimSpace(r.Location)
	if r.Location == "" {
		return dErrors.New(dErrors.CodeValidation, "location is required")
	}
	r.Category = strings.TrimSpace(r.Category)
	if r.Category == "" {
		return dErrors.New(dErrors.CodeValidation, "category is required")
	}
	if (r.Latitude == nil) != (r.Longitude == nil) {
		return dErrors.New(dErrors.CodeValidation, "latitude and longitude must be provided together")
	}
	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		return dErrors.New(dErrors.CodeValidation, "latitude must be between -90 and 90")
	}
	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		return dErrors.New(dErrors.CodeValidation, "longitude must be between -180 and 180")
	}

	if r.HouseholdID = strings.TrimSpace(r.HouseholdID); r.HouseholdID != "" {
		id, err := domain.ParseHouseholdID(r.HouseholdID)
		if err != nil {
			return err
		}
		r.parsedHouseholdID = &id
	}
	return nil
}

// ToInput converts the request to a service input.
func (r *RegisterRequest) ToInput() service.RegisterInput {
	return service.RegisterInput{
		Location:    r.Location,
		Category:    r.Category,
		Capacity:    r.Capacity,
		Level:       r.Level,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		HouseholdID: r.parsedHouseholdID,
	}
}

// ChangeStatusRequest is the HTTP request body for PUT /tanks/{tankID}/status.
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// Validate checks the status is present. Enum membership is checked by
// the service parse.
func (r *ChangeStatusRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.Status = strings.TrimSpace(r.Status); r.Status == "" {
		return dErrors.New(dErrors.CodeValidation, "status is required")
	}
	return nil
}

// UpdateLevelRequest is the HTTP request body for PUT /tanks/{tankID}/level.
type UpdateLevelRequest struct {
	Level int `json:"level_liters"`
}

// Validate rejects negative readings. The capacity ceiling is enforced
// against the tank itself.
func (r *UpdateLevelRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.Level < 0 {
		return dErrors.New(dErrors.CodeValidation, "level_liters cannot be negative")
	}
	return nil
}
