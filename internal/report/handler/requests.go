package handler

import (
	"strings"

	"aguasur/internal/report/service"
	"aguasur/pkg/domain"
	dErrors "aguasur/pkg/domain-errors"
)

// CreateRequest is the HTTP request body for POST /reports.
type CreateRequest struct {
	HouseholdID string   `json:"household_id"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Urgency     string   `json:"urgency,omitempty"`
	TankID      string   `json:"tank_id,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`

	parsedHouseholdID domain.HouseholdID
	parsedTankID      *domain.TankID
}

// Validate checks the request shape and parses entity references. Enum
// membership for category and urgency is checked by the service parse.
func (r *CreateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	householdID, err := domain.ParseHouseholdID(strings.TrimSpace(r.HouseholdID))
	if err != nil {
		return err
	}
	r.parsedHouseholdID = householdID

	r.Category = strings.TrimSpace(r.Category)
	if r.Category == "" {
		return dErrors.New(dErrors.CodeValidation, "category is required")
	}
	r.Description = strings.TrimSpace(r.Description)
	if r.Description == "" {
		return dErrors.New(dErrors.CodeValidation, "description is required")
	}
	r.Urgency = strings.TrimSpace(r.Urgency)

	if tankID := strings.TrimSpace(r.TankID); tankID != "" {
		id, err := domain.ParseTankID(tankID)
		if err != nil {
			return err
		}
		r.parsedTankID = &id
	}
	if (r.Latitude == nil) != (r.Longitude == nil) {
		return dErrors.New(dErrors.CodeValidation, "latitude and longitude must be provided together")
	}
	return nil
}

// ToInput converts the request to a service input.
func (r *CreateRequest) ToInput() service.CreateInput {
	return service.CreateInput{
		HouseholdID: r.parsedHouseholdID,
		Category:    r.Category,
		Description: r.Description,
		Urgency:     r.Urgency,
		TankID:      r.parsedTankID,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
	}
}

// ChangeStatusRequest is the HTTP request body for PUT /reports/{reportID}/status.
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// Validate checks the status is present.
func (r *ChangeStatusRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.Status = strings.TrimSpace(r.Status); r.Status == "" {
		return dErrors.New(dErrors.CodeValidation, "status is required")
	}
	return nil
}

// ResolveRequest is the HTTP request body for POST /reports/{reportID}/resolve.
// Notes are optional.
type ResolveRequest struct {
	Notes string `json:"notes,omitempty"`
}

// Validate trims the notes. An empty body is valid.
func (r *ResolveRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Notes = strings.TrimSpace(r.Notes)
	return nil
}
