package handler

import (
	"strings"

	"aguasur/internal/household/service"
	dErrors "aguasur/pkg/domain-errors"
)

// RegisterRequest is the HTTP request body for POST /households.
type RegisterRequest struct {
	Address          string   `json:"address"`
	Occupants        int      `json:"occupants"`
	Contact          string   `json:"contact"`
	StorageCapacity  int      `json:"storage_capacity_liters"`
	HasTank          bool     `json:"has_tank"`
	Zone             string   `json:"zone"`
	DailyConsumption *float64 `json:"daily_consumption_liters,omitempty"`
}

// Validate checks the request shape. Domain rules live in the model
// constructor; this rejects only what is malformed at the transport level.
func (r *RegisterRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	r.Address = strings.TrimSpace(r.Address)
	if r.Address == "" {
		return dErrors.New(dErrors.CodeValidation, "address is required")
	}
	r.Contact = strings.TrimSpace(r.Contact)
	if r.Contact == "" {
		return dErrors.New(dErrors.CodeValidation, "contact is required")
	}
	r.Zone = strings.TrimSpace(r.Zone)
	if r.Zone == "" {
		return dErrors.New(dErrors.CodeValidation, "zone is required")
	}
	return nil
}

// ToInput converts the request to a service input.
func (r *RegisterRequest) ToInput() service.RegisterInput {
	return service.RegisterInput{
		Address:          r.Address,
		Occupants:        r.Occupants,
		Contact:          r.Contact,
		StorageCapacity:  r.StorageCapacity,
		HasTank:          r.HasTank,
		Zone:             r.Zone,
		DailyConsumption: r.DailyConsumption,
	}
}
