package handler

import (
	"strings"

	"aguasur/internal/refill/service"
	"aguasur/pkg/domain"
	dErrors "aguasur/pkg/domain-errors"
)

// RecordRequest is the HTTP request body for POST /refills.
type RecordRequest struct {
	TankID   string  `json:"tank_id"`
	Liters   int     `json:"liters"`
	Cost     float64 `json:"cost"`
	Provider string  `json:"provider"`
	Notes    string  `json:"notes,omitempty"`

	parsedTankID domain.TankID
}

// Validate checks the request shape and parses the tank reference.
func (r *RecordRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	tankID, err := domain.ParseTankID(strings.TrimSpace(r.TankID))
	if err != nil {
		return err
	}
	r.parsedTankID = tankID

	if r.Liters <= 0 {
		return dErrors.New(dErrors.CodeValidation, "liters must be greater than zero")
	}
	if r.Cost < 0 {
		return dErrors.New(dErrors.CodeValidation, "cost cannot be negative")
	}
	r.Provider = strings.TrimSpace(r.Provider)
	if r.Provider == "" {
		return dErrors.New(dErrors.CodeValidation, "provider is required")
	}
	return nil
}

// ToInput converts the request to a service input.
func (r *RecordRequest) ToInput() service.RecordInput {
	return service.RecordInput{
		TankID:   r.parsedTankID,
		Liters:   r.Liters,
		Cost:     r.Cost,
		Provider: r.Provider,
		Notes:    strings.TrimSpace(r.Notes),
	}
}
