package models

import (
	"strings"
	"time"

	"aguasur/pkg/domain"
	dErrors "aguasur/pkg/domain-errors"
)

// IncidentReport is a household-initiated request or complaint.
//
// Invariants:
//   - Description is non-empty (trimmed)
//   - Category, Urgency and Status are members of their closed enumerations
//   - ResolvedAt is stamped exactly once, on the first transition into
//     resolved or closed; re-entering either state leaves it untouched
type IncidentReport struct {
	ID              domain.ReportID    `json:"id"`
	HouseholdID     domain.HouseholdID `json:"household_id"`
	Category        ReportCategory     `json:"category"`
	Description     string             `json:"description"`
	Urgency         Urgency            `json:"urgency"`
	Status          ReportStatus       `json:"status"`
	TankID          *domain.TankID     `json:"tank_id,omitempty"`
	Latitude        *float64           `json:"latitude,omitempty"`
	Longitude       *float64           `json:"longitude,omitempty"`
	ReportedAt      time.Time          `json:"reported_at"`
	ResolvedAt      *time.Time         `json:"resolved_at,omitempty"`
	ResolutionNotes string             `json:"resolution_notes,omitempty"`
}

// NewIncidentReport validates and constructs a pending report.
func NewIncidentReport(id domain.ReportID, householdID domain.HouseholdID, category ReportCategory, description string, urgency Urgency, tankID *domain.TankID, lat, lng *float64, now time.Time) (*IncidentReport, error) {
	description = strings.TrimSpace(description)

	if householdID.IsZero() {
		return nil, dErrors.New(dErrors.CodeValidation, "household id is required")
	}
	if !category.IsValid() {
		return nil, dErrors.Newf(dErrors.CodeValidation, "invalid report category: %s", category)
	}
	if description == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "description cannot be empty")
	}
	if !urgency.IsValid() {
		return nil, dErrors.Newf(dErrors.CodeValidation, "invalid urgency: %s", urgency)
	}

	return &IncidentReport{
		ID:          id,
		HouseholdID: householdID,
		Category:    category,
		Description: description,
		Urgency:     urgency,
		Status:      StatusPending,
		TankID:      tankID,
		Latitude:    lat,
		Longitude:   lng,
		ReportedAt:  now,
	}, nil
}

// IsUrgent reports whether the urgency is high or critical.
func (r *IncidentReport) IsUrgent() bool {
	return r.Urgency == UrgencyHigh || r.Urgency == UrgencyCritical
}

// IsPending reports whether the report still awaits attention.
func (r *IncidentReport) IsPending() bool {
	return r.Status == StatusPending
}

// IsResolved reports whether the report reached a terminal state.
func (r *IncidentReport) IsResolved() bool {
	return r.Status.IsTerminal()
}

// HoursSinceReport returns elapsed hours between the report and now.
func (r *IncidentReport) HoursSinceReport(now time.Time) float64 {
	return now.Sub(r.ReportedAt).Hours()
}

// ChangeStatus moves the report to a new handling state. No linear order is
// enforced: dispatch may jump straight from pending to resolved. The first
// entry into a terminal state stamps the resolution time.
func (r *IncidentReport) ChangeStatus(status ReportStatus, now time.Time) error {
	if !status.IsValid() {
		return dErrors.Newf(dErrors.CodeValidation, "invalid report status: %s", status)
	}
	r.Status = status
	if status.IsTerminal() && r.ResolvedAt == nil {
		t := now
		r.ResolvedAt = &t
	}
	return nil
}

// Resolve is the convenience transition straight into resolved, optionally
// attaching resolution notes.
func (r *IncidentReport) Resolve(notes string, now time.Time) {
	r.Status = StatusResolved
	if r.ResolvedAt == nil {
		t := now
		r.ResolvedAt = &t
	}
	if notes = strings.TrimSpace(notes); notes != "" {
		r.ResolutionNotes = notes
	}
}

// Escalate raises the urgency one step; critical stays critical.
func (r *IncidentReport) Escalate() {
	switch r.Urgency {
	case UrgencyLow:
		r.Urgency = UrgencyMedium
	case UrgencyMedium:
		r.Urgency = UrgencyHigh
	case UrgencyHigh:
		r.Urgency = UrgencyCritical
	}
}
