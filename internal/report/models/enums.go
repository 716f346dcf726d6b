package models

import dErrors "aguasur/pkg/domain-errors"

// ReportCategory classifies what a household is reporting.
// Invariant: the value must be one of the supported categories; unknown
// strings are rejected at parse time, never coerced.
type ReportCategory string

const (
	CategoryWaterRunningOut   ReportCategory = "water_running_out"
	CategoryWaterContaminated ReportCategory = "water_contaminated"
	CategoryTankDamaged       ReportCategory = "tank_damaged"
	CategoryLeak              ReportCategory = "leak"
	CategoryRefillRequest     ReportCategory = "refill_request"
	CategoryOther             ReportCategory = "other"
)

var validCategories = map[ReportCategory]bool{
	CategoryWaterRunningOut:   true,
	CategoryWaterContaminated: true,
	CategoryTankDamaged:       true,
	CategoryLeak:              true,
	CategoryRefillRequest:     true,
	CategoryOther:             true,
}

// ParseReportCategory constructs a ReportCategory from external input.
func ParseReportCategory(s string) (ReportCategory, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "report category cannot be empty")
	}
	c := ReportCategory(s)
	if !c.IsValid() {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "invalid report category: %s", s)
	}
	return c, nil
}

func (c ReportCategory) IsValid() bool {
	return validCategories[c]
}

func (c ReportCategory) String() string {
	return string(c)
}

// Urgency ranks how quickly a report needs dispatch attention.
type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

var validUrgencies = map[Urgency]bool{
	UrgencyLow:      true,
	UrgencyMedium:   true,
	UrgencyHigh:     true,
	UrgencyCritical: true,
}

// ParseUrgency constructs an Urgency from external input. Empty input
// defaults to medium, matching the report intake contract.
func ParseUrgency(s string) (Urgency, error) {
	if s == "" {
		return UrgencyMedium, nil
	}
	u := Urgency(s)
	if !u.IsValid() {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "invalid urgency: %s", s)
	}
	return u, nil
}

func (u Urgency) IsValid() bool {
	return validUrgencies[u]
}

func (u Urgency) String() string {
	return string(u)
}

// ReportStatus is the handling state of an incident report.
type ReportStatus string

const (
	StatusPending    ReportStatus = "pending"
	StatusInReview   ReportStatus = "in_review"
	StatusInProgress ReportStatus = "in_progress"
	StatusResolved   ReportStatus = "resolved"
	StatusClosed     ReportStatus = "closed"
)

var validStatuses = map[ReportStatus]bool{
	StatusPending:    true,
	StatusInReview:   true,
	StatusInProgress: true,
	StatusResolved:   true,
	StatusClosed:     true,
}

// ParseReportStatus constructs a ReportStatus from external input.
func ParseReportStatus(s string) (ReportStatus, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "report status cannot be empty")
	}
	st := ReportStatus(s)
	if !st.IsValid() {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "invalid report status: %s", s)
	}
	return st, nil
}

func (s ReportStatus) IsValid() bool {
	return validStatuses[s]
}

func (s ReportStatus) String() string {
	return string(s)
}

// IsTerminal reports whether the status counts as a resolution state.
func (s ReportStatus) IsTerminal() bool {
	return s == StatusResolved || s == StatusClosed
}
