// Package service builds the operational dashboard: aggregate counts per
// domain plus the prioritized alert list dispatchers act on.
package service

import (
	"context"
	"math"
	"strconv"

	householdstore "aguasur/internal/household/store"
	"aguasur/internal/platform/metrics"
	refillstore "aguasur/internal/refill/store"
	reportmodels "aguasur/internal/report/models"
	reportstore "aguasur/internal/report/store"
	tankmodels "aguasur/internal/tank/models"
	tankstore "aguasur/internal/tank/store"
	dErrors "aguasur/pkg/domain-errors"
)

// Alert severities, ordered from most to least pressing.
const (
	SeverityCritical = "critical"
	SeverityUrgent   = "urgent"
	SeverityWarning  = "warning"
)

// Alert is one actionable condition on the dashboard.
type Alert struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Count    int    `json:"count"`
}

// HouseholdSummary aggregates the household registry.
type HouseholdSummary struct {
	Total       int `json:"total"`
	Active      int `json:"active"`
	WithTank    int `json:"with_tank"`
	WithoutTank int `json:"without_tank"`
}

// TankSummary aggregates the tank fleet and its stored water.
type TankSummary struct {
	Total               int     `json:"total"`
	Operational         int     `json:"operational"`
	Empty               int     `json:"empty"`
	CriticalLevel       int     `json:"critical_level"`
	LowLevel            int     `json:"low_level"`
	Priority            int     `json:"priority"`
	TotalCapacityLiters int     `json:"total_capacity_liters"`
	TotalLevelLiters    int     `json:"total_level_liters"`
	OverallFillPercent  float64 `json:"overall_fill_percent"`
}

// RefillSummary aggregates the delivery history.
type RefillSummary struct {
	Total               int     `json:"total"`
	TotalLiters         int     `json:"total_liters"`
	TotalCost           float64 `json:"total_cost"`
	AverageCostPerLiter float64 `json:"average_cost_per_liter"`
}

// ReportSummary aggregates the incident backlog.
type ReportSummary struct {
	Total            int `json:"total"`
	Pending          int `json:"pending"`
	UrgentUnresolved int `json:"urgent_unresolved"`
}

// Dashboard is the full operational snapshot.
type Dashboard struct {
	Households HouseholdSummary `json:"households"`
	Tanks      TankSummary      `json:"tanks"`
	Refills    RefillSummary    `json:"refills"`
	Reports    ReportSummary    `json:"reports"`
	Alerts     []Alert          `json:"alerts"`
}

// Service assembles the dashboard from the four domain stores.
type Service struct {
	households  householdstore.Store
	tanks       tankstore.Store
	refills     refillstore.Store
	reports     reportstore.Store
	metrics     *metrics.Metrics
	criticalPct float64
	lowPct      float64
}

// New constructs a dashboard service with the given level thresholds.
// Pass zero thresholds to use the model defaults.
func New(households householdstore.Store, tanks tankstore.Store, refills refillstore.Store, reports reportstore.Store, m *metrics.Metrics, criticalPct, lowPct float64) *Service {
	if criticalPct <= 0 {
		criticalPct = tankmodels.DefaultCriticalPct
	}
	if lowPct <= 0 {
		lowPct = tankmodels.DefaultLowPct
	}
	return &Service{
		households:  households,
		tanks:       tanks,
		refills:     refills,
		reports:     reports,
		metrics:     m,
		criticalPct: criticalPct,
		lowPct:      lowPct,
	}
}

// Build assembles the current snapshot. An empty system yields all-zero
// summaries and no alerts.
func (s *Service) Build(ctx context.Context) (*Dashboard, error) {
	d := &Dashboard{Alerts: []Alert{}}

	if err := s.buildHouseholds(ctx, d); err != nil {
		return nil, err
	}
	if err := s.buildTanks(ctx, d); err != nil {
		return nil, err
	}
	if err := s.buildRefills(ctx, d); err != nil {
		return nil, err
	}
	if err := s.buildReports(ctx, d); err != nil {
		return nil, err
	}

	// Alert order is fixed: most severe supply failures first, then the
	// report backlog, then early warnings. Zero-count alerts are omitted.
	if n := d.Tanks.Empty; n > 0 {
		d.Alerts = append(d.Alerts, Alert{SeverityCritical, alertMessage(n, "tank is empty", "tanks are empty"), n})
	}
	if n := d.Tanks.CriticalLevel; n > 0 {
		d.Alerts = append(d.Alerts, Alert{SeverityUrgent, alertMessage(n, "tank at critical level", "tanks at critical level"), n})
	}
	if n := d.Reports.UrgentUnresolved; n > 0 {
		d.Alerts = append(d.Alerts, Alert{SeverityUrgent, alertMessage(n, "urgent report awaiting attention", "urgent reports awaiting attention"), n})
	}
	if n := d.Tanks.LowLevel; n > 0 {
		d.Alerts = append(d.Alerts, Alert{SeverityWarning, alertMessage(n, "tank at low level", "tanks at low level"), n})
	}

	if s.metrics != nil {
		s.metrics.DashboardBuilds.Inc()
	}
	return d, nil
}

func (s *Service) buildHouseholds(ctx context.Context, d *Dashboard) error {
	all, err := s.households.FindAll(ctx)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "aggregate households")
	}
	d.Households.Total = len(all)
	for _, h := range all {
		if h.Active {
			d.Households.Active++
		}
		if h.HasTank {
			d.Households.WithTank++
		} else {
			d.Households.WithoutTank++
		}
	}
	return nil
}

func (s *Service) buildTanks(ctx context.Context, d *Dashboard) error {
	all, err := s.tanks.FindAll(ctx)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "aggregate tanks")
	}
	d.Tanks.Total = len(all)
	for _, t := range all {
		if t.IsOperational() {
			d.Tanks.Operational++
			// Level bands are inclusive over operational tanks only: an
			// empty operational tank is also critical and low.
			if t.IsCritical(s.criticalPct) {
				d.Tanks.CriticalLevel++
			}
			if t.IsLow(s.lowPct) {
				d.Tanks.LowLevel++
			}
		}
		if t.IsEmpty() {
			d.Tanks.Empty++
		}
		if t.IsPriority() {
			d.Tanks.Priority++
		}
		d.Tanks.TotalCapacityLiters += t.Capacity
		d.Tanks.TotalLevelLiters += t.Level
	}
	if d.Tanks.TotalCapacityLiters > 0 {
		pct := float64(d.Tanks.TotalLevelLiters) / float64(d.Tanks.TotalCapacityLiters) * 100
		d.Tanks.OverallFillPercent = round2(pct)
	}
	return nil
}

func (s *Service) buildRefills(ctx context.Context, d *Dashboard) error {
	var err error
	if d.Refills.Total, err = s.refills.CountAll(ctx); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "count refills")
	}
	if d.Refills.TotalLiters, err = s.refills.SumLiters(ctx); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "sum refill liters")
	}
	if d.Refills.TotalCost, err = s.refills.SumCost(ctx); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "sum refill cost")
	}
	if d.Refills.TotalLiters > 0 {
		d.Refills.AverageCostPerLiter = round2(d.Refills.TotalCost / float64(d.Refills.TotalLiters))
	}
	d.Refills.TotalCost = round2(d.Refills.TotalCost)
	return nil
}

func (s *Service) buildReports(ctx context.Context, d *Dashboard) error {
	var err error
	if d.Reports.Total, err = s.reports.CountAll(ctx); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "count reports")
	}
	if d.Reports.Pending, err = s.reports.CountByStatus(ctx, reportmodels.StatusPending); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "count pending reports")
	}
	if d.Reports.UrgentUnresolved, err = s.reports.CountUrgentUnresolved(ctx); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "count urgent reports")
	}
	return nil
}

func alertMessage(n int, singular, plural string) string {
	if n == 1 {
		return "1 " + singular
	}
	return strconv.Itoa(n) + " " + plural
}

// Money and percentage figures are reported to 2 decimals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
