package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	householdmodels "aguasur/internal/household/models"
	householdstore "aguasur/internal/household/store"
	refillmodels "aguasur/internal/refill/models"
	refillstore "aguasur/internal/refill/store"
	reportmodels "aguasur/internal/report/models"
	reportstore "aguasur/internal/report/store"
	tankmodels "aguasur/internal/tank/models"
	tankstore "aguasur/internal/tank/store"
	"aguasur/pkg/domain"
)

type DashboardSuite struct {
	suite.Suite
	svc        *Service
	households *householdstore.InMemoryStore
	tanks      *tankstore.InMemoryStore
	refills    *refillstore.InMemoryStore
	reports    *reportstore.InMemoryStore
	ctx        context.Context
	now        time.Time
}

func (s *DashboardSuite) SetupTest() {
	s.households = householdstore.NewMemory()
	s.tanks = tankstore.NewMemory()
	s.refills = refillstore.NewMemory()
	s.reports = reportstore.NewMemory()
	s.svc = New(s.households, s.tanks, s.refills, s.reports, nil, 0, 0)
	s.ctx = context.Background()
	s.now = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
}

func TestDashboardSuite(t *testing.T) {
	suite.Run(t, new(DashboardSuite))
}

func (s *DashboardSuite) addHousehold(active, hasTank bool) *householdmodels.Household {
	h, err := householdmodels.NewHousehold(domain.NewHouseholdID(), "Calle "+domain.NewHouseholdID().String()[:8], 4, domain.NewHouseholdID().String(), 1100, hasTank, "cerro-alto", nil, s.now)
	s.Require().NoError(err)
	if !active {
		h.Deactivate()
	}
	s.Require().NoError(s.households.Save(s.ctx, h))
	return h
}

func (s *DashboardSuite) addTank(capacity, level int) *tankmodels.Tank {
	return s.addTankOf(tankmodels.CategoryCommunal, capacity, level)
}

func (s *DashboardSuite) addTankOf(category tankmodels.TankCategory, capacity, level int) *tankmodels.Tank {
	t, err := tankmodels.NewTank(domain.NewTankID(), "block "+domain.NewTankID().String()[:8], category, capacity, level, nil, nil, nil, s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.tanks.Save(s.ctx, t))
	return t
}

func (s *DashboardSuite) addReport(urgency reportmodels.Urgency) *reportmodels.IncidentReport {
	h := s.addHousehold(true, false)
	r, err := reportmodels.NewIncidentReport(domain.NewReportID(), h.ID, reportmodels.CategoryWaterRunningOut, "running dry", urgency, nil, nil, nil, s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.reports.Save(s.ctx, r))
	return r
}

func (s *DashboardSuite) TestEmptySystem() {
	d, err := s.svc.Build(s.ctx)
	s.Require().NoError(err)
	s.Zero(d.Households.Total)
	s.Zero(d.Tanks.Total)
	s.Zero(d.Refills.Total)
	s.Zero(d.Reports.Total)
	s.NotNil(d.Alerts)
	s.Empty(d.Alerts)
}

func (s *DashboardSuite) TestSummaries() {
	s.addHousehold(true, true)
	s.addHousehold(false, false)
	s.addTank(1000, 500)
	s.addTank(1000, 250)
	s.addTankOf(tankmodels.CategorySchool, 1000, 750)

	for _, liters := range []int{400, 600} {
		record, err := refillmodels.NewRefillRecord(domain.NewRefillID(), domain.NewTankID(), liters, float64(liters)*0.15, "Aguatero Norte", 100, 100+liters, "", s.now)
		s.Require().NoError(err)
		s.Require().NoError(s.refills.Save(s.ctx, record))
	}

	d, err := s.svc.Build(s.ctx)
	s.Require().NoError(err)

	s.Equal(2, d.Households.Total)
	s.Equal(1, d.Households.Active)
	s.Equal(1, d.Households.WithTank)
	s.Equal(1, d.Households.WithoutTank)

	s.Equal(3, d.Tanks.Total)
	s.Equal(3, d.Tanks.Operational)
	s.Equal(1, d.Tanks.Priority)
	s.Equal(3000, d.Tanks.TotalCapacityLiters)
	s.Equal(1500, d.Tanks.TotalLevelLiters)
	s.InDelta(50.0, d.Tanks.OverallFillPercent, 0.001)

	s.Equal(2, d.Refills.Total)
	s.Equal(1000, d.Refills.TotalLiters)
	s.InDelta(150.0, d.Refills.TotalCost, 0.001)
	s.InDelta(0.15, d.Refills.AverageCostPerLiter, 0.001)
}

func (s *DashboardSuite) TestAlertOrdering() {
	s.addTank(1000, 0)   // empty, which also counts as critical and low
	s.addTank(1000, 150) // critical (15%), also low
	s.addTank(1000, 350) // low (35%)
	s.addTank(1000, 900) // healthy
	s.addReport(reportmodels.UrgencyCritical)

	d, err := s.svc.Build(s.ctx)
	s.Require().NoError(err)

	s.Equal(1, d.Tanks.Empty)
	s.Equal(2, d.Tanks.CriticalLevel)
	s.Equal(3, d.Tanks.LowLevel)

	s.Require().Len(d.Alerts, 4)
	s.Equal(SeverityCritical, d.Alerts[0].Severity)
	s.Equal("1 tank is empty", d.Alerts[0].Message)
	s.Equal(SeverityUrgent, d.Alerts[1].Severity)
	s.Equal("2 tanks at critical level", d.Alerts[1].Message)
	s.Equal(SeverityUrgent, d.Alerts[2].Severity)
	s.Equal("1 urgent report awaiting attention", d.Alerts[2].Message)
	s.Equal(SeverityWarning, d.Alerts[3].Severity)
	s.Equal("3 tanks at low level", d.Alerts[3].Message)
}

func (s *DashboardSuite) TestEmptyTanksRaiseEveryLevelAlert() {
	s.addTank(1000, 0)
	s.addTank(1000, 0)

	d, err := s.svc.Build(s.ctx)
	s.Require().NoError(err)

	s.Require().Len(d.Alerts, 3)
	s.Equal(SeverityCritical, d.Alerts[0].Severity)
	s.Equal("2 tanks are empty", d.Alerts[0].Message)
	s.Equal(2, d.Alerts[0].Count)
	s.Equal(SeverityUrgent, d.Alerts[1].Severity)
	s.Equal("2 tanks at critical level", d.Alerts[1].Message)
	s.Equal(SeverityWarning, d.Alerts[2].Severity)
	s.Equal("2 tanks at low level", d.Alerts[2].Message)
}

func (s *DashboardSuite) TestZeroCountAlertsOmitted() {
	s.addTank(1000, 900)

	d, err := s.svc.Build(s.ctx)
	s.Require().NoError(err)
	s.Empty(d.Alerts)
}

func (s *DashboardSuite) TestOutOfServiceTanksSkipLevelBands() {
	t := s.addTank(1000, 150)
	s.Require().NoError(t.ChangeStatus(tankmodels.StatusUnderMaintenance, s.now))
	s.Require().NoError(s.tanks.Update(s.ctx, t))

	d, err := s.svc.Build(s.ctx)
	s.Require().NoError(err)

	s.Equal(1, d.Tanks.Total)
	s.Zero(d.Tanks.Operational)
	s.Zero(d.Tanks.CriticalLevel)
	s.Zero(d.Tanks.LowLevel)
	s.Empty(d.Alerts)
}

func (s *DashboardSuite) TestResolvedUrgentReportsDoNotAlert() {
	r := s.addReport(reportmodels.UrgencyHigh)
	r.Resolve("delivered", s.now)
	s.Require().NoError(s.reports.Update(s.ctx, r))

	d, err := s.svc.Build(s.ctx)
	s.Require().NoError(err)
	s.Empty(d.Alerts)
}
