package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	householdmodels "aguasur/internal/household/models"
	householdstore "aguasur/internal/household/store"
	"aguasur/internal/report/models"
	"aguasur/internal/report/store"
	tankstore "aguasur/internal/tank/store"
	"aguasur/pkg/domain"
	dErrors "aguasur/pkg/domain-errors"
)

type ReportServiceSuite struct {
	suite.Suite
	svc         *Service
	households  *householdstore.InMemoryStore
	ctx         context.Context
	now         time.Time
	householdID domain.HouseholdID
}

func (s *ReportServiceSuite) SetupTest() {
	s.households = householdstore.NewMemory()
	s.svc = New(store.NewMemory(), s.households, tankstore.NewMemory(), nil)
	s.ctx = context.Background()
	s.now = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	h, err := householdmodels.NewHousehold(domain.NewHouseholdID(), "Calle Sur 42", 4, "+51 999 111 222", 1100, false, "cerro-alto", nil, s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.households.Save(s.ctx, h))
	s.householdID = h.ID
}

func TestReportServiceSuite(t *testing.T) {
	suite.Run(t, new(ReportServiceSuite))
}

func (s *ReportServiceSuite) createInput(category, urgency string) CreateInput {
	return CreateInput{
		HouseholdID: s.householdID,
		Category:    category,
		Description: "we are almost out of water",
		Urgency:     urgency,
	}
}

func (s *ReportServiceSuite) TestCreate() {
	s.Run("files a pending report", func() {
		report, err := s.svc.Create(s.ctx, s.createInput("leak", "high"))
		s.Require().NoError(err)
		s.Equal(models.StatusPending, report.Status)
		s.Equal(models.UrgencyHigh, report.Urgency)
	})

	s.Run("raises low urgency for water running out", func() {
		report, err := s.svc.Create(s.ctx, s.createInput("water_running_out", "low"))
		s.Require().NoError(err)
		s.Equal(models.UrgencyMedium, report.Urgency)
	})

	s.Run("keeps low urgency for other categories", func() {
		report, err := s.svc.Create(s.ctx, s.createInput("leak", "low"))
		s.Require().NoError(err)
		s.Equal(models.UrgencyLow, report.Urgency)
	})

	s.Run("defaults urgency to medium when omitted", func() {
		report, err := s.svc.Create(s.ctx, s.createInput("other", ""))
		s.Require().NoError(err)
		s.Equal(models.UrgencyMedium, report.Urgency)
	})

	s.Run("rejects unknown households", func() {
		in := s.createInput("leak", "low")
		in.HouseholdID = domain.NewHouseholdID()
		_, err := s.svc.Create(s.ctx, in)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("rejects unknown tank references", func() {
		in := s.createInput("tank_damaged", "high")
		tankID := domain.NewTankID()
		in.TankID = &tankID
		_, err := s.svc.Create(s.ctx, in)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("rejects unknown categories", func() {
		_, err := s.svc.Create(s.ctx, s.createInput("meteor_strike", "high"))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *ReportServiceSuite) TestWorkflow() {
	report, err := s.svc.Create(s.ctx, s.createInput("tank_damaged", "high"))
	s.Require().NoError(err)

	s.Run("walks the triage states", func() {
		updated, err := s.svc.ChangeStatus(s.ctx, report.ID, "in_review")
		s.Require().NoError(err)
		s.Equal(models.StatusInReview, updated.Status)

		updated, err = s.svc.ChangeStatus(s.ctx, report.ID, "in_progress")
		s.Require().NoError(err)
		s.Equal(models.StatusInProgress, updated.Status)
	})

	s.Run("resolve stamps the resolution", func() {
		resolved, err := s.svc.Resolve(s.ctx, report.ID, "tank patched")
		s.Require().NoError(err)
		s.Equal(models.StatusResolved, resolved.Status)
		s.Require().NotNil(resolved.ResolvedAt)
		s.Equal("tank patched", resolved.ResolutionNotes)
	})

	s.Run("rejects unknown statuses", func() {
		_, err := s.svc.ChangeStatus(s.ctx, report.ID, "teleported")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *ReportServiceSuite) TestEscalate() {
	report, err := s.svc.Create(s.ctx, s.createInput("leak", "low"))
	s.Require().NoError(err)

	escalated, err := s.svc.Escalate(s.ctx, report.ID)
	s.Require().NoError(err)
	s.Equal(models.UrgencyMedium, escalated.Urgency)
}

func (s *ReportServiceSuite) TestStatistics() {
	_, err := s.svc.Create(s.ctx, s.createInput("leak", "high"))
	s.Require().NoError(err)
	resolved, err := s.svc.Create(s.ctx, s.createInput("other", "low"))
	s.Require().NoError(err)
	_, err = s.svc.Resolve(s.ctx, resolved.ID, "")
	s.Require().NoError(err)

	stats, err := s.svc.Statistics(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, stats.Total)
	s.Equal(1, stats.Pending)
	s.Equal(1, stats.Resolved)
	s.Equal(1, stats.UrgentUnresolved)
}
