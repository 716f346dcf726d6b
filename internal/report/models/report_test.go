package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"aguasur/pkg/domain"
	dErrors "aguasur/pkg/domain-errors"
)

type ReportSuite struct {
	suite.Suite
	now time.Time
}

func (s *ReportSuite) SetupTest() {
	s.now = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
}

func TestReportSuite(t *testing.T) {
	suite.Run(t, new(ReportSuite))
}

func (s *ReportSuite) newReport(urgency Urgency) *IncidentReport {
	r, err := NewIncidentReport(domain.NewReportID(), domain.NewHouseholdID(), CategoryLeak, "pipe leaking at street junction", urgency, nil, nil, nil, s.now)
	s.Require().NoError(err)
	return r
}

func (s *ReportSuite) TestConstruction() {
	s.Run("starts pending", func() {
		r := s.newReport(UrgencyMedium)
		s.Equal(StatusPending, r.Status)
		s.Nil(r.ResolvedAt)
	})

	s.Run("rejects blank description", func() {
		_, err := NewIncidentReport(domain.NewReportID(), domain.NewHouseholdID(), CategoryLeak, "   ", UrgencyLow, nil, nil, nil, s.now)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("rejects zero household id", func() {
		_, err := NewIncidentReport(domain.NewReportID(), domain.HouseholdID{}, CategoryLeak, "desc", UrgencyLow, nil, nil, nil, s.now)
		s.Require().Error(err)
	})
}

func (s *ReportSuite) TestUrgencyDefault() {
	s.Run("empty input defaults to medium", func() {
		u, err := ParseUrgency("")
		s.Require().NoError(err)
		s.Equal(UrgencyMedium, u)
	})

	s.Run("unknown input is rejected", func() {
		_, err := ParseUrgency("panic")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *ReportSuite) TestResolution() {
	s.Run("resolve stamps timestamp and notes", func() {
		r := s.newReport(UrgencyHigh)
		r.Resolve("valve replaced", s.now.Add(2*time.Hour))
		s.Equal(StatusResolved, r.Status)
		s.Require().NotNil(r.ResolvedAt)
		s.Equal(s.now.Add(2*time.Hour), *r.ResolvedAt)
		s.Equal("valve replaced", r.ResolutionNotes)
	})

	s.Run("resolution timestamp is stamped once", func() {
		r := s.newReport(UrgencyHigh)
		first := s.now.Add(time.Hour)
		s.Require().NoError(r.ChangeStatus(StatusResolved, first))
		s.Require().NoError(r.ChangeStatus(StatusClosed, s.now.Add(3*time.Hour)))
		s.Require().NotNil(r.ResolvedAt)
		s.Equal(first, *r.ResolvedAt)
	})

	s.Run("non-terminal transitions leave it nil", func() {
		r := s.newReport(UrgencyLow)
		s.Require().NoError(r.ChangeStatus(StatusInReview, s.now))
		s.Require().NoError(r.ChangeStatus(StatusInProgress, s.now))
		s.Nil(r.ResolvedAt)
	})
}

func (s *ReportSuite) TestEscalate() {
	r := s.newReport(UrgencyLow)
	r.Escalate()
	s.Equal(UrgencyMedium, r.Urgency)
	r.Escalate()
	s.Equal(UrgencyHigh, r.Urgency)
	r.Escalate()
	s.Equal(UrgencyCritical, r.Urgency)
	r.Escalate() // already at the top
	s.Equal(UrgencyCritical, r.Urgency)
}

func (s *ReportSuite) TestUrgentPredicate() {
	s.False(s.newReport(UrgencyMedium).IsUrgent())
	s.True(s.newReport(UrgencyHigh).IsUrgent())
	s.True(s.newReport(UrgencyCritical).IsUrgent())
}

func (s *ReportSuite) TestHoursSinceReport() {
	r := s.newReport(UrgencyMedium)
	s.InDelta(6.0, r.HoursSinceReport(s.now.Add(6*time.Hour)), 0.001)
}
