package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"aguasur/pkg/domain"
	dErrors "aguasur/pkg/domain-errors"
)

type HouseholdSuite struct {
	suite.Suite
	now time.Time
}

func (s *HouseholdSuite) SetupTest() {
	s.now = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
}

func TestHouseholdSuite(t *testing.T) {
	suite.Run(t, new(HouseholdSuite))
}

func (s *HouseholdSuite) newHousehold(occupants int, consumption *float64) *Household {
	h, err := NewHousehold(domain.NewHouseholdID(), "Calle Sur 42", occupants, "+51 999 111 222", 1100, false, "cerro-alto", consumption, s.now)
	s.Require().NoError(err)
	return h
}

func (s *HouseholdSuite) TestConstruction() {
	s.Run("derives consumption from occupants when not reported", func() {
		h := s.newHousehold(4, nil)
		s.InDelta(200.0, h.DailyConsumption, 0.001)
	})

	s.Run("keeps reported consumption", func() {
		reported := 120.0
		h := s.newHousehold(4, &reported)
		s.InDelta(120.0, h.DailyConsumption, 0.001)
	})

	s.Run("starts active", func() {
		s.True(s.newHousehold(2, nil).Active)
	})

	s.Run("rejects zero occupants", func() {
		_, err := NewHousehold(domain.NewHouseholdID(), "addr", 0, "contact", 500, false, "zone", nil, s.now)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("rejects blank contact", func() {
		_, err := NewHousehold(domain.NewHouseholdID(), "addr", 3, "  ", 500, false, "zone", nil, s.now)
		s.Require().Error(err)
	})

	s.Run("rejects negative reported consumption", func() {
		negative := -1.0
		_, err := NewHousehold(domain.NewHouseholdID(), "addr", 3, "contact", 500, false, "zone", &negative, s.now)
		s.Require().Error(err)
	})
}

func (s *HouseholdSuite) TestAutonomy() {
	h := s.newHousehold(4, nil) // 200 L/day

	s.Run("days of autonomy", func() {
		s.InDelta(5.0, h.AutonomyDays(1000), 0.001)
	})

	s.Run("urgent below the minimum", func() {
		s.True(h.NeedsWaterUrgently(300, 2))
		s.False(h.NeedsWaterUrgently(500, 2))
	})

	s.Run("zero consumption yields zero autonomy", func() {
		s.Require().NoError(h.UpdateConsumption(0))
		s.Zero(h.AutonomyDays(1000))
	})
}

func (s *HouseholdSuite) TestLifecycle() {
	h := s.newHousehold(3, nil)
	h.Deactivate()
	s.False(h.Active)
	h.Activate()
	s.True(h.Active)
}
