package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"aguasur/internal/household/store"
	"aguasur/pkg/domain"
	dErrors "aguasur/pkg/domain-errors"
)

type HouseholdServiceSuite struct {
	suite.Suite
	svc *Service
	ctx context.Context
}

func (s *HouseholdServiceSuite) SetupTest() {
	s.svc = New(store.NewMemory(), nil)
	s.ctx = context.Background()
}

func TestHouseholdServiceSuite(t *testing.T) {
	suite.Run(t, new(HouseholdServiceSuite))
}

func (s *HouseholdServiceSuite) registerInput(contact string) RegisterInput {
	return RegisterInput{
		Address:         "Calle Sur 42",
		Occupants:       4,
		Contact:         contact,
		StorageCapacity: 1100,
		Zone:            "cerro-alto",
	}
}

func (s *HouseholdServiceSuite) TestRegister() {
	s.Run("registers a household", func() {
		h, err := s.svc.Register(s.ctx, s.registerInput("+51 999 111 222"))
		s.Require().NoError(err)
		s.True(h.Active)
		s.InDelta(200.0, h.DailyConsumption, 0.001)
	})

	s.Run("rejects duplicate contact with conflict", func() {
		_, err := s.svc.Register(s.ctx, s.registerInput("dup-contact"))
		s.Require().NoError(err)

		_, err = s.svc.Register(s.ctx, s.registerInput("dup-contact"))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("trims contact before the uniqueness check", func() {
		_, err := s.svc.Register(s.ctx, s.registerInput("spaced"))
		s.Require().NoError(err)

		_, err = s.svc.Register(s.ctx, s.registerInput("  spaced  "))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("surfaces validation errors", func() {
		in := s.registerInput("v-contact")
		in.Occupants = 0
		_, err := s.svc.Register(s.ctx, in)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *HouseholdServiceSuite) TestLifecycle() {
	h, err := s.svc.Register(s.ctx, s.registerInput("lifecycle"))
	s.Require().NoError(err)

	deactivated, err := s.svc.Deactivate(s.ctx, h.ID)
	s.Require().NoError(err)
	s.False(deactivated.Active)

	reactivated, err := s.svc.Reactivate(s.ctx, h.ID)
	s.Require().NoError(err)
	s.True(reactivated.Active)
}

func (s *HouseholdServiceSuite) TestListFilters() {
	a, err := s.svc.Register(s.ctx, s.registerInput("c-a"))
	s.Require().NoError(err)
	in := s.registerInput("c-b")
	in.Zone = "centro"
	_, err = s.svc.Register(s.ctx, in)
	s.Require().NoError(err)

	_, err = s.svc.Deactivate(s.ctx, a.ID)
	s.Require().NoError(err)

	s.Run("active only", func() {
		active, err := s.svc.List(s.ctx, ListFilter{ActiveOnly: true})
		s.Require().NoError(err)
		s.Len(active, 1)
	})

	s.Run("by zone", func() {
		zoned, err := s.svc.List(s.ctx, ListFilter{Zone: "centro"})
		s.Require().NoError(err)
		s.Len(zoned, 1)
	})

	s.Run("distinct zones", func() {
		zones, err := s.svc.Zones(s.ctx)
		s.Require().NoError(err)
		s.Equal([]string{"centro", "cerro-alto"}, zones)
	})
}

func (s *HouseholdServiceSuite) TestGet() {
	h, err := s.svc.Register(s.ctx, s.registerInput("known"))
	s.Require().NoError(err)

	found, err := s.svc.Get(s.ctx, h.ID)
	s.Require().NoError(err)
	s.Equal(h.ID, found.ID)

	_, err = s.svc.Get(s.ctx, domain.NewHouseholdID())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}
