package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"aguasur/internal/household/models"
	"aguasur/pkg/domain"
	"aguasur/pkg/platform/sentinel"
)

type HouseholdStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	ctx   context.Context
}

func (s *HouseholdStoreSuite) SetupTest() {
	s.store = NewMemory()
	s.ctx = context.Background()
}

func TestHouseholdStoreSuite(t *testing.T) {
	suite.Run(t, new(HouseholdStoreSuite))
}

func (s *HouseholdStoreSuite) newHousehold(address, contact, zone string) *models.Household {
	h, err := models.NewHousehold(domain.NewHouseholdID(), address, 4, contact, 1100, false, zone, nil, time.Now())
	s.Require().NoError(err)
	return h
}

func (s *HouseholdStoreSuite) TestSaveAndLookups() {
	s.Run("saves and finds by ID", func() {
		h := s.newHousehold("Calle Sur 42", "c-1", "cerro-alto")
		s.Require().NoError(s.store.Save(s.ctx, h))

		found, err := s.store.FindByID(s.ctx, h.ID)
		s.Require().NoError(err)
		s.Equal(h.Address, found.Address)
	})

	s.Run("returns ErrNotFound for unknown ID", func() {
		_, err := s.store.FindByID(s.ctx, domain.NewHouseholdID())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("finds by contact", func() {
		h := s.newHousehold("Av Principal 7", "+51 999 000 111", "centro")
		s.Require().NoError(s.store.Save(s.ctx, h))

		found, err := s.store.FindByContact(s.ctx, "+51 999 000 111")
		s.Require().NoError(err)
		s.Equal(h.ID, found.ID)

		_, err = s.store.FindByContact(s.ctx, "nobody")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *HouseholdStoreSuite) TestUpdate() {
	s.Run("persists changes", func() {
		h := s.newHousehold("Calle Sur 42", "c-1", "cerro-alto")
		s.Require().NoError(s.store.Save(s.ctx, h))

		h.Deactivate()
		s.Require().NoError(s.store.Update(s.ctx, h))

		found, err := s.store.FindByID(s.ctx, h.ID)
		s.Require().NoError(err)
		s.False(found.Active)
	})

	s.Run("rejects update of unknown household", func() {
		ghost := s.newHousehold("Nowhere 1", "c-ghost", "zone")
		s.Require().ErrorIs(s.store.Update(s.ctx, ghost), sentinel.ErrNotFound)
	})
}

func (s *HouseholdStoreSuite) TestFilters() {
	active := s.newHousehold("A Calle 1", "c-1", "norte")
	inactive := s.newHousehold("B Calle 2", "c-2", "norte")
	inactive.Deactivate()
	withTank := s.newHousehold("C Calle 3", "c-3", "sur")
	withTank.HasTank = true

	for _, h := range []*models.Household{active, inactive, withTank} {
		s.Require().NoError(s.store.Save(s.ctx, h))
	}

	s.Run("active only", func() {
		found, err := s.store.FindActive(s.ctx)
		s.Require().NoError(err)
		s.Len(found, 2)
	})

	s.Run("by zone sorted by address", func() {
		found, err := s.store.FindByZone(s.ctx, "norte")
		s.Require().NoError(err)
		s.Require().Len(found, 2)
		s.Equal("A Calle 1", found[0].Address)
	})

	s.Run("tank ownership split", func() {
		with, err := s.store.FindWithTank(s.ctx)
		s.Require().NoError(err)
		s.Len(with, 1)

		without, err := s.store.FindWithoutTank(s.ctx)
		s.Require().NoError(err)
		s.Len(without, 2)
	})

	s.Run("address search is case-insensitive", func() {
		found, err := s.store.SearchByAddress(s.ctx, "calle")
		s.Require().NoError(err)
		s.Len(found, 3)
	})

	s.Run("distinct zones sorted", func() {
		zones, err := s.store.ListZones(s.ctx)
		s.Require().NoError(err)
		s.Equal([]string{"norte", "sur"}, zones)
	})
}
