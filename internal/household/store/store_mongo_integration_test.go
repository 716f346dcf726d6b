//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"aguasur/internal/household/models"
	"aguasur/internal/household/store"
	"aguasur/pkg/domain"
	"aguasur/pkg/platform/sentinel"
	"aguasur/pkg/testutil/containers"
)

type MongoStoreSuite struct {
	suite.Suite
	mongo *containers.MongoContainer
	store *store.MongoStore
	ctx   context.Context
}

func TestMongoStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(MongoStoreSuite))
}

func (s *MongoStoreSuite) SetupSuite() {
	s.mongo = containers.NewMongoContainer(s.T(), "aguasur_test")
	s.store = store.NewMongo(s.mongo.DB)
	s.ctx = context.Background()
}

func (s *MongoStoreSuite) SetupTest() {
	s.Require().NoError(s.mongo.DropCollections(s.ctx, "households"))
}

func (s *MongoStoreSuite) newHousehold(address, contact, zone string) *models.Household {
	h, err := models.NewHousehold(domain.NewHouseholdID(), address, 4, contact, 1100, false, zone, nil, time.Now().UTC().Truncate(time.Millisecond))
	s.Require().NoError(err)
	return h
}

func (s *MongoStoreSuite) TestRoundTrip() {
	h := s.newHousehold("Calle Sur 42", "+51 999 111 222", "cerro-alto")
	s.Require().NoError(s.store.Save(s.ctx, h))

	found, err := s.store.FindByID(s.ctx, h.ID)
	s.Require().NoError(err)
	s.Equal(h.Address, found.Address)
	s.Equal(h.Contact, found.Contact)
	s.InDelta(h.DailyConsumption, found.DailyConsumption, 0.001)
	s.True(found.RegisteredAt.Equal(h.RegisteredAt))
}

func (s *MongoStoreSuite) TestNotFound() {
	_, err := s.store.FindByID(s.ctx, domain.NewHouseholdID())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	ghost := s.newHousehold("Nowhere 1", "ghost", "zone")
	s.Require().ErrorIs(s.store.Update(s.ctx, ghost), sentinel.ErrNotFound)
	s.Require().ErrorIs(s.store.Delete(s.ctx, ghost.ID), sentinel.ErrNotFound)
}

func (s *MongoStoreSuite) TestContactLookup() {
	h := s.newHousehold("Av Principal 7", "unique-contact", "centro")
	s.Require().NoError(s.store.Save(s.ctx, h))

	found, err := s.store.FindByContact(s.ctx, "unique-contact")
	s.Require().NoError(err)
	s.Equal(h.ID, found.ID)

	_, err = s.store.FindByContact(s.ctx, "nobody")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *MongoStoreSuite) TestFiltersAndSearch() {
	a := s.newHousehold("Calle Norte 1", "c-1", "norte")
	b := s.newHousehold("Calle Norte 2", "c-2", "norte")
	b.Deactivate()
	c := s.newHousehold("Pasaje Sur 3", "c-3", "sur")
	c.HasTank = true
	for _, h := range []*models.Household{a, b, c} {
		s.Require().NoError(s.store.Save(s.ctx, h))
	}

	active, err := s.store.FindActive(s.ctx)
	s.Require().NoError(err)
	s.Len(active, 2)

	norte, err := s.store.FindByZone(s.ctx, "norte")
	s.Require().NoError(err)
	s.Len(norte, 2)

	withTank, err := s.store.FindWithTank(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(withTank, 1)
	s.Equal(c.ID, withTank[0].ID)

	// Case-insensitive substring search
	matches, err := s.store.SearchByAddress(s.ctx, "calle norte")
	s.Require().NoError(err)
	s.Len(matches, 2)

	zones, err := s.store.ListZones(s.ctx)
	s.Require().NoError(err)
	s.ElementsMatch([]string{"norte", "sur"}, zones)

	count, err := s.store.CountAll(s.ctx)
	s.Require().NoError(err)
	s.Equal(3, count)
}

func (s *MongoStoreSuite) TestUpdatePersists() {
	h := s.newHousehold("Calle Sur 42", "upd-contact", "cerro-alto")
	s.Require().NoError(s.store.Save(s.ctx, h))

	s.Require().NoError(h.UpdateConsumption(120))
	h.Deactivate()
	s.Require().NoError(s.store.Update(s.ctx, h))

	found, err := s.store.FindByID(s.ctx, h.ID)
	s.Require().NoError(err)
	s.False(found.Active)
	s.InDelta(120.0, found.DailyConsumption, 0.001)
}
