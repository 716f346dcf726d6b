package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"aguasur/internal/household/models"
	"aguasur/pkg/domain"
	"aguasur/pkg/platform/sentinel"
)

// householdDoc is the MongoDB document shape. IDs are stored as canonical
// UUID strings so the domain layer stays free of driver types.
type householdDoc struct {
	ID               string    `bson:"_id"`
	Address          string    `bson:"address"`
	Occupants        int       `bson:"occupants"`
	Contact          string    `bson:"contact"`
	StorageCapacity  int       `bson:"storage_capacity_liters"`
	HasTank          bool      `bson:"has_tank"`
	Zone             string    `bson:"zone"`
	DailyConsumption float64   `bson:"daily_consumption_liters"`
	Active           bool      `bson:"active"`
	RegisteredAt     time.Time `bson:"registered_at"`
}

func toHouseholdDoc(h *models.Household) householdDoc {
	return householdDoc{
		ID:               h.ID.String(),
		Address:          h.Address,
		Occupants:        h.Occupants,
		Contact:          h.Contact,
		StorageCapacity:  h.StorageCapacity,
		HasTank:          h.HasTank,
		Zone:             h.Zone,
		DailyConsumption: h.DailyConsumption,
		Active:           h.Active,
		RegisteredAt:     h.RegisteredAt,
	}
}

func fromHouseholdDoc(d householdDoc) (*models.Household, error) {
	id, err := domain.ParseHouseholdID(d.ID)
	if err != nil {
		return nil, fmt.Errorf("corrupt household document %q: %w", d.ID, err)
	}
	return &models.Household{
		ID:               id,
		Address:          d.Address,
		Occupants:        d.Occupants,
		Contact:          d.Contact,
		StorageCapacity:  d.StorageCapacity,
		HasTank:          d.HasTank,
		Zone:             d.Zone,
		DailyConsumption: d.DailyConsumption,
		Active:           d.Active,
		RegisteredAt:     d.RegisteredAt,
	}, nil
}

// MongoStore persists households in a MongoDB collection.
type MongoStore struct {
	col *mongo.Collection
}

// NewMongo constructs a MongoDB-backed household store.
func NewMongo(db *mongo.Database) *MongoStore {
	return &MongoStore{col: db.Collection("households")}
}

func (s *MongoStore) Save(ctx context.Context, h *models.Household) error {
	if _, err := s.col.InsertOne(ctx, toHouseholdDoc(h)); err != nil {
		return fmt.Errorf("save household: %w", err)
	}
	return nil
}

func (s *MongoStore) Update(ctx context.Context, h *models.Household) error {
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": h.ID.String()}, toHouseholdDoc(h))
	if err != nil {
		return fmt.Errorf("update household: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("household not found: %w", sentinel.ErrNotFound)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, id domain.HouseholdID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return fmt.Errorf("delete household: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("household not found: %w", sentinel.ErrNotFound)
	}
	return nil
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.M) (*models.Household, error) {
	var doc householdDoc
	err := s.col.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("household not found: %w", sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find household: %w", err)
	}
	return fromHouseholdDoc(doc)
}

func (s *MongoStore) findMany(ctx context.Context, filter bson.M) ([]*models.Household, error) {
	cur, err := s.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "address", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find households: %w", err)
	}
	var docs []householdDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode households: %w", err)
	}
	out := make([]*models.Household, 0, len(docs))
	for _, d := range docs {
		h, err := fromHouseholdDoc(d)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, nil
}

func (s *MongoStore) FindByID(ctx context.Context, id domain.HouseholdID) (*models.Household, error) {
	return s.findOne(ctx, bson.M{"_id": id.String()})
}

func (s *MongoStore) FindAll(ctx context.Context) ([]*models.Household, error) {
	return s.findMany(ctx, bson.M{})
}

func (s *MongoStore) FindActive(ctx context.Context) ([]*models.Household, error) {
	return s.findMany(ctx, bson.M{"active": true})
}

func (s *MongoStore) FindByZone(ctx context.Context, zone string) ([]*models.Household, error) {
	return s.findMany(ctx, bson.M{"zone": zone})
}

func (s *MongoStore) FindWithTank(ctx context.Context) ([]*models.Household, error) {
	return s.findMany(ctx, bson.M{"has_tank": true})
}

func (s *MongoStore) FindWithoutTank(ctx context.Context) ([]*models.Household, error) {
	return s.findMany(ctx, bson.M{"has_tank": false})
}

func (s *MongoStore) SearchByAddress(ctx context.Context, fragment string) ([]*models.Household, error) {
	return s.findMany(ctx, bson.M{"address": bson.M{"$regex": regexp.QuoteMeta(fragment), "$options": "i"}})
}

func (s *MongoStore) FindByContact(ctx context.Context, contact string) (*models.Household, error) {
	return s.findOne(ctx, bson.M{"contact": contact})
}

func (s *MongoStore) count(ctx context.Context, filter bson.M) (int, error) {
	n, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count households: %w", err)
	}
	return int(n), nil
}

func (s *MongoStore) CountAll(ctx context.Context) (int, error) {
	return s.count(ctx, bson.M{})
}

func (s *MongoStore) CountByZone(ctx context.Context, zone string) (int, error) {
	return s.count(ctx, bson.M{"zone": zone})
}

func (s *MongoStore) ListZones(ctx context.Context) ([]string, error) {
	raw, err := s.col.Distinct(ctx, "zone", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list zones: %w", err)
	}
	zones := make([]string, 0, len(raw))
	for _, v := range raw {
		if z, ok := v.(string); ok {
			zones = append(zones, z)
		}
	}
	return zones, nil
}
