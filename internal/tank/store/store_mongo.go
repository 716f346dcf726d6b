package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"aguasur/internal/tank/models"
	"aguasur/pkg/domain"
	"aguasur/pkg/platform/sentinel"
)

type tankDoc struct {
	ID          string     `bson:"_id"`
	Location    string     `bson:"location"`
	Category    string     `bson:"category"`
	Capacity    int        `bson:"capacity_liters"`
	Level       int        `bson:"level_liters"`
	Latitude    *float64   `bson:"latitude,omitempty"`
	Longitude   *float64   `bson:"longitude,omitempty"`
	HouseholdID *string    `bson:"household_id,omitempty"`
	Status      string     `bson:"status"`
	InstalledAt time.Time  `bson:"installed_at"`
	UpdatedAt   time.Time  `bson:"updated_at"`
}

func toTankDoc(t *models.Tank) tankDoc {
	doc := tankDoc{
		ID:          t.ID.String(),
		Location:    t.Location,
		Category:    t.Category.String(),
		Capacity:    t.Capacity,
		Level:       t.Level,
		Latitude:    t.Latitude,
		Longitude:   t.Longitude,
		Status:      t.Status.String(),
		InstalledAt: t.InstalledAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.HouseholdID != nil {
		owner := t.HouseholdID.String()
		doc.HouseholdID = &owner
	}
	return doc
}

func fromTankDoc(d tankDoc) (*models.Tank, error) {
	id, err := domain.ParseTankID(d.ID)
	if err != nil {
		return nil, fmt.Errorf("corrupt tank document %q: %w", d.ID, err)
	}
	t := &models.Tank{
		ID:          id,
		Location:    d.Location,
		Category:    models.TankCategory(d.Category),
		Capacity:    d.Capacity,
		Level:       d.Level,
		Latitude:    d.Latitude,
		Longitude:   d.Longitude,
		Status:      models.TankStatus(d.Status),
		InstalledAt: d.InstalledAt,
		UpdatedAt:   d.UpdatedAt,
	}
	if d.HouseholdID != nil {
		owner, err := domain.ParseHouseholdID(*d.HouseholdID)
		if err != nil {
			return nil, fmt.Errorf("corrupt tank document %q: %w", d.ID, err)
		}
		t.HouseholdID = &owner
	}
	return t, nil
}

// MongoStore persists tanks in a MongoDB collection.
type MongoStore struct {
	col *mongo.Collection
}

// NewMongo constructs a MongoDB-backed tank store.
func NewMongo(db *mongo.Database) *MongoStore {
	return &MongoStore{col: db.Collection("tanks")}
}

func (s *MongoStore) Save(ctx context.Context, t *models.Tank) error {
	if _, err := s.col.InsertOne(ctx, toTankDoc(t)); err != nil {
		return fmt.Errorf("save tank: %w", err)
	}
	return nil
}

func (s *MongoStore) Update(ctx context.Context, t *models.Tank) error {
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": t.ID.String()}, toTankDoc(t))
	if err != nil {
		return fmt.Errorf("update tank: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("tank not found: %w", sentinel.ErrNotFound)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, id domain.TankID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return fmt.Errorf("delete tank: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("tank not found: %w", sentinel.ErrNotFound)
	}
	return nil
}

func (s *MongoStore) FindByID(ctx context.Context, id domain.TankID) (*models.Tank, error) {
	var doc tankDoc
	err := s.col.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("tank not found: %w", sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find tank: %w", err)
	}
	return fromTankDoc(doc)
}

func (s *MongoStore) findMany(ctx context.Context, filter bson.M) ([]*models.Tank, error) {
	cur, err := s.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "location", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find tanks: %w", err)
	}
	var docs []tankDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode tanks: %w", err)
	}
	out := make([]*models.Tank, 0, len(docs))
	for _, d := range docs {
		t, err := fromTankDoc(d)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (s *MongoStore) FindAll(ctx context.Context) ([]*models.Tank, error) {
	return s.findMany(ctx, bson.M{})
}

func (s *MongoStore) FindByCategory(ctx context.Context, category models.TankCategory) ([]*models.Tank, error) {
	return s.findMany(ctx, bson.M{"category": category.String()})
}

func (s *MongoStore) FindByHousehold(ctx context.Context, householdID domain.HouseholdID) ([]*models.Tank, error) {
	return s.findMany(ctx, bson.M{"household_id": householdID.String()})
}

func (s *MongoStore) FindOperational(ctx context.Context) ([]*models.Tank, error) {
	return s.findMany(ctx, bson.M{"status": models.StatusOperational.String()})
}

// FindCritical fetches operational tanks and filters by the entity
// predicate: the threshold is a percentage of each tank's own capacity,
// which a plain field filter cannot express without duplicating the rule
// in the query. Out-of-service tanks never count toward level bands.
func (s *MongoStore) FindCritical(ctx context.Context, thresholdPct float64) ([]*models.Tank, error) {
	tanks, err := s.FindOperational(ctx)
	if err != nil {
		return nil, err
	}
	out := tanks[:0]
	for _, t := range tanks {
		if t.IsCritical(thresholdPct) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *MongoStore) FindLow(ctx context.Context, thresholdPct float64) ([]*models.Tank, error) {
	tanks, err := s.FindOperational(ctx)
	if err != nil {
		return nil, err
	}
	out := tanks[:0]
	for _, t := range tanks {
		if t.IsLow(thresholdPct) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *MongoStore) FindEmpty(ctx context.Context) ([]*models.Tank, error) {
	return s.findMany(ctx, bson.M{"level_liters": 0})
}

func (s *MongoStore) FindPriority(ctx context.Context) ([]*models.Tank, error) {
	return s.findMany(ctx, bson.M{"category": bson.M{"$in": []string{
		models.CategorySchool.String(),
		models.CategoryHealthCenter.String(),
	}}})
}

func (s *MongoStore) FindWithCoordinates(ctx context.Context) ([]*models.Tank, error) {
	return s.findMany(ctx, bson.M{
		"latitude":  bson.M{"$ne": nil},
		"longitude": bson.M{"$ne": nil},
	})
}

func (s *MongoStore) count(ctx context.Context, filter bson.M) (int, error) {
	n, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count tanks: %w", err)
	}
	return int(n), nil
}

func (s *MongoStore) CountAll(ctx context.Context) (int, error) {
	return s.count(ctx, bson.M{})
}

func (s *MongoStore) CountByCategory(ctx context.Context, category models.TankCategory) (int, error) {
	return s.count(ctx, bson.M{"category": category.String()})
}

func (s *MongoStore) sum(ctx context.Context, field string) (int, error) {
	pipeline := []bson.M{
		{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": "$" + field}}},
	}
	cur, err := s.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("sum tank %s: %w", field, err)
	}
	var results []struct {
		Total int `bson:"total"`
	}
	if err := cur.All(ctx, &results); err != nil {
		return 0, fmt.Errorf("decode tank %s sum: %w", field, err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

func (s *MongoStore) SumCapacity(ctx context.Context) (int, error) {
	return s.sum(ctx, "capacity_liters")
}

func (s *MongoStore) SumLevel(ctx context.Context) (int, error) {
	return s.sum(ctx, "level_liters")
}
