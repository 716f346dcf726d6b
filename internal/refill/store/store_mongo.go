package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"aguasur/internal/refill/models"
	"aguasur/pkg/domain"
	"aguasur/pkg/platform/sentinel"
)

type refillDoc struct {
	ID          string    `bson:"_id"`
	TankID      string    `bson:"tank_id"`
	SuppliedAt  time.Time `bson:"supplied_at"`
	Liters      int       `bson:"liters"`
	Cost        float64   `bson:"cost"`
	Provider    string    `bson:"provider"`
	LevelBefore int       `bson:"level_before"`
	LevelAfter  int       `bson:"level_after"`
	Notes       string    `bson:"notes,omitempty"`
}

func toRefillDoc(r *models.RefillRecord) refillDoc {
	return refillDoc{
		ID:          r.ID.String(),
		TankID:      r.TankID.String(),
		SuppliedAt:  r.SuppliedAt,
		Liters:      r.Liters,
		Cost:        r.Cost,
		Provider:    r.Provider,
		LevelBefore: r.LevelBefore,
		LevelAfter:  r.LevelAfter,
		Notes:       r.Notes,
	}
}

func fromRefillDoc(d refillDoc) (*models.RefillRecord, error) {
	id, err := domain.ParseRefillID(d.ID)
	if err != nil {
		return nil, fmt.Errorf("corrupt refill document %q: %w", d.ID, err)
	}
	tankID, err := domain.ParseTankID(d.TankID)
	if err != nil {
		return nil, fmt.Errorf("corrupt refill document %q: %w", d.ID, err)
	}
	return &models.RefillRecord{
		ID:          id,
		TankID:      tankID,
		SuppliedAt:  d.SuppliedAt,
		Liters:      d.Liters,
		Cost:        d.Cost,
		Provider:    d.Provider,
		LevelBefore: d.LevelBefore,
		LevelAfter:  d.LevelAfter,
		Notes:       d.Notes,
	}, nil
}

// MongoStore persists refill records in a MongoDB collection. The
// collection is append-only.
type MongoStore struct {
	col *mongo.Collection
}

// NewMongo constructs a MongoDB-backed refill store.
func NewMongo(db *mongo.Database) *MongoStore {
	return &MongoStore{col: db.Collection("refills")}
}

func (s *MongoStore) Save(ctx context.Context, r *models.RefillRecord) error {
	if _, err := s.col.InsertOne(ctx, toRefillDoc(r)); err != nil {
		return fmt.Errorf("save refill record: %w", err)
	}
	return nil
}

func (s *MongoStore) FindByID(ctx context.Context, id domain.RefillID) (*models.RefillRecord, error) {
	var doc refillDoc
	err := s.col.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("refill record not found: %w", sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find refill record: %w", err)
	}
	return fromRefillDoc(doc)
}

func (s *MongoStore) findMany(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]*models.RefillRecord, error) {
	opts = append(opts, options.Find().SetSort(bson.D{{Key: "supplied_at", Value: -1}}))
	cur, err := s.col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("find refill records: %w", err)
	}
	var docs []refillDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode refill records: %w", err)
	}
	out := make([]*models.RefillRecord, 0, len(docs))
	for _, d := range docs {
		r, err := fromRefillDoc(d)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *MongoStore) FindAll(ctx context.Context) ([]*models.RefillRecord, error) {
	return s.findMany(ctx, bson.M{})
}

func (s *MongoStore) FindByTank(ctx context.Context, tankID domain.TankID) ([]*models.RefillRecord, error) {
	return s.findMany(ctx, bson.M{"tank_id": tankID.String()})
}

func (s *MongoStore) FindByDate(ctx context.Context, day time.Time) ([]*models.RefillRecord, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)
	return s.findMany(ctx, bson.M{"supplied_at": bson.M{"$gte": start, "$lt": end}})
}

func (s *MongoStore) FindByDateRange(ctx context.Context, from, to time.Time) ([]*models.RefillRecord, error) {
	return s.findMany(ctx, bson.M{"supplied_at": bson.M{"$gte": from, "$lte": to}})
}

func (s *MongoStore) FindByProvider(ctx context.Context, provider string) ([]*models.RefillRecord, error) {
	return s.findMany(ctx, bson.M{"provider": provider})
}

func (s *MongoStore) FindLatestForTank(ctx context.Context, tankID domain.TankID) (*models.RefillRecord, error) {
	var doc refillDoc
	err := s.col.FindOne(ctx, bson.M{"tank_id": tankID.String()},
		options.FindOne().SetSort(bson.D{{Key: "supplied_at", Value: -1}}),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("refill record not found: %w", sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find latest refill: %w", err)
	}
	return fromRefillDoc(doc)
}

func (s *MongoStore) FindRecent(ctx context.Context, limit int) ([]*models.RefillRecord, error) {
	return s.findMany(ctx, bson.M{}, options.Find().SetLimit(int64(limit)))
}

func (s *MongoStore) count(ctx context.Context, filter bson.M) (int, error) {
	n, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count refill records: %w", err)
	}
	return int(n), nil
}

func (s *MongoStore) CountAll(ctx context.Context) (int, error) {
	return s.count(ctx, bson.M{})
}

func (s *MongoStore) CountByTank(ctx context.Context, tankID domain.TankID) (int, error) {
	return s.count(ctx, bson.M{"tank_id": tankID.String()})
}

func (s *MongoStore) SumLiters(ctx context.Context) (int, error) {
	pipeline := []bson.M{
		{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": "$liters"}}},
	}
	cur, err := s.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("sum refill liters: %w", err)
	}
	var results []struct {
		Total int `bson:"total"`
	}
	if err := cur.All(ctx, &results); err != nil {
		return 0, fmt.Errorf("decode refill liters sum: %w", err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

func (s *MongoStore) SumCost(ctx context.Context) (float64, error) {
	pipeline := []bson.M{
		{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": "$cost"}}},
	}
	cur, err := s.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("sum refill cost: %w", err)
	}
	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cur.All(ctx, &results); err != nil {
		return 0, fmt.Errorf("decode refill cost sum: %w", err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

func (s *MongoStore) ListProviders(ctx context.Context) ([]string, error) {
	raw, err := s.col.Distinct(ctx, "provider", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list providers: %w", err)
	}
	providers := make([]string, 0, len(raw))
	for _, v := range raw {
		if p, ok := v.(string); ok {
			providers = append(providers, p)
		}
	}
	return providers, nil
}
