package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"aguasur/internal/report/models"
	"aguasur/pkg/domain"
	"aguasur/pkg/platform/sentinel"
)

type reportDoc struct {
	ID              string     `bson:"_id"`
	HouseholdID     string     `bson:"household_id"`
	Category        string     `bson:"category"`
	Description     string     `bson:"description"`
	Urgency         string     `bson:"urgency"`
	Status          string     `bson:"status"`
	TankID          *string    `bson:"tank_id,omitempty"`
	Latitude        *float64   `bson:"latitude,omitempty"`
	Longitude       *float64   `bson:"longitude,omitempty"`
	ReportedAt      time.Time  `bson:"reported_at"`
	ResolvedAt      *time.Time `bson:"resolved_at,omitempty"`
	ResolutionNotes string     `bson:"resolution_notes,omitempty"`
}

func toReportDoc(r *models.IncidentReport) reportDoc {
	doc := reportDoc{
		ID:              r.ID.String(),
		HouseholdID:     r.HouseholdID.String(),
		Category:        r.Category.String(),
		Description:     r.Description,
		Urgency:         r.Urgency.String(),
		Status:          r.Status.String(),
		Latitude:        r.Latitude,
		Longitude:       r.Longitude,
		ReportedAt:      r.ReportedAt,
		ResolvedAt:      r.ResolvedAt,
		ResolutionNotes: r.ResolutionNotes,
	}
	if r.TankID != nil {
		tid := r.TankID.String()
		doc.TankID = &tid
	}
	return doc
}

func fromReportDoc(d reportDoc) (*models.IncidentReport, error) {
	id, err := domain.ParseReportID(d.ID)
	if err != nil {
		return nil, fmt.Errorf("corrupt report document %q: %w", d.ID, err)
	}
	householdID, err := domain.ParseHouseholdID(d.HouseholdID)
	if err != nil {
		return nil, fmt.Errorf("corrupt report document %q: %w", d.ID, err)
	}
	r := &models.IncidentReport{
		ID:              id,
		HouseholdID:     householdID,
		Category:        models.ReportCategory(d.Category),
		Description:     d.Description,
		Urgency:         models.Urgency(d.Urgency),
		Status:          models.ReportStatus(d.Status),
		Latitude:        d.Latitude,
		Longitude:       d.Longitude,
		ReportedAt:      d.ReportedAt,
		ResolvedAt:      d.ResolvedAt,
		ResolutionNotes: d.ResolutionNotes,
	}
	if d.TankID != nil {
		tid, err := domain.ParseTankID(*d.TankID)
		if err != nil {
			return nil, fmt.Errorf("corrupt report document %q: %w", d.ID, err)
		}
		r.TankID = &tid
	}
	return r, nil
}

// urgentUnresolvedFilter matches reports that demand dispatch attention:
// high/critical urgency that nobody has started working on yet.
func urgentUnresolvedFilter() bson.M {
	return bson.M{
		"urgency": bson.M{"$in": []string{
			models.UrgencyHigh.String(),
			models.UrgencyCritical.String(),
		}},
		"status": bson.M{"$in": []string{
			models.StatusPending.String(),
			models.StatusInReview.String(),
		}},
	}
}

// MongoStore persists incident reports in a MongoDB collection.
type MongoStore struct {
	col *mongo.Collection
}

// NewMongo constructs a MongoDB-backed report store.
func NewMongo(db *mongo.Database) *MongoStore {
	return &MongoStore{col: db.Collection("reports")}
}

func (s *MongoStore) Save(ctx context.Context, r *models.IncidentReport) error {
	if _, err := s.col.InsertOne(ctx, toReportDoc(r)); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}

func (s *MongoStore) Update(ctx context.Context, r *models.IncidentReport) error {
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": r.ID.String()}, toReportDoc(r))
	if err != nil {
		return fmt.Errorf("update report: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("report not found: %w", sentinel.ErrNotFound)
	}
	return nil
}

func (s *MongoStore) FindByID(ctx context.Context, id domain.ReportID) (*models.IncidentReport, error) {
	var doc reportDoc
	err := s.col.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("report not found: %w", sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find report: %w", err)
	}
	return fromReportDoc(doc)
}

func (s *MongoStore) findMany(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]*models.IncidentReport, error) {
	opts = append(opts, options.Find().SetSort(bson.D{{Key: "reported_at", Value: -1}}))
	cur, err := s.col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("find reports: %w", err)
	}
	var docs []reportDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode reports: %w", err)
	}
	out := make([]*models.IncidentReport, 0, len(docs))
	for _, d := range docs {
		r, err := fromReportDoc(d)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *MongoStore) FindAll(ctx context.Context) ([]*models.IncidentReport, error) {
	return s.findMany(ctx, bson.M{})
}

func (s *MongoStore) FindByHousehold(ctx context.Context, householdID domain.HouseholdID) ([]*models.IncidentReport, error) {
	return s.findMany(ctx, bson.M{"household_id": householdID.String()})
}

func (s *MongoStore) FindByTank(ctx context.Context, tankID domain.TankID) ([]*models.IncidentReport, error) {
	return s.findMany(ctx, bson.M{"tank_id": tankID.String()})
}

func (s *MongoStore) FindByCategory(ctx context.Context, category models.ReportCategory) ([]*models.IncidentReport, error) {
	return s.findMany(ctx, bson.M{"category": category.String()})
}

func (s *MongoStore) FindByStatus(ctx context.Context, status models.ReportStatus) ([]*models.IncidentReport, error) {
	return s.findMany(ctx, bson.M{"status": status.String()})
}

func (s *MongoStore) FindByUrgency(ctx context.Context, urgency models.Urgency) ([]*models.IncidentReport, error) {
	return s.findMany(ctx, bson.M{"urgency": urgency.String()})
}

func (s *MongoStore) FindPending(ctx context.Context) ([]*models.IncidentReport, error) {
	return s.findMany(ctx, bson.M{"status": models.StatusPending.String()})
}

func (s *MongoStore) FindUrgentUnresolved(ctx context.Context) ([]*models.IncidentReport, error) {
	return s.findMany(ctx, urgentUnresolvedFilter())
}

func (s *MongoStore) FindByDate(ctx context.Context, day time.Time) ([]*models.IncidentReport, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)
	return s.findMany(ctx, bson.M{"reported_at": bson.M{"$gte": start, "$lt": end}})
}

func (s *MongoStore) FindByDateRange(ctx context.Context, from, to time.Time) ([]*models.IncidentReport, error) {
	return s.findMany(ctx, bson.M{"reported_at": bson.M{"$gte": from, "$lte": to}})
}

func (s *MongoStore) FindRecent(ctx context.Context, limit int) ([]*models.IncidentReport, error) {
	return s.findMany(ctx, bson.M{}, options.Find().SetLimit(int64(limit)))
}

func (s *MongoStore) count(ctx context.Context, filter bson.M) (int, error) {
	n, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count reports: %w", err)
	}
	return int(n), nil
}

func (s *MongoStore) CountAll(ctx context.Context) (int, error) {
	return s.count(ctx, bson.M{})
}

func (s *MongoStore) CountByStatus(ctx context.Context, status models.ReportStatus) (int, error) {
	return s.count(ctx, bson.M{"status": status.String()})
}

func (s *MongoStore) CountByCategory(ctx context.Context, category models.ReportCategory) (int, error) {
	return s.count(ctx, bson.M{"category": category.String()})
}

func (s *MongoStore) CountUrgentUnresolved(ctx context.Context) (int, error) {
	return s.count(ctx, urgentUnresolvedFilter())
}
