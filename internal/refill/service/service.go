// Package service implements the refill use cases. Recording a refill is
// the one workflow in the system that mutates two entities: the delivery
// log gains a record and the tank gains water.
package service

import (
	"context"
	"errors"
	"time"

	"aguasur/internal/platform/metrics"
	"aguasur/internal/refill/models"
	"aguasur/internal/refill/store"
	tankstore "aguasur/internal/tank/store"
	"aguasur/pkg/domain"
	dErrors "aguasur/pkg/domain-errors"
	"aguasur/pkg/platform/sentinel"
	"aguasur/pkg/requestcontext"
)

// Service orchestrates refill recording and delivery history queries.
type Service struct {
	refills store.Store
	tanks   tankstore.Store
	metrics *metrics.Metrics
}

// New constructs a refill service. metrics may be nil in tests.
func New(refills store.Store, tanks tankstore.Store, m *metrics.Metrics) *Service {
	return &Service{refills: refills, tanks: tanks, metrics: m}
}

// RecordInput carries the primitive inputs for recording a delivery.
type RecordInput struct {
	TankID   domain.TankID
	Liters   int
	Cost     float64
	Provider string
	Notes    string
}

// Record logs a water delivery against a tank. The tank must be
// operational. Delivered liters above the tank's free capacity are
// clamped, and the record keeps the before and after readings so the
// clamp is visible in the history.
//
// The record and the tank update are two separate writes. A crash
// between them loses the level update but never the delivery record.
func (s *Service) Record(ctx context.Context, in RecordInput) (*models.RefillRecord, error) {
	t, err := s.tanks.FindByID(ctx, in.TankID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "tank not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "lookup tank")
	}
	if !t.IsOperational() {
		return nil, dErrors.Newf(dErrors.CodeInvalidState, "tank is %s, refills require an operational tank", t.Status)
	}

	now := requestcontext.Now(ctx)
	levelBefore := t.Level
	if err := t.Fill(in.Liters, now); err != nil {
		return nil, err
	}
	levelAfter := t.Level

	record, err := models.NewRefillRecord(
		domain.NewRefillID(),
		in.TankID,
		in.Liters,
		in.Cost,
		in.Provider,
		levelBefore,
		levelAfter,
		in.Notes,
		now,
	)
	if err != nil {
		return nil, err
	}

	if err := s.refills.Save(ctx, record); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "save refill record")
	}
	if err := s.tanks.Update(ctx, t); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "update tank level")
	}

	if s.metrics != nil {
		s.metrics.RefillsRecorded.Inc()
		s.metrics.RefillLiters.Add(float64(in.Liters))
	}
	return record, nil
}

// Get retrieves a refill record by ID.
func (s *Service) Get(ctx context.Context, id domain.RefillID) (*models.RefillRecord, error) {
	record, err := s.refills.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "refill record not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "refill storage failure")
	}
	return record, nil
}

// ListFilter narrows refill listings. Zero value lists everything.
type ListFilter struct {
	TankID   *domain.TankID
	Provider string
	From     time.Time
	To       time.Time
	Limit    int
}

// List returns refill records matching the filter, newest first.
func (s *Service) List(ctx context.Context, f ListFilter) ([]*models.RefillRecord, error) {
	var (
		records []*models.RefillRecord
		err     error
	)
	switch {
	case f.TankID != nil:
		records, err = s.refills.FindByTank(ctx, *f.TankID)
	case f.Provider != "":
		records, err = s.refills.FindByProvider(ctx, f.Provider)
	case !f.From.IsZero() || !f.To.IsZero():
		records, err = s.refills.FindByDateRange(ctx, f.From, f.To)
	case f.Limit > 0:
		records, err = s.refills.FindRecent(ctx, f.Limit)
	default:
		records, err = s.refills.FindAll(ctx)
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list refills")
	}
	return records, nil
}

// LatestForTank returns the most recent delivery for a tank, or a
// not-found error when the tank has never been refilled.
func (s *Service) LatestForTank(ctx context.Context, tankID domain.TankID) (*models.RefillRecord, error) {
	record, err := s.refills.FindLatestForTank(ctx, tankID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "no refills recorded for tank")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "refill storage failure")
	}
	return record, nil
}

// Providers lists the distinct delivery providers seen so far.
func (s *Service) Providers(ctx context.Context) ([]string, error) {
	providers, err := s.refills.ListProviders(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list providers")
	}
	return providers, nil
}

// Stats aggregates the delivery history.
type Stats struct {
	TotalRefills        int     `json:"total_refills"`
	TotalLiters         int     `json:"total_liters"`
	TotalCost           float64 `json:"total_cost"`
	AverageCostPerLiter float64 `json:"average_cost_per_liter"`
}

// Statistics returns delivery totals across all tanks.
func (s *Service) Statistics(ctx context.Context) (Stats, error) {
	count, err := s.refills.CountAll(ctx)
	if err != nil {
		return Stats{}, dErrors.Wrap(err, dErrors.CodeInternal, "count refills")
	}
	liters, err := s.refills.SumLiters(ctx)
	if err != nil {
		return Stats{}, dErrors.Wrap(err, dErrors.CodeInternal, "sum liters")
	}
	cost, err := s.refills.SumCost(ctx)
	if err != nil {
		return Stats{}, dErrors.Wrap(err, dErrors.CodeInternal, "sum cost")
	}
	stats := Stats{TotalRefills: count, TotalLiters: liters, TotalCost: cost}
	if liters > 0 {
		stats.AverageCostPerLiter = cost / float64(liters)
	}
	return stats, nil
}
