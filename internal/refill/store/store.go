// Package store defines the refill-record persistence gateway and its
// implementations. Records are append-only: there is no update or delete.
//
// Error contract (all implementations):
//   - Find* methods wrap sentinel.ErrNotFound when the entity is absent
//   - Infrastructure failures come back wrapped with context
package store

import (
	"context"
	"time"

	"aguasur/internal/refill/models"
	"aguasur/pkg/domain"
)

// Store is the persistence gateway for refill records.
type Store interface {
	Save(ctx context.Context, r *models.RefillRecord) error

	FindByID(ctx context.Context, id domain.RefillID) (*models.RefillRecord, error)
	// FindAll returns every record, most recent first.
	FindAll(ctx context.Context) ([]*models.RefillRecord, error)
	FindByTank(ctx context.Context, tankID domain.TankID) ([]*models.RefillRecord, error)
	// FindByDate selects records supplied on the given calendar day.
	FindByDate(ctx context.Context, day time.Time) ([]*models.RefillRecord, error)
	FindByDateRange(ctx context.Context, from, to time.Time) ([]*models.RefillRecord, error)
	FindByProvider(ctx context.Context, provider string) ([]*models.RefillRecord, error)
	FindLatestForTank(ctx context.Context, tankID domain.TankID) (*models.RefillRecord, error)
	FindRecent(ctx context.Context, limit int) ([]*models.RefillRecord, error)

	CountAll(ctx context.Context) (int, error)
	CountByTank(ctx context.Context, tankID domain.TankID) (int, error)
	SumLiters(ctx context.Context) (int, error)
	SumCost(ctx context.Context) (float64, error)
	ListProviders(ctx context.Context) ([]string, error)
}
