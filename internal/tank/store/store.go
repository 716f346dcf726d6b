// Package store defines the tank persistence gateway and its
// implementations.
//
// Error contract (all implementations):
//   - Find* methods wrap sentinel.ErrNotFound when the entity is absent
//   - Infrastructure failures come back wrapped with context
package store

import (
	"context"

	"aguasur/internal/tank/models"
	"aguasur/pkg/domain"
)

// Store is the persistence gateway for tanks.
type Store interface {
	Save(ctx context.Context, t *models.Tank) error
	Update(ctx context.Context, t *models.Tank) error
	Delete(ctx context.Context, id domain.TankID) error

	FindByID(ctx context.Context, id domain.TankID) (*models.Tank, error)
	// FindAll returns every tank sorted by location.
	FindAll(ctx context.Context) ([]*models.Tank, error)
	FindByCategory(ctx context.Context, category models.TankCategory) ([]*models.Tank, error)
	FindByHousehold(ctx context.Context, householdID domain.HouseholdID) ([]*models.Tank, error)
	FindOperational(ctx context.Context) ([]*models.Tank, error)
	// FindCritical and FindLow select by fill percentage at or below the
	// given threshold.
	FindCritical(ctx context.Context, thresholdPct float64) ([]*models.Tank, error)
	FindLow(ctx context.Context, thresholdPct float64) ([]*models.Tank, error)
	FindEmpty(ctx context.Context) ([]*models.Tank, error)
	FindPriority(ctx context.Context) ([]*models.Tank, error)
	FindWithCoordinates(ctx context.Context) ([]*models.Tank, error)

	CountAll(ctx context.Context) (int, error)
	CountByCategory(ctx context.Context, category models.TankCategory) (int, error)
	SumCapacity(ctx context.Context) (int, error)
	SumLevel(ctx context.Context) (int, error)
}
