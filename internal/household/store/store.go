// Package store defines the household persistence gateway and its
// implementations.
//
// Error contract (all implementations):
//   - Find* methods wrap sentinel.ErrNotFound when the entity is absent
//   - Infrastructure failures come back wrapped with context
//   - Services translate sentinels into domain error codes
package store

import (
	"context"

	"aguasur/internal/household/models"
	"aguasur/pkg/domain"
)

// Store is the persistence gateway for households. Use cases depend only on
// this interface; the engine behind it is swappable (memory for tests and
// dev, MongoDB in deployment).
type Store interface {
	Save(ctx context.Context, h *models.Household) error
	Update(ctx context.Context, h *models.Household) error
	Delete(ctx context.Context, id domain.HouseholdID) error

	FindByID(ctx context.Context, id domain.HouseholdID) (*models.Household, error)
	FindAll(ctx context.Context) ([]*models.Household, error)
	FindActive(ctx context.Context) ([]*models.Household, error)
	FindByZone(ctx context.Context, zone string) ([]*models.Household, error)
	FindWithTank(ctx context.Context) ([]*models.Household, error)
	FindWithoutTank(ctx context.Context) ([]*models.Household, error)
	// SearchByAddress matches a case-insensitive address substring.
	SearchByAddress(ctx context.Context, fragment string) ([]*models.Household, error)
	FindByContact(ctx context.Context, contact string) (*models.Household, error)

	CountAll(ctx context.Context) (int, error)
	CountByZone(ctx context.Context, zone string) (int, error)
	ListZones(ctx context.Context) ([]string, error)
}
