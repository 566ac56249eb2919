package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/trashmob-eco/trashmob-api/internal/pkg/apperrors"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/dberrors"
)

// LookupRepository is the read-only surface over integer-keyed reference
// tables. Lookup rows are seeded configuration data, not user-mutable.
type LookupRepository[T any] struct {
	db *gorm.DB
}

// NewLookupRepository creates a LookupRepository bound to db.
func NewLookupRepository[T any](db *gorm.DB) *LookupRepository[T] {
	return &LookupRepository[T]{db: db}
}

// GetAll returns every lookup row ordered for display.
func (r *LookupRepository[T]) GetAll(ctx context.Context) ([]T, error) {
	var entities []T
	if err := r.db.WithContext(ctx).Order("display_order, id").Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// GetActive returns the active lookup rows ordered for display.
func (r *LookupRepository[T]) GetActive(ctx context.Context) ([]T, error) {
	var entities []T
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("display_order, id").Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// GetByID fetches a lookup row by its integer key.
func (r *LookupRepository[T]) GetByID(ctx context.Context, id int) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).First(&entity, "id = ?", id).Error; err != nil {
		if dberrors.IsNotFound(err) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, err
	}
	return &entity, nil
}
