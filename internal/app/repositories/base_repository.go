// Package repositories contains the data-access layer. Generic repositories
// provide uniform CRUD over the entity model; domain repositories layer
// entity-specific queries on top of them.
package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/trashmob-eco/trashmob-api/internal/pkg/apperrors"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/dberrors"
)

// BaseRepository provides generic CRUD for any entity type. Reads are
// untracked queries; writes persist the full row.
type BaseRepository[T any] struct {
	db *gorm.DB
}

// NewBaseRepository creates a BaseRepository bound to db.
func NewBaseRepository[T any](db *gorm.DB) *BaseRepository[T] {
	return &BaseRepository[T]{db: db}
}

// WithTx returns a repository bound to the given transaction handle.
func (r *BaseRepository[T]) WithTx(tx *gorm.DB) *BaseRepository[T] {
	return &BaseRepository[T]{db: tx}
}

// Add inserts the entity and persists it. Unique-constraint violations are
// reported as a typed already-exists error rather than a driver error.
func (r *BaseRepository[T]) Add(ctx context.Context, entity *T) error {
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		if dberrors.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %v", apperrors.ErrResourceAlreadyExists, err)
		}
		return err
	}
	return nil
}

// Update persists the full row, replacing every column.
func (r *BaseRepository[T]) Update(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Save(entity).Error
}

// Delete physically removes the entity, returning the affected row count.
func (r *BaseRepository[T]) Delete(ctx context.Context, entity *T) (int64, error) {
	result := r.db.WithContext(ctx).Delete(entity)
	return result.RowsAffected, result.Error
}

// Query returns a composable query surface scoped to the entity's table.
func (r *BaseRepository[T]) Query(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(new(T))
}

// Find returns all entities matching the given conditions.
func (r *BaseRepository[T]) Find(ctx context.Context, conds ...interface{}) ([]T, error) {
	var entities []T
	if err := r.db.WithContext(ctx).Find(&entities, conds...).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// First returns the first entity matching the given conditions, or a typed
// not-found error.
func (r *BaseRepository[T]) First(ctx context.Context, conds ...interface{}) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).First(&entity, conds...).Error; err != nil {
		if dberrors.IsNotFound(err) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// Count returns the number of rows matching the query condition.
func (r *BaseRepository[T]) Count(ctx context.Context, query interface{}, args ...interface{}) (int64, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(new(T))
	if query != nil {
		q = q.Where(query, args...)
	}
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
