package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trashmob-eco/trashmob-api/internal/pkg/apperrors"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/dberrors"
)

// KeyedRepository extends BaseRepository with UUID primary-key access for
// entities deriving from models.KeyedModel.
type KeyedRepository[T any] struct {
	BaseRepository[T]
}

// NewKeyedRepository creates a KeyedRepository bound to db.
func NewKeyedRepository[T any](db *gorm.DB) *KeyedRepository[T] {
	return &KeyedRepository[T]{BaseRepository[T]{db: db}}
}

// WithTx returns a repository bound to the given transaction handle.
func (r *KeyedRepository[T]) WithTx(tx *gorm.DB) *KeyedRepository[T] {
	return &KeyedRepository[T]{BaseRepository[T]{db: tx}}
}

// GetByID fetches the entity by primary key, returning a typed not-found
// error when the row is absent.
func (r *KeyedRepository[T]) GetByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).First(&entity, "id = ?", id).Error; err != nil {
		if dberrors.IsNotFound(err) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// DeleteByID fetches then physically removes the row. A missing row is a
// typed not-found error, never a silent no-op.
func (r *KeyedRepository[T]) DeleteByID(ctx context.Context, id uuid.UUID) error {
	entity, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	_, err = r.Delete(ctx, entity)
	return err
}
