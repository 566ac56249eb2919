package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trashmob-eco/trashmob-api/internal/app/models"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/apperrors"
)

// PhotoRepository is the generic store behind the moderation workflow. T is
// one of the concrete photo entities; the flag and moderation-log tables are
// shared across all of them, discriminated by photo type.
type PhotoRepository[T any] struct {
	*KeyedRepository[T]
}

// NewPhotoRepository creates a PhotoRepository for one photo entity type.
func NewPhotoRepository[T any](db *gorm.DB) *PhotoRepository[T] {
	return &PhotoRepository[T]{KeyedRepository: NewKeyedRepository[T](db)}
}

// WithTx returns a repository bound to the given transaction handle.
func (r *PhotoRepository[T]) WithTx(tx *gorm.DB) *PhotoRepository[T] {
	return &PhotoRepository[T]{KeyedRepository: r.KeyedRepository.WithTx(tx)}
}

// GetByID fetches one photo, mapping absence to the typed photo error.
func (r *PhotoRepository[T]) GetByID(ctx context.Context, id uuid.UUID) (*T, error) {
	photo, err := r.KeyedRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrPhotoNotFound
		}
		return nil, err
	}
	return photo, nil
}

// GetByOwner returns all photos attached to the owning entity. ownerColumn is
// the foreign-key column of the concrete photo table.
func (r *PhotoRepository[T]) GetByOwner(ctx context.Context, ownerColumn string, ownerID uuid.UUID) ([]T, error) {
	var photos []T
	err := r.db.WithContext(ctx).
		Where(ownerColumn+" = ?", ownerID).
		Order("created_date").
		Find(&photos).Error
	if err != nil {
		return nil, err
	}
	return photos, nil
}

// GetPending returns the photos awaiting a moderation decision, oldest first.
func (r *PhotoRepository[T]) GetPending(ctx context.Context) ([]T, error) {
	var photos []T
	err := r.db.WithContext(ctx).
		Where("moderation_status = ?", models.ModerationPending).
		Order("created_date").
		Find(&photos).Error
	if err != nil {
		return nil, err
	}
	return photos, nil
}

// GetFlagged returns the photos marked in-review by user flags, oldest first.
func (r *PhotoRepository[T]) GetFlagged(ctx context.Context) ([]T, error) {
	var photos []T
	err := r.db.WithContext(ctx).
		Where("in_review = ?", true).
		Order("created_date").
		Find(&photos).Error
	if err != nil {
		return nil, err
	}
	return photos, nil
}

// PhotoAuditRepository stores the flag and moderation-log rows shared by all
// photo types.
type PhotoAuditRepository struct {
	db *gorm.DB
}

// NewPhotoAuditRepository creates a new PhotoAuditRepository.
func NewPhotoAuditRepository(db *gorm.DB) *PhotoAuditRepository {
	return &PhotoAuditRepository{db: db}
}

// WithTx returns a repository bound to the given transaction handle.
func (r *PhotoAuditRepository) WithTx(tx *gorm.DB) *PhotoAuditRepository {
	return &PhotoAuditRepository{db: tx}
}

// AddFlag records a user flag.
func (r *PhotoAuditRepository) AddFlag(ctx context.Context, flag *models.PhotoFlag) error {
	return r.db.WithContext(ctx).Create(flag).Error
}

// GetFlags returns the flags raised against a photo, oldest first.
func (r *PhotoAuditRepository) GetFlags(ctx context.Context, photoID uuid.UUID) ([]models.PhotoFlag, error) {
	var flags []models.PhotoFlag
	err := r.db.WithContext(ctx).
		Where("photo_id = ?", photoID).
		Order("created_date").
		Find(&flags).Error
	if err != nil {
		return nil, err
	}
	return flags, nil
}

// AddLog appends a moderation-log entry. The log is append-only.
func (r *PhotoAuditRepository) AddLog(ctx context.Context, entry *models.PhotoModerationLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// GetLog returns the moderation trail of a photo in action order.
func (r *PhotoAuditRepository) GetLog(ctx context.Context, photoID uuid.UUID) ([]models.PhotoModerationLog, error) {
	var entries []models.PhotoModerationLog
	err := r.db.WithContext(ctx).
		Where("photo_id = ?", photoID).
		Order("created_date").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
