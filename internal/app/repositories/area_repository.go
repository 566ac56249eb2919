package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trashmob-eco/trashmob-api/internal/app/models"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/apperrors"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/dberrors"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/geo"
)

// AreaRepository handles database operations for adoptable areas, staged
// candidate areas, and the generation batches that propose them.
type AreaRepository struct {
	*KeyedRepository[models.AdoptableArea]
}

// NewAreaRepository creates a new AreaRepository.
func NewAreaRepository(db *gorm.DB) *AreaRepository {
	return &AreaRepository{KeyedRepository: NewKeyedRepository[models.AdoptableArea](db)}
}

// WithTx returns a repository bound to the given transaction handle.
func (r *AreaRepository) WithTx(tx *gorm.DB) *AreaRepository {
	return &AreaRepository{KeyedRepository: r.KeyedRepository.WithTx(tx)}
}

// GetByID fetches one area, mapping absence to the typed area error.
func (r *AreaRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.AdoptableArea, error) {
	area, err := r.KeyedRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrAreaNotFound
		}
		return nil, err
	}
	return area, nil
}

// GetActiveInBox returns active areas whose center falls inside the bounding
// box. Callers refine the result with an exact distance check.
func (r *AreaRepository) GetActiveInBox(ctx context.Context, box geo.BoundingBox) ([]models.AdoptableArea, error) {
	var areas []models.AdoptableArea
	err := r.Query(ctx).
		Where("is_active = ?", true).
		Where("center_latitude BETWEEN ? AND ?", box.MinLat, box.MaxLat).
		Where("center_longitude BETWEEN ? AND ?", box.MinLon, box.MaxLon).
		Find(&areas).Error
	if err != nil {
		return nil, err
	}
	return areas, nil
}

// GetActive returns all active areas ordered by name.
func (r *AreaRepository) GetActive(ctx context.Context) ([]models.AdoptableArea, error) {
	var areas []models.AdoptableArea
	err := r.Query(ctx).
		Where("is_active = ?", true).
		Order("name").
		Find(&areas).Error
	if err != nil {
		return nil, err
	}
	return areas, nil
}

// AddBatch inserts a generation batch record.
func (r *AreaRepository) AddBatch(ctx context.Context, batch *models.AreaGenerationBatch) error {
	return r.db.WithContext(ctx).Create(batch).Error
}

// UpdateBatch persists a generation batch record.
func (r *AreaRepository) UpdateBatch(ctx context.Context, batch *models.AreaGenerationBatch) error {
	return r.db.WithContext(ctx).Save(batch).Error
}

// GetBatch fetches one generation batch by ID.
func (r *AreaRepository) GetBatch(ctx context.Context, id uuid.UUID) (*models.AreaGenerationBatch, error) {
	var batch models.AreaGenerationBatch
	err := r.db.WithContext(ctx).First(&batch, "id = ?", id).Error
	if err != nil {
		if dberrors.IsNotFound(err) {
			return nil, apperrors.ErrBatchNotFound
		}
		return nil, err
	}
	return &batch, nil
}

// AddStaged inserts staged candidate areas in one statement.
func (r *AreaRepository) AddStaged(ctx context.Context, staged []models.StagedAdoptableArea) error {
	if len(staged) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&staged).Error
}

// GetStaged fetches one staged area by ID.
func (r *AreaRepository) GetStaged(ctx context.Context, id uuid.UUID) (*models.StagedAdoptableArea, error) {
	var staged models.StagedAdoptableArea
	err := r.db.WithContext(ctx).First(&staged, "id = ?", id).Error
	if err != nil {
		if dberrors.IsNotFound(err) {
			return nil, apperrors.ErrStagedAreaNotFound
		}
		return nil, err
	}
	return &staged, nil
}

// UpdateStaged persists a staged area.
func (r *AreaRepository) UpdateStaged(ctx context.Context, staged *models.StagedAdoptableArea) error {
	return r.db.WithContext(ctx).Save(staged).Error
}

// GetStagedByBatch returns the staged areas proposed by one batch, optionally
// filtered to one review status.
func (r *AreaRepository) GetStagedByBatch(ctx context.Context, batchID uuid.UUID, status *models.ReviewStatus) ([]models.StagedAdoptableArea, error) {
	q := r.db.WithContext(ctx).Where("batch_id = ?", batchID)
	if status != nil {
		q = q.Where("review_status = ?", *status)
	}
	var staged []models.StagedAdoptableArea
	if err := q.Order("created_date").Find(&staged).Error; err != nil {
		return nil, err
	}
	return staged, nil
}

// GetPendingStaged returns staged areas awaiting review, oldest first.
func (r *AreaRepository) GetPendingStaged(ctx context.Context) ([]models.StagedAdoptableArea, error) {
	var staged []models.StagedAdoptableArea
	err := r.db.WithContext(ctx).
		Where("review_status = ?", models.ReviewPending).
		Order("created_date").
		Find(&staged).Error
	if err != nil {
		return nil, err
	}
	return staged, nil
}
