package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trashmob-eco/trashmob-api/internal/app/models"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/apperrors"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/dberrors"
)

// TeamAdoptionRepository handles database operations for area adoptions and
// the events held under them.
type TeamAdoptionRepository struct {
	*KeyedRepository[models.TeamAdoption]
}

// NewTeamAdoptionRepository creates a new TeamAdoptionRepository.
func NewTeamAdoptionRepository(db *gorm.DB) *TeamAdoptionRepository {
	return &TeamAdoptionRepository{KeyedRepository: NewKeyedRepository[models.TeamAdoption](db)}
}

// WithTx returns a repository bound to the given transaction handle.
func (r *TeamAdoptionRepository) WithTx(tx *gorm.DB) *TeamAdoptionRepository {
	return &TeamAdoptionRepository{KeyedRepository: r.KeyedRepository.WithTx(tx)}
}

// GetByID fetches one adoption, mapping absence to the typed adoption error.
func (r *TeamAdoptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.TeamAdoption, error) {
	adoption, err := r.KeyedRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrAdoptionNotFound
		}
		return nil, err
	}
	return adoption, nil
}

// GetByTeam returns all adoption records for a team, newest first.
func (r *TeamAdoptionRepository) GetByTeam(ctx context.Context, teamID uuid.UUID) ([]models.TeamAdoption, error) {
	var adoptions []models.TeamAdoption
	err := r.Query(ctx).
		Where("team_id = ?", teamID).
		Order("created_date DESC").
		Find(&adoptions).Error
	if err != nil {
		return nil, err
	}
	return adoptions, nil
}

// GetByStatus returns adoptions in the given state, oldest first so the
// review queue is processed in arrival order.
func (r *TeamAdoptionRepository) GetByStatus(ctx context.Context, status models.AdoptionStatus) ([]models.TeamAdoption, error) {
	var adoptions []models.TeamAdoption
	err := r.Query(ctx).
		Where("status = ?", status).
		Order("created_date").
		Find(&adoptions).Error
	if err != nil {
		return nil, err
	}
	return adoptions, nil
}

// HasActiveAdoption reports whether the area already has a pending or
// approved adoption, which blocks new applications for it.
func (r *TeamAdoptionRepository) HasActiveAdoption(ctx context.Context, areaID uuid.UUID) (bool, error) {
	var count int64
	err := r.Query(ctx).Model(&models.TeamAdoption{}).
		Where("adoptable_area_id = ? AND status IN ?", areaID,
			[]models.AdoptionStatus{models.AdoptionPending, models.AdoptionApproved}).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetActiveForTeamAndArea returns the team's pending or approved adoption of
// the area, or the typed adoption error when none exists.
func (r *TeamAdoptionRepository) GetActiveForTeamAndArea(ctx context.Context, teamID, areaID uuid.UUID) (*models.TeamAdoption, error) {
	var adoption models.TeamAdoption
	err := r.Query(ctx).
		Where("team_id = ? AND adoptable_area_id = ? AND status IN ?", teamID, areaID,
			[]models.AdoptionStatus{models.AdoptionPending, models.AdoptionApproved}).
		First(&adoption).Error
	if err != nil {
		if dberrors.IsNotFound(err) {
			return nil, apperrors.ErrAdoptionNotFound
		}
		return nil, err
	}
	return &adoption, nil
}

// LinkEvent records a cleanup event held under an adoption. Relinking the
// same event is treated as a no-op.
func (r *TeamAdoptionRepository) LinkEvent(ctx context.Context, link *models.TeamAdoptionEvent) error {
	if err := r.db.WithContext(ctx).Create(link).Error; err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil
		}
		return err
	}
	return nil
}

// GetLinkedEvents returns the event links recorded under an adoption.
func (r *TeamAdoptionRepository) GetLinkedEvents(ctx context.Context, adoptionID uuid.UUID) ([]models.TeamAdoptionEvent, error) {
	var links []models.TeamAdoptionEvent
	err := r.db.WithContext(ctx).
		Where("team_adoption_id = ?", adoptionID).
		Order("created_date").
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}
