package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trashmob-eco/trashmob-api/internal/app/models"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/apperrors"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/geo"
)

// TeamRepository handles database operations for teams.
type TeamRepository struct {
	*KeyedRepository[models.Team]
}

// NewTeamRepository creates a new TeamRepository.
func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{NewKeyedRepository[models.Team](db)}
}

// WithTx returns a repository bound to the given transaction handle.
func (r *TeamRepository) WithTx(tx *gorm.DB) *TeamRepository {
	return &TeamRepository{r.KeyedRepository.WithTx(tx)}
}

// GetByID fetches one team, mapping absence to the typed team error.
func (r *TeamRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	team, err := r.KeyedRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}

// CountByNormalizedName counts teams whose trimmed, lowercased name matches,
// optionally excluding one team ID (for renames). Normalization happens at
// the SQL layer so stored whitespace or casing differences still collide.
func (r *TeamRepository) CountByNormalizedName(ctx context.Context, name string, excludeID *uuid.UUID) (int64, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))

	query := r.db.WithContext(ctx).Model(&models.Team{}).
		Where("LOWER(TRIM(name)) = ?", normalized)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}

// GetPublicTeamsInBox returns public teams whose location falls inside the
// bounding box. The box is a store-side prefilter; precise distance
// filtering happens in the service layer.
func (r *TeamRepository) GetPublicTeamsInBox(ctx context.Context, box geo.BoundingBox) ([]models.Team, error) {
	var teams []models.Team
	err := r.db.WithContext(ctx).
		Where("is_public = ?", true).
		Where("latitude BETWEEN ? AND ?", box.MinLat, box.MaxLat).
		Where("longitude BETWEEN ? AND ?", box.MinLon, box.MaxLon).
		Order("name").
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

// GetPublicTeams returns all public teams.
func (r *TeamRepository) GetPublicTeams(ctx context.Context) ([]models.Team, error) {
	var teams []models.Team
	err := r.db.WithContext(ctx).
		Where("is_public = ?", true).
		Order("name").
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}
