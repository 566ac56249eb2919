package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trashmob-eco/trashmob-api/internal/app/models"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/apperrors"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/dberrors"
)

// TeamMemberRepository handles database operations for team memberships and
// join requests.
type TeamMemberRepository struct {
	db *gorm.DB
}

// NewTeamMemberRepository creates a new TeamMemberRepository.
func NewTeamMemberRepository(db *gorm.DB) *TeamMemberRepository {
	return &TeamMemberRepository{db: db}
}

// WithTx returns a repository bound to the given transaction handle.
func (r *TeamMemberRepository) WithTx(tx *gorm.DB) *TeamMemberRepository {
	return &TeamMemberRepository{db: tx}
}

// Add inserts a membership row. Re-adding an existing member surfaces as a
// typed already-member error.
func (r *TeamMemberRepository) Add(ctx context.Context, member *models.TeamMember) error {
	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAlreadyTeamMember
		}
		return err
	}
	return nil
}

// Update persists a membership row.
func (r *TeamMemberRepository) Update(ctx context.Context, member *models.TeamMember) error {
	return r.db.WithContext(ctx).Save(member).Error
}

// Remove physically deletes a membership row.
func (r *TeamMemberRepository) Remove(ctx context.Context, teamID, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Delete(&models.TeamMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotTeamMember
	}
	return nil
}

// GetByTeamAndUser fetches one membership row by its composite key.
func (r *TeamMemberRepository) GetByTeamAndUser(ctx context.Context, teamID, userID uuid.UUID) (*models.TeamMember, error) {
	var member models.TeamMember
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		First(&member).Error
	if err != nil {
		if dberrors.IsNotFound(err) {
			return nil, apperrors.ErrNotTeamMember
		}
		return nil, err
	}
	return &member, nil
}

// GetByTeam returns all members of a team, leads first.
func (r *TeamMemberRepository) GetByTeam(ctx context.Context, teamID uuid.UUID) ([]models.TeamMember, error) {
	var members []models.TeamMember
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("is_lead DESC, joined_date").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

// CountLeads counts the members of a team holding the lead role.
func (r *TeamMemberRepository) CountLeads(ctx context.Context, teamID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.TeamMember{}).
		Where("team_id = ? AND is_lead = ?", teamID, true).
		Count(&count).Error
	return count, err
}

// AddJoinRequest inserts a join request.
func (r *TeamMemberRepository) AddJoinRequest(ctx context.Context, request *models.TeamJoinRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

// GetJoinRequest fetches one join request by ID.
func (r *TeamMemberRepository) GetJoinRequest(ctx context.Context, id uuid.UUID) (*models.TeamJoinRequest, error) {
	var request models.TeamJoinRequest
	err := r.db.WithContext(ctx).First(&request, "id = ?", id).Error
	if err != nil {
		if dberrors.IsNotFound(err) {
			return nil, apperrors.ErrJoinRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

// UpdateJoinRequest persists a join request.
func (r *TeamMemberRepository) UpdateJoinRequest(ctx context.Context, request *models.TeamJoinRequest) error {
	return r.db.WithContext(ctx).Save(request).Error
}

// GetPendingJoinRequests returns the unresolved join requests for a team.
func (r *TeamMemberRepository) GetPendingJoinRequests(ctx context.Context, teamID uuid.UUID) ([]models.TeamJoinRequest, error) {
	var requests []models.TeamJoinRequest
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND status = ?", teamID, models.JoinRequestPending).
		Order("created_date").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}
