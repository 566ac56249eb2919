package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/trashmob-eco/trashmob-api/internal/app/auth"
	"github.com/trashmob-eco/trashmob-api/internal/app/models"
	"github.com/trashmob-eco/trashmob-api/internal/app/models/dto"
	"github.com/trashmob-eco/trashmob-api/internal/app/repositories"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/apperrors"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/geo"
)

// TeamService defines the interface for team operations.
type TeamService interface {
	CreateTeam(ctx context.Context, actorID uuid.UUID, req *dto.CreateTeamRequest) (*models.Team, error)
	UpdateTeam(ctx context.Context, teamID, actorID uuid.UUID, req *dto.UpdateTeamRequest) (*models.Team, error)
	DeleteTeam(ctx context.Context, teamID, actorID uuid.UUID) error
	GetTeam(ctx context.Context, teamID uuid.UUID) (*models.Team, error)
	IsTeamNameAvailable(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)
	GetPublicTeams(ctx context.Context, filter *dto.PublicTeamsFilter) ([]models.Team, error)
}

// teamServiceImpl implements TeamService
type teamServiceImpl struct {
	teamRepo       *repositories.TeamRepository
	teamMemberRepo *repositories.TeamMemberRepository
	uow            *repositories.UnitOfWork
	authzService   *auth.AuthorizationService
	logger         zerolog.Logger
	now            func() time.Time
}

// NewTeamService creates a new TeamService.
func NewTeamService(
	teamRepo *repositories.TeamRepository,
	teamMemberRepo *repositories.TeamMemberRepository,
	uow *repositories.UnitOfWork,
	authzService *auth.AuthorizationService,
	logger zerolog.Logger,
) TeamService {
	return &teamServiceImpl{
		teamRepo:       teamRepo,
		teamMemberRepo: teamMemberRepo,
		uow:            uow,
		authzService:   authzService,
		logger:         logger,
		now:            time.Now,
	}
}

// CreateTeam forms a new team. The creator becomes its first lead in the
// same transaction, so a leadless team can never be observed.
func (s *teamServiceImpl) CreateTeam(ctx context.Context, actorID uuid.UUID, req *dto.CreateTeamRequest) (*models.Team, error) {
	available, err := s.IsTeamNameAvailable(ctx, req.Name, nil)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, apperrors.ErrTeamNameTaken
	}

	now := s.now()
	team := &models.Team{
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
		City:        req.City,
		Region:      req.Region,
		Country:     req.Country,
		PostalCode:  req.PostalCode,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}
	team.StampCreate(actorID, now)

	err = s.uow.Do(ctx, func(tx *gorm.DB) error {
		if err := s.teamRepo.WithTx(tx).Add(ctx, team); err != nil {
			return err
		}
		lead := &models.TeamMember{
			TeamID:              team.ID,
			UserID:              actorID,
			IsLead:              true,
			JoinedDate:          now,
			CreatedByUserID:     actorID,
			CreatedDate:         now,
			LastUpdatedByUserID: actorID,
			LastUpdatedDate:     now,
		}
		return s.teamMemberRepo.WithTx(tx).Add(ctx, lead)
	})
	if err != nil {
		s.logger.Error().Err(err).Str("name", req.Name).Msg("Failed to create team")
		return nil, err
	}

	s.logger.Info().Str("teamId", team.ID.String()).Str("createdBy", actorID.String()).Msg("Team created")
	return team, nil
}

// UpdateTeam applies a full-replace edit to a team. Renames re-check name
// availability excluding the team itself.
func (s *teamServiceImpl) UpdateTeam(ctx context.Context, teamID, actorID uuid.UUID, req *dto.UpdateTeamRequest) (*models.Team, error) {
	if err := s.authzService.RequireTeamLead(ctx, teamID, actorID); err != nil {
		return nil, err
	}

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	available, err := s.IsTeamNameAvailable(ctx, req.Name, &teamID)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, apperrors.ErrTeamNameTaken
	}

	team.Name = req.Name
	team.Description = req.Description
	team.IsPublic = req.IsPublic
	team.City = req.City
	team.Region = req.Region
	team.Country = req.Country
	team.PostalCode = req.PostalCode
	team.Latitude = req.Latitude
	team.Longitude = req.Longitude
	team.StampUpdate(actorID, s.now())

	if err := s.teamRepo.Update(ctx, team); err != nil {
		s.logger.Error().Err(err).Str("teamId", teamID.String()).Msg("Failed to update team")
		return nil, err
	}
	return team, nil
}

// DeleteTeam removes a team and its membership rows.
func (s *teamServiceImpl) DeleteTeam(ctx context.Context, teamID, actorID uuid.UUID) error {
	if err := s.authzService.RequireTeamLead(ctx, teamID, actorID); err != nil {
		return err
	}

	err := s.uow.Do(ctx, func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).Where("team_id = ?", teamID).Delete(&models.TeamMember{}).Error; err != nil {
			return err
		}
		return s.teamRepo.WithTx(tx).DeleteByID(ctx, teamID)
	})
	if err != nil {
		s.logger.Error().Err(err).Str("teamId", teamID.String()).Msg("Failed to delete team")
		return err
	}

	s.logger.Info().Str("teamId", teamID.String()).Str("deletedBy", actorID.String()).Msg("Team deleted")
	return nil
}

// GetTeam fetches one team by ID.
func (s *teamServiceImpl) GetTeam(ctx context.Context, teamID uuid.UUID) (*models.Team, error) {
	return s.teamRepo.GetByID(ctx, teamID)
}

// IsTeamNameAvailable reports whether no team holds the name after trimming
// and case folding.
func (s *teamServiceImpl) IsTeamNameAvailable(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	count, err := s.teamRepo.CountByNormalizedName(ctx, name, excludeID)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// GetPublicTeams lists public teams. When the filter supplies a complete
// center and radius, candidates are prefiltered by bounding box in the store
// and then cut precisely by great-circle distance.
func (s *teamServiceImpl) GetPublicTeams(ctx context.Context, filter *dto.PublicTeamsFilter) ([]models.Team, error) {
	if filter == nil || filter.Latitude == nil || filter.Longitude == nil || filter.RadiusMiles == nil {
		return s.teamRepo.GetPublicTeams(ctx)
	}

	lat, lon, radius := *filter.Latitude, *filter.Longitude, *filter.RadiusMiles
	if radius <= 0 {
		return nil, apperrors.ErrBadRequest
	}

	box := geo.BoundingBoxAround(lat, lon, radius)
	candidates, err := s.teamRepo.GetPublicTeamsInBox(ctx, box)
	if err != nil {
		return nil, err
	}

	teams := make([]models.Team, 0, len(candidates))
	for _, team := range candidates {
		if geo.DistanceMiles(lat, lon, team.Latitude, team.Longitude) <= radius {
			teams = append(teams, team)
		}
	}
	return teams, nil
}
