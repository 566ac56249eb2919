package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/trashmob-eco/trashmob-api/internal/app/auth"
	"github.com/trashmob-eco/trashmob-api/internal/app/models"
	"github.com/trashmob-eco/trashmob-api/internal/app/models/dto"
	"github.com/trashmob-eco/trashmob-api/internal/app/repositories"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/apperrors"
)

// TeamAdoptionService defines the interface for the adopt-an-area workflow.
type TeamAdoptionService interface {
	Apply(ctx context.Context, teamID, actorID uuid.UUID, req *dto.AdoptionApplication) (*models.TeamAdoption, error)
	Approve(ctx context.Context, adoptionID, actorID uuid.UUID) error
	Reject(ctx context.Context, adoptionID, actorID uuid.UUID, reason string) error
	Revoke(ctx context.Context, adoptionID, actorID uuid.UUID, reason string) error
	GetAdoption(ctx context.Context, adoptionID uuid.UUID) (*models.TeamAdoption, error)
	GetTeamAdoptions(ctx context.Context, teamID uuid.UUID) ([]models.TeamAdoption, error)
	GetPendingAdoptions(ctx context.Context, actorID uuid.UUID) ([]models.TeamAdoption, error)
	RecordCleanupEvent(ctx context.Context, adoptionID, eventID, actorID uuid.UUID) error
	GetCleanupEvents(ctx context.Context, adoptionID uuid.UUID) ([]models.TeamAdoptionEvent, error)
}

// teamAdoptionServiceImpl implements TeamAdoptionService
type teamAdoptionServiceImpl struct {
	adoptionRepo *repositories.TeamAdoptionRepository
	areaRepo     *repositories.AreaRepository
	eventRepo    *repositories.EventRepository
	authzService *auth.AuthorizationService
	logger       zerolog.Logger
	now          func() time.Time
}

// NewTeamAdoptionService creates a new TeamAdoptionService.
func NewTeamAdoptionService(
	adoptionRepo *repositories.TeamAdoptionRepository,
	areaRepo *repositories.AreaRepository,
	eventRepo *repositories.EventRepository,
	authzService *auth.AuthorizationService,
	logger zerolog.Logger,
) TeamAdoptionService {
	return &teamAdoptionServiceImpl{
		adoptionRepo: adoptionRepo,
		areaRepo:     areaRepo,
		eventRepo:    eventRepo,
		authzService: authzService,
		logger:       logger,
		now:          time.Now,
	}
}

// Apply files a team's application to adopt an area. An area with a pending
// or approved adoption rejects further applications.
func (s *teamAdoptionServiceImpl) Apply(ctx context.Context, teamID, actorID uuid.UUID, req *dto.AdoptionApplication) (*models.TeamAdoption, error) {
	if err := s.authzService.RequireTeamLead(ctx, teamID, actorID); err != nil {
		return nil, err
	}

	area, err := s.areaRepo.GetByID(ctx, req.AdoptableAreaID)
	if err != nil {
		return nil, err
	}
	if !area.IsActive {
		return nil, apperrors.ErrAreaNotFound
	}

	taken, err := s.adoptionRepo.HasActiveAdoption(ctx, area.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.ErrAreaAlreadyAdopted
	}

	adoption := &models.TeamAdoption{
		TeamID:          teamID,
		AdoptableAreaID: area.ID,
		Status:          models.AdoptionPending,
		Notes:           req.Notes,
	}
	adoption.StampCreate(actorID, s.now())

	if err := s.adoptionRepo.Add(ctx, adoption); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("adoptionId", adoption.ID.String()).
		Str("teamId", teamID.String()).
		Str("areaId", area.ID.String()).
		Msg("Adoption application filed")
	return adoption, nil
}

// Approve moves a pending adoption to Approved. Site admin only.
func (s *teamAdoptionServiceImpl) Approve(ctx context.Context, adoptionID, actorID uuid.UUID) error {
	if err := s.authzService.RequireSiteAdmin(ctx, actorID); err != nil {
		return err
	}

	adoption, err := s.adoptionRepo.GetByID(ctx, adoptionID)
	if err != nil {
		return err
	}
	if !adoption.Status.CanTransitionTo(models.AdoptionApproved) {
		return apperrors.ErrInvalidAdoptionTransition
	}

	now := s.now()
	adoption.Status = models.AdoptionApproved
	adoption.ApprovedByUserID = &actorID
	adoption.ApprovedDate = &now
	adoption.StampUpdate(actorID, now)

	if err := s.adoptionRepo.Update(ctx, adoption); err != nil {
		return err
	}

	s.logger.Info().Str("adoptionId", adoptionID.String()).Str("approvedBy", actorID.String()).Msg("Adoption approved")
	return nil
}

// Reject moves a pending adoption to Rejected. Site admin only.
func (s *teamAdoptionServiceImpl) Reject(ctx context.Context, adoptionID, actorID uuid.UUID, reason string) error {
	if err := s.authzService.RequireSiteAdmin(ctx, actorID); err != nil {
		return err
	}

	adoption, err := s.adoptionRepo.GetByID(ctx, adoptionID)
	if err != nil {
		return err
	}
	if !adoption.Status.CanTransitionTo(models.AdoptionRejected) {
		return apperrors.ErrInvalidAdoptionTransition
	}

	adoption.Status = models.AdoptionRejected
	if reason != "" {
		adoption.Notes = reason
	}
	adoption.StampUpdate(actorID, s.now())

	if err := s.adoptionRepo.Update(ctx, adoption); err != nil {
		return err
	}

	s.logger.Info().Str("adoptionId", adoptionID.String()).Msg("Adoption rejected")
	return nil
}

// Revoke withdraws an approved adoption, freeing the area for new
// applications. Site admin only.
func (s *teamAdoptionServiceImpl) Revoke(ctx context.Context, adoptionID, actorID uuid.UUID, reason string) error {
	if err := s.authzService.RequireSiteAdmin(ctx, actorID); err != nil {
		return err
	}

	adoption, err := s.adoptionRepo.GetByID(ctx, adoptionID)
	if err != nil {
		return err
	}
	if !adoption.Status.CanTransitionTo(models.AdoptionRevoked) {
		return apperrors.ErrInvalidAdoptionTransition
	}

	now := s.now()
	adoption.Status = models.AdoptionRevoked
	adoption.RevokedDate = &now
	if reason != "" {
		adoption.Notes = reason
	}
	adoption.StampUpdate(actorID, now)

	if err := s.adoptionRepo.Update(ctx, adoption); err != nil {
		return err
	}

	s.logger.Info().Str("adoptionId", adoptionID.String()).Msg("Adoption revoked")
	return nil
}

// GetAdoption fetches one adoption by ID.
func (s *teamAdoptionServiceImpl) GetAdoption(ctx context.Context, adoptionID uuid.UUID) (*models.TeamAdoption, error) {
	return s.adoptionRepo.GetByID(ctx, adoptionID)
}

// GetTeamAdoptions lists a team's adoption records.
func (s *teamAdoptionServiceImpl) GetTeamAdoptions(ctx context.Context, teamID uuid.UUID) ([]models.TeamAdoption, error) {
	return s.adoptionRepo.GetByTeam(ctx, teamID)
}

// GetPendingAdoptions lists applications awaiting review. Site admin only.
func (s *teamAdoptionServiceImpl) GetPendingAdoptions(ctx context.Context, actorID uuid.UUID) ([]models.TeamAdoption, error) {
	if err := s.authzService.RequireSiteAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	return s.adoptionRepo.GetByStatus(ctx, models.AdoptionPending)
}

// RecordCleanupEvent links an event to an approved adoption, crediting the
// team's upkeep of the area.
func (s *teamAdoptionServiceImpl) RecordCleanupEvent(ctx context.Context, adoptionID, eventID, actorID uuid.UUID) error {
	adoption, err := s.adoptionRepo.GetByID(ctx, adoptionID)
	if err != nil {
		return err
	}
	if adoption.Status != models.AdoptionApproved {
		return apperrors.ErrInvalidAdoptionTransition
	}
	if err := s.authzService.RequireTeamLead(ctx, adoption.TeamID, actorID); err != nil {
		return err
	}
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return err
	}

	link := &models.TeamAdoptionEvent{
		TeamAdoptionID: adoptionID,
		EventID:        eventID,
		CreatedDate:    s.now(),
	}
	return s.adoptionRepo.LinkEvent(ctx, link)
}

// GetCleanupEvents lists the events recorded under an adoption.
func (s *teamAdoptionServiceImpl) GetCleanupEvents(ctx context.Context, adoptionID uuid.UUID) ([]models.TeamAdoptionEvent, error) {
	if _, err := s.adoptionRepo.GetByID(ctx, adoptionID); err != nil {
		return nil, err
	}
	return s.adoptionRepo.GetLinkedEvents(ctx, adoptionID)
}
