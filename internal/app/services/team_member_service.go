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
)

// TeamMemberService defines the interface for membership and join-request
// operations.
type TeamMemberService interface {
	GetMembers(ctx context.Context, teamID uuid.UUID) ([]models.TeamMember, error)
	AddMember(ctx context.Context, teamID, userID, actorID uuid.UUID) error
	RemoveMember(ctx context.Context, teamID, userID, actorID uuid.UUID) error
	PromoteToLead(ctx context.Context, teamID, userID, actorID uuid.UUID) error
	DemoteFromLead(ctx context.Context, teamID, userID, actorID uuid.UUID) error
	RequestToJoin(ctx context.Context, teamID, userID uuid.UUID, req *dto.JoinRequestCreate) (*models.TeamJoinRequest, error)
	GetPendingJoinRequests(ctx context.Context, teamID, actorID uuid.UUID) ([]models.TeamJoinRequest, error)
	ResolveJoinRequest(ctx context.Context, requestID, actorID uuid.UUID, approve bool) error
}

// teamMemberServiceImpl implements TeamMemberService
type teamMemberServiceImpl struct {
	teamRepo       *repositories.TeamRepository
	teamMemberRepo *repositories.TeamMemberRepository
	userRepo       *repositories.UserRepository
	uow            *repositories.UnitOfWork
	authzService   *auth.AuthorizationService
	logger         zerolog.Logger
	now            func() time.Time
}

// NewTeamMemberService creates a new TeamMemberService.
func NewTeamMemberService(
	teamRepo *repositories.TeamRepository,
	teamMemberRepo *repositories.TeamMemberRepository,
	userRepo *repositories.UserRepository,
	uow *repositories.UnitOfWork,
	authzService *auth.AuthorizationService,
	logger zerolog.Logger,
) TeamMemberService {
	return &teamMemberServiceImpl{
		teamRepo:       teamRepo,
		teamMemberRepo: teamMemberRepo,
		userRepo:       userRepo,
		uow:            uow,
		authzService:   authzService,
		logger:         logger,
		now:            time.Now,
	}
}

// GetMembers lists a team's members.
func (s *teamMemberServiceImpl) GetMembers(ctx context.Context, teamID uuid.UUID) ([]models.TeamMember, error) {
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		return nil, err
	}
	return s.teamMemberRepo.GetByTeam(ctx, teamID)
}

// AddMember adds a user to a team as a regular member.
func (s *teamMemberServiceImpl) AddMember(ctx context.Context, teamID, userID, actorID uuid.UUID) error {
	if err := s.authzService.RequireTeamLead(ctx, teamID, actorID); err != nil {
		return err
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}

	now := s.now()
	member := &models.TeamMember{
		TeamID:              teamID,
		UserID:              userID,
		IsLead:              false,
		JoinedDate:          now,
		CreatedByUserID:     actorID,
		CreatedDate:         now,
		LastUpdatedByUserID: actorID,
		LastUpdatedDate:     now,
	}
	if err := s.teamMemberRepo.Add(ctx, member); err != nil {
		return err
	}

	s.logger.Info().Str("teamId", teamID.String()).Str("userId", userID.String()).Msg("Team member added")
	return nil
}

// RemoveMember removes a user from a team. Members may remove themselves;
// leads may remove anyone. Removing the last lead is refused.
func (s *teamMemberServiceImpl) RemoveMember(ctx context.Context, teamID, userID, actorID uuid.UUID) error {
	if actorID != userID {
		if err := s.authzService.RequireTeamLead(ctx, teamID, actorID); err != nil {
			return err
		}
	}

	member, err := s.teamMemberRepo.GetByTeamAndUser(ctx, teamID, userID)
	if err != nil {
		return err
	}
	if member.IsLead {
		leads, err := s.teamMemberRepo.CountLeads(ctx, teamID)
		if err != nil {
			return err
		}
		if leads <= 1 {
			return apperrors.ErrLastTeamLead
		}
	}

	if err := s.teamMemberRepo.Remove(ctx, teamID, userID); err != nil {
		return err
	}

	s.logger.Info().Str("teamId", teamID.String()).Str("userId", userID.String()).Msg("Team member removed")
	return nil
}

// PromoteToLead grants the lead role to an existing member. Promoting a
// non-member fails with a typed error rather than creating a membership.
func (s *teamMemberServiceImpl) PromoteToLead(ctx context.Context, teamID, userID, actorID uuid.UUID) error {
	if err := s.authzService.RequireTeamLead(ctx, teamID, actorID); err != nil {
		return err
	}

	member, err := s.teamMemberRepo.GetByTeamAndUser(ctx, teamID, userID)
	if err != nil {
		return err
	}
	if member.IsLead {
		return nil
	}

	member.IsLead = true
	member.LastUpdatedByUserID = actorID
	member.LastUpdatedDate = s.now()
	if err := s.teamMemberRepo.Update(ctx, member); err != nil {
		return err
	}

	s.logger.Info().Str("teamId", teamID.String()).Str("userId", userID.String()).Msg("Member promoted to lead")
	return nil
}

// DemoteFromLead removes the lead role from a member. The last remaining
// lead cannot be demoted.
func (s *teamMemberServiceImpl) DemoteFromLead(ctx context.Context, teamID, userID, actorID uuid.UUID) error {
	if err := s.authzService.RequireTeamLead(ctx, teamID, actorID); err != nil {
		return err
	}

	member, err := s.teamMemberRepo.GetByTeamAndUser(ctx, teamID, userID)
	if err != nil {
		return err
	}
	if !member.IsLead {
		return nil
	}

	leads, err := s.teamMemberRepo.CountLeads(ctx, teamID)
	if err != nil {
		return err
	}
	if leads <= 1 {
		return apperrors.ErrLastTeamLead
	}

	member.IsLead = false
	member.LastUpdatedByUserID = actorID
	member.LastUpdatedDate = s.now()
	if err := s.teamMemberRepo.Update(ctx, member); err != nil {
		return err
	}

	s.logger.Info().Str("teamId", teamID.String()).Str("userId", userID.String()).Msg("Member demoted from lead")
	return nil
}

// RequestToJoin files a join request against a team.
func (s *teamMemberServiceImpl) RequestToJoin(ctx context.Context, teamID, userID uuid.UUID, req *dto.JoinRequestCreate) (*models.TeamJoinRequest, error) {
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		return nil, err
	}

	// An existing member has nothing to request.
	if _, err := s.teamMemberRepo.GetByTeamAndUser(ctx, teamID, userID); err == nil {
		return nil, apperrors.ErrAlreadyTeamMember
	}

	request := &models.TeamJoinRequest{
		TeamID:  teamID,
		UserID:  userID,
		Status:  models.JoinRequestPending,
		Message: req.Message,
	}
	request.StampCreate(userID, s.now())

	if err := s.teamMemberRepo.AddJoinRequest(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

// GetPendingJoinRequests lists a team's unresolved join requests.
func (s *teamMemberServiceImpl) GetPendingJoinRequests(ctx context.Context, teamID, actorID uuid.UUID) ([]models.TeamJoinRequest, error) {
	if err := s.authzService.RequireTeamLead(ctx, teamID, actorID); err != nil {
		return nil, err
	}
	return s.teamMemberRepo.GetPendingJoinRequests(ctx, teamID)
}

// ResolveJoinRequest approves or rejects a pending join request. Approval
// creates the membership in the same transaction as the resolution.
func (s *teamMemberServiceImpl) ResolveJoinRequest(ctx context.Context, requestID, actorID uuid.UUID, approve bool) error {
	request, err := s.teamMemberRepo.GetJoinRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if err := s.authzService.RequireTeamLead(ctx, request.TeamID, actorID); err != nil {
		return err
	}

	target := models.JoinRequestRejected
	if approve {
		target = models.JoinRequestApproved
	}
	if !request.Status.CanTransitionTo(target) {
		return apperrors.ErrJoinRequestResolved
	}

	now := s.now()
	request.Status = target
	request.ResolvedByUserID = &actorID
	request.ResolvedDate = &now
	request.StampUpdate(actorID, now)

	err = s.uow.Do(ctx, func(tx *gorm.DB) error {
		if err := s.teamMemberRepo.WithTx(tx).UpdateJoinRequest(ctx, request); err != nil {
			return err
		}
		if !approve {
			return nil
		}
		member := &models.TeamMember{
			TeamID:              request.TeamID,
			UserID:              request.UserID,
			IsLead:              false,
			JoinedDate:          now,
			CreatedByUserID:     actorID,
			CreatedDate:         now,
			LastUpdatedByUserID: actorID,
			LastUpdatedDate:     now,
		}
		return s.teamMemberRepo.WithTx(tx).Add(ctx, member)
	})
	if err != nil {
		return err
	}

	s.logger.Info().
		Str("requestId", requestID.String()).
		Str("teamId", request.TeamID.String()).
		Bool("approved", approve).
		Msg("Join request resolved")
	return nil
}
