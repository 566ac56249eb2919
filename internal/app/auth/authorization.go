package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/trashmob-eco/trashmob-api/internal/app/repositories"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/apperrors"
)

// AuthorizationService answers the access-control questions the services ask:
// site admin, event owner, team lead, and partner admin.
type AuthorizationService struct {
	userRepo       *repositories.UserRepository
	eventRepo      *repositories.EventRepository
	teamMemberRepo *repositories.TeamMemberRepository
	partnerRepo    *repositories.PartnerRepository
}

// NewAuthorizationService creates a new AuthorizationService.
func NewAuthorizationService(
	userRepo *repositories.UserRepository,
	eventRepo *repositories.EventRepository,
	teamMemberRepo *repositories.TeamMemberRepository,
	partnerRepo *repositories.PartnerRepository,
) *AuthorizationService {
	return &AuthorizationService{
		userRepo:       userRepo,
		eventRepo:      eventRepo,
		teamMemberRepo: teamMemberRepo,
		partnerRepo:    partnerRepo,
	}
}

// IsSiteAdmin reports whether the user holds the site admin role.
func (s *AuthorizationService) IsSiteAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.IsSiteAdmin, nil
}

// RequireSiteAdmin returns a forbidden error unless the user is a site admin.
func (s *AuthorizationService) RequireSiteAdmin(ctx context.Context, userID uuid.UUID) error {
	isAdmin, err := s.IsSiteAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// CanModifyEvent reports whether the user created the event or is a site
// admin.
func (s *AuthorizationService) CanModifyEvent(ctx context.Context, eventID, userID uuid.UUID) (bool, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return false, err
	}
	if event.CreatedByUserID == userID {
		return true, nil
	}
	return s.IsSiteAdmin(ctx, userID)
}

// RequireEventOwner returns a forbidden error unless the user may modify the
// event.
func (s *AuthorizationService) RequireEventOwner(ctx context.Context, eventID, userID uuid.UUID) error {
	allowed, err := s.CanModifyEvent(ctx, eventID, userID)
	if err != nil {
		return err
	}
	if !allowed {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// IsTeamLead reports whether the user holds the lead role on the team.
func (s *AuthorizationService) IsTeamLead(ctx context.Context, teamID, userID uuid.UUID) (bool, error) {
	member, err := s.teamMemberRepo.GetByTeamAndUser(ctx, teamID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotTeamMember) {
			return false, nil
		}
		return false, err
	}
	return member.IsLead, nil
}

// RequireTeamLead returns a forbidden error unless the user leads the team or
// is a site admin.
func (s *AuthorizationService) RequireTeamLead(ctx context.Context, teamID, userID uuid.UUID) error {
	isLead, err := s.IsTeamLead(ctx, teamID, userID)
	if err != nil {
		return err
	}
	if isLead {
		return nil
	}
	isAdmin, err := s.IsSiteAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// RequirePartnerAdmin returns a forbidden error unless the user administers
// the partner or is a site admin.
func (s *AuthorizationService) RequirePartnerAdmin(ctx context.Context, partnerID, userID uuid.UUID) error {
	isAdmin, err := s.partnerRepo.IsAdmin(ctx, partnerID, userID)
	if err != nil {
		return err
	}
	if isAdmin {
		return nil
	}
	isSiteAdmin, err := s.IsSiteAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if !isSiteAdmin {
		return apperrors.ErrPermissionDenied
	}
	return nil
}
