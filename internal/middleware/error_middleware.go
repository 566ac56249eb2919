package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trashmob-eco/trashmob-api/internal/app/models/dto"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/apperrors"
)

var notFoundErrors = []error{
	apperrors.ErrResourceNotFound,
	apperrors.ErrUserNotFound,
	apperrors.ErrEventNotFound,
	apperrors.ErrAttendeeNotFound,
	apperrors.ErrTeamNotFound,
	apperrors.ErrNotTeamMember,
	apperrors.ErrJoinRequestNotFound,
	apperrors.ErrAdoptionNotFound,
	apperrors.ErrAreaNotFound,
	apperrors.ErrStagedAreaNotFound,
	apperrors.ErrBatchNotFound,
	apperrors.ErrPartnerNotFound,
	apperrors.ErrPartnerLocationNotFound,
	apperrors.ErrServiceRequestNotFound,
	apperrors.ErrWaiverNotFound,
	apperrors.ErrWaiverVersionNotFound,
	apperrors.ErrPhotoNotFound,
	apperrors.ErrInviteBatchNotFound,
	apperrors.ErrInviteNotFound,
	apperrors.ErrNewsletterNotFound,
	apperrors.ErrProspectNotFound,
}

var conflictErrors = []error{
	apperrors.ErrResourceAlreadyExists,
	apperrors.ErrConflict,
	apperrors.ErrEmailAlreadyExists,
	apperrors.ErrUserNameTaken,
	apperrors.ErrAlreadyRegistered,
	apperrors.ErrTeamNameTaken,
	apperrors.ErrAlreadyTeamMember,
	apperrors.ErrAreaAlreadyAdopted,
	apperrors.ErrServiceAlreadyRequested,
}

var invalidTransitionErrors = []error{
	apperrors.ErrInvalidEventStatus,
	apperrors.ErrInvalidAdoptionTransition,
	apperrors.ErrInvalidModerationAction,
	apperrors.ErrPhotoAlreadyModerated,
	apperrors.ErrJoinRequestResolved,
	apperrors.ErrServiceRequestResolved,
	apperrors.ErrStagedAreaResolved,
	apperrors.ErrInviteAlreadySettled,
	apperrors.ErrNewsletterNotDraft,
	apperrors.ErrNewsletterSent,
}

var businessRuleErrors = []error{
	apperrors.ErrEventCanceled,
	apperrors.ErrEventFull,
	apperrors.ErrEventSummaryMissing,
	apperrors.ErrLastTeamLead,
	apperrors.ErrGuardianRequired,
	apperrors.ErrWaiverNotAccepted,
	apperrors.ErrNoActiveWaiverVersion,
	apperrors.ErrUnsupportedPhotoType,
}

func matchesAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// HandleAPIError maps domain errors onto HTTP responses. Controllers call
// it for every service error so the mapping lives in one place.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case matchesAny(err, notFoundErrors):
		detail := dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, err.Error())
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(detail))
	case matchesAny(err, conflictErrors):
		detail := dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, err.Error())
		c.JSON(http.StatusConflict, dto.NewErrorResponse(detail))
	case matchesAny(err, invalidTransitionErrors):
		detail := dto.NewErrorDetail(dto.ErrorCodeInvalidTransition, err.Error())
		c.JSON(http.StatusConflict, dto.NewErrorResponse(detail))
	case matchesAny(err, businessRuleErrors):
		detail := dto.NewErrorDetail(dto.ErrorCodeBusinessRule, err.Error())
		c.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(detail))
	case errors.Is(err, apperrors.ErrPermissionDenied):
		detail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied")
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(detail))
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		detail := dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials")
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
	case errors.Is(err, apperrors.ErrAccountDisabled):
		detail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Account is disabled")
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(detail))
	case errors.Is(err, apperrors.ErrTokenExpired):
		detail := dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
	case errors.Is(err, apperrors.ErrTokenInvalid):
		detail := dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
	default:
		detail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(detail))
	}
}
