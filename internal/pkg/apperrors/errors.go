package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrUserNameTaken      = errors.New("user name already taken")
)

// Event errors
var (
	ErrEventNotFound       = errors.New("event not found")
	ErrEventCanceled       = errors.New("event is canceled")
	ErrEventFull           = errors.New("event has reached its maximum number of participants")
	ErrAlreadyRegistered   = errors.New("user is already registered for this event")
	ErrAttendeeNotFound    = errors.New("user is not registered for this event")
	ErrInvalidEventStatus  = errors.New("invalid event status transition")
	ErrEventSummaryMissing = errors.New("event summary not recorded")
)

// Team errors
var (
	ErrTeamNotFound        = errors.New("team not found")
	ErrTeamNameTaken       = errors.New("team name already in use")
	ErrNotTeamMember       = errors.New("user is not a member of this team")
	ErrAlreadyTeamMember   = errors.New("user is already a member of this team")
	ErrLastTeamLead        = errors.New("team must retain at least one lead")
	ErrJoinRequestNotFound = errors.New("join request not found")
	ErrJoinRequestResolved = errors.New("join request has already been resolved")
)

// Adoption errors
var (
	ErrAdoptionNotFound          = errors.New("adoption not found")
	ErrAreaNotFound              = errors.New("adoptable area not found")
	ErrAreaAlreadyAdopted        = errors.New("area already has an active adoption")
	ErrInvalidAdoptionTransition = errors.New("invalid adoption status transition")
	ErrStagedAreaNotFound        = errors.New("staged area not found")
	ErrBatchNotFound             = errors.New("generation batch not found")
	ErrStagedAreaResolved        = errors.New("staged area has already been reviewed")
)

// Partner errors
var (
	ErrPartnerNotFound         = errors.New("partner not found")
	ErrPartnerLocationNotFound = errors.New("partner location not found")
	ErrNotPartnerAdmin         = errors.New("user is not an admin of this partner")
	ErrServiceRequestNotFound  = errors.New("service request not found")
	ErrServiceAlreadyRequested = errors.New("service has already been requested for this event")
	ErrServiceRequestResolved  = errors.New("service request has already been resolved")
)

// Waiver errors
var (
	ErrWaiverNotFound        = errors.New("waiver not found")
	ErrWaiverVersionNotFound = errors.New("waiver version not found")
	ErrNoActiveWaiverVersion = errors.New("waiver has no active version")
	ErrWaiverNotAccepted     = errors.New("user has not accepted the current waiver")
	ErrGuardianRequired      = errors.New("a guardian name is required for minors")
)

// Photo moderation errors
var (
	ErrPhotoNotFound             = errors.New("photo not found")
	ErrInvalidModerationAction   = errors.New("invalid moderation transition")
	ErrPhotoAlreadyModerated     = errors.New("photo has already been moderated")
	ErrUnsupportedPhotoType      = errors.New("unsupported photo type")
	ErrPhotoStorageInconsistency = errors.New("photo blob could not be removed")
)

// Outreach errors
var (
	ErrInviteBatchNotFound  = errors.New("invite batch not found")
	ErrInviteNotFound       = errors.New("invite not found")
	ErrNewsletterNotFound   = errors.New("newsletter not found")
	ErrNewsletterNotDraft   = errors.New("newsletter is not editable in its current state")
	ErrNewsletterSent       = errors.New("newsletter has already been sent")
	ErrProspectNotFound     = errors.New("prospect not found")
	ErrInviteAlreadySettled = errors.New("invite has already been accepted or bounced")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError wrapping err with a message
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// NewResourceNotFoundError creates a not-found error with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}

// NewConflictError creates a conflict error with a message
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewForbiddenError creates a permission-denied error with a message
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}

// NewBadRequestError creates a bad-request error with a message
func NewBadRequestError(message string) error {
	return &CustomError{Err: ErrBadRequest, Message: message}
}
