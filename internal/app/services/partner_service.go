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

// PartnerService defines the interface for partner organizations, their
// locations and services, and event service requests.
type PartnerService interface {
	CreatePartner(ctx context.Context, actorID uuid.UUID, req *dto.CreatePartnerRequest) (*models.Partner, error)
	UpdatePartner(ctx context.Context, partnerID, actorID uuid.UUID, req *dto.UpdatePartnerRequest) (*models.Partner, error)
	DeactivatePartner(ctx context.Context, partnerID, actorID uuid.UUID) error
	GetPartner(ctx context.Context, partnerID uuid.UUID) (*models.Partner, error)
	GetActivePartners(ctx context.Context) ([]models.Partner, error)

	AddLocation(ctx context.Context, partnerID, actorID uuid.UUID, req *dto.PartnerLocationRequest) (*models.PartnerLocation, error)
	UpdateLocation(ctx context.Context, locationID, actorID uuid.UUID, req *dto.PartnerLocationRequest) (*models.PartnerLocation, error)
	GetLocations(ctx context.Context, partnerID uuid.UUID) ([]models.PartnerLocation, error)

	AddLocationService(ctx context.Context, locationID, actorID uuid.UUID, req *dto.ServiceOfferingRequest) error
	RemoveLocationService(ctx context.Context, locationID, actorID uuid.UUID, serviceTypeID int) error
	GetLocationServices(ctx context.Context, locationID uuid.UUID) ([]models.PartnerLocationService, error)

	AddAdmin(ctx context.Context, partnerID, userID, actorID uuid.UUID) error
	RemoveAdmin(ctx context.Context, partnerID, userID, actorID uuid.UUID) error

	RequestService(ctx context.Context, eventID, actorID uuid.UUID, req *dto.ServiceRequestCreate) (*models.EventPartnerLocationService, error)
	ResolveServiceRequest(ctx context.Context, eventID, locationID uuid.UUID, serviceTypeID int, actorID uuid.UUID, accept bool) error
	GetEventServiceRequests(ctx context.Context, eventID uuid.UUID) ([]models.EventPartnerLocationService, error)
	GetLocationServiceRequests(ctx context.Context, locationID, actorID uuid.UUID, status *models.ServiceRequestStatus) ([]models.EventPartnerLocationService, error)
}

// partnerServiceImpl implements PartnerService
type partnerServiceImpl struct {
	partnerRepo  *repositories.PartnerRepository
	eventRepo    *repositories.EventRepository
	userRepo     *repositories.UserRepository
	authzService *auth.AuthorizationService
	logger       zerolog.Logger
	now          func() time.Time
}

// NewPartnerService creates a new PartnerService.
func NewPartnerService(
	partnerRepo *repositories.PartnerRepository,
	eventRepo *repositories.EventRepository,
	userRepo *repositories.UserRepository,
	authzService *auth.AuthorizationService,
	logger zerolog.Logger,
) PartnerService {
	return &partnerServiceImpl{
		partnerRepo:  partnerRepo,
		eventRepo:    eventRepo,
		userRepo:     userRepo,
		authzService: authzService,
		logger:       logger,
		now:          time.Now,
	}
}

// CreatePartner registers a partner organization and makes the creator its
// first admin. Site admin only.
func (s *partnerServiceImpl) CreatePartner(ctx context.Context, actorID uuid.UUID, req *dto.CreatePartnerRequest) (*models.Partner, error) {
	if err := s.authzService.RequireSiteAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	now := s.now()
	partner := &models.Partner{
		Name:            req.Name,
		PublicNotes:     req.PublicNotes,
		PrivateNotes:    req.PrivateNotes,
		Website:         req.Website,
		Email:           req.Email,
		Phone:           req.Phone,
		PartnerStatusID: models.PartnerStatusActive,
		PartnerTypeID:   req.PartnerTypeID,
	}
	partner.StampCreate(actorID, now)

	if err := s.partnerRepo.Add(ctx, partner); err != nil {
		return nil, err
	}

	admin := &models.PartnerAdmin{
		PartnerID:       partner.ID,
		UserID:          actorID,
		CreatedByUserID: actorID,
		CreatedDate:     now,
	}
	if err := s.partnerRepo.AddAdmin(ctx, admin); err != nil {
		return nil, err
	}

	s.logger.Info().Str("partnerId", partner.ID.String()).Str("name", partner.Name).Msg("Partner created")
	return partner, nil
}

// UpdatePartner applies a full-replace edit to a partner.
func (s *partnerServiceImpl) UpdatePartner(ctx context.Context, partnerID, actorID uuid.UUID, req *dto.UpdatePartnerRequest) (*models.Partner, error) {
	if err := s.authzService.RequirePartnerAdmin(ctx, partnerID, actorID); err != nil {
		return nil, err
	}

	partner, err := s.partnerRepo.GetByID(ctx, partnerID)
	if err != nil {
		return nil, err
	}

	partner.Name = req.Name
	partner.PublicNotes = req.PublicNotes
	partner.PrivateNotes = req.PrivateNotes
	partner.Website = req.Website
	partner.Email = req.Email
	partner.Phone = req.Phone
	partner.StampUpdate(actorID, s.now())

	if err := s.partnerRepo.Update(ctx, partner); err != nil {
		return nil, err
	}
	return partner, nil
}

// DeactivatePartner flips a partner to Inactive, hiding it from listings
// without removing history. Site admin only.
func (s *partnerServiceImpl) DeactivatePartner(ctx context.Context, partnerID, actorID uuid.UUID) error {
	if err := s.authzService.RequireSiteAdmin(ctx, actorID); err != nil {
		return err
	}

	partner, err := s.partnerRepo.GetByID(ctx, partnerID)
	if err != nil {
		return err
	}
	partner.PartnerStatusID = models.PartnerStatusInactive
	partner.StampUpdate(actorID, s.now())

	if err := s.partnerRepo.Update(ctx, partner); err != nil {
		return err
	}

	s.logger.Info().Str("partnerId", partnerID.String()).Msg("Partner deactivated")
	return nil
}

// GetPartner fetches one partner by ID.
func (s *partnerServiceImpl) GetPartner(ctx context.Context, partnerID uuid.UUID) (*models.Partner, error) {
	return s.partnerRepo.GetByID(ctx, partnerID)
}

// GetActivePartners lists active partners.
func (s *partnerServiceImpl) GetActivePartners(ctx context.Context) ([]models.Partner, error) {
	return s.partnerRepo.GetActive(ctx)
}

// AddLocation creates a new site for a partner.
func (s *partnerServiceImpl) AddLocation(ctx context.Context, partnerID, actorID uuid.UUID, req *dto.PartnerLocationRequest) (*models.PartnerLocation, error) {
	if err := s.authzService.RequirePartnerAdmin(ctx, partnerID, actorID); err != nil {
		return nil, err
	}
	if _, err := s.partnerRepo.GetByID(ctx, partnerID); err != nil {
		return nil, err
	}

	location := &models.PartnerLocation{
		PartnerID:     partnerID,
		Name:          req.Name,
		StreetAddress: req.StreetAddress,
		City:          req.City,
		Region:        req.Region,
		Country:       req.Country,
		PostalCode:    req.PostalCode,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		IsActive:      req.IsActive,
		Notes:         req.Notes,
	}
	location.StampCreate(actorID, s.now())

	if err := s.partnerRepo.AddLocation(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

// UpdateLocation applies a full-replace edit to a partner location.
func (s *partnerServiceImpl) UpdateLocation(ctx context.Context, locationID, actorID uuid.UUID, req *dto.PartnerLocationRequest) (*models.PartnerLocation, error) {
	location, err := s.partnerRepo.GetLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if err := s.authzService.RequirePartnerAdmin(ctx, location.PartnerID, actorID); err != nil {
		return nil, err
	}

	location.Name = req.Name
	location.StreetAddress = req.StreetAddress
	location.City = req.City
	location.Region = req.Region
	location.Country = req.Country
	location.PostalCode = req.PostalCode
	location.Latitude = req.Latitude
	location.Longitude = req.Longitude
	location.IsActive = req.IsActive
	location.Notes = req.Notes
	location.StampUpdate(actorID, s.now())

	if err := s.partnerRepo.UpdateLocation(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

// GetLocations lists a partner's sites.
func (s *partnerServiceImpl) GetLocations(ctx context.Context, partnerID uuid.UUID) ([]models.PartnerLocation, error) {
	if _, err := s.partnerRepo.GetByID(ctx, partnerID); err != nil {
		return nil, err
	}
	return s.partnerRepo.GetLocations(ctx, partnerID)
}

// AddLocationService declares a service type offered at a location.
func (s *partnerServiceImpl) AddLocationService(ctx context.Context, locationID, actorID uuid.UUID, req *dto.ServiceOfferingRequest) error {
	location, err := s.partnerRepo.GetLocation(ctx, locationID)
	if err != nil {
		return err
	}
	if err := s.authzService.RequirePartnerAdmin(ctx, location.PartnerID, actorID); err != nil {
		return err
	}

	service := &models.PartnerLocationService{
		PartnerLocationID: locationID,
		ServiceTypeID:     req.ServiceTypeID,
		Notes:             req.Notes,
		IsAutoApproved:    req.IsAutoApproved,
		CreatedByUserID:   actorID,
		CreatedDate:       s.now(),
	}
	return s.partnerRepo.AddLocationService(ctx, service)
}

// RemoveLocationService withdraws a service offering.
func (s *partnerServiceImpl) RemoveLocationService(ctx context.Context, locationID, actorID uuid.UUID, serviceTypeID int) error {
	location, err := s.partnerRepo.GetLocation(ctx, locationID)
	if err != nil {
		return err
	}
	if err := s.authzService.RequirePartnerAdmin(ctx, location.PartnerID, actorID); err != nil {
		return err
	}
	return s.partnerRepo.RemoveLocationService(ctx, locationID, serviceTypeID)
}

// GetLocationServices lists the services offered at a location.
func (s *partnerServiceImpl) GetLocationServices(ctx context.Context, locationID uuid.UUID) ([]models.PartnerLocationService, error) {
	if _, err := s.partnerRepo.GetLocation(ctx, locationID); err != nil {
		return nil, err
	}
	return s.partnerRepo.GetLocationServices(ctx, locationID)
}

// AddAdmin grants a user admin rights over a partner.
func (s *partnerServiceImpl) AddAdmin(ctx context.Context, partnerID, userID, actorID uuid.UUID) error {
	if err := s.authzService.RequirePartnerAdmin(ctx, partnerID, actorID); err != nil {
		return err
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}

	admin := &models.PartnerAdmin{
		PartnerID:       partnerID,
		UserID:          userID,
		CreatedByUserID: actorID,
		CreatedDate:     s.now(),
	}
	if err := s.partnerRepo.AddAdmin(ctx, admin); err != nil {
		return err
	}

	s.logger.Info().Str("partnerId", partnerID.String()).Str("userId", userID.String()).Msg("Partner admin added")
	return nil
}

// RemoveAdmin revokes a user's admin rights over a partner.
func (s *partnerServiceImpl) RemoveAdmin(ctx context.Context, partnerID, userID, actorID uuid.UUID) error {
	if err := s.authzService.RequirePartnerAdmin(ctx, partnerID, actorID); err != nil {
		return err
	}
	return s.partnerRepo.RemoveAdmin(ctx, partnerID, userID)
}

// RequestService files an event's request for a service at a partner
// location. Offerings marked auto-approved accept immediately.
func (s *partnerServiceImpl) RequestService(ctx context.Context, eventID, actorID uuid.UUID, req *dto.ServiceRequestCreate) (*models.EventPartnerLocationService, error) {
	if err := s.authzService.RequireEventOwner(ctx, eventID, actorID); err != nil {
		return nil, err
	}

	offering, err := s.partnerRepo.GetLocationService(ctx, req.PartnerLocationID, req.ServiceTypeID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	request := &models.EventPartnerLocationService{
		EventID:           eventID,
		PartnerLocationID: req.PartnerLocationID,
		ServiceTypeID:     req.ServiceTypeID,
		Status:            models.ServiceRequestRequested,
		CreatedByUserID:   actorID,
		CreatedDate:       now,
	}
	if offering.IsAutoApproved {
		request.Status = models.ServiceRequestAccepted
		request.ResolvedDate = &now
	}

	if err := s.partnerRepo.AddServiceRequest(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("eventId", eventID.String()).
		Str("locationId", req.PartnerLocationID.String()).
		Int("serviceTypeId", req.ServiceTypeID).
		Bool("autoApproved", offering.IsAutoApproved).
		Msg("Service requested")
	return request, nil
}

// ResolveServiceRequest accepts or declines a pending service request. Only
// an admin of the partner owning the location may resolve it.
func (s *partnerServiceImpl) ResolveServiceRequest(ctx context.Context, eventID, locationID uuid.UUID, serviceTypeID int, actorID uuid.UUID, accept bool) error {
	location, err := s.partnerRepo.GetLocation(ctx, locationID)
	if err != nil {
		return err
	}
	if err := s.authzService.RequirePartnerAdmin(ctx, location.PartnerID, actorID); err != nil {
		return err
	}

	request, err := s.partnerRepo.GetServiceRequest(ctx, eventID, locationID, serviceTypeID)
	if err != nil {
		return err
	}

	target := models.ServiceRequestDeclined
	if accept {
		target = models.ServiceRequestAccepted
	}
	if !request.Status.CanTransitionTo(target) {
		return apperrors.ErrServiceRequestResolved
	}

	now := s.now()
	request.Status = target
	request.ResolvedByUserID = &actorID
	request.ResolvedDate = &now

	if err := s.partnerRepo.UpdateServiceRequest(ctx, request); err != nil {
		return err
	}

	s.logger.Info().
		Str("eventId", eventID.String()).
		Str("locationId", locationID.String()).
		Bool("accepted", accept).
		Msg("Service request resolved")
	return nil
}

// GetEventServiceRequests lists the service requests raised by an event.
func (s *partnerServiceImpl) GetEventServiceRequests(ctx context.Context, eventID uuid.UUID) ([]models.EventPartnerLocationService, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.partnerRepo.GetServiceRequestsForEvent(ctx, eventID)
}

// GetLocationServiceRequests lists the requests targeting a location.
func (s *partnerServiceImpl) GetLocationServiceRequests(ctx context.Context, locationID, actorID uuid.UUID, status *models.ServiceRequestStatus) ([]models.EventPartnerLocationService, error) {
	location, err := s.partnerRepo.GetLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if err := s.authzService.RequirePartnerAdmin(ctx, location.PartnerID, actorID); err != nil {
		return nil, err
	}
	return s.partnerRepo.GetServiceRequestsForLocation(ctx, locationID, status)
}
