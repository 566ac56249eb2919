package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/trashmob-eco/trashmob-api/internal/app/auth"
	"github.com/trashmob-eco/trashmob-api/internal/app/models"
	"github.com/trashmob-eco/trashmob-api/internal/app/models/dto"
	"github.com/trashmob-eco/trashmob-api/internal/app/repositories"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/apperrors"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/helpers"
)

// SignatureContext carries the client fingerprint captured alongside a
// waiver acceptance.
type SignatureContext struct {
	IPAddress string
	UserAgent string
}

// WaiverService defines the interface for waiver management and acceptance.
type WaiverService interface {
	CreateWaiver(ctx context.Context, actorID uuid.UUID, req *dto.CreateWaiverRequest) (*models.Waiver, error)
	GetWaiver(ctx context.Context, waiverID uuid.UUID) (*models.Waiver, error)
	PublishVersion(ctx context.Context, waiverID, actorID uuid.UUID, req *dto.PublishVersionRequest) (*models.WaiverVersion, error)
	GetActiveVersion(ctx context.Context, waiverID uuid.UUID) (*models.WaiverVersion, error)
	Accept(ctx context.Context, waiverID, userID uuid.UUID, req *dto.AcceptWaiverRequest, sig SignatureContext) (*models.UserWaiver, error)
	IsUserCompliant(ctx context.Context, waiverID, userID uuid.UUID, partnerID *uuid.UUID) (*dto.ComplianceResponse, error)
	GetUserWaivers(ctx context.Context, userID uuid.UUID) ([]models.UserWaiver, error)
	RequireWaiverForPartner(ctx context.Context, partnerID, waiverID, actorID uuid.UUID) (*models.CommunityWaiver, error)
	GetPartnerWaivers(ctx context.Context, partnerID uuid.UUID) ([]models.CommunityWaiver, error)
}

// waiverServiceImpl implements WaiverService
type waiverServiceImpl struct {
	waiverRepo   *repositories.WaiverRepository
	partnerRepo  *repositories.PartnerRepository
	uow          *repositories.UnitOfWork
	authzService *auth.AuthorizationService
	logger       zerolog.Logger
	now          func() time.Time
}

// NewWaiverService creates a new WaiverService.
func NewWaiverService(
	waiverRepo *repositories.WaiverRepository,
	partnerRepo *repositories.PartnerRepository,
	uow *repositories.UnitOfWork,
	authzService *auth.AuthorizationService,
	logger zerolog.Logger,
) WaiverService {
	return &waiverServiceImpl{
		waiverRepo:   waiverRepo,
		partnerRepo:  partnerRepo,
		uow:          uow,
		authzService: authzService,
		logger:       logger,
		now:          time.Now,
	}
}

// CreateWaiver defines a new waiver document. Site admin only.
func (s *waiverServiceImpl) CreateWaiver(ctx context.Context, actorID uuid.UUID, req *dto.CreateWaiverRequest) (*models.Waiver, error) {
	if err := s.authzService.RequireSiteAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	waiver := &models.Waiver{
		Name:            req.Name,
		Description:     req.Description,
		IsWaiverEnabled: req.IsWaiverEnabled,
	}
	waiver.StampCreate(actorID, s.now())

	if err := s.waiverRepo.Add(ctx, waiver); err != nil {
		return nil, err
	}

	s.logger.Info().Str("waiverId", waiver.ID.String()).Str("name", waiver.Name).Msg("Waiver created")
	return waiver, nil
}

// GetWaiver fetches one waiver by ID.
func (s *waiverServiceImpl) GetWaiver(ctx context.Context, waiverID uuid.UUID) (*models.Waiver, error) {
	return s.waiverRepo.GetByID(ctx, waiverID)
}

// PublishVersion creates a new waiver version and makes it the active one.
// Deactivating the prior version and inserting the new one run in a single
// transaction, so exactly one active version exists at any instant.
func (s *waiverServiceImpl) PublishVersion(ctx context.Context, waiverID, actorID uuid.UUID, req *dto.PublishVersionRequest) (*models.WaiverVersion, error) {
	if err := s.authzService.RequireSiteAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	if _, err := s.waiverRepo.GetByID(ctx, waiverID); err != nil {
		return nil, err
	}

	now := s.now()
	var version *models.WaiverVersion
	err := s.uow.Do(ctx, func(tx *gorm.DB) error {
		repo := s.waiverRepo.WithTx(tx)

		number, err := repo.NextVersionNumber(ctx, waiverID)
		if err != nil {
			return err
		}
		if err := repo.DeactivateVersions(ctx, waiverID); err != nil {
			return err
		}

		version = &models.WaiverVersion{
			WaiverID:      waiverID,
			VersionNumber: number,
			DocumentURL:   req.DocumentURL,
			EffectiveDate: req.EffectiveDate,
			IsActive:      true,
		}
		version.StampCreate(actorID, now)
		return repo.AddVersion(ctx, version)
	})
	if err != nil {
		s.logger.Error().Err(err).Str("waiverId", waiverID.String()).Msg("Failed to publish waiver version")
		return nil, err
	}

	s.logger.Info().
		Str("waiverId", waiverID.String()).
		Int("version", version.VersionNumber).
		Msg("Waiver version published")
	return version, nil
}

// GetActiveVersion returns the currently active version of a waiver.
func (s *waiverServiceImpl) GetActiveVersion(ctx context.Context, waiverID uuid.UUID) (*models.WaiverVersion, error) {
	return s.waiverRepo.GetActiveVersion(ctx, waiverID)
}

// Accept records a user signing the active version of a waiver. The record
// is immutable and expires at the end of the signing calendar year.
func (s *waiverServiceImpl) Accept(ctx context.Context, waiverID, userID uuid.UUID, req *dto.AcceptWaiverRequest, sig SignatureContext) (*models.UserWaiver, error) {
	waiver, err := s.waiverRepo.GetByID(ctx, waiverID)
	if err != nil {
		return nil, err
	}
	if !waiver.IsWaiverEnabled {
		return nil, apperrors.ErrWaiverNotFound
	}
	if req.IsMinor && req.GuardianName == "" {
		return nil, apperrors.ErrGuardianRequired
	}

	version, err := s.waiverRepo.GetActiveVersion(ctx, waiverID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	record := &models.UserWaiver{
		UserID:          userID,
		WaiverVersionID: version.ID,
		TypedLegalName:  req.TypedLegalName,
		SigningMethod:   req.SigningMethod,
		IPAddress:       sig.IPAddress,
		UserAgent:       sig.UserAgent,
		IsMinor:         req.IsMinor,
		GuardianName:    req.GuardianName,
		PdfURL:          version.DocumentURL,
		AcceptedDate:    now,
		ExpiryDate:      helpers.EndOfCalendarYear(now),
	}
	if err := s.waiverRepo.AddUserWaiver(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("waiverId", waiverID.String()).
		Str("userId", userID.String()).
		Int("version", version.VersionNumber).
		Msg("Waiver accepted")
	return record, nil
}

// IsUserCompliant reports whether the user holds an unexpired acceptance of
// the applicable waiver's active version. When a partner ID is given and the
// partner has mapped its own required waivers, those replace the requested
// waiver and every one of them must be satisfied.
func (s *waiverServiceImpl) IsUserCompliant(ctx context.Context, waiverID, userID uuid.UUID, partnerID *uuid.UUID) (*dto.ComplianceResponse, error) {
	waiverIDs := []uuid.UUID{waiverID}
	if partnerID != nil {
		links, err := s.waiverRepo.GetCommunityWaivers(ctx, *partnerID)
		if err != nil {
			return nil, err
		}
		if len(links) > 0 {
			waiverIDs = waiverIDs[:0]
			for _, link := range links {
				waiverIDs = append(waiverIDs, link.WaiverID)
			}
		}
	}

	var response *dto.ComplianceResponse
	for _, id := range waiverIDs {
		r, err := s.complianceFor(ctx, id, userID)
		if err != nil {
			return nil, err
		}
		response = r
		if !r.IsCompliant {
			break
		}
	}
	return response, nil
}

// complianceFor checks one waiver. A disabled waiver is always compliant.
func (s *waiverServiceImpl) complianceFor(ctx context.Context, waiverID, userID uuid.UUID) (*dto.ComplianceResponse, error) {
	waiver, err := s.waiverRepo.GetByID(ctx, waiverID)
	if err != nil {
		return nil, err
	}

	response := &dto.ComplianceResponse{
		UserID:   userID,
		WaiverID: waiverID,
	}
	if !waiver.IsWaiverEnabled {
		response.IsCompliant = true
		return response, nil
	}

	version, err := s.waiverRepo.GetActiveVersion(ctx, waiverID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoActiveWaiverVersion) {
			// A waiver with no published version cannot be signed yet.
			response.IsCompliant = true
			return response, nil
		}
		return nil, err
	}

	record, err := s.waiverRepo.GetLatestUserWaiver(ctx, userID, version.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrWaiverNotAccepted) {
			return response, nil
		}
		return nil, err
	}

	response.WaiverVersionID = &version.ID
	response.AcceptedDate = &record.AcceptedDate
	response.ExpiryDate = &record.ExpiryDate
	response.IsCompliant = !record.IsExpired(s.now())
	return response, nil
}

// GetUserWaivers lists the user's acceptance records.
func (s *waiverServiceImpl) GetUserWaivers(ctx context.Context, userID uuid.UUID) ([]models.UserWaiver, error) {
	return s.waiverRepo.GetUserWaivers(ctx, userID)
}

// RequireWaiverForPartner maps a waiver to a partner. Compliance checks
// scoped to that partner then verify the mapped waivers instead of the
// global one. Partner admin only; remapping the same pair is a no-op.
func (s *waiverServiceImpl) RequireWaiverForPartner(ctx context.Context, partnerID, waiverID, actorID uuid.UUID) (*models.CommunityWaiver, error) {
	if err := s.authzService.RequirePartnerAdmin(ctx, partnerID, actorID); err != nil {
		return nil, err
	}
	if _, err := s.partnerRepo.GetByID(ctx, partnerID); err != nil {
		return nil, err
	}
	if _, err := s.waiverRepo.GetByID(ctx, waiverID); err != nil {
		return nil, err
	}

	link := &models.CommunityWaiver{
		PartnerID:       partnerID,
		WaiverID:        waiverID,
		CreatedByUserID: actorID,
		CreatedDate:     s.now(),
	}
	if err := s.waiverRepo.AddCommunityWaiver(ctx, link); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("partnerId", partnerID.String()).
		Str("waiverId", waiverID.String()).
		Msg("Partner waiver requirement added")
	return link, nil
}

// GetPartnerWaivers lists the waivers a partner requires.
func (s *waiverServiceImpl) GetPartnerWaivers(ctx context.Context, partnerID uuid.UUID) ([]models.CommunityWaiver, error) {
	if _, err := s.partnerRepo.GetByID(ctx, partnerID); err != nil {
		return nil, err
	}
	return s.waiverRepo.GetCommunityWaivers(ctx, partnerID)
}
