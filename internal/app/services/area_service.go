package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/trashmob-eco/trashmob-api/internal/app/auth"
	"github.com/trashmob-eco/trashmob-api/internal/app/models"
	"github.com/trashmob-eco/trashmob-api/internal/app/models/dto"
	"github.com/trashmob-eco/trashmob-api/internal/app/repositories"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/apperrors"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/geo"
)

// AreaService defines the interface for adoptable areas and the staging
// pipeline that proposes them.
type AreaService interface {
	GetArea(ctx context.Context, areaID uuid.UUID) (*models.AdoptableArea, error)
	GetActiveAreas(ctx context.Context) ([]models.AdoptableArea, error)
	FindAreasNear(ctx context.Context, lat, lon, radiusMiles float64) ([]models.AdoptableArea, error)
	DeactivateArea(ctx context.Context, areaID, actorID uuid.UUID) error

	CreateBatch(ctx context.Context, actorID uuid.UUID, req *dto.CreateBatchRequest) (*models.AreaGenerationBatch, error)
	StageAreas(ctx context.Context, batchID, actorID uuid.UUID, reqs []dto.StageAreaRequest) ([]models.StagedAdoptableArea, error)
	GetPendingStagedAreas(ctx context.Context, actorID uuid.UUID) ([]models.StagedAdoptableArea, error)
	PromoteStagedArea(ctx context.Context, stagedID, actorID uuid.UUID) (*models.AdoptableArea, error)
	RejectStagedArea(ctx context.Context, stagedID, actorID uuid.UUID) error
}

// areaServiceImpl implements AreaService
type areaServiceImpl struct {
	areaRepo     *repositories.AreaRepository
	uow          *repositories.UnitOfWork
	authzService *auth.AuthorizationService
	logger       zerolog.Logger
	now          func() time.Time
}

// NewAreaService creates a new AreaService.
func NewAreaService(
	areaRepo *repositories.AreaRepository,
	uow *repositories.UnitOfWork,
	authzService *auth.AuthorizationService,
	logger zerolog.Logger,
) AreaService {
	return &areaServiceImpl{
		areaRepo:     areaRepo,
		uow:          uow,
		authzService: authzService,
		logger:       logger,
		now:          time.Now,
	}
}

// GetArea fetches one adoptable area by ID.
func (s *areaServiceImpl) GetArea(ctx context.Context, areaID uuid.UUID) (*models.AdoptableArea, error) {
	return s.areaRepo.GetByID(ctx, areaID)
}

// GetActiveAreas lists all active adoptable areas.
func (s *areaServiceImpl) GetActiveAreas(ctx context.Context) ([]models.AdoptableArea, error) {
	return s.areaRepo.GetActive(ctx)
}

// FindAreasNear returns active areas whose center lies within radiusMiles of
// the point, prefiltered by bounding box in the store and cut precisely by
// great-circle distance.
func (s *areaServiceImpl) FindAreasNear(ctx context.Context, lat, lon, radiusMiles float64) ([]models.AdoptableArea, error) {
	if radiusMiles <= 0 {
		return nil, apperrors.ErrBadRequest
	}

	box := geo.BoundingBoxAround(lat, lon, radiusMiles)
	candidates, err := s.areaRepo.GetActiveInBox(ctx, box)
	if err != nil {
		return nil, err
	}

	areas := make([]models.AdoptableArea, 0, len(candidates))
	for _, area := range candidates {
		if geo.DistanceMiles(lat, lon, area.CenterLatitude, area.CenterLongitude) <= radiusMiles {
			areas = append(areas, area)
		}
	}
	return areas, nil
}

// DeactivateArea hides an area from adoption without removing it. Site admin
// only.
func (s *areaServiceImpl) DeactivateArea(ctx context.Context, areaID, actorID uuid.UUID) error {
	if err := s.authzService.RequireSiteAdmin(ctx, actorID); err != nil {
		return err
	}

	area, err := s.areaRepo.GetByID(ctx, areaID)
	if err != nil {
		return err
	}
	area.IsActive = false
	area.StampUpdate(actorID, s.now())
	return s.areaRepo.Update(ctx, area)
}

// CreateBatch starts an area-generation run. Site admin only.
func (s *areaServiceImpl) CreateBatch(ctx context.Context, actorID uuid.UUID, req *dto.CreateBatchRequest) (*models.AreaGenerationBatch, error) {
	if err := s.authzService.RequireSiteAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	batch := &models.AreaGenerationBatch{
		Source: req.Source,
		City:   req.City,
		Region: req.Region,
		Notes:  req.Notes,
	}
	batch.StampCreate(actorID, s.now())

	if err := s.areaRepo.AddBatch(ctx, batch); err != nil {
		return nil, err
	}

	s.logger.Info().Str("batchId", batch.ID.String()).Str("source", req.Source).Msg("Area generation batch created")
	return batch, nil
}

// StageAreas proposes candidate areas within a batch for review, updating
// the batch's generated counter in the same transaction.
func (s *areaServiceImpl) StageAreas(ctx context.Context, batchID, actorID uuid.UUID, reqs []dto.StageAreaRequest) ([]models.StagedAdoptableArea, error) {
	if err := s.authzService.RequireSiteAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	batch, err := s.areaRepo.GetBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	staged := make([]models.StagedAdoptableArea, 0, len(reqs))
	for _, req := range reqs {
		staged = append(staged, models.StagedAdoptableArea{
			BatchID:         batchID,
			Name:            req.Name,
			Geometry:        datatypes.JSON(req.Geometry),
			CenterLatitude:  req.CenterLatitude,
			CenterLongitude: req.CenterLongitude,
			City:            req.City,
			Region:          req.Region,
			Country:         req.Country,
			ReviewStatus:    models.ReviewPending,
			CreatedDate:     now,
		})
	}

	err = s.uow.Do(ctx, func(tx *gorm.DB) error {
		repo := s.areaRepo.WithTx(tx)
		if err := repo.AddStaged(ctx, staged); err != nil {
			return err
		}
		batch.GeneratedCount += len(staged)
		batch.StampUpdate(actorID, now)
		return repo.UpdateBatch(ctx, batch)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("batchId", batchID.String()).Int("count", len(staged)).Msg("Areas staged for review")
	return staged, nil
}

// GetPendingStagedAreas lists staged areas awaiting review. Site admin only.
func (s *areaServiceImpl) GetPendingStagedAreas(ctx context.Context, actorID uuid.UUID) ([]models.StagedAdoptableArea, error) {
	if err := s.authzService.RequireSiteAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	return s.areaRepo.GetPendingStaged(ctx)
}

// PromoteStagedArea approves a staged area and creates the real adoptable
// area from it. The promotion, the staged-row resolution, and the batch
// counter update run in one transaction.
func (s *areaServiceImpl) PromoteStagedArea(ctx context.Context, stagedID, actorID uuid.UUID) (*models.AdoptableArea, error) {
	if err := s.authzService.RequireSiteAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	staged, err := s.areaRepo.GetStaged(ctx, stagedID)
	if err != nil {
		return nil, err
	}
	if !staged.ReviewStatus.CanTransitionTo(models.ReviewApproved) {
		return nil, apperrors.ErrStagedAreaResolved
	}

	now := s.now()
	area := &models.AdoptableArea{
		Name:            staged.Name,
		Geometry:        staged.Geometry,
		CenterLatitude:  staged.CenterLatitude,
		CenterLongitude: staged.CenterLongitude,
		City:            staged.City,
		Region:          staged.Region,
		Country:         staged.Country,
		IsActive:        true,
	}
	area.StampCreate(actorID, now)

	err = s.uow.Do(ctx, func(tx *gorm.DB) error {
		repo := s.areaRepo.WithTx(tx)

		if err := repo.Add(ctx, area); err != nil {
			return err
		}

		staged.ReviewStatus = models.ReviewApproved
		staged.ReviewedByUserID = &actorID
		staged.ReviewedDate = &now
		staged.PromotedAreaID = &area.ID
		if err := repo.UpdateStaged(ctx, staged); err != nil {
			return err
		}

		batch, err := repo.GetBatch(ctx, staged.BatchID)
		if err != nil {
			return err
		}
		batch.PromotedCount++
		batch.StampUpdate(actorID, now)
		return repo.UpdateBatch(ctx, batch)
	})
	if err != nil {
		s.logger.Error().Err(err).Str("stagedId", stagedID.String()).Msg("Failed to promote staged area")
		return nil, err
	}

	s.logger.Info().
		Str("stagedId", stagedID.String()).
		Str("areaId", area.ID.String()).
		Msg("Staged area promoted")
	return area, nil
}

// RejectStagedArea resolves a staged area as not worth adopting. Site admin
// only.
func (s *areaServiceImpl) RejectStagedArea(ctx context.Context, stagedID, actorID uuid.UUID) error {
	if err := s.authzService.RequireSiteAdmin(ctx, actorID); err != nil {
		return err
	}

	staged, err := s.areaRepo.GetStaged(ctx, stagedID)
	if err != nil {
		return err
	}
	if !staged.ReviewStatus.CanTransitionTo(models.ReviewRejected) {
		return apperrors.ErrStagedAreaResolved
	}

	now := s.now()
	staged.ReviewStatus = models.ReviewRejected
	staged.ReviewedByUserID = &actorID
	staged.ReviewedDate = &now
	return s.areaRepo.UpdateStaged(ctx, staged)
}
