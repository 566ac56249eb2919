package services

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/trashmob-eco/trashmob-api/internal/app/auth"
	"github.com/trashmob-eco/trashmob-api/internal/app/models"
	"github.com/trashmob-eco/trashmob-api/internal/app/repositories"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/apperrors"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/filestorage"
)

// Moderated constrains PT to a pointer to a photo entity that exposes the
// shared moderation surface.
type Moderated[T any] interface {
	*T
	models.ModeratedPhoto
}

// PhotoService is the moderation workflow, written once and instantiated per
// photo table. Uploads start Pending; a decision moves them to Approved or
// Rejected exactly once; any user flag marks the photo in-review without
// touching the decision.
type PhotoService[T any, PT Moderated[T]] interface {
	AddPhoto(ctx context.Context, ownerID, actorID uuid.UUID, fileHeader *multipart.FileHeader, caption string) (*T, error)
	GetPhotos(ctx context.Context, ownerID uuid.UUID) ([]T, error)
	GetPhoto(ctx context.Context, photoID uuid.UUID) (*T, error)
	Flag(ctx context.Context, photoID, userID uuid.UUID, reason string) error
	Approve(ctx context.Context, photoID, actorID uuid.UUID, reason string) error
	Reject(ctx context.Context, photoID, actorID uuid.UUID, reason string) error
	HardDelete(ctx context.Context, photoID, actorID uuid.UUID, reason string) error
	GetPendingQueue(ctx context.Context, actorID uuid.UUID) ([]T, error)
	GetFlaggedQueue(ctx context.Context, actorID uuid.UUID) ([]T, error)
	GetModerationLog(ctx context.Context, photoID uuid.UUID) ([]models.PhotoModerationLog, error)
}

// photoServiceImpl implements PhotoService for one photo table.
type photoServiceImpl[T any, PT Moderated[T]] struct {
	photoRepo    *repositories.PhotoRepository[T]
	auditRepo    *repositories.PhotoAuditRepository
	uow          *repositories.UnitOfWork
	fileStorage  filestorage.FileStorage
	authzService *auth.AuthorizationService
	logger       zerolog.Logger
	now          func() time.Time

	// newPhoto builds a stamped entity bound to its owner; ownerColumn and
	// subDir locate the owner foreign key and the blob directory for this
	// table.
	newPhoto    func(ownerID, actorID uuid.UUID, now time.Time) *T
	ownerColumn string
	subDir      string
}

// NewPhotoService creates a PhotoService for one photo entity type.
func NewPhotoService[T any, PT Moderated[T]](
	photoRepo *repositories.PhotoRepository[T],
	auditRepo *repositories.PhotoAuditRepository,
	uow *repositories.UnitOfWork,
	fileStorage filestorage.FileStorage,
	authzService *auth.AuthorizationService,
	logger zerolog.Logger,
	newPhoto func(ownerID, actorID uuid.UUID, now time.Time) *T,
	ownerColumn string,
	subDir string,
) PhotoService[T, PT] {
	return &photoServiceImpl[T, PT]{
		photoRepo:    photoRepo,
		auditRepo:    auditRepo,
		uow:          uow,
		fileStorage:  fileStorage,
		authzService: authzService,
		logger:       logger,
		now:          time.Now,
		newPhoto:     newPhoto,
		ownerColumn:  ownerColumn,
		subDir:       subDir,
	}
}

// AddPhoto stores the uploaded file and inserts the photo row in Pending
// state. The blob is removed again if the row insert fails.
func (s *photoServiceImpl[T, PT]) AddPhoto(ctx context.Context, ownerID, actorID uuid.UUID, fileHeader *multipart.FileHeader, caption string) (*T, error) {
	fileURL, err := s.fileStorage.SaveFile(fileHeader, s.subDir)
	if err != nil {
		return nil, err
	}

	photo := s.newPhoto(ownerID, actorID, s.now())
	details := PT(photo).Details()
	details.ImageURL = fileURL
	details.Caption = caption
	details.ModerationStatus = models.ModerationPending

	if err := s.photoRepo.Add(ctx, photo); err != nil {
		if cleanupErr := s.fileStorage.DeleteFile(fileURL); cleanupErr != nil {
			s.logger.Warn().Err(cleanupErr).Str("fileUrl", fileURL).Msg("Failed to remove orphaned photo blob")
		}
		return nil, err
	}

	s.logger.Info().
		Str("photoId", PT(photo).PhotoID().String()).
		Str("type", string(PT(photo).PhotoType())).
		Str("uploadedBy", actorID.String()).
		Msg("Photo added")
	return photo, nil
}

// GetPhotos lists the photos attached to one owning entity.
func (s *photoServiceImpl[T, PT]) GetPhotos(ctx context.Context, ownerID uuid.UUID) ([]T, error) {
	return s.photoRepo.GetByOwner(ctx, s.ownerColumn, ownerID)
}

// GetPhoto fetches one photo by ID.
func (s *photoServiceImpl[T, PT]) GetPhoto(ctx context.Context, photoID uuid.UUID) (*T, error) {
	return s.photoRepo.GetByID(ctx, photoID)
}

// Flag records a user's report and marks the photo in-review. The moderation
// status is deliberately untouched; flagging informs moderators, it does not
// decide for them.
func (s *photoServiceImpl[T, PT]) Flag(ctx context.Context, photoID, userID uuid.UUID, reason string) error {
	photo, err := s.photoRepo.GetByID(ctx, photoID)
	if err != nil {
		return err
	}
	PT(photo).Details().InReview = true

	now := s.now()
	err = s.uow.Do(ctx, func(tx *gorm.DB) error {
		if err := s.photoRepo.WithTx(tx).Update(ctx, photo); err != nil {
			return err
		}
		audit := s.auditRepo.WithTx(tx)
		flag := &models.PhotoFlag{
			PhotoID:         photoID,
			PhotoType:       PT(photo).PhotoType(),
			FlaggedByUserID: userID,
			Reason:          reason,
			CreatedDate:     now,
		}
		if err := audit.AddFlag(ctx, flag); err != nil {
			return err
		}
		return audit.AddLog(ctx, &models.PhotoModerationLog{
			PhotoID:     photoID,
			PhotoType:   PT(photo).PhotoType(),
			Action:      models.ModerationActionFlagged,
			Reason:      reason,
			ActorUserID: userID,
			CreatedDate: now,
		})
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("photoId", photoID.String()).Str("flaggedBy", userID.String()).Msg("Photo flagged")
	return nil
}

// Approve resolves a pending photo as acceptable. Site admin only.
func (s *photoServiceImpl[T, PT]) Approve(ctx context.Context, photoID, actorID uuid.UUID, reason string) error {
	return s.decide(ctx, photoID, actorID, reason, models.ModerationApproved, models.ModerationActionApproved)
}

// Reject resolves a pending photo as unacceptable. Site admin only.
func (s *photoServiceImpl[T, PT]) Reject(ctx context.Context, photoID, actorID uuid.UUID, reason string) error {
	return s.decide(ctx, photoID, actorID, reason, models.ModerationRejected, models.ModerationActionRejected)
}

func (s *photoServiceImpl[T, PT]) decide(ctx context.Context, photoID, actorID uuid.UUID, reason string, target models.ModerationStatus, action models.ModerationAction) error {
	if err := s.authzService.RequireSiteAdmin(ctx, actorID); err != nil {
		return err
	}

	photo, err := s.photoRepo.GetByID(ctx, photoID)
	if err != nil {
		return err
	}
	details := PT(photo).Details()
	if !details.ModerationStatus.CanTransitionTo(target) {
		return apperrors.ErrPhotoAlreadyModerated
	}
	details.ModerationStatus = target
	details.InReview = false

	now := s.now()
	err = s.uow.Do(ctx, func(tx *gorm.DB) error {
		if err := s.photoRepo.WithTx(tx).Update(ctx, photo); err != nil {
			return err
		}
		return s.auditRepo.WithTx(tx).AddLog(ctx, &models.PhotoModerationLog{
			PhotoID:     photoID,
			PhotoType:   PT(photo).PhotoType(),
			Action:      action,
			Reason:      reason,
			ActorUserID: actorID,
			CreatedDate: now,
		})
	})
	if err != nil {
		return err
	}

	s.logger.Info().
		Str("photoId", photoID.String()).
		Str("decision", string(target)).
		Str("moderator", actorID.String()).
		Msg("Photo moderated")
	return nil
}

// HardDelete removes the photo row, logs the deletion, and then removes the
// blob. The row goes first; an orphaned blob is recoverable, a dangling row
// pointing at nothing is not.
func (s *photoServiceImpl[T, PT]) HardDelete(ctx context.Context, photoID, actorID uuid.UUID, reason string) error {
	if err := s.authzService.RequireSiteAdmin(ctx, actorID); err != nil {
		return err
	}

	photo, err := s.photoRepo.GetByID(ctx, photoID)
	if err != nil {
		return err
	}
	fileURL := PT(photo).Details().ImageURL

	now := s.now()
	err = s.uow.Do(ctx, func(tx *gorm.DB) error {
		if _, err := s.photoRepo.WithTx(tx).Delete(ctx, photo); err != nil {
			return err
		}
		return s.auditRepo.WithTx(tx).AddLog(ctx, &models.PhotoModerationLog{
			PhotoID:     photoID,
			PhotoType:   PT(photo).PhotoType(),
			Action:      models.ModerationActionDeleted,
			Reason:      reason,
			ActorUserID: actorID,
			CreatedDate: now,
		})
	})
	if err != nil {
		return err
	}

	if err := s.fileStorage.DeleteFile(fileURL); err != nil {
		s.logger.Warn().Err(err).Str("photoId", photoID.String()).Str("fileUrl", fileURL).Msg("Photo row removed but blob deletion failed")
	}

	s.logger.Info().Str("photoId", photoID.String()).Str("deletedBy", actorID.String()).Msg("Photo deleted")
	return nil
}

// GetPendingQueue lists photos awaiting a decision. Site admin only.
func (s *photoServiceImpl[T, PT]) GetPendingQueue(ctx context.Context, actorID uuid.UUID) ([]T, error) {
	if err := s.authzService.RequireSiteAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	return s.photoRepo.GetPending(ctx)
}

// GetFlaggedQueue lists photos marked in-review by user flags. Site admin
// only.
func (s *photoServiceImpl[T, PT]) GetFlaggedQueue(ctx context.Context, actorID uuid.UUID) ([]T, error) {
	if err := s.authzService.RequireSiteAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	return s.photoRepo.GetFlagged(ctx)
}

// GetModerationLog returns the audit trail of a photo.
func (s *photoServiceImpl[T, PT]) GetModerationLog(ctx context.Context, photoID uuid.UUID) ([]models.PhotoModerationLog, error) {
	return s.auditRepo.GetLog(ctx, photoID)
}
