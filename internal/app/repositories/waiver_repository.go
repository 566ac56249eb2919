package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trashmob-eco/trashmob-api/internal/app/models"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/apperrors"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/dberrors"
)

// WaiverRepository handles database operations for waivers, their versions,
// and user acceptance records.
type WaiverRepository struct {
	*KeyedRepository[models.Waiver]
}

// NewWaiverRepository creates a new WaiverRepository.
func NewWaiverRepository(db *gorm.DB) *WaiverRepository {
	return &WaiverRepository{KeyedRepository: NewKeyedRepository[models.Waiver](db)}
}

// WithTx returns a repository bound to the given transaction handle.
func (r *WaiverRepository) WithTx(tx *gorm.DB) *WaiverRepository {
	return &WaiverRepository{KeyedRepository: r.KeyedRepository.WithTx(tx)}
}

// GetByID fetches one waiver, mapping absence to the typed waiver error.
func (r *WaiverRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Waiver, error) {
	waiver, err := r.KeyedRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrWaiverNotFound
		}
		return nil, err
	}
	return waiver, nil
}

// GetByName fetches a waiver by its unique name.
func (r *WaiverRepository) GetByName(ctx context.Context, name string) (*models.Waiver, error) {
	var waiver models.Waiver
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&waiver).Error
	if err != nil {
		if dberrors.IsNotFound(err) {
			return nil, apperrors.ErrWaiverNotFound
		}
		return nil, err
	}
	return &waiver, nil
}

// AddVersion inserts a waiver version.
func (r *WaiverRepository) AddVersion(ctx context.Context, version *models.WaiverVersion) error {
	return r.db.WithContext(ctx).Create(version).Error
}

// GetVersion fetches one waiver version by ID.
func (r *WaiverRepository) GetVersion(ctx context.Context, id uuid.UUID) (*models.WaiverVersion, error) {
	var version models.WaiverVersion
	err := r.db.WithContext(ctx).First(&version, "id = ?", id).Error
	if err != nil {
		if dberrors.IsNotFound(err) {
			return nil, apperrors.ErrWaiverVersionNotFound
		}
		return nil, err
	}
	return &version, nil
}

// GetActiveVersion returns the currently active version of a waiver.
func (r *WaiverRepository) GetActiveVersion(ctx context.Context, waiverID uuid.UUID) (*models.WaiverVersion, error) {
	var version models.WaiverVersion
	err := r.db.WithContext(ctx).
		Where("waiver_id = ? AND is_active = ?", waiverID, true).
		First(&version).Error
	if err != nil {
		if dberrors.IsNotFound(err) {
			return nil, apperrors.ErrNoActiveWaiverVersion
		}
		return nil, err
	}
	return &version, nil
}

// DeactivateVersions clears the active flag on every version of the waiver.
// Publishing runs this and the insert of the new active version in one
// transaction so exactly one version stays active.
func (r *WaiverRepository) DeactivateVersions(ctx context.Context, waiverID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.WaiverVersion{}).
		Where("waiver_id = ? AND is_active = ?", waiverID, true).
		Update("is_active", false).Error
}

// NextVersionNumber returns one past the highest version number recorded for
// the waiver, starting at 1.
func (r *WaiverRepository) NextVersionNumber(ctx context.Context, waiverID uuid.UUID) (int, error) {
	var highest int
	err := r.db.WithContext(ctx).Model(&models.WaiverVersion{}).
		Where("waiver_id = ?", waiverID).
		Select("COALESCE(MAX(version_number), 0)").
		Scan(&highest).Error
	if err != nil {
		return 0, err
	}
	return highest + 1, nil
}

// AddUserWaiver records a user's acceptance. The row is immutable once
// written; there is deliberately no update path.
func (r *WaiverRepository) AddUserWaiver(ctx context.Context, record *models.UserWaiver) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// GetLatestUserWaiver returns the most recent acceptance of the given waiver
// version by the user, or the typed not-accepted error.
func (r *WaiverRepository) GetLatestUserWaiver(ctx context.Context, userID, versionID uuid.UUID) (*models.UserWaiver, error) {
	var record models.UserWaiver
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND waiver_version_id = ?", userID, versionID).
		Order("accepted_date DESC").
		First(&record).Error
	if err != nil {
		if dberrors.IsNotFound(err) {
			return nil, apperrors.ErrWaiverNotAccepted
		}
		return nil, err
	}
	return &record, nil
}

// GetUserWaivers returns every acceptance record for the user, newest first.
func (r *WaiverRepository) GetUserWaivers(ctx context.Context, userID uuid.UUID) ([]models.UserWaiver, error) {
	var records []models.UserWaiver
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("accepted_date DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// AddCommunityWaiver maps a partner to a required waiver. Remapping the same
// pair is a no-op; a dangling partner reference surfaces as the typed
// partner error.
func (r *WaiverRepository) AddCommunityWaiver(ctx context.Context, link *models.CommunityWaiver) error {
	if err := r.db.WithContext(ctx).Create(link).Error; err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrPartnerNotFound
		}
		return err
	}
	return nil
}

// GetCommunityWaivers returns the waivers a partner requires.
func (r *WaiverRepository) GetCommunityWaivers(ctx context.Context, partnerID uuid.UUID) ([]models.CommunityWaiver, error) {
	var links []models.CommunityWaiver
	err := r.db.WithContext(ctx).
		Where("partner_id = ?", partnerID).
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}
