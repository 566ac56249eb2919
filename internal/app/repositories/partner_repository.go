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

// PartnerRepository handles database operations for partners, their
// locations, offered services, admins, and event service requests.
type PartnerRepository struct {
	*KeyedRepository[models.Partner]
}

// NewPartnerRepository creates a new PartnerRepository.
func NewPartnerRepository(db *gorm.DB) *PartnerRepository {
	return &PartnerRepository{KeyedRepository: NewKeyedRepository[models.Partner](db)}
}

// WithTx returns a repository bound to the given transaction handle.
func (r *PartnerRepository) WithTx(tx *gorm.DB) *PartnerRepository {
	return &PartnerRepository{KeyedRepository: r.KeyedRepository.WithTx(tx)}
}

// GetByID fetches one partner, mapping absence to the typed partner error.
func (r *PartnerRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Partner, error) {
	partner, err := r.KeyedRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrPartnerNotFound
		}
		return nil, err
	}
	return partner, nil
}

// GetActive returns partners in the active status ordered by name.
func (r *PartnerRepository) GetActive(ctx context.Context) ([]models.Partner, error) {
	var partners []models.Partner
	err := r.Query(ctx).
		Where("partner_status_id = ?", models.PartnerStatusActive).
		Order("name").
		Find(&partners).Error
	if err != nil {
		return nil, err
	}
	return partners, nil
}

// AddLocation inserts a partner location.
func (r *PartnerRepository) AddLocation(ctx context.Context, location *models.PartnerLocation) error {
	return r.db.WithContext(ctx).Create(location).Error
}

// UpdateLocation persists a partner location.
func (r *PartnerRepository) UpdateLocation(ctx context.Context, location *models.PartnerLocation) error {
	return r.db.WithContext(ctx).Save(location).Error
}

// GetLocation fetches one location by ID.
func (r *PartnerRepository) GetLocation(ctx context.Context, id uuid.UUID) (*models.PartnerLocation, error) {
	var location models.PartnerLocation
	err := r.db.WithContext(ctx).First(&location, "id = ?", id).Error
	if err != nil {
		if dberrors.IsNotFound(err) {
			return nil, apperrors.ErrPartnerLocationNotFound
		}
		return nil, err
	}
	return &location, nil
}

// GetLocations returns all locations of a partner.
func (r *PartnerRepository) GetLocations(ctx context.Context, partnerID uuid.UUID) ([]models.PartnerLocation, error) {
	var locations []models.PartnerLocation
	err := r.db.WithContext(ctx).
		Where("partner_id = ?", partnerID).
		Order("name").
		Find(&locations).Error
	if err != nil {
		return nil, err
	}
	return locations, nil
}

// AddLocationService declares a service offered at a location. Redeclaring
// the same pair surfaces as a typed already-exists error.
func (r *PartnerRepository) AddLocationService(ctx context.Context, service *models.PartnerLocationService) error {
	if err := r.db.WithContext(ctx).Create(service).Error; err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrResourceAlreadyExists
		}
		return err
	}
	return nil
}

// RemoveLocationService withdraws a service offering from a location.
func (r *PartnerRepository) RemoveLocationService(ctx context.Context, locationID uuid.UUID, serviceTypeID int) error {
	result := r.db.WithContext(ctx).
		Where("partner_location_id = ? AND service_type_id = ?", locationID, serviceTypeID).
		Delete(&models.PartnerLocationService{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// GetLocationServices returns the services offered at a location.
func (r *PartnerRepository) GetLocationServices(ctx context.Context, locationID uuid.UUID) ([]models.PartnerLocationService, error) {
	var services []models.PartnerLocationService
	err := r.db.WithContext(ctx).
		Where("partner_location_id = ?", locationID).
		Order("service_type_id").
		Find(&services).Error
	if err != nil {
		return nil, err
	}
	return services, nil
}

// GetLocationService fetches one service offering by its composite key.
func (r *PartnerRepository) GetLocationService(ctx context.Context, locationID uuid.UUID, serviceTypeID int) (*models.PartnerLocationService, error) {
	var service models.PartnerLocationService
	err := r.db.WithContext(ctx).
		Where("partner_location_id = ? AND service_type_id = ?", locationID, serviceTypeID).
		First(&service).Error
	if err != nil {
		if dberrors.IsNotFound(err) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, err
	}
	return &service, nil
}

// AddAdmin grants a user admin rights over a partner. Regranting is a no-op.
func (r *PartnerRepository) AddAdmin(ctx context.Context, admin *models.PartnerAdmin) error {
	if err := r.db.WithContext(ctx).Create(admin).Error; err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil
		}
		return err
	}
	return nil
}

// RemoveAdmin revokes a user's admin rights over a partner.
func (r *PartnerRepository) RemoveAdmin(ctx context.Context, partnerID, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("partner_id = ? AND user_id = ?", partnerID, userID).
		Delete(&models.PartnerAdmin{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotPartnerAdmin
	}
	return nil
}

// IsAdmin reports whether the user administers the partner.
func (r *PartnerRepository) IsAdmin(ctx context.Context, partnerID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PartnerAdmin{}).
		Where("partner_id = ? AND user_id = ?", partnerID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetAdministeredPartnerIDs returns the IDs of partners the user administers.
func (r *PartnerRepository) GetAdministeredPartnerIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&models.PartnerAdmin{}).
		Where("user_id = ?", userID).
		Pluck("partner_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// AddServiceRequest records an event's request for a service at a location.
// A duplicate request surfaces as a typed already-exists error.
func (r *PartnerRepository) AddServiceRequest(ctx context.Context, request *models.EventPartnerLocationService) error {
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrServiceAlreadyRequested
		}
		return err
	}
	return nil
}

// GetServiceRequest fetches one service request by its triple composite key.
func (r *PartnerRepository) GetServiceRequest(ctx context.Context, eventID, locationID uuid.UUID, serviceTypeID int) (*models.EventPartnerLocationService, error) {
	var request models.EventPartnerLocationService
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND partner_location_id = ? AND service_type_id = ?", eventID, locationID, serviceTypeID).
		First(&request).Error
	if err != nil {
		if dberrors.IsNotFound(err) {
			return nil, apperrors.ErrServiceRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

// UpdateServiceRequest persists a service request.
func (r *PartnerRepository) UpdateServiceRequest(ctx context.Context, request *models.EventPartnerLocationService) error {
	return r.db.WithContext(ctx).Save(request).Error
}

// GetServiceRequestsForEvent returns every service request raised by an event.
func (r *PartnerRepository) GetServiceRequestsForEvent(ctx context.Context, eventID uuid.UUID) ([]models.EventPartnerLocationService, error) {
	var requests []models.EventPartnerLocationService
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_date").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// GetServiceRequestsForLocation returns the requests targeting a location,
// optionally filtered to one status.
func (r *PartnerRepository) GetServiceRequestsForLocation(ctx context.Context, locationID uuid.UUID, status *models.ServiceRequestStatus) ([]models.EventPartnerLocationService, error) {
	q := r.db.WithContext(ctx).Where("partner_location_id = ?", locationID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var requests []models.EventPartnerLocationService
	if err := q.Order("created_date").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}
