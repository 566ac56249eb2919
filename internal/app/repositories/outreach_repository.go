package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trashmob-eco/trashmob-api/internal/app/models"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/apperrors"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/dberrors"
)

// OutreachRepository handles database operations for invite batches,
// newsletters, and prospect outreach records.
type OutreachRepository struct {
	db *gorm.DB
}

// NewOutreachRepository creates a new OutreachRepository.
func NewOutreachRepository(db *gorm.DB) *OutreachRepository {
	return &OutreachRepository{db: db}
}

// WithTx returns a repository bound to the given transaction handle.
func (r *OutreachRepository) WithTx(tx *gorm.DB) *OutreachRepository {
	return &OutreachRepository{db: tx}
}

// AddBatch inserts an invite batch.
func (r *OutreachRepository) AddBatch(ctx context.Context, batch *models.EmailInviteBatch) error {
	return r.db.WithContext(ctx).Create(batch).Error
}

// UpdateBatch persists an invite batch, including its rollup counters.
func (r *OutreachRepository) UpdateBatch(ctx context.Context, batch *models.EmailInviteBatch) error {
	return r.db.WithContext(ctx).Save(batch).Error
}

// GetBatch fetches one invite batch by ID.
func (r *OutreachRepository) GetBatch(ctx context.Context, id uuid.UUID) (*models.EmailInviteBatch, error) {
	var batch models.EmailInviteBatch
	err := r.db.WithContext(ctx).First(&batch, "id = ?", id).Error
	if err != nil {
		if dberrors.IsNotFound(err) {
			return nil, apperrors.ErrInviteBatchNotFound
		}
		return nil, err
	}
	return &batch, nil
}

// AddInvites inserts the recipients of a batch in one statement.
func (r *OutreachRepository) AddInvites(ctx context.Context, invites []models.EmailInvite) error {
	if len(invites) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&invites).Error
}

// GetInvite fetches one invite by ID.
func (r *OutreachRepository) GetInvite(ctx context.Context, id uuid.UUID) (*models.EmailInvite, error) {
	var invite models.EmailInvite
	err := r.db.WithContext(ctx).First(&invite, "id = ?", id).Error
	if err != nil {
		if dberrors.IsNotFound(err) {
			return nil, apperrors.ErrInviteNotFound
		}
		return nil, err
	}
	return &invite, nil
}

// UpdateInvite persists an invite.
func (r *OutreachRepository) UpdateInvite(ctx context.Context, invite *models.EmailInvite) error {
	return r.db.WithContext(ctx).Save(invite).Error
}

// GetInvitesByBatch returns the invites of one batch in creation order.
func (r *OutreachRepository) GetInvitesByBatch(ctx context.Context, batchID uuid.UUID) ([]models.EmailInvite, error) {
	var invites []models.EmailInvite
	err := r.db.WithContext(ctx).
		Where("batch_id = ?", batchID).
		Order("created_date").
		Find(&invites).Error
	if err != nil {
		return nil, err
	}
	return invites, nil
}

// FindInviteByEmail returns the most recent invite addressed to the email, so
// an acceptance arriving without an invite ID can still be correlated.
func (r *OutreachRepository) FindInviteByEmail(ctx context.Context, email string) (*models.EmailInvite, error) {
	var invite models.EmailInvite
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		Order("created_date DESC").
		First(&invite).Error
	if err != nil {
		if dberrors.IsNotFound(err) {
			return nil, apperrors.ErrInviteNotFound
		}
		return nil, err
	}
	return &invite, nil
}

// AddNewsletter inserts a newsletter.
func (r *OutreachRepository) AddNewsletter(ctx context.Context, newsletter *models.Newsletter) error {
	return r.db.WithContext(ctx).Create(newsletter).Error
}

// UpdateNewsletter persists a newsletter.
func (r *OutreachRepository) UpdateNewsletter(ctx context.Context, newsletter *models.Newsletter) error {
	return r.db.WithContext(ctx).Save(newsletter).Error
}

// GetNewsletter fetches one newsletter by ID.
func (r *OutreachRepository) GetNewsletter(ctx context.Context, id uuid.UUID) (*models.Newsletter, error) {
	var newsletter models.Newsletter
	err := r.db.WithContext(ctx).First(&newsletter, "id = ?", id).Error
	if err != nil {
		if dberrors.IsNotFound(err) {
			return nil, apperrors.ErrNewsletterNotFound
		}
		return nil, err
	}
	return &newsletter, nil
}

// GetNewsletters returns newsletters newest first, optionally filtered to one
// status.
func (r *OutreachRepository) GetNewsletters(ctx context.Context, status *models.NewsletterStatus) ([]models.Newsletter, error) {
	q := r.db.WithContext(ctx).Model(&models.Newsletter{})
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var newsletters []models.Newsletter
	if err := q.Order("created_date DESC").Find(&newsletters).Error; err != nil {
		return nil, err
	}
	return newsletters, nil
}

// IncrementNewsletterCounter bumps one engagement counter atomically in SQL
// rather than read-modify-write, since opens and clicks arrive concurrently.
func (r *OutreachRepository) IncrementNewsletterCounter(ctx context.Context, id uuid.UUID, column string) error {
	result := r.db.WithContext(ctx).Model(&models.Newsletter{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNewsletterNotFound
	}
	return nil
}

// AddProspect inserts a prospect outreach record.
func (r *OutreachRepository) AddProspect(ctx context.Context, prospect *models.ProspectOutreachEmail) error {
	return r.db.WithContext(ctx).Create(prospect).Error
}

// UpdateProspect persists a prospect outreach record.
func (r *OutreachRepository) UpdateProspect(ctx context.Context, prospect *models.ProspectOutreachEmail) error {
	return r.db.WithContext(ctx).Save(prospect).Error
}

// GetProspect fetches one prospect by ID.
func (r *OutreachRepository) GetProspect(ctx context.Context, id uuid.UUID) (*models.ProspectOutreachEmail, error) {
	var prospect models.ProspectOutreachEmail
	err := r.db.WithContext(ctx).First(&prospect, "id = ?", id).Error
	if err != nil {
		if dberrors.IsNotFound(err) {
			return nil, apperrors.ErrProspectNotFound
		}
		return nil, err
	}
	return &prospect, nil
}

// GetProspects returns prospects newest first, optionally filtered to one
// status.
func (r *OutreachRepository) GetProspects(ctx context.Context, status *models.ProspectStatus) ([]models.ProspectOutreachEmail, error) {
	q := r.db.WithContext(ctx).Model(&models.ProspectOutreachEmail{})
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var prospects []models.ProspectOutreachEmail
	if err := q.Order("created_date DESC").Find(&prospects).Error; err != nil {
		return nil, err
	}
	return prospects, nil
}
