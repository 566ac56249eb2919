package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/trashmob-eco/trashmob-api/internal/app/auth"
	"github.com/trashmob-eco/trashmob-api/internal/app/models"
	"github.com/trashmob-eco/trashmob-api/internal/app/models/dto"
	"github.com/trashmob-eco/trashmob-api/internal/app/repositories"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/apperrors"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/email"
)

// OutreachService defines the interface for invite batches, newsletters, and
// prospect tracking.
type OutreachService interface {
	CreateInviteBatch(ctx context.Context, actorID uuid.UUID, req *dto.CreateInviteBatchRequest) (*models.EmailInviteBatch, error)
	GetInviteBatch(ctx context.Context, batchID uuid.UUID) (*models.EmailInviteBatch, error)
	AcceptInvite(ctx context.Context, inviteID uuid.UUID) error
	RecordInviteBounce(ctx context.Context, inviteID uuid.UUID) error

	CreateNewsletter(ctx context.Context, actorID uuid.UUID, req *dto.NewsletterRequest) (*models.Newsletter, error)
	UpdateNewsletter(ctx context.Context, newsletterID, actorID uuid.UUID, req *dto.NewsletterRequest) (*models.Newsletter, error)
	ScheduleNewsletter(ctx context.Context, newsletterID, actorID uuid.UUID, sendAt time.Time) error
	SendNewsletter(ctx context.Context, newsletterID, actorID uuid.UUID) error
	RecordNewsletterOpen(ctx context.Context, newsletterID uuid.UUID) error
	RecordNewsletterClick(ctx context.Context, newsletterID uuid.UUID) error
	GetNewsletters(ctx context.Context, status *models.NewsletterStatus) ([]models.Newsletter, error)

	AddProspect(ctx context.Context, actorID uuid.UUID, req *dto.ProspectRequest) (*models.ProspectOutreachEmail, error)
	MarkProspectContacted(ctx context.Context, prospectID, actorID uuid.UUID) error
	UpdateProspectStatus(ctx context.Context, prospectID, actorID uuid.UUID, status models.ProspectStatus) error
	GetProspects(ctx context.Context, actorID uuid.UUID, status *models.ProspectStatus) ([]models.ProspectOutreachEmail, error)
}

// outreachServiceImpl implements OutreachService
type outreachServiceImpl struct {
	outreachRepo *repositories.OutreachRepository
	userRepo     *repositories.UserRepository
	uow          *repositories.UnitOfWork
	emailService email.EmailService
	authzService *auth.AuthorizationService
	logger       zerolog.Logger
	now          func() time.Time
}

// NewOutreachService creates a new OutreachService.
func NewOutreachService(
	outreachRepo *repositories.OutreachRepository,
	userRepo *repositories.UserRepository,
	uow *repositories.UnitOfWork,
	emailService email.EmailService,
	authzService *auth.AuthorizationService,
	logger zerolog.Logger,
) OutreachService {
	return &outreachServiceImpl{
		outreachRepo: outreachRepo,
		userRepo:     userRepo,
		uow:          uow,
		emailService: emailService,
		authzService: authzService,
		logger:       logger,
		now:          time.Now,
	}
}

// CreateInviteBatch creates a batch with one invite per recipient and sends
// the emails. The batch and its invites are committed before any email goes
// out; a failed send leaves that invite Pending for a retry.
func (s *outreachServiceImpl) CreateInviteBatch(ctx context.Context, actorID uuid.UUID, req *dto.CreateInviteBatchRequest) (*models.EmailInviteBatch, error) {
	inviter, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	batch := &models.EmailInviteBatch{
		CustomMessage: req.CustomMessage,
		InviteCount:   len(req.Emails),
	}
	batch.StampCreate(actorID, now)

	invites := make([]models.EmailInvite, 0, len(req.Emails))
	err = s.uow.Do(ctx, func(tx *gorm.DB) error {
		repo := s.outreachRepo.WithTx(tx)
		if err := repo.AddBatch(ctx, batch); err != nil {
			return err
		}
		for _, addr := range req.Emails {
			invites = append(invites, models.EmailInvite{
				BatchID:     batch.ID,
				Email:       addr,
				Status:      models.InvitePending,
				CreatedDate: now,
			})
		}
		return repo.AddInvites(ctx, invites)
	})
	if err != nil {
		return nil, err
	}

	inviterName := inviter.UserName
	sent := 0
	for i := range invites {
		invite := &invites[i]
		if err := s.emailService.SendInviteEmail(invite.Email, inviterName, req.CustomMessage); err != nil {
			s.logger.Warn().Err(err).Str("email", invite.Email).Msg("Invite email failed, left pending")
			continue
		}
		sentAt := s.now()
		invite.Status = models.InviteSent
		invite.SentDate = &sentAt
		if err := s.outreachRepo.UpdateInvite(ctx, invite); err != nil {
			return nil, err
		}
		sent++
	}

	batch.SentCount = sent
	batch.StampUpdate(actorID, s.now())
	if err := s.outreachRepo.UpdateBatch(ctx, batch); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("batchId", batch.ID.String()).
		Int("invites", len(invites)).
		Int("sent", sent).
		Msg("Invite batch created")
	return batch, nil
}

// GetInviteBatch fetches one batch by ID.
func (s *outreachServiceImpl) GetInviteBatch(ctx context.Context, batchID uuid.UUID) (*models.EmailInviteBatch, error) {
	return s.outreachRepo.GetBatch(ctx, batchID)
}

// AcceptInvite settles an invite as accepted and bumps the batch counter.
func (s *outreachServiceImpl) AcceptInvite(ctx context.Context, inviteID uuid.UUID) error {
	return s.settleInvite(ctx, inviteID, models.InviteAccepted)
}

// RecordInviteBounce settles an invite as bounced and bumps the batch
// counter.
func (s *outreachServiceImpl) RecordInviteBounce(ctx context.Context, inviteID uuid.UUID) error {
	return s.settleInvite(ctx, inviteID, models.InviteBounced)
}

func (s *outreachServiceImpl) settleInvite(ctx context.Context, inviteID uuid.UUID, target models.InviteStatus) error {
	invite, err := s.outreachRepo.GetInvite(ctx, inviteID)
	if err != nil {
		return err
	}
	if !invite.Status.CanTransitionTo(target) {
		return apperrors.ErrInviteAlreadySettled
	}

	now := s.now()
	invite.Status = target
	switch target {
	case models.InviteAccepted:
		invite.AcceptedDate = &now
	case models.InviteBounced:
		invite.BouncedDate = &now
	}

	return s.uow.Do(ctx, func(tx *gorm.DB) error {
		repo := s.outreachRepo.WithTx(tx)
		if err := repo.UpdateInvite(ctx, invite); err != nil {
			return err
		}
		batch, err := repo.GetBatch(ctx, invite.BatchID)
		if err != nil {
			return err
		}
		switch target {
		case models.InviteAccepted:
			batch.AcceptedCount++
		case models.InviteBounced:
			batch.BouncedCount++
		}
		return repo.UpdateBatch(ctx, batch)
	})
}

// CreateNewsletter creates a draft newsletter. Site admin only.
func (s *outreachServiceImpl) CreateNewsletter(ctx context.Context, actorID uuid.UUID, req *dto.NewsletterRequest) (*models.Newsletter, error) {
	if err := s.authzService.RequireSiteAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	newsletter := &models.Newsletter{
		Title:      req.Title,
		Body:       req.Body,
		CategoryID: req.CategoryID,
		Status:     models.NewsletterDraft,
	}
	newsletter.StampCreate(actorID, s.now())

	if err := s.outreachRepo.AddNewsletter(ctx, newsletter); err != nil {
		return nil, err
	}

	s.logger.Info().Str("newsletterId", newsletter.ID.String()).Str("title", req.Title).Msg("Newsletter drafted")
	return newsletter, nil
}

// UpdateNewsletter edits a newsletter that has not been sent yet.
func (s *outreachServiceImpl) UpdateNewsletter(ctx context.Context, newsletterID, actorID uuid.UUID, req *dto.NewsletterRequest) (*models.Newsletter, error) {
	if err := s.authzService.RequireSiteAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	newsletter, err := s.outreachRepo.GetNewsletter(ctx, newsletterID)
	if err != nil {
		return nil, err
	}
	if newsletter.Status == models.NewsletterSent {
		return nil, apperrors.ErrNewsletterSent
	}

	newsletter.Title = req.Title
	newsletter.Body = req.Body
	newsletter.CategoryID = req.CategoryID
	newsletter.StampUpdate(actorID, s.now())

	if err := s.outreachRepo.UpdateNewsletter(ctx, newsletter); err != nil {
		return nil, err
	}
	return newsletter, nil
}

// ScheduleNewsletter moves a draft to Scheduled for the given time.
func (s *outreachServiceImpl) ScheduleNewsletter(ctx context.Context, newsletterID, actorID uuid.UUID, sendAt time.Time) error {
	if err := s.authzService.RequireSiteAdmin(ctx, actorID); err != nil {
		return err
	}

	newsletter, err := s.outreachRepo.GetNewsletter(ctx, newsletterID)
	if err != nil {
		return err
	}
	if !newsletter.Status.CanTransitionTo(models.NewsletterScheduled) {
		return apperrors.ErrNewsletterNotDraft
	}

	newsletter.Status = models.NewsletterScheduled
	newsletter.ScheduledDate = &sendAt
	newsletter.StampUpdate(actorID, s.now())
	return s.outreachRepo.UpdateNewsletter(ctx, newsletter)
}

// SendNewsletter dispatches a newsletter to every registered user and marks
// it Sent. Sending is terminal.
func (s *outreachServiceImpl) SendNewsletter(ctx context.Context, newsletterID, actorID uuid.UUID) error {
	if err := s.authzService.RequireSiteAdmin(ctx, actorID); err != nil {
		return err
	}

	newsletter, err := s.outreachRepo.GetNewsletter(ctx, newsletterID)
	if err != nil {
		return err
	}
	if !newsletter.Status.CanTransitionTo(models.NewsletterSent) {
		return apperrors.ErrNewsletterSent
	}

	recipients, err := s.userRepo.Find(ctx)
	if err != nil {
		return err
	}

	delivered := 0
	for _, user := range recipients {
		if err := s.emailService.SendNewsletterEmail(user.Email, newsletter.Title, newsletter.Body); err != nil {
			s.logger.Warn().Err(err).Str("email", user.Email).Msg("Newsletter delivery failed for recipient")
			continue
		}
		delivered++
	}

	now := s.now()
	newsletter.Status = models.NewsletterSent
	newsletter.SentDate = &now
	newsletter.RecipientCount = delivered
	newsletter.StampUpdate(actorID, now)
	if err := s.outreachRepo.UpdateNewsletter(ctx, newsletter); err != nil {
		return err
	}

	s.logger.Info().
		Str("newsletterId", newsletterID.String()).
		Int("recipients", delivered).
		Msg("Newsletter sent")
	return nil
}

// RecordNewsletterOpen bumps the open counter.
func (s *outreachServiceImpl) RecordNewsletterOpen(ctx context.Context, newsletterID uuid.UUID) error {
	return s.outreachRepo.IncrementNewsletterCounter(ctx, newsletterID, "open_count")
}

// RecordNewsletterClick bumps the click counter.
func (s *outreachServiceImpl) RecordNewsletterClick(ctx context.Context, newsletterID uuid.UUID) error {
	return s.outreachRepo.IncrementNewsletterCounter(ctx, newsletterID, "click_count")
}

// GetNewsletters lists newsletters, optionally filtered to one status.
func (s *outreachServiceImpl) GetNewsletters(ctx context.Context, status *models.NewsletterStatus) ([]models.Newsletter, error) {
	return s.outreachRepo.GetNewsletters(ctx, status)
}

// AddProspect records a prospective partner contact. Site admin only.
func (s *outreachServiceImpl) AddProspect(ctx context.Context, actorID uuid.UUID, req *dto.ProspectRequest) (*models.ProspectOutreachEmail, error) {
	if err := s.authzService.RequireSiteAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	prospect := &models.ProspectOutreachEmail{
		Email:        req.Email,
		Name:         req.Name,
		Organization: req.Organization,
		Status:       models.ProspectNew,
		Notes:        req.Notes,
	}
	prospect.StampCreate(actorID, s.now())

	if err := s.outreachRepo.AddProspect(ctx, prospect); err != nil {
		return nil, err
	}
	return prospect, nil
}

// MarkProspectContacted stamps the contact time and moves a new prospect to
// Contacted.
func (s *outreachServiceImpl) MarkProspectContacted(ctx context.Context, prospectID, actorID uuid.UUID) error {
	if err := s.authzService.RequireSiteAdmin(ctx, actorID); err != nil {
		return err
	}

	prospect, err := s.outreachRepo.GetProspect(ctx, prospectID)
	if err != nil {
		return err
	}

	now := s.now()
	if prospect.Status == models.ProspectNew {
		prospect.Status = models.ProspectContacted
	}
	prospect.LastContactedDate = &now
	prospect.StampUpdate(actorID, now)
	return s.outreachRepo.UpdateProspect(ctx, prospect)
}

// UpdateProspectStatus moves a prospect to the given status.
func (s *outreachServiceImpl) UpdateProspectStatus(ctx context.Context, prospectID, actorID uuid.UUID, status models.ProspectStatus) error {
	if err := s.authzService.RequireSiteAdmin(ctx, actorID); err != nil {
		return err
	}
	if !status.Valid() {
		return apperrors.ErrBadRequest
	}

	prospect, err := s.outreachRepo.GetProspect(ctx, prospectID)
	if err != nil {
		return err
	}
	prospect.Status = status
	prospect.StampUpdate(actorID, s.now())
	return s.outreachRepo.UpdateProspect(ctx, prospect)
}

// GetProspects lists prospects. Site admin only.
func (s *outreachServiceImpl) GetProspects(ctx context.Context, actorID uuid.UUID, status *models.ProspectStatus) ([]models.ProspectOutreachEmail, error) {
	if err := s.authzService.RequireSiteAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	return s.outreachRepo.GetProspects(ctx, status)
}
