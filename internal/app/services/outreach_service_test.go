package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trashmob-eco/trashmob-api/internal/app/models"
	"github.com/trashmob-eco/trashmob-api/internal/app/models/dto"
	"github.com/trashmob-eco/trashmob-api/internal/app/repositories"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/apperrors"
)

func newOutreachService(t *testing.T, repos *repositories.Repositories, mail *fakeEmailService) OutreachService {
	t.Helper()
	svc := NewOutreachService(repos.Outreach, repos.Users, repos.UnitOfWork, mail, newTestAuthz(repos), testLogger())
	svc.(*outreachServiceImpl).now = fixedNow
	return svc
}

func TestCreateInviteBatchSendsAndMarksInvites(t *testing.T) {
	repos := newTestRepos(t)
	mail := &fakeEmailService{}
	svc := newOutreachService(t, repos, mail)
	ctx := context.Background()
	inviter := createUser(t, repos, "inviter", false)

	batch, err := svc.CreateInviteBatch(ctx, inviter.ID, &dto.CreateInviteBatchRequest{
		Emails:        []string{"a@example.com", "b@example.com"},
		CustomMessage: "Join our Saturday cleanup",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, batch.InviteCount)
	assert.Equal(t, 2, batch.SentCount)
	assert.ElementsMatch(t, []string{"a@example.com", "b@example.com"}, mail.invites)

	invites, err := repos.Outreach.GetInvitesByBatch(ctx, batch.ID)
	require.NoError(t, err)
	require.Len(t, invites, 2)
	for _, invite := range invites {
		assert.Equal(t, models.InviteSent, invite.Status)
		assert.NotNil(t, invite.SentDate)
	}
}

func TestFailedInviteDeliveryStaysPending(t *testing.T) {
	repos := newTestRepos(t)
	mail := &fakeEmailService{fail: true}
	svc := newOutreachService(t, repos, mail)
	ctx := context.Background()
	inviter := createUser(t, repos, "inviter", false)

	batch, err := svc.CreateInviteBatch(ctx, inviter.ID, &dto.CreateInviteBatchRequest{
		Emails: []string{"a@example.com"},
	})
	require.NoError(t, err)
	assert.Zero(t, batch.SentCount)

	invites, err := repos.Outreach.GetInvitesByBatch(ctx, batch.ID)
	require.NoError(t, err)
	require.Len(t, invites, 1)
	assert.Equal(t, models.InvitePending, invites[0].Status)
}

func TestSettleInviteBumpsBatchCountersOnce(t *testing.T) {
	repos := newTestRepos(t)
	svc := newOutreachService(t, repos, &fakeEmailService{})
	ctx := context.Background()
	inviter := createUser(t, repos, "inviter", false)

	batch, err := svc.CreateInviteBatch(ctx, inviter.ID, &dto.CreateInviteBatchRequest{
		Emails: []string{"a@example.com", "b@example.com"},
	})
	require.NoError(t, err)

	invites, err := repos.Outreach.GetInvitesByBatch(ctx, batch.ID)
	require.NoError(t, err)
	require.Len(t, invites, 2)

	require.NoError(t, svc.AcceptInvite(ctx, invites[0].ID))
	require.NoError(t, svc.RecordInviteBounce(ctx, invites[1].ID))

	stored, err := svc.GetInviteBatch(ctx, batch.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.AcceptedCount)
	assert.Equal(t, 1, stored.BouncedCount)

	// Settling is final in either direction.
	assert.ErrorIs(t, svc.AcceptInvite(ctx, invites[0].ID), apperrors.ErrInviteAlreadySettled)
	assert.ErrorIs(t, svc.RecordInviteBounce(ctx, invites[0].ID), apperrors.ErrInviteAlreadySettled)
}

func TestNewsletterLifecycle(t *testing.T) {
	repos := newTestRepos(t)
	mail := &fakeEmailService{}
	svc := newOutreachService(t, repos, mail)
	ctx := context.Background()
	admin := createUser(t, repos, "admin", true)
	createUser(t, repos, "subscriber", false)

	newsletter, err := svc.CreateNewsletter(ctx, admin.ID, &dto.NewsletterRequest{
		Title:      "Spring Roundup",
		Body:       "<p>842 bags collected</p>",
		CategoryID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, models.NewsletterDraft, newsletter.Status)

	require.NoError(t, svc.ScheduleNewsletter(ctx, newsletter.ID, admin.ID, testTime.Add(48*time.Hour)))

	require.NoError(t, svc.SendNewsletter(ctx, newsletter.ID, admin.ID))
	assert.Len(t, mail.newsletters, 2)

	stored, err := repos.Outreach.GetNewsletter(ctx, newsletter.ID)
	require.NoError(t, err)
	assert.Equal(t, models.NewsletterSent, stored.Status)
	assert.Equal(t, 2, stored.RecipientCount)

	// Sent is terminal.
	assert.ErrorIs(t, svc.SendNewsletter(ctx, newsletter.ID, admin.ID), apperrors.ErrNewsletterSent)
	_, err = svc.UpdateNewsletter(ctx, newsletter.ID, admin.ID, &dto.NewsletterRequest{
		Title: "Edited", Body: "x", CategoryID: 1,
	})
	assert.ErrorIs(t, err, apperrors.ErrNewsletterSent)
	assert.ErrorIs(t, svc.ScheduleNewsletter(ctx, newsletter.ID, admin.ID, testTime), apperrors.ErrNewsletterNotDraft)
}

func TestNewsletterEngagementCounters(t *testing.T) {
	repos := newTestRepos(t)
	svc := newOutreachService(t, repos, &fakeEmailService{})
	ctx := context.Background()
	admin := createUser(t, repos, "admin", true)

	newsletter, err := svc.CreateNewsletter(ctx, admin.ID, &dto.NewsletterRequest{
		Title: "Spring Roundup", Body: "x", CategoryID: 1,
	})
	require.NoError(t, err)

	require.NoError(t, svc.RecordNewsletterOpen(ctx, newsletter.ID))
	require.NoError(t, svc.RecordNewsletterOpen(ctx, newsletter.ID))
	require.NoError(t, svc.RecordNewsletterClick(ctx, newsletter.ID))

	stored, err := repos.Outreach.GetNewsletter(ctx, newsletter.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.OpenCount)
	assert.Equal(t, 1, stored.ClickCount)
}

func TestGetNewslettersFiltersByStatus(t *testing.T) {
	repos := newTestRepos(t)
	svc := newOutreachService(t, repos, &fakeEmailService{})
	ctx := context.Background()
	admin := createUser(t, repos, "admin", true)

	draft, err := svc.CreateNewsletter(ctx, admin.ID, &dto.NewsletterRequest{Title: "Draft", Body: "x", CategoryID: 1})
	require.NoError(t, err)
	scheduled, err := svc.CreateNewsletter(ctx, admin.ID, &dto.NewsletterRequest{Title: "Scheduled", Body: "x", CategoryID: 1})
	require.NoError(t, err)
	require.NoError(t, svc.ScheduleNewsletter(ctx, scheduled.ID, admin.ID, testTime.Add(time.Hour)))

	status := models.NewsletterDraft
	drafts, err := svc.GetNewsletters(ctx, &status)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, draft.ID, drafts[0].ID)

	all, err := svc.GetNewsletters(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestProspectWorkflow(t *testing.T) {
	repos := newTestRepos(t)
	svc := newOutreachService(t, repos, &fakeEmailService{})
	ctx := context.Background()
	admin := createUser(t, repos, "admin", true)
	volunteer := createUser(t, repos, "volunteer", false)

	_, err := svc.AddProspect(ctx, volunteer.ID, &dto.ProspectRequest{Email: "mayor@city.example"})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	prospect, err := svc.AddProspect(ctx, admin.ID, &dto.ProspectRequest{
		Email:        "mayor@city.example",
		Organization: "City Parks",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ProspectNew, prospect.Status)

	require.NoError(t, svc.MarkProspectContacted(ctx, prospect.ID, admin.ID))
	stored, err := repos.Outreach.GetProspect(ctx, prospect.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProspectContacted, stored.Status)
	assert.NotNil(t, stored.LastContactedDate)

	assert.ErrorIs(t, svc.UpdateProspectStatus(ctx, prospect.ID, admin.ID, models.ProspectStatus("Zombie")), apperrors.ErrBadRequest)

	require.NoError(t, svc.UpdateProspectStatus(ctx, prospect.ID, admin.ID, models.ProspectClosed))
	closed := models.ProspectClosed
	prospects, err := svc.GetProspects(ctx, admin.ID, &closed)
	require.NoError(t, err)
	assert.Len(t, prospects, 1)
}
