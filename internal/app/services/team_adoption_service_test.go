package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/trashmob-eco/trashmob-api/internal/app/models"
	"github.com/trashmob-eco/trashmob-api/internal/app/models/dto"
	"github.com/trashmob-eco/trashmob-api/internal/app/repositories"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/apperrors"
)

func newAdoptionService(t *testing.T, repos *repositories.Repositories) TeamAdoptionService {
	t.Helper()
	svc := NewTeamAdoptionService(repos.TeamAdoptions, repos.Areas, repos.Events, newTestAuthz(repos), testLogger())
	svc.(*teamAdoptionServiceImpl).now = fixedNow
	return svc
}

func createArea(t *testing.T, repos *repositories.Repositories, name string, active bool) *models.AdoptableArea {
	t.Helper()
	area := &models.AdoptableArea{
		Name:            name,
		Geometry:        datatypes.JSON(`{"type":"Polygon","coordinates":[]}`),
		CenterLatitude:  47.6,
		CenterLongitude: -122.3,
		City:            "Seattle",
		IsActive:        active,
	}
	area.StampCreate(uuid.New(), testTime)
	require.NoError(t, repos.Areas.Add(context.Background(), area))
	return area
}

func TestApplyForAdoption(t *testing.T) {
	repos := newTestRepos(t)
	svc := newAdoptionService(t, repos)
	ctx := context.Background()
	lead := createUser(t, repos, "lead", false)
	team := createTeamWithLead(t, repos, lead)
	area := createArea(t, repos, "Pine Street Median", true)

	adoption, err := svc.Apply(ctx, team.ID, lead.ID, &dto.AdoptionApplication{
		AdoptableAreaID: area.ID,
		Notes:           "Two blocks from our meetup spot",
	})
	require.NoError(t, err)
	assert.Equal(t, models.AdoptionPending, adoption.Status)
}

func TestApplyRefusedForInactiveArea(t *testing.T) {
	repos := newTestRepos(t)
	svc := newAdoptionService(t, repos)
	ctx := context.Background()
	lead := createUser(t, repos, "lead", false)
	team := createTeamWithLead(t, repos, lead)
	area := createArea(t, repos, "Retired Lot", false)

	_, err := svc.Apply(ctx, team.ID, lead.ID, &dto.AdoptionApplication{AdoptableAreaID: area.ID})
	assert.ErrorIs(t, err, apperrors.ErrAreaNotFound)
}

func TestApplyRefusedWhenAreaAlreadyClaimed(t *testing.T) {
	repos := newTestRepos(t)
	svc := newAdoptionService(t, repos)
	ctx := context.Background()
	lead := createUser(t, repos, "lead", false)
	team := createTeamWithLead(t, repos, lead)
	area := createArea(t, repos, "Pine Street Median", true)

	_, err := svc.Apply(ctx, team.ID, lead.ID, &dto.AdoptionApplication{AdoptableAreaID: area.ID})
	require.NoError(t, err)

	_, err = svc.Apply(ctx, team.ID, lead.ID, &dto.AdoptionApplication{AdoptableAreaID: area.ID})
	assert.ErrorIs(t, err, apperrors.ErrAreaAlreadyAdopted)
}

func TestAdoptionLifecycle(t *testing.T) {
	repos := newTestRepos(t)
	svc := newAdoptionService(t, repos)
	ctx := context.Background()
	admin := createUser(t, repos, "admin", true)
	lead := createUser(t, repos, "lead", false)
	team := createTeamWithLead(t, repos, lead)
	area := createArea(t, repos, "Pine Street Median", true)

	adoption, err := svc.Apply(ctx, team.ID, lead.ID, &dto.AdoptionApplication{AdoptableAreaID: area.ID})
	require.NoError(t, err)

	// Only a site admin may decide.
	assert.ErrorIs(t, svc.Approve(ctx, adoption.ID, lead.ID), apperrors.ErrPermissionDenied)

	require.NoError(t, svc.Approve(ctx, adoption.ID, admin.ID))
	stored, err := svc.GetAdoption(ctx, adoption.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AdoptionApproved, stored.Status)
	require.NotNil(t, stored.ApprovedByUserID)
	assert.Equal(t, admin.ID, *stored.ApprovedByUserID)

	// Approved cannot be rejected, only revoked.
	assert.ErrorIs(t, svc.Reject(ctx, adoption.ID, admin.ID, ""), apperrors.ErrInvalidAdoptionTransition)

	require.NoError(t, svc.Revoke(ctx, adoption.ID, admin.ID, "area redeveloped"))
	stored, err = svc.GetAdoption(ctx, adoption.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AdoptionRevoked, stored.Status)
	assert.Equal(t, "area redeveloped", stored.Notes)
	assert.NotNil(t, stored.RevokedDate)
}

func TestRevokedAdoptionFreesArea(t *testing.T) {
	repos := newTestRepos(t)
	svc := newAdoptionService(t, repos)
	ctx := context.Background()
	admin := createUser(t, repos, "admin", true)
	lead := createUser(t, repos, "lead", false)
	team := createTeamWithLead(t, repos, lead)
	area := createArea(t, repos, "Pine Street Median", true)

	adoption, err := svc.Apply(ctx, team.ID, lead.ID, &dto.AdoptionApplication{AdoptableAreaID: area.ID})
	require.NoError(t, err)
	require.NoError(t, svc.Approve(ctx, adoption.ID, admin.ID))
	require.NoError(t, svc.Revoke(ctx, adoption.ID, admin.ID, ""))

	_, err = svc.Apply(ctx, team.ID, lead.ID, &dto.AdoptionApplication{AdoptableAreaID: area.ID})
	assert.NoError(t, err)
}

func TestRecordCleanupEventRequiresApprovedAdoption(t *testing.T) {
	repos := newTestRepos(t)
	svc := newAdoptionService(t, repos)
	ctx := context.Background()
	admin := createUser(t, repos, "admin", true)
	lead := createUser(t, repos, "lead", false)
	team := createTeamWithLead(t, repos, lead)
	area := createArea(t, repos, "Pine Street Median", true)

	event, err := newEventService(t, repos).CreateEvent(ctx, lead.ID, createEventRequest("Median sweep"))
	require.NoError(t, err)

	adoption, err := svc.Apply(ctx, team.ID, lead.ID, &dto.AdoptionApplication{AdoptableAreaID: area.ID})
	require.NoError(t, err)

	err = svc.RecordCleanupEvent(ctx, adoption.ID, event.ID, lead.ID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidAdoptionTransition)

	require.NoError(t, svc.Approve(ctx, adoption.ID, admin.ID))
	require.NoError(t, svc.RecordCleanupEvent(ctx, adoption.ID, event.ID, lead.ID))

	linked, err := svc.GetCleanupEvents(ctx, adoption.ID)
	require.NoError(t, err)
	require.Len(t, linked, 1)
	assert.Equal(t, event.ID, linked[0].EventID)
}

func TestGetPendingAdoptionsIsAdminOnly(t *testing.T) {
	repos := newTestRepos(t)
	svc := newAdoptionService(t, repos)
	ctx := context.Background()
	admin := createUser(t, repos, "admin", true)
	lead := createUser(t, repos, "lead", false)
	team := createTeamWithLead(t, repos, lead)
	area := createArea(t, repos, "Pine Street Median", true)

	_, err := svc.Apply(ctx, team.ID, lead.ID, &dto.AdoptionApplication{AdoptableAreaID: area.ID})
	require.NoError(t, err)

	_, err = svc.GetPendingAdoptions(ctx, lead.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	pending, err := svc.GetPendingAdoptions(ctx, admin.ID)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}
