package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trashmob-eco/trashmob-api/internal/app/models"
	"github.com/trashmob-eco/trashmob-api/internal/app/models/dto"
	"github.com/trashmob-eco/trashmob-api/internal/app/repositories"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/apperrors"
)

func newPartnerService(t *testing.T, repos *repositories.Repositories) PartnerService {
	t.Helper()
	svc := NewPartnerService(repos.Partners, repos.Events, repos.Users, newTestAuthz(repos), testLogger())
	svc.(*partnerServiceImpl).now = fixedNow
	return svc
}

func createPartner(t *testing.T, svc PartnerService, siteAdminID uuid.UUID) *models.Partner {
	t.Helper()
	partner, err := svc.CreatePartner(context.Background(), siteAdminID, &dto.CreatePartnerRequest{
		Name:          "Green City Supply",
		PublicNotes:   "Provides bags and grabbers",
		PartnerTypeID: 1,
	})
	require.NoError(t, err)
	return partner
}

func addLocation(t *testing.T, svc PartnerService, partnerID, actorID uuid.UUID) *models.PartnerLocation {
	t.Helper()
	location, err := svc.AddLocation(context.Background(), partnerID, actorID, &dto.PartnerLocationRequest{
		Name:      "Downtown Depot",
		City:      "Seattle",
		Region:    "WA",
		Country:   "US",
		Latitude:  47.6,
		Longitude: -122.33,
		IsActive:  true,
	})
	require.NoError(t, err)
	return location
}

func TestCreatePartnerIsSiteAdminOnlyAndGrantsCreatorAdmin(t *testing.T) {
	repos := newTestRepos(t)
	svc := newPartnerService(t, repos)
	ctx := context.Background()

	volunteer := createUser(t, repos, "casey", false)
	_, err := svc.CreatePartner(ctx, volunteer.ID, &dto.CreatePartnerRequest{Name: "Nope", PartnerTypeID: 1})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	siteAdmin := createUser(t, repos, "admin", true)
	partner := createPartner(t, svc, siteAdmin.ID)
	assert.Equal(t, models.PartnerStatusActive, partner.PartnerStatusID)

	isAdmin, err := repos.Partners.IsAdmin(ctx, partner.ID, siteAdmin.ID)
	require.NoError(t, err)
	assert.True(t, isAdmin)
}

func TestDeactivatePartnerHidesItFromActiveListing(t *testing.T) {
	repos := newTestRepos(t)
	svc := newPartnerService(t, repos)
	ctx := context.Background()

	siteAdmin := createUser(t, repos, "admin", true)
	partner := createPartner(t, svc, siteAdmin.ID)

	volunteer := createUser(t, repos, "casey", false)
	assert.ErrorIs(t, svc.DeactivatePartner(ctx, partner.ID, volunteer.ID), apperrors.ErrPermissionDenied)

	require.NoError(t, svc.DeactivatePartner(ctx, partner.ID, siteAdmin.ID))

	active, err := svc.GetActivePartners(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	got, err := svc.GetPartner(ctx, partner.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PartnerStatusInactive, got.PartnerStatusID)
}

func TestPartnerAdminManagesLocationsAndOfferings(t *testing.T) {
	repos := newTestRepos(t)
	svc := newPartnerService(t, repos)
	ctx := context.Background()

	siteAdmin := createUser(t, repos, "admin", true)
	orgAdmin := createUser(t, repos, "quinn", false)
	stranger := createUser(t, repos, "casey", false)

	partner := createPartner(t, svc, siteAdmin.ID)
	require.NoError(t, svc.AddAdmin(ctx, partner.ID, orgAdmin.ID, siteAdmin.ID))

	_, err := svc.AddLocation(ctx, partner.ID, stranger.ID, &dto.PartnerLocationRequest{Name: "Nope"})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	location := addLocation(t, svc, partner.ID, orgAdmin.ID)

	require.NoError(t, svc.AddLocationService(ctx, location.ID, orgAdmin.ID, &dto.ServiceOfferingRequest{
		ServiceTypeID: 1,
		Notes:         "Weekend pickup only",
	}))
	offerings, err := svc.GetLocationServices(ctx, location.ID)
	require.NoError(t, err)
	require.Len(t, offerings, 1)

	require.NoError(t, svc.RemoveLocationService(ctx, location.ID, orgAdmin.ID, 1))
	offerings, err = svc.GetLocationServices(ctx, location.ID)
	require.NoError(t, err)
	assert.Empty(t, offerings)
}

func TestRequestServiceHonorsAutoApproval(t *testing.T) {
	repos := newTestRepos(t)
	svc := newPartnerService(t, repos)
	events := newEventService(t, repos)
	ctx := context.Background()

	siteAdmin := createUser(t, repos, "admin", true)
	organizer := createUser(t, repos, "jordan", false)

	partner := createPartner(t, svc, siteAdmin.ID)
	location := addLocation(t, svc, partner.ID, siteAdmin.ID)
	require.NoError(t, svc.AddLocationService(ctx, location.ID, siteAdmin.ID, &dto.ServiceOfferingRequest{
		ServiceTypeID:  1,
		IsAutoApproved: true,
	}))
	require.NoError(t, svc.AddLocationService(ctx, location.ID, siteAdmin.ID, &dto.ServiceOfferingRequest{
		ServiceTypeID: 2,
	}))

	event, err := events.CreateEvent(ctx, organizer.ID, createEventRequest("Alki Beach Cleanup"))
	require.NoError(t, err)

	auto, err := svc.RequestService(ctx, event.ID, organizer.ID, &dto.ServiceRequestCreate{
		PartnerLocationID: location.ID,
		ServiceTypeID:     1,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ServiceRequestAccepted, auto.Status)
	require.NotNil(t, auto.ResolvedDate)
	assert.Equal(t, testTime, auto.ResolvedDate.UTC())

	manual, err := svc.RequestService(ctx, event.ID, organizer.ID, &dto.ServiceRequestCreate{
		PartnerLocationID: location.ID,
		ServiceTypeID:     2,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ServiceRequestRequested, manual.Status)
	assert.Nil(t, manual.ResolvedDate)
}

func TestServiceRequestResolvesOnce(t *testing.T) {
	repos := newTestRepos(t)
	svc := newPartnerService(t, repos)
	events := newEventService(t, repos)
	ctx := context.Background()

	siteAdmin := createUser(t, repos, "admin", true)
	organizer := createUser(t, repos, "jordan", false)
	stranger := createUser(t, repos, "casey", false)

	partner := createPartner(t, svc, siteAdmin.ID)
	location := addLocation(t, svc, partner.ID, siteAdmin.ID)
	require.NoError(t, svc.AddLocationService(ctx, location.ID, siteAdmin.ID, &dto.ServiceOfferingRequest{ServiceTypeID: 1}))

	event, err := events.CreateEvent(ctx, organizer.ID, createEventRequest("Alki Beach Cleanup"))
	require.NoError(t, err)
	_, err = svc.RequestService(ctx, event.ID, organizer.ID, &dto.ServiceRequestCreate{
		PartnerLocationID: location.ID,
		ServiceTypeID:     1,
	})
	require.NoError(t, err)

	err = svc.ResolveServiceRequest(ctx, event.ID, location.ID, 1, stranger.ID, true)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	require.NoError(t, svc.ResolveServiceRequest(ctx, event.ID, location.ID, 1, siteAdmin.ID, false))

	err = svc.ResolveServiceRequest(ctx, event.ID, location.ID, 1, siteAdmin.ID, true)
	assert.ErrorIs(t, err, apperrors.ErrServiceRequestResolved)

	requests, err := svc.GetEventServiceRequests(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, models.ServiceRequestDeclined, requests[0].Status)
}

func TestDuplicateServiceRequestRefused(t *testing.T) {
	repos := newTestRepos(t)
	svc := newPartnerService(t, repos)
	events := newEventService(t, repos)
	ctx := context.Background()

	siteAdmin := createUser(t, repos, "admin", true)
	organizer := createUser(t, repos, "jordan", false)

	partner := createPartner(t, svc, siteAdmin.ID)
	location := addLocation(t, svc, partner.ID, siteAdmin.ID)
	require.NoError(t, svc.AddLocationService(ctx, location.ID, siteAdmin.ID, &dto.ServiceOfferingRequest{ServiceTypeID: 1}))

	event, err := events.CreateEvent(ctx, organizer.ID, createEventRequest("Alki Beach Cleanup"))
	require.NoError(t, err)

	req := &dto.ServiceRequestCreate{PartnerLocationID: location.ID, ServiceTypeID: 1}
	_, err = svc.RequestService(ctx, event.ID, organizer.ID, req)
	require.NoError(t, err)

	_, err = svc.RequestService(ctx, event.ID, organizer.ID, req)
	assert.ErrorIs(t, err, apperrors.ErrServiceAlreadyRequested)
}
