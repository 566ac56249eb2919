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

func newEventService(t *testing.T, repos *repositories.Repositories) EventService {
	t.Helper()
	svc := NewEventService(repos.Events, repos.UnitOfWork, newTestAuthz(repos), testLogger())
	svc.(*eventServiceImpl).now = fixedNow
	return svc
}

func createEventRequest(name string) *dto.CreateEventRequest {
	return &dto.CreateEventRequest{
		Name:          name,
		Description:   "Monthly shoreline cleanup",
		EventDate:     testTime.Add(72 * time.Hour),
		DurationHours: 2,
		EventTypeID:   1,
		City:          "Seattle",
		Region:        "WA",
		Country:       "USA",
		Latitude:      47.6,
		Longitude:     -122.3,
		IsEventPublic: true,
	}
}

func TestCreateEventWritesHistoryAndSignsUpCreator(t *testing.T) {
	repos := newTestRepos(t)
	svc := newEventService(t, repos)
	ctx := context.Background()
	creator := createUser(t, repos, "organizer", false)

	event, err := svc.CreateEvent(ctx, creator.ID, createEventRequest("Alki Beach Cleanup"))
	require.NoError(t, err)
	assert.Equal(t, models.EventStatusActive, event.EventStatusID)
	assert.Equal(t, creator.ID, event.CreatedByUserID)

	history, err := svc.GetEventHistory(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, event.ID, history[0].EventID)
	assert.Equal(t, "Alki Beach Cleanup", history[0].Name)

	attendees, err := svc.GetAttendees(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, attendees, 1)
	assert.Equal(t, creator.ID, attendees[0].UserID)
}

func TestUpdateEventAppendsHistorySnapshot(t *testing.T) {
	repos := newTestRepos(t)
	svc := newEventService(t, repos)
	ctx := context.Background()
	creator := createUser(t, repos, "organizer", false)

	event, err := svc.CreateEvent(ctx, creator.ID, createEventRequest("Alki Beach Cleanup"))
	require.NoError(t, err)

	updated, err := svc.UpdateEvent(ctx, event.ID, creator.ID, &dto.UpdateEventRequest{
		Name:        "Alki Beach Cleanup (rescheduled)",
		EventDate:   testTime.Add(96 * time.Hour),
		EventTypeID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "Alki Beach Cleanup (rescheduled)", updated.Name)

	history, err := svc.GetEventHistory(ctx, event.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestUpdateEventRefusesTerminalStates(t *testing.T) {
	repos := newTestRepos(t)
	svc := newEventService(t, repos)
	ctx := context.Background()
	creator := createUser(t, repos, "organizer", false)

	event, err := svc.CreateEvent(ctx, creator.ID, createEventRequest("Alki Beach Cleanup"))
	require.NoError(t, err)
	require.NoError(t, svc.CancelEvent(ctx, event.ID, creator.ID))

	_, err = svc.UpdateEvent(ctx, event.ID, creator.ID, &dto.UpdateEventRequest{
		Name:        "New name",
		EventDate:   testTime.Add(96 * time.Hour),
		EventTypeID: 1,
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidEventStatus)
}

func TestUpdateEventRequiresOwnership(t *testing.T) {
	repos := newTestRepos(t)
	svc := newEventService(t, repos)
	ctx := context.Background()
	creator := createUser(t, repos, "organizer", false)
	stranger := createUser(t, repos, "stranger", false)

	event, err := svc.CreateEvent(ctx, creator.ID, createEventRequest("Alki Beach Cleanup"))
	require.NoError(t, err)

	_, err = svc.UpdateEvent(ctx, event.ID, stranger.ID, &dto.UpdateEventRequest{
		Name:        "Hijacked",
		EventDate:   testTime.Add(96 * time.Hour),
		EventTypeID: 1,
	})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestCancelEventIsTerminal(t *testing.T) {
	repos := newTestRepos(t)
	svc := newEventService(t, repos)
	ctx := context.Background()
	creator := createUser(t, repos, "organizer", false)

	event, err := svc.CreateEvent(ctx, creator.ID, createEventRequest("Alki Beach Cleanup"))
	require.NoError(t, err)
	require.NoError(t, svc.CancelEvent(ctx, event.ID, creator.ID))

	stored, err := svc.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EventStatusCanceled, stored.EventStatusID)

	// A canceled event cannot be completed or re-canceled.
	assert.ErrorIs(t, svc.CompleteEvent(ctx, event.ID, creator.ID), apperrors.ErrInvalidEventStatus)
	assert.ErrorIs(t, svc.CancelEvent(ctx, event.ID, creator.ID), apperrors.ErrInvalidEventStatus)
}

func TestRegisterAttendeeFlipsEventToFullAtCap(t *testing.T) {
	repos := newTestRepos(t)
	svc := newEventService(t, repos)
	ctx := context.Background()
	creator := createUser(t, repos, "organizer", false)
	second := createUser(t, repos, "volunteer", false)
	third := createUser(t, repos, "latecomer", false)

	req := createEventRequest("Alki Beach Cleanup")
	req.MaxNumberOfParticipants = 2
	event, err := svc.CreateEvent(ctx, creator.ID, req)
	require.NoError(t, err)

	require.NoError(t, svc.RegisterAttendee(ctx, event.ID, second.ID))

	stored, err := svc.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EventStatusFull, stored.EventStatusID)

	assert.ErrorIs(t, svc.RegisterAttendee(ctx, event.ID, third.ID), apperrors.ErrEventFull)
}

func TestRegisterAttendeeRejectsDuplicateSignUp(t *testing.T) {
	repos := newTestRepos(t)
	svc := newEventService(t, repos)
	ctx := context.Background()
	creator := createUser(t, repos, "organizer", false)
	volunteer := createUser(t, repos, "volunteer", false)

	event, err := svc.CreateEvent(ctx, creator.ID, createEventRequest("Alki Beach Cleanup"))
	require.NoError(t, err)

	require.NoError(t, svc.RegisterAttendee(ctx, event.ID, volunteer.ID))
	assert.ErrorIs(t, svc.RegisterAttendee(ctx, event.ID, volunteer.ID), apperrors.ErrAlreadyRegistered)
}

func TestRegisterAttendeeRevivesCanceledSignUp(t *testing.T) {
	repos := newTestRepos(t)
	svc := newEventService(t, repos)
	ctx := context.Background()
	creator := createUser(t, repos, "organizer", false)
	volunteer := createUser(t, repos, "volunteer", false)

	event, err := svc.CreateEvent(ctx, creator.ID, createEventRequest("Alki Beach Cleanup"))
	require.NoError(t, err)

	require.NoError(t, svc.RegisterAttendee(ctx, event.ID, volunteer.ID))
	require.NoError(t, svc.CancelRegistration(ctx, event.ID, volunteer.ID))
	require.NoError(t, svc.RegisterAttendee(ctx, event.ID, volunteer.ID))

	attendee, err := repos.Events.GetAttendee(ctx, event.ID, volunteer.ID)
	require.NoError(t, err)
	assert.Nil(t, attendee.CanceledDate)
}

func TestCancelRegistrationReopensFullEvent(t *testing.T) {
	repos := newTestRepos(t)
	svc := newEventService(t, repos)
	ctx := context.Background()
	creator := createUser(t, repos, "organizer", false)
	volunteer := createUser(t, repos, "volunteer", false)

	req := createEventRequest("Alki Beach Cleanup")
	req.MaxNumberOfParticipants = 2
	event, err := svc.CreateEvent(ctx, creator.ID, req)
	require.NoError(t, err)
	require.NoError(t, svc.RegisterAttendee(ctx, event.ID, volunteer.ID))

	stored, err := svc.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	require.Equal(t, models.EventStatusFull, stored.EventStatusID)

	require.NoError(t, svc.CancelRegistration(ctx, event.ID, volunteer.ID))

	stored, err = svc.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EventStatusActive, stored.EventStatusID)
}

func TestCancelRegistrationTwiceFails(t *testing.T) {
	repos := newTestRepos(t)
	svc := newEventService(t, repos)
	ctx := context.Background()
	creator := createUser(t, repos, "organizer", false)
	volunteer := createUser(t, repos, "volunteer", false)

	event, err := svc.CreateEvent(ctx, creator.ID, createEventRequest("Alki Beach Cleanup"))
	require.NoError(t, err)
	require.NoError(t, svc.RegisterAttendee(ctx, event.ID, volunteer.ID))
	require.NoError(t, svc.CancelRegistration(ctx, event.ID, volunteer.ID))

	assert.ErrorIs(t, svc.CancelRegistration(ctx, event.ID, volunteer.ID), apperrors.ErrAttendeeNotFound)
}

func TestRaisingCapReopensFullEvent(t *testing.T) {
	repos := newTestRepos(t)
	svc := newEventService(t, repos)
	ctx := context.Background()
	creator := createUser(t, repos, "organizer", false)
	volunteer := createUser(t, repos, "volunteer", false)

	req := createEventRequest("Alki Beach Cleanup")
	req.MaxNumberOfParticipants = 2
	event, err := svc.CreateEvent(ctx, creator.ID, req)
	require.NoError(t, err)
	require.NoError(t, svc.RegisterAttendee(ctx, event.ID, volunteer.ID))

	update := &dto.UpdateEventRequest{
		Name:                    req.Name,
		EventDate:               req.EventDate,
		EventTypeID:             req.EventTypeID,
		MaxNumberOfParticipants: 5,
	}
	updated, err := svc.UpdateEvent(ctx, event.ID, creator.ID, update)
	require.NoError(t, err)
	assert.Equal(t, models.EventStatusActive, updated.EventStatusID)
}

func TestSubmitSummaryOnlyAfterCompletion(t *testing.T) {
	repos := newTestRepos(t)
	svc := newEventService(t, repos)
	ctx := context.Background()
	creator := createUser(t, repos, "organizer", false)

	event, err := svc.CreateEvent(ctx, creator.ID, createEventRequest("Alki Beach Cleanup"))
	require.NoError(t, err)

	summaryReq := &dto.EventSummaryRequest{
		ActualNumberOfAttendees: 12,
		NumberOfBags:            8,
		DurationInMinutes:       120,
		Notes:                   "Mostly glass and cans",
	}

	_, err = svc.SubmitSummary(ctx, event.ID, creator.ID, summaryReq)
	assert.ErrorIs(t, err, apperrors.ErrInvalidEventStatus)

	require.NoError(t, svc.CompleteEvent(ctx, event.ID, creator.ID))

	summary, err := svc.SubmitSummary(ctx, event.ID, creator.ID, summaryReq)
	require.NoError(t, err)
	assert.Equal(t, 8, summary.NumberOfBags)

	stored, err := svc.GetSummary(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, stored.ActualNumberOfAttendees)
}

func TestGetActiveEventsExcludesPastAndCanceled(t *testing.T) {
	repos := newTestRepos(t)
	svc := newEventService(t, repos)
	ctx := context.Background()
	creator := createUser(t, repos, "organizer", false)

	upcoming, err := svc.CreateEvent(ctx, creator.ID, createEventRequest("Upcoming"))
	require.NoError(t, err)

	pastReq := createEventRequest("Long gone")
	pastReq.EventDate = testTime.Add(-30 * 24 * time.Hour)
	_, err = svc.CreateEvent(ctx, creator.ID, pastReq)
	require.NoError(t, err)

	canceled, err := svc.CreateEvent(ctx, creator.ID, createEventRequest("Canceled"))
	require.NoError(t, err)
	require.NoError(t, svc.CancelEvent(ctx, canceled.ID, creator.ID))

	active, err := svc.GetActiveEvents(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, upcoming.ID, active[0].ID)
}
