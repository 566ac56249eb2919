// Package services contains the business logic layer. Services validate
// input, enforce lifecycle rules, and coordinate repositories; transactional
// workflows run through the unit of work.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/trashmob-eco/trashmob-api/internal/app/auth"
	"github.com/trashmob-eco/trashmob-api/internal/app/models"
	"github.com/trashmob-eco/trashmob-api/internal/app/models/dto"
	"github.com/trashmob-eco/trashmob-api/internal/app/repositories"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/apperrors"
)

// EventService defines the interface for event lifecycle operations.
type EventService interface {
	CreateEvent(ctx context.Context, actorID uuid.UUID, req *dto.CreateEventRequest) (*models.Event, error)
	UpdateEvent(ctx context.Context, eventID, actorID uuid.UUID, req *dto.UpdateEventRequest) (*models.Event, error)
	CancelEvent(ctx context.Context, eventID, actorID uuid.UUID) error
	CompleteEvent(ctx context.Context, eventID, actorID uuid.UUID) error
	GetEvent(ctx context.Context, eventID uuid.UUID) (*models.Event, error)
	GetActiveEvents(ctx context.Context) ([]models.Event, error)
	GetUserEvents(ctx context.Context, userID uuid.UUID) ([]models.Event, error)
	GetEventHistory(ctx context.Context, eventID uuid.UUID) ([]models.EventHistory, error)
	RegisterAttendee(ctx context.Context, eventID, userID uuid.UUID) error
	CancelRegistration(ctx context.Context, eventID, userID uuid.UUID) error
	GetAttendees(ctx context.Context, eventID uuid.UUID) ([]models.EventAttendee, error)
	SubmitSummary(ctx context.Context, eventID, actorID uuid.UUID, req *dto.EventSummaryRequest) (*models.EventSummary, error)
	GetSummary(ctx context.Context, eventID uuid.UUID) (*models.EventSummary, error)
}

// eventServiceImpl implements EventService
type eventServiceImpl struct {
	eventRepo    *repositories.EventRepository
	uow          *repositories.UnitOfWork
	authzService *auth.AuthorizationService
	logger       zerolog.Logger
	now          func() time.Time
}

// NewEventService creates a new EventService.
func NewEventService(
	eventRepo *repositories.EventRepository,
	uow *repositories.UnitOfWork,
	authzService *auth.AuthorizationService,
	logger zerolog.Logger,
) EventService {
	return &eventServiceImpl{
		eventRepo:    eventRepo,
		uow:          uow,
		authzService: authzService,
		logger:       logger,
		now:          time.Now,
	}
}

// CreateEvent schedules a new event. The event row, its first history
// snapshot, and the creator's sign-up are written in one transaction so a
// partially created event can never be observed.
func (s *eventServiceImpl) CreateEvent(ctx context.Context, actorID uuid.UUID, req *dto.CreateEventRequest) (*models.Event, error) {
	now := s.now()

	event := &models.Event{
		Name:                    req.Name,
		Description:             req.Description,
		EventDate:               req.EventDate,
		DurationHours:           req.DurationHours,
		DurationMinutes:         req.DurationMinutes,
		EventTypeID:             req.EventTypeID,
		EventStatusID:           models.EventStatusActive,
		StreetAddress:           req.StreetAddress,
		City:                    req.City,
		Region:                  req.Region,
		Country:                 req.Country,
		PostalCode:              req.PostalCode,
		Latitude:                req.Latitude,
		Longitude:               req.Longitude,
		MaxNumberOfParticipants: req.MaxNumberOfParticipants,
		IsEventPublic:           req.IsEventPublic,
	}
	event.StampCreate(actorID, now)

	err := s.uow.Do(ctx, func(tx *gorm.DB) error {
		repo := s.eventRepo.WithTx(tx)

		if err := repo.Add(ctx, event); err != nil {
			return err
		}

		history := event.Snapshot(actorID, now)
		if err := repo.AddHistory(ctx, &history); err != nil {
			return err
		}

		attendee := &models.EventAttendee{
			EventID:    event.ID,
			UserID:     actorID,
			SignUpDate: now,
		}
		return repo.AddAttendee(ctx, attendee)
	})
	if err != nil {
		s.logger.Error().Err(err).Str("name", req.Name).Msg("Failed to create event")
		return nil, err
	}

	s.logger.Info().
		Str("eventId", event.ID.String()).
		Str("createdBy", actorID.String()).
		Time("eventDate", event.EventDate).
		Msg("Event created")
	return event, nil
}

// UpdateEvent applies a full-replace edit to an event and appends a history
// snapshot in the same transaction. Canceled and completed events are not
// editable.
func (s *eventServiceImpl) UpdateEvent(ctx context.Context, eventID, actorID uuid.UUID, req *dto.UpdateEventRequest) (*models.Event, error) {
	if err := s.authzService.RequireEventOwner(ctx, eventID, actorID); err != nil {
		return nil, err
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.EventStatusID == models.EventStatusCanceled || event.EventStatusID == models.EventStatusComplete {
		return nil, apperrors.ErrInvalidEventStatus
	}

	now := s.now()
	event.Name = req.Name
	event.Description = req.Description
	event.EventDate = req.EventDate
	event.DurationHours = req.DurationHours
	event.DurationMinutes = req.DurationMinutes
	event.EventTypeID = req.EventTypeID
	event.StreetAddress = req.StreetAddress
	event.City = req.City
	event.Region = req.Region
	event.Country = req.Country
	event.PostalCode = req.PostalCode
	event.Latitude = req.Latitude
	event.Longitude = req.Longitude
	event.MaxNumberOfParticipants = req.MaxNumberOfParticipants
	event.IsEventPublic = req.IsEventPublic
	event.StampUpdate(actorID, now)

	// Raising the cap reopens a full event; sign-ups may flip it back.
	if event.EventStatusID == models.EventStatusFull {
		count, err := s.eventRepo.CountActiveAttendees(ctx, eventID)
		if err != nil {
			return nil, err
		}
		if event.MaxNumberOfParticipants == 0 || count < int64(event.MaxNumberOfParticipants) {
			event.EventStatusID = models.EventStatusActive
		}
	}

	err = s.uow.Do(ctx, func(tx *gorm.DB) error {
		repo := s.eventRepo.WithTx(tx)
		if err := repo.Update(ctx, event); err != nil {
			return err
		}
		history := event.Snapshot(actorID, now)
		return repo.AddHistory(ctx, &history)
	})
	if err != nil {
		s.logger.Error().Err(err).Str("eventId", eventID.String()).Msg("Failed to update event")
		return nil, err
	}

	s.logger.Info().Str("eventId", eventID.String()).Str("updatedBy", actorID.String()).Msg("Event updated")
	return event, nil
}

// CancelEvent flips the event to Canceled. The row is kept; cancellation is
// a status change, not a delete.
func (s *eventServiceImpl) CancelEvent(ctx context.Context, eventID, actorID uuid.UUID) error {
	return s.transitionEvent(ctx, eventID, actorID, models.EventStatusCanceled)
}

// CompleteEvent flips the event to Complete, enabling summary submission.
func (s *eventServiceImpl) CompleteEvent(ctx context.Context, eventID, actorID uuid.UUID) error {
	return s.transitionEvent(ctx, eventID, actorID, models.EventStatusComplete)
}

func (s *eventServiceImpl) transitionEvent(ctx context.Context, eventID, actorID uuid.UUID, target models.EventStatus) error {
	if err := s.authzService.RequireEventOwner(ctx, eventID, actorID); err != nil {
		return err
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if !event.EventStatusID.CanTransitionTo(target) {
		return apperrors.ErrInvalidEventStatus
	}

	now := s.now()
	event.EventStatusID = target
	event.StampUpdate(actorID, now)

	err = s.uow.Do(ctx, func(tx *gorm.DB) error {
		repo := s.eventRepo.WithTx(tx)
		if err := repo.Update(ctx, event); err != nil {
			return err
		}
		history := event.Snapshot(actorID, now)
		return repo.AddHistory(ctx, &history)
	})
	if err != nil {
		s.logger.Error().Err(err).Str("eventId", eventID.String()).Stringer("target", target).Msg("Failed to transition event")
		return err
	}

	s.logger.Info().Str("eventId", eventID.String()).Stringer("status", target).Msg("Event status changed")
	return nil
}

// GetEvent fetches one event by ID.
func (s *eventServiceImpl) GetEvent(ctx context.Context, eventID uuid.UUID) (*models.Event, error) {
	return s.eventRepo.GetByID(ctx, eventID)
}

// GetActiveEvents lists events that are still upcoming, including those
// within the grace window after their nominal start.
func (s *eventServiceImpl) GetActiveEvents(ctx context.Context) ([]models.Event, error) {
	return s.eventRepo.GetActiveEvents(ctx, s.now())
}

// GetUserEvents lists events the user created or signed up for.
func (s *eventServiceImpl) GetUserEvents(ctx context.Context, userID uuid.UUID) ([]models.Event, error) {
	return s.eventRepo.GetUserEvents(ctx, userID)
}

// GetEventHistory returns the append-only snapshots of an event.
func (s *eventServiceImpl) GetEventHistory(ctx context.Context, eventID uuid.UUID) ([]models.EventHistory, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.eventRepo.GetHistory(ctx, eventID)
}

// RegisterAttendee signs a user up for an event. Reaching the participant
// cap flips the event to Full in the same transaction.
func (s *eventServiceImpl) RegisterAttendee(ctx context.Context, eventID, userID uuid.UUID) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event.EventStatusID == models.EventStatusCanceled || event.EventStatusID == models.EventStatusComplete {
		return apperrors.ErrEventCanceled
	}
	if event.EventStatusID == models.EventStatusFull {
		return apperrors.ErrEventFull
	}

	now := s.now()
	err = s.uow.Do(ctx, func(tx *gorm.DB) error {
		repo := s.eventRepo.WithTx(tx)

		// A previously canceled sign-up is revived instead of duplicated.
		existing, err := repo.GetAttendee(ctx, eventID, userID)
		switch {
		case err == nil:
			if existing.CanceledDate == nil {
				return apperrors.ErrAlreadyRegistered
			}
			existing.CanceledDate = nil
			existing.SignUpDate = now
			if err := repo.UpdateAttendee(ctx, existing); err != nil {
				return err
			}
		case errors.Is(err, apperrors.ErrAttendeeNotFound):
			attendee := &models.EventAttendee{
				EventID:    eventID,
				UserID:     userID,
				SignUpDate: now,
			}
			if err := repo.AddAttendee(ctx, attendee); err != nil {
				return err
			}
		default:
			return err
		}

		if event.MaxNumberOfParticipants > 0 {
			count, err := repo.CountActiveAttendees(ctx, eventID)
			if err != nil {
				return err
			}
			if count >= int64(event.MaxNumberOfParticipants) && event.EventStatusID.CanTransitionTo(models.EventStatusFull) {
				event.EventStatusID = models.EventStatusFull
				event.StampUpdate(userID, now)
				if err := repo.Update(ctx, event); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("eventId", eventID.String()).Str("userId", userID.String()).Msg("Attendee registered")
	return nil
}

// CancelRegistration marks a sign-up canceled. A full event reopens when a
// spot frees up.
func (s *eventServiceImpl) CancelRegistration(ctx context.Context, eventID, userID uuid.UUID) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}

	now := s.now()
	err = s.uow.Do(ctx, func(tx *gorm.DB) error {
		repo := s.eventRepo.WithTx(tx)

		attendee, err := repo.GetAttendee(ctx, eventID, userID)
		if err != nil {
			return err
		}
		if attendee.CanceledDate != nil {
			return apperrors.ErrAttendeeNotFound
		}
		attendee.CanceledDate = &now
		if err := repo.UpdateAttendee(ctx, attendee); err != nil {
			return err
		}

		if event.EventStatusID == models.EventStatusFull {
			event.EventStatusID = models.EventStatusActive
			event.StampUpdate(userID, now)
			return repo.Update(ctx, event)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("eventId", eventID.String()).Str("userId", userID.String()).Msg("Registration canceled")
	return nil
}

// GetAttendees returns the active sign-ups for an event.
func (s *eventServiceImpl) GetAttendees(ctx context.Context, eventID uuid.UUID) ([]models.EventAttendee, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.eventRepo.GetAttendees(ctx, eventID)
}

// SubmitSummary upserts the post-event outcome report. Only completed events
// accept a summary.
func (s *eventServiceImpl) SubmitSummary(ctx context.Context, eventID, actorID uuid.UUID, req *dto.EventSummaryRequest) (*models.EventSummary, error) {
	if err := s.authzService.RequireEventOwner(ctx, eventID, actorID); err != nil {
		return nil, err
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.EventStatusID != models.EventStatusComplete {
		return nil, apperrors.ErrInvalidEventStatus
	}

	now := s.now()
	summary := &models.EventSummary{
		EventID:                 eventID,
		ActualNumberOfAttendees: req.ActualNumberOfAttendees,
		NumberOfBags:            req.NumberOfBags,
		NumberOfBuckets:         req.NumberOfBuckets,
		DurationInMinutes:       req.DurationInMinutes,
		Notes:                   req.Notes,
		CreatedByUserID:         actorID,
		CreatedDate:             now,
		LastUpdatedByUserID:     actorID,
		LastUpdatedDate:         now,
	}
	if err := s.eventRepo.UpsertSummary(ctx, summary); err != nil {
		s.logger.Error().Err(err).Str("eventId", eventID.String()).Msg("Failed to upsert event summary")
		return nil, err
	}

	s.logger.Info().
		Str("eventId", eventID.String()).
		Int("bags", req.NumberOfBags).
		Int("attendees", req.ActualNumberOfAttendees).
		Msg("Event summary recorded")
	return summary, nil
}

// GetSummary fetches the post-event summary for an event.
func (s *eventServiceImpl) GetSummary(ctx context.Context, eventID uuid.UUID) (*models.EventSummary, error) {
	return s.eventRepo.GetSummary(ctx, eventID)
}
