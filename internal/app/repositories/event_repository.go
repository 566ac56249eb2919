package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/trashmob-eco/trashmob-api/internal/app/models"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/apperrors"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/dberrors"
)

// EventRepository handles database operations for events, their attendees,
// history snapshots, and summaries.
type EventRepository struct {
	*KeyedRepository[models.Event]
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{NewKeyedRepository[models.Event](db)}
}

// WithTx returns a repository bound to the given transaction handle.
func (r *EventRepository) WithTx(tx *gorm.DB) *EventRepository {
	return &EventRepository{r.KeyedRepository.WithTx(tx)}
}

// GetByID fetches one event, mapping absence to the typed event error.
func (r *EventRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	event, err := r.KeyedRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

// GetActiveEvents returns events that are Active or Full and have not yet
// passed the standard grace window after their nominal start.
func (r *EventRepository) GetActiveEvents(ctx context.Context, now time.Time) ([]models.Event, error) {
	cutoff := now.Add(-time.Duration(models.StandardEventWindowInMinutes) * time.Minute)

	var events []models.Event
	err := r.db.WithContext(ctx).
		Where("event_status_id IN ?", []models.EventStatus{models.EventStatusActive, models.EventStatusFull}).
		Where("event_date >= ?", cutoff).
		Order("event_date").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// GetUserEvents returns events a user created or signed up for, newest first.
func (r *EventRepository) GetUserEvents(ctx context.Context, userID uuid.UUID) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).
		Where("created_by_user_id = ?", userID).
		Or("id IN (?)", r.db.Model(&models.EventAttendee{}).
			Select("event_id").
			Where("user_id = ? AND canceled_date IS NULL", userID)).
		Order("event_date DESC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// AddHistory appends a history snapshot row.
func (r *EventRepository) AddHistory(ctx context.Context, history *models.EventHistory) error {
	return r.db.WithContext(ctx).Create(history).Error
}

// GetHistory returns the append-only history trail for an event, oldest first.
func (r *EventRepository) GetHistory(ctx context.Context, eventID uuid.UUID) ([]models.EventHistory, error) {
	var history []models.EventHistory
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_date").
		Find(&history).Error
	if err != nil {
		return nil, err
	}
	return history, nil
}

// AddAttendee inserts a sign-up row. A duplicate sign-up surfaces as a typed
// already-registered error.
func (r *EventRepository) AddAttendee(ctx context.Context, attendee *models.EventAttendee) error {
	if err := r.db.WithContext(ctx).Create(attendee).Error; err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAlreadyRegistered
		}
		return err
	}
	return nil
}

// GetAttendee fetches one sign-up row by its composite key.
func (r *EventRepository) GetAttendee(ctx context.Context, eventID, userID uuid.UUID) (*models.EventAttendee, error) {
	var attendee models.EventAttendee
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&attendee).Error
	if err != nil {
		if dberrors.IsNotFound(err) {
			return nil, apperrors.ErrAttendeeNotFound
		}
		return nil, err
	}
	return &attendee, nil
}

// UpdateAttendee persists a sign-up row.
func (r *EventRepository) UpdateAttendee(ctx context.Context, attendee *models.EventAttendee) error {
	return r.db.WithContext(ctx).Save(attendee).Error
}

// GetAttendees returns the non-canceled sign-ups for an event.
func (r *EventRepository) GetAttendees(ctx context.Context, eventID uuid.UUID) ([]models.EventAttendee, error) {
	var attendees []models.EventAttendee
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND canceled_date IS NULL", eventID).
		Order("sign_up_date").
		Find(&attendees).Error
	if err != nil {
		return nil, err
	}
	return attendees, nil
}

// CountActiveAttendees counts the non-canceled sign-ups for an event.
func (r *EventRepository) CountActiveAttendees(ctx context.Context, eventID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.EventAttendee{}).
		Where("event_id = ? AND canceled_date IS NULL", eventID).
		Count(&count).Error
	return count, err
}

// GetSummary fetches the post-event summary for an event.
func (r *EventRepository) GetSummary(ctx context.Context, eventID uuid.UUID) (*models.EventSummary, error) {
	var summary models.EventSummary
	err := r.db.WithContext(ctx).Where("event_id = ?", eventID).First(&summary).Error
	if err != nil {
		if dberrors.IsNotFound(err) {
			return nil, apperrors.ErrEventSummaryMissing
		}
		return nil, err
	}
	return &summary, nil
}

// UpsertSummary inserts the summary or replaces it when one already exists.
func (r *EventRepository) UpsertSummary(ctx context.Context, summary *models.EventSummary) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}},
			UpdateAll: true,
		}).
		Create(summary).Error
}
