package models

import (
	"time"

	"github.com/google/uuid"
)

// StandardEventWindowInMinutes is the grace window after an event's nominal
// start during which it still counts as active.
const StandardEventWindowInMinutes = 120

// Event represents a scheduled cleanup event.
type Event struct {
	BaseModel
	Name                    string      `gorm:"size:128;index" json:"name"`
	Description             string      `gorm:"size:2048" json:"description"`
	EventDate               time.Time   `gorm:"index" json:"eventDate"`
	DurationHours           int         `json:"durationHours"`
	DurationMinutes         int         `json:"durationMinutes"`
	EventTypeID             int         `json:"eventTypeId"`
	EventStatusID           EventStatus `gorm:"index" json:"eventStatusId"`
	StreetAddress           string      `gorm:"size:256" json:"streetAddress"`
	City                    string      `gorm:"size:128" json:"city"`
	Region                  string      `gorm:"size:128" json:"region"`
	Country                 string      `gorm:"size:64" json:"country"`
	PostalCode              string      `gorm:"size:25" json:"postalCode"`
	Latitude                float64     `json:"latitude"`
	Longitude               float64     `json:"longitude"`
	MaxNumberOfParticipants int         `json:"maxNumberOfParticipants"`
	IsEventPublic           bool        `json:"isEventPublic"`
}

// EventAttendee is the sign-up join row between an event and a user.
type EventAttendee struct {
	EventID      uuid.UUID  `gorm:"type:uuid;primaryKey" json:"eventId"`
	UserID       uuid.UUID  `gorm:"type:uuid;primaryKey" json:"userId"`
	SignUpDate   time.Time  `json:"signUpDate"`
	CanceledDate *time.Time `json:"canceledDate,omitempty"`
}

// EventHistory is an append-only snapshot of an event row, written on every
// create and update.
type EventHistory struct {
	KeyedModel
	EventID                 uuid.UUID   `gorm:"type:uuid;index" json:"eventId"`
	Name                    string      `gorm:"size:128" json:"name"`
	Description             string      `gorm:"size:2048" json:"description"`
	EventDate               time.Time   `json:"eventDate"`
	DurationHours           int         `json:"durationHours"`
	DurationMinutes         int         `json:"durationMinutes"`
	EventTypeID             int         `json:"eventTypeId"`
	EventStatusID           EventStatus `json:"eventStatusId"`
	StreetAddress           string      `gorm:"size:256" json:"streetAddress"`
	City                    string      `gorm:"size:128" json:"city"`
	Region                  string      `gorm:"size:128" json:"region"`
	Country                 string      `gorm:"size:64" json:"country"`
	PostalCode              string      `gorm:"size:25" json:"postalCode"`
	Latitude                float64     `json:"latitude"`
	Longitude               float64     `json:"longitude"`
	MaxNumberOfParticipants int         `json:"maxNumberOfParticipants"`
	IsEventPublic           bool        `json:"isEventPublic"`
	CreatedByUserID         uuid.UUID   `gorm:"type:uuid" json:"createdByUserId"`
	CreatedDate             time.Time   `json:"createdDate"`
}

// Snapshot copies the current state of an event into a history row.
func (e *Event) Snapshot(actorID uuid.UUID, now time.Time) EventHistory {
	return EventHistory{
		EventID:                 e.ID,
		Name:                    e.Name,
		Description:             e.Description,
		EventDate:               e.EventDate,
		DurationHours:           e.DurationHours,
		DurationMinutes:         e.DurationMinutes,
		EventTypeID:             e.EventTypeID,
		EventStatusID:           e.EventStatusID,
		StreetAddress:           e.StreetAddress,
		City:                    e.City,
		Region:                  e.Region,
		Country:                 e.Country,
		PostalCode:              e.PostalCode,
		Latitude:                e.Latitude,
		Longitude:               e.Longitude,
		MaxNumberOfParticipants: e.MaxNumberOfParticipants,
		IsEventPublic:           e.IsEventPublic,
		CreatedByUserID:         actorID,
		CreatedDate:             now,
	}
}

// EventSummary is the post-event outcome report filed by the event lead.
type EventSummary struct {
	EventID                   uuid.UUID `gorm:"type:uuid;primaryKey" json:"eventId"`
	ActualNumberOfAttendees   int       `json:"actualNumberOfAttendees"`
	NumberOfBags              int       `json:"numberOfBags"`
	NumberOfBuckets           int       `json:"numberOfBuckets"`
	DurationInMinutes         int       `json:"durationInMinutes"`
	Notes                     string    `gorm:"size:2048" json:"notes"`
	CreatedByUserID           uuid.UUID `gorm:"type:uuid" json:"createdByUserId"`
	CreatedDate               time.Time `json:"createdDate"`
	LastUpdatedByUserID       uuid.UUID `gorm:"type:uuid" json:"lastUpdatedByUserId"`
	LastUpdatedDate           time.Time `json:"lastUpdatedDate"`
}
