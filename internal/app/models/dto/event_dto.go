package dto

import "time"

// CreateEventRequest is the payload for scheduling a new event.
type CreateEventRequest struct {
	Name                    string    `json:"name" binding:"required,max=128"`
	Description             string    `json:"description" binding:"max=2048"`
	EventDate               time.Time `json:"eventDate" binding:"required"`
	DurationHours           int       `json:"durationHours" binding:"min=0,max=24"`
	DurationMinutes         int       `json:"durationMinutes" binding:"min=0,max=59"`
	EventTypeID             int       `json:"eventTypeId" binding:"required"`
	StreetAddress           string    `json:"streetAddress" binding:"max=256"`
	City                    string    `json:"city" binding:"max=128"`
	Region                  string    `json:"region" binding:"max=128"`
	Country                 string    `json:"country" binding:"max=64"`
	PostalCode              string    `json:"postalCode" binding:"max=25"`
	Latitude                float64   `json:"latitude"`
	Longitude               float64   `json:"longitude"`
	MaxNumberOfParticipants int       `json:"maxNumberOfParticipants" binding:"min=0"`
	IsEventPublic           bool      `json:"isEventPublic"`
}

// UpdateEventRequest is the payload for editing an event. Updates use full
// replace semantics; every field is written back.
type UpdateEventRequest struct {
	Name                    string    `json:"name" binding:"required,max=128"`
	Description             string    `json:"description" binding:"max=2048"`
	EventDate               time.Time `json:"eventDate" binding:"required"`
	DurationHours           int       `json:"durationHours" binding:"min=0,max=24"`
	DurationMinutes         int       `json:"durationMinutes" binding:"min=0,max=59"`
	EventTypeID             int       `json:"eventTypeId" binding:"required"`
	StreetAddress           string    `json:"streetAddress" binding:"max=256"`
	City                    string    `json:"city" binding:"max=128"`
	Region                  string    `json:"region" binding:"max=128"`
	Country                 string    `json:"country" binding:"max=64"`
	PostalCode              string    `json:"postalCode" binding:"max=25"`
	Latitude                float64   `json:"latitude"`
	Longitude               float64   `json:"longitude"`
	MaxNumberOfParticipants int       `json:"maxNumberOfParticipants" binding:"min=0"`
	IsEventPublic           bool      `json:"isEventPublic"`
}

// EventSummaryRequest is the payload for filing a post-event report.
type EventSummaryRequest struct {
	ActualNumberOfAttendees int    `json:"actualNumberOfAttendees" binding:"min=0"`
	NumberOfBags            int    `json:"numberOfBags" binding:"min=0"`
	NumberOfBuckets         int    `json:"numberOfBuckets" binding:"min=0"`
	DurationInMinutes       int    `json:"durationInMinutes" binding:"min=0"`
	Notes                   string `json:"notes" binding:"max=2048"`
}
