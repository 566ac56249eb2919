package dto

import "github.com/google/uuid"

// CreateTeamRequest is the payload for forming a new team.
type CreateTeamRequest struct {
	Name        string  `json:"name" binding:"required,max=128"`
	Description string  `json:"description" binding:"max=2048"`
	IsPublic    bool    `json:"isPublic"`
	City        string  `json:"city" binding:"max=128"`
	Region      string  `json:"region" binding:"max=128"`
	Country     string  `json:"country" binding:"max=64"`
	PostalCode  string  `json:"postalCode" binding:"max=25"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// UpdateTeamRequest is the payload for editing a team.
type UpdateTeamRequest struct {
	Name        string  `json:"name" binding:"required,max=128"`
	Description string  `json:"description" binding:"max=2048"`
	IsPublic    bool    `json:"isPublic"`
	City        string  `json:"city" binding:"max=128"`
	Region      string  `json:"region" binding:"max=128"`
	Country     string  `json:"country" binding:"max=64"`
	PostalCode  string  `json:"postalCode" binding:"max=25"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// PublicTeamsFilter narrows a public-team listing to a radius around a point.
// All three fields must be supplied together for distance filtering to apply.
type PublicTeamsFilter struct {
	Latitude    *float64 `form:"latitude"`
	Longitude   *float64 `form:"longitude"`
	RadiusMiles *float64 `form:"radiusMiles"`
}

// JoinRequestCreate is the payload for applying to join a team.
type JoinRequestCreate struct {
	Message string `json:"message" binding:"max=1024"`
}

// AdoptionApplication is the payload for applying to adopt an area.
type AdoptionApplication struct {
	AdoptableAreaID uuid.UUID `json:"adoptableAreaId" binding:"required"`
	Notes           string    `json:"notes" binding:"max=1024"`
}

// DecisionRequest carries an optional reason for an approve/reject/revoke
// style resolution.
type DecisionRequest struct {
	Reason string `json:"reason" binding:"max=1024"`
}
