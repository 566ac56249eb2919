package models

import (
	"time"

	"github.com/google/uuid"
)

// Team is a social grouping of volunteers that can adopt areas and run
// recurring cleanups.
type Team struct {
	BaseModel
	Name        string  `gorm:"size:128;index" json:"name"`
	Description string  `gorm:"size:2048" json:"description"`
	IsPublic    bool    `json:"isPublic"`
	City        string  `gorm:"size:128" json:"city"`
	Region      string  `gorm:"size:128" json:"region"`
	Country     string  `gorm:"size:64" json:"country"`
	PostalCode  string  `gorm:"size:25" json:"postalCode"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// TeamMember is the membership join row. A team must retain at least one
// member with IsLead set.
type TeamMember struct {
	TeamID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"teamId"`
	UserID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"userId"`
	IsLead              bool      `json:"isLead"`
	JoinedDate          time.Time `json:"joinedDate"`
	CreatedByUserID     uuid.UUID `gorm:"type:uuid" json:"createdByUserId"`
	CreatedDate         time.Time `json:"createdDate"`
	LastUpdatedByUserID uuid.UUID `gorm:"type:uuid" json:"lastUpdatedByUserId"`
	LastUpdatedDate     time.Time `json:"lastUpdatedDate"`
}

// TeamJoinRequest is a user's application to join a team, resolved by a lead.
type TeamJoinRequest struct {
	BaseModel
	TeamID           uuid.UUID         `gorm:"type:uuid;index" json:"teamId"`
	UserID           uuid.UUID         `gorm:"type:uuid;index" json:"userId"`
	Status           JoinRequestStatus `gorm:"size:16" json:"status"`
	Message          string            `gorm:"size:1024" json:"message"`
	ResolvedByUserID *uuid.UUID        `gorm:"type:uuid" json:"resolvedByUserId,omitempty"`
	ResolvedDate     *time.Time        `json:"resolvedDate,omitempty"`
}

// TeamAdoption is a team's application to maintain an adoptable area,
// moving Pending -> Approved|Rejected, or Revoked after approval.
type TeamAdoption struct {
	BaseModel
	TeamID           uuid.UUID      `gorm:"type:uuid;index" json:"teamId"`
	AdoptableAreaID  uuid.UUID      `gorm:"type:uuid;index" json:"adoptableAreaId"`
	Status           AdoptionStatus `gorm:"size:16" json:"status"`
	Notes            string         `gorm:"size:1024" json:"notes"`
	ApprovedByUserID *uuid.UUID     `gorm:"type:uuid" json:"approvedByUserId,omitempty"`
	ApprovedDate     *time.Time     `json:"approvedDate,omitempty"`
	RevokedDate      *time.Time     `json:"revokedDate,omitempty"`
}

// TeamAdoptionEvent links a cleanup event held under an active adoption.
type TeamAdoptionEvent struct {
	TeamAdoptionID uuid.UUID `gorm:"type:uuid;primaryKey" json:"teamAdoptionId"`
	EventID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"eventId"`
	CreatedDate    time.Time `json:"createdDate"`
}
