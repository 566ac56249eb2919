package models

import (
	"time"

	"github.com/google/uuid"
)

// PhotoType discriminates the three photo tables in flags and moderation logs.
type PhotoType string

const (
	PhotoTypeEvent   PhotoType = "Event"
	PhotoTypeTeam    PhotoType = "Team"
	PhotoTypePartner PhotoType = "Partner"
)

// ModerationAction is the verb recorded in the moderation log.
type ModerationAction string

const (
	ModerationActionFlagged  ModerationAction = "Flagged"
	ModerationActionApproved ModerationAction = "Approved"
	ModerationActionRejected ModerationAction = "Rejected"
	ModerationActionDeleted  ModerationAction = "Deleted"
)

// PhotoDetails carries the moderation surface shared by all photo types.
// InReview is orthogonal to ModerationStatus: any user flagging a photo sets
// it without altering the moderation decision.
type PhotoDetails struct {
	ImageURL         string           `gorm:"size:1024" json:"imageUrl"`
	Caption          string           `gorm:"size:512" json:"caption"`
	ModerationStatus ModerationStatus `gorm:"size:16;index" json:"moderationStatus"`
	InReview         bool             `json:"inReview"`
}

// ModeratedPhoto is implemented by every photo entity so the moderation
// workflow can be written once.
type ModeratedPhoto interface {
	PhotoID() uuid.UUID
	PhotoType() PhotoType
	Details() *PhotoDetails
}

// EventPhoto is a photo attached to an event.
type EventPhoto struct {
	BaseModel
	EventID uuid.UUID `gorm:"type:uuid;index" json:"eventId"`
	PhotoDetails
}

// PhotoID returns the photo's entity ID.
func (p *EventPhoto) PhotoID() uuid.UUID { return p.ID }

// PhotoType returns the discriminator for event photos.
func (p *EventPhoto) PhotoType() PhotoType { return PhotoTypeEvent }

// Details returns the shared moderation surface.
func (p *EventPhoto) Details() *PhotoDetails { return &p.PhotoDetails }

// TeamPhoto is a photo attached to a team.
type TeamPhoto struct {
	BaseModel
	TeamID uuid.UUID `gorm:"type:uuid;index" json:"teamId"`
	PhotoDetails
}

// PhotoID returns the photo's entity ID.
func (p *TeamPhoto) PhotoID() uuid.UUID { return p.ID }

// PhotoType returns the discriminator for team photos.
func (p *TeamPhoto) PhotoType() PhotoType { return PhotoTypeTeam }

// Details returns the shared moderation surface.
func (p *TeamPhoto) Details() *PhotoDetails { return &p.PhotoDetails }

// PartnerPhoto is a photo attached to a partner.
type PartnerPhoto struct {
	BaseModel
	PartnerID uuid.UUID `gorm:"type:uuid;index" json:"partnerId"`
	PhotoDetails
}

// PhotoID returns the photo's entity ID.
func (p *PartnerPhoto) PhotoID() uuid.UUID { return p.ID }

// PhotoType returns the discriminator for partner photos.
func (p *PartnerPhoto) PhotoType() PhotoType { return PhotoTypePartner }

// Details returns the shared moderation surface.
func (p *PartnerPhoto) Details() *PhotoDetails { return &p.PhotoDetails }

// PhotoFlag is an append-only record of a user flagging a photo for review.
type PhotoFlag struct {
	KeyedModel
	PhotoID         uuid.UUID `gorm:"type:uuid;index" json:"photoId"`
	PhotoType       PhotoType `gorm:"size:16" json:"photoType"`
	FlaggedByUserID uuid.UUID `gorm:"type:uuid" json:"flaggedByUserId"`
	Reason          string    `gorm:"size:512" json:"reason"`
	CreatedDate     time.Time `json:"createdDate"`
}

// PhotoModerationLog is the append-only audit trail of moderation actions.
type PhotoModerationLog struct {
	KeyedModel
	PhotoID     uuid.UUID        `gorm:"type:uuid;index" json:"photoId"`
	PhotoType   PhotoType        `gorm:"size:16" json:"photoType"`
	Action      ModerationAction `gorm:"size:16" json:"action"`
	Reason      string           `gorm:"size:512" json:"reason"`
	ActorUserID uuid.UUID        `gorm:"type:uuid" json:"actorUserId"`
	CreatedDate time.Time        `json:"createdDate"`
}
