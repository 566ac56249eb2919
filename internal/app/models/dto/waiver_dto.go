package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateWaiverRequest is the payload for defining a new waiver document.
type CreateWaiverRequest struct {
	Name            string `json:"name" binding:"required,max=128"`
	Description     string `json:"description" binding:"max=1024"`
	IsWaiverEnabled bool   `json:"isWaiverEnabled"`
}

// PublishVersionRequest is the payload for publishing a new waiver version.
// Publishing deactivates the previously active version.
type PublishVersionRequest struct {
	DocumentURL   string    `json:"documentUrl" binding:"required,max=1024"`
	EffectiveDate time.Time `json:"effectiveDate" binding:"required"`
}

// AcceptWaiverRequest is the payload recorded when a user signs a waiver.
type AcceptWaiverRequest struct {
	TypedLegalName string `json:"typedLegalName" binding:"required,max=128"`
	SigningMethod  string `json:"signingMethod" binding:"required,max=32"`
	IsMinor        bool   `json:"isMinor"`
	GuardianName   string `json:"guardianName" binding:"max=128"`
}

// CommunityWaiverRequest maps a waiver to a partner as a signing requirement.
type CommunityWaiverRequest struct {
	WaiverID uuid.UUID `json:"waiverId" binding:"required"`
}

// ComplianceResponse reports whether a user holds an unexpired acceptance of
// the currently active waiver version.
type ComplianceResponse struct {
	UserID          uuid.UUID  `json:"userId"`
	WaiverID        uuid.UUID  `json:"waiverId"`
	IsCompliant     bool       `json:"isCompliant"`
	AcceptedDate    *time.Time `json:"acceptedDate,omitempty"`
	ExpiryDate      *time.Time `json:"expiryDate,omitempty"`
	WaiverVersionID *uuid.UUID `json:"waiverVersionId,omitempty"`
}
