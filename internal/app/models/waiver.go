package models

import (
	"time"

	"github.com/google/uuid"
)

// Waiver is a named legal document with versioned revisions.
type Waiver struct {
	BaseModel
	Name            string `gorm:"size:128;uniqueIndex" json:"name"`
	Description     string `gorm:"size:1024" json:"description"`
	IsWaiverEnabled bool   `json:"isWaiverEnabled"`
}

// WaiverVersion is one revision of a waiver document. Only one version per
// waiver may be active at a time; publishing a new version deactivates the
// prior one inside the same transaction.
type WaiverVersion struct {
	BaseModel
	WaiverID      uuid.UUID  `gorm:"type:uuid;index" json:"waiverId"`
	VersionNumber int        `json:"versionNumber"`
	DocumentURL   string     `gorm:"size:1024" json:"documentUrl"`
	EffectiveDate time.Time  `json:"effectiveDate"`
	ExpiryDate    *time.Time `json:"expiryDate,omitempty"`
	IsActive      bool       `gorm:"index" json:"isActive"`
}

// UserWaiver is an immutable audit record of a user accepting one waiver
// version: the typed legal name, signing method, client fingerprint, and
// minor/guardian fields are captured as entered and never updated.
type UserWaiver struct {
	KeyedModel
	UserID          uuid.UUID `gorm:"type:uuid;index" json:"userId"`
	WaiverVersionID uuid.UUID `gorm:"type:uuid;index" json:"waiverVersionId"`
	TypedLegalName  string    `gorm:"size:128" json:"typedLegalName"`
	SigningMethod   string    `gorm:"size:32" json:"signingMethod"`
	IPAddress       string    `gorm:"size:64" json:"ipAddress"`
	UserAgent       string    `gorm:"size:512" json:"userAgent"`
	IsMinor         bool      `json:"isMinor"`
	GuardianName    string    `gorm:"size:128" json:"guardianName"`
	PdfURL          string    `gorm:"size:1024" json:"pdfUrl"`
	AcceptedDate    time.Time `json:"acceptedDate"`
	ExpiryDate      time.Time `json:"expiryDate"`
}

// IsExpired reports whether the acceptance has lapsed at the given instant.
func (w *UserWaiver) IsExpired(now time.Time) bool {
	return now.After(w.ExpiryDate)
}

// CommunityWaiver maps a partner to a waiver it requires in place of, or in
// addition to, the global one.
type CommunityWaiver struct {
	PartnerID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"partnerId"`
	WaiverID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"waiverId"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid" json:"createdByUserId"`
	CreatedDate     time.Time `json:"createdDate"`
}
