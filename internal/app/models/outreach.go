package models

import (
	"time"

	"github.com/google/uuid"
)

// EmailInviteBatch groups a set of invites sent together, with rollup
// counters updated as individual invites settle.
type EmailInviteBatch struct {
	BaseModel
	CustomMessage string `gorm:"size:2048" json:"customMessage"`
	InviteCount   int    `json:"inviteCount"`
	SentCount     int    `json:"sentCount"`
	AcceptedCount int    `json:"acceptedCount"`
	BouncedCount  int    `json:"bouncedCount"`
}

// EmailInvite is one recipient of an invite batch.
type EmailInvite struct {
	KeyedModel
	BatchID      uuid.UUID    `gorm:"type:uuid;index" json:"batchId"`
	Email        string       `gorm:"size:256;index" json:"email"`
	Status       InviteStatus `gorm:"size:16" json:"status"`
	SentDate     *time.Time   `json:"sentDate,omitempty"`
	AcceptedDate *time.Time   `json:"acceptedDate,omitempty"`
	BouncedDate  *time.Time   `json:"bouncedDate,omitempty"`
	CreatedDate  time.Time    `json:"createdDate"`
}

// Newsletter is an outreach mailing with engagement counters.
type Newsletter struct {
	BaseModel
	Title          string           `gorm:"size:256" json:"title"`
	Body           string           `json:"body"`
	CategoryID     int              `json:"categoryId"`
	Status         NewsletterStatus `gorm:"size:16;index" json:"status"`
	ScheduledDate  *time.Time       `json:"scheduledDate,omitempty"`
	SentDate       *time.Time       `json:"sentDate,omitempty"`
	RecipientCount int              `json:"recipientCount"`
	OpenCount      int              `json:"openCount"`
	ClickCount     int              `json:"clickCount"`
}

// ProspectOutreachEmail tracks outreach to a prospective partner contact.
type ProspectOutreachEmail struct {
	BaseModel
	Email             string         `gorm:"size:256;index" json:"email"`
	Name              string         `gorm:"size:128" json:"name"`
	Organization      string         `gorm:"size:128" json:"organization"`
	Status            ProspectStatus `gorm:"size:16" json:"status"`
	LastContactedDate *time.Time     `json:"lastContactedDate,omitempty"`
	Notes             string         `gorm:"size:2048" json:"notes"`
}
