package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// KeyedModel is the base for mutable entities identified by a server-assigned
// UUID. The ID is assigned once at creation and never reassigned.
type KeyedModel struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
}

// BeforeCreate assigns the entity ID when it has not been set by the caller.
func (m *KeyedModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// BaseModel adds the audit quad carried by nearly every mutable entity.
// Audit fields are stamped on every write, not just creation.
type BaseModel struct {
	KeyedModel
	CreatedByUserID     uuid.UUID `gorm:"type:uuid" json:"createdByUserId"`
	CreatedDate         time.Time `json:"createdDate"`
	LastUpdatedByUserID uuid.UUID `gorm:"type:uuid" json:"lastUpdatedByUserId"`
	LastUpdatedDate     time.Time `json:"lastUpdatedDate"`
}

// StampCreate sets the full audit quad for a newly created entity.
func (b *BaseModel) StampCreate(userID uuid.UUID, now time.Time) {
	b.CreatedByUserID = userID
	b.CreatedDate = now
	b.LastUpdatedByUserID = userID
	b.LastUpdatedDate = now
}

// StampUpdate refreshes the last-updated half of the audit quad.
func (b *BaseModel) StampUpdate(userID uuid.UUID, now time.Time) {
	b.LastUpdatedByUserID = userID
	b.LastUpdatedDate = now
}

// LookupModel is the base for small integer-keyed reference tables. Lookup
// rows are seeded at startup and are never deleted through the API.
type LookupModel struct {
	ID           int    `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"size:64" json:"name"`
	Description  string `gorm:"size:256" json:"description"`
	DisplayOrder int    `json:"displayOrder"`
	IsActive     bool   `json:"isActive"`
}
