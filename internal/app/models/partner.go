package models

import (
	"time"

	"github.com/google/uuid"
)

// Partner is a community organization (government or business) offering
// cleanup-support services.
type Partner struct {
	BaseModel
	Name            string        `gorm:"size:128;index" json:"name"`
	PublicNotes     string        `gorm:"size:2048" json:"publicNotes"`
	PrivateNotes    string        `gorm:"size:2048" json:"-"`
	Website         string        `gorm:"size:1024" json:"website"`
	Email           string        `gorm:"size:256" json:"email"`
	Phone           string        `gorm:"size:32" json:"phone"`
	PartnerStatusID PartnerStatus `json:"partnerStatusId"`
	PartnerTypeID   int           `json:"partnerTypeId"`
}

// PartnerLocation is a physical site where a partner offers services.
type PartnerLocation struct {
	BaseModel
	PartnerID     uuid.UUID `gorm:"type:uuid;index" json:"partnerId"`
	Name          string    `gorm:"size:128" json:"name"`
	StreetAddress string    `gorm:"size:256" json:"streetAddress"`
	City          string    `gorm:"size:128" json:"city"`
	Region        string    `gorm:"size:128" json:"region"`
	Country       string    `gorm:"size:64" json:"country"`
	PostalCode    string    `gorm:"size:25" json:"postalCode"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	IsActive      bool      `json:"isActive"`
	Notes         string    `gorm:"size:1024" json:"notes"`
}

// PartnerLocationService declares one service type offered at a location.
type PartnerLocationService struct {
	PartnerLocationID uuid.UUID `gorm:"type:uuid;primaryKey" json:"partnerLocationId"`
	ServiceTypeID     int       `gorm:"primaryKey" json:"serviceTypeId"`
	Notes             string    `gorm:"size:1024" json:"notes"`
	IsAutoApproved    bool      `json:"isAutoApproved"`
	CreatedByUserID   uuid.UUID `gorm:"type:uuid" json:"createdByUserId"`
	CreatedDate       time.Time `json:"createdDate"`
}

// PartnerAdmin grants a user administrative rights over a partner.
type PartnerAdmin struct {
	PartnerID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"partnerId"`
	UserID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"userId"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid" json:"createdByUserId"`
	CreatedDate     time.Time `json:"createdDate"`
}

// EventPartnerLocationService is an event's request for one service from a
// partner location, resolved by a partner admin.
type EventPartnerLocationService struct {
	EventID           uuid.UUID            `gorm:"type:uuid;primaryKey" json:"eventId"`
	PartnerLocationID uuid.UUID            `gorm:"type:uuid;primaryKey" json:"partnerLocationId"`
	ServiceTypeID     int                  `gorm:"primaryKey" json:"serviceTypeId"`
	Status            ServiceRequestStatus `gorm:"size:16" json:"status"`
	ResolvedByUserID  *uuid.UUID           `gorm:"type:uuid" json:"resolvedByUserId,omitempty"`
	ResolvedDate      *time.Time           `json:"resolvedDate,omitempty"`
	CreatedByUserID   uuid.UUID            `gorm:"type:uuid" json:"createdByUserId"`
	CreatedDate       time.Time            `json:"createdDate"`
}
