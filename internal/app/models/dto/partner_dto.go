package dto

import "github.com/google/uuid"

// CreatePartnerRequest is the payload for registering a partner organization.
type CreatePartnerRequest struct {
	Name          string `json:"name" binding:"required,max=128"`
	PublicNotes   string `json:"publicNotes" binding:"max=2048"`
	PrivateNotes  string `json:"privateNotes" binding:"max=2048"`
	Website       string `json:"website" binding:"max=1024"`
	Email         string `json:"email" binding:"omitempty,email"`
	Phone         string `json:"phone" binding:"max=32"`
	PartnerTypeID int    `json:"partnerTypeId" binding:"required"`
}

// UpdatePartnerRequest is the payload for editing a partner organization.
type UpdatePartnerRequest struct {
	Name         string `json:"name" binding:"required,max=128"`
	PublicNotes  string `json:"publicNotes" binding:"max=2048"`
	PrivateNotes string `json:"privateNotes" binding:"max=2048"`
	Website      string `json:"website" binding:"max=1024"`
	Email        string `json:"email" binding:"omitempty,email"`
	Phone        string `json:"phone" binding:"max=32"`
}

// PartnerLocationRequest is the payload for creating or editing a location.
type PartnerLocationRequest struct {
	Name          string  `json:"name" binding:"required,max=128"`
	StreetAddress string  `json:"streetAddress" binding:"max=256"`
	City          string  `json:"city" binding:"max=128"`
	Region        string  `json:"region" binding:"max=128"`
	Country       string  `json:"country" binding:"max=64"`
	PostalCode    string  `json:"postalCode" binding:"max=25"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	IsActive      bool    `json:"isActive"`
	Notes         string  `json:"notes" binding:"max=1024"`
}

// ServiceOfferingRequest declares one service type offered at a location.
type ServiceOfferingRequest struct {
	ServiceTypeID  int    `json:"serviceTypeId" binding:"required"`
	Notes          string `json:"notes" binding:"max=1024"`
	IsAutoApproved bool   `json:"isAutoApproved"`
}

// ServiceRequestCreate is an event's request for a service at a location.
type ServiceRequestCreate struct {
	PartnerLocationID uuid.UUID `json:"partnerLocationId" binding:"required"`
	ServiceTypeID     int       `json:"serviceTypeId" binding:"required"`
}
