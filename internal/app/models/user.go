package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered volunteer or administrator.
type User struct {
	KeyedModel
	UserName                  string     `gorm:"size:64;uniqueIndex" json:"userName"`
	Email                     string     `gorm:"size:256;uniqueIndex" json:"email"`
	PasswordHash              string     `gorm:"size:256" json:"-"`
	GivenName                 string     `gorm:"size:64" json:"givenName"`
	SurName                   string     `gorm:"size:64" json:"surName"`
	City                      string     `gorm:"size:128" json:"city"`
	Region                    string     `gorm:"size:128" json:"region"`
	Country                   string     `gorm:"size:64" json:"country"`
	PostalCode                string     `gorm:"size:25" json:"postalCode"`
	Latitude                  float64    `json:"latitude"`
	Longitude                 float64    `json:"longitude"`
	TravelLimitForLocalEvents int        `json:"travelLimitForLocalEvents"`
	PrefersMetric             bool       `json:"prefersMetric"`
	IsSiteAdmin               bool       `json:"isSiteAdmin"`
	MemberSince               time.Time  `json:"memberSince"`
	DateAgreedToPrivacyPolicy *time.Time `json:"dateAgreedToPrivacyPolicy,omitempty"`
	DateAgreedToTermsOfUse    *time.Time `json:"dateAgreedToTermsOfUse,omitempty"`
}

// UserNotificationPreference records a per-user opt-out for one notification type.
type UserNotificationPreference struct {
	KeyedModel
	UserID             uuid.UUID `gorm:"type:uuid;index" json:"userId"`
	NotificationTypeID int       `json:"notificationTypeId"`
	IsOptedOut         bool      `json:"isOptedOut"`
	LastUpdatedDate    time.Time `json:"lastUpdatedDate"`
}
