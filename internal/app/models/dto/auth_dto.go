package dto

import (
	"time"

	"github.com/google/uuid"
)

// RegisterRequest is the payload for creating a new user account.
type RegisterRequest struct {
	UserName   string  `json:"userName" binding:"required,min=3,max=64"`
	Email      string  `json:"email" binding:"required,email"`
	Password   string  `json:"password" binding:"required,min=8"`
	GivenName  string  `json:"givenName" binding:"max=64"`
	SurName    string  `json:"surName" binding:"max=64"`
	City       string  `json:"city" binding:"max=128"`
	Region     string  `json:"region" binding:"max=128"`
	Country    string  `json:"country" binding:"max=64"`
	PostalCode string  `json:"postalCode" binding:"max=25"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

// LoginRequest is the payload for password authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest carries a refresh token to exchange for a new pair.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse carries an issued token pair.
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
}

// UpdateProfileRequest is the payload for editing the caller's profile.
type UpdateProfileRequest struct {
	GivenName                 string  `json:"givenName" binding:"max=64"`
	SurName                   string  `json:"surName" binding:"max=64"`
	City                      string  `json:"city" binding:"max=128"`
	Region                    string  `json:"region" binding:"max=128"`
	Country                   string  `json:"country" binding:"max=64"`
	PostalCode                string  `json:"postalCode" binding:"max=25"`
	Latitude                  float64 `json:"latitude"`
	Longitude                 float64 `json:"longitude"`
	TravelLimitForLocalEvents int     `json:"travelLimitForLocalEvents" binding:"min=0"`
	PrefersMetric             bool    `json:"prefersMetric"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	UserName    string    `json:"userName"`
	GivenName   string    `json:"givenName"`
	SurName     string    `json:"surName"`
	City        string    `json:"city"`
	Region      string    `json:"region"`
	MemberSince time.Time `json:"memberSince"`
}
