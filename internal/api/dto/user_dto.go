package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// RegisterRequest payload.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Language string `json:"language"`
}

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse carries the issued token and profile.
type SessionResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Profile   ProfileResponse `json:"profile"`
}

// ProfileResponse is the public view of a profile.
type ProfileResponse struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Email            string      `json:"email"`
	Role             domain.Role `json:"role"`
	Language         string      `json:"language"`
	CategoryInterest *string     `json:"category_interest,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
}

// UpdateProfileRequest payload.
type UpdateProfileRequest struct {
	Name             *string `json:"name"`
	Language         *string `json:"language"`
	CategoryInterest *string `json:"category_interest"`
}
