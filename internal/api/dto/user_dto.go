package dto

import (
	"time"

	"github.com/spec-kit/staffing-service/internal/domain"
)

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the signed token, role and any required follow-up.
type LoginResponse struct {
	Token          string      `json:"token"`
	ExpiresAt      time.Time   `json:"expiresAt"`
	Role           domain.Role `json:"role"`
	RequiredAction string      `json:"requiredAction,omitempty"`
}

// ResetPasswordRequest payload.
type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword"`
}

// CompleteProfileRequest payload.
type CompleteProfileRequest struct {
	Address           string   `json:"address"`
	DateOfBirth       *string  `json:"dateOfBirth"`
	Phone             string   `json:"phone"`
	ShirtSize         string   `json:"shirtSize"`
	Allergies         []string `json:"allergies"`
	FirstAidCertified bool     `json:"firstAidCertified"`
}

// CreateUserRequest is the admin account-creation payload.
type CreateUserRequest struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	HourlyRate float64 `json:"hourlyRate"`
}

// UpdateProfileRequest payload; nil fields are unchanged.
type UpdateProfileRequest struct {
	Name              *string            `json:"name"`
	HourlyRate        *float64           `json:"hourlyRate"`
	Status            *domain.UserStatus `json:"status"`
	Address           *string            `json:"address"`
	DateOfBirth       *string            `json:"dateOfBirth"`
	Phone             *string            `json:"phone"`
	ShirtSize         *string            `json:"shirtSize"`
	Allergies         []string           `json:"allergies"`
	FirstAidCertified *bool              `json:"firstAidCertified"`
}

// UserResponse is the public account representation; the credential hash
// never leaves the service.
type UserResponse struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	Email             string            `json:"email"`
	Role              domain.Role       `json:"role"`
	HourlyRate        float64           `json:"hourlyRate"`
	Status            domain.UserStatus `json:"status"`
	Address           string            `json:"address,omitempty"`
	DateOfBirth       *time.Time        `json:"dateOfBirth,omitempty"`
	Phone             string            `json:"phone,omitempty"`
	ShirtSize         string            `json:"shirtSize,omitempty"`
	Allergies         []string          `json:"allergies,omitempty"`
	FirstAidCertified bool              `json:"firstAidCertified"`
	ProfileComplete   bool              `json:"profileComplete"`
	CreatedAt         time.Time         `json:"createdAt"`
}
