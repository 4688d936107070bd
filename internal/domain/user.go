package domain

import "time"

// Role enumerates account roles.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleContractor Role = "CONTRACTOR"
)

// UserStatus represents lifecycle states for an account.
type UserStatus string

const (
	UserStatusPending  UserStatus = "PENDING"
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusInactive UserStatus = "INACTIVE"
)

// User is the domain model for admins and contractors.
type User struct {
	ID                string
	Name              string
	Email             string
	PasswordHash      string
	Role              Role
	HourlyRate        float64
	Status            UserStatus
	Address           string
	DateOfBirth       *time.Time
	Phone             string
	ShirtSize         string
	Allergies         []string
	FirstAidCertified bool
	TempPassword      bool
	ProfileComplete   bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
