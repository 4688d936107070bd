package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/staffing-service/internal/auth"
	"github.com/spec-kit/staffing-service/internal/config"
	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/internal/repository"
	apperrors "github.com/spec-kit/staffing-service/pkg/util/errorutil"
)

// Follow-up actions a login can require before full access is granted.
const (
	ActionResetPassword   = "reset_password"
	ActionCompleteProfile = "complete_profile"
)

// LoginResult is what a successful credential check yields.
type LoginResult struct {
	User           *domain.User
	Token          string
	ExpiresAt      time.Time
	RequiredAction string
}

// AuthService coordinates login and credential flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		bcryptCost: cfg.BcryptCost,
	}
}

// Login authenticates by email and password and reports the follow-up
// action: a temporary credential demands a reset before anything else, then
// an incomplete profile demands completion.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, apperrors.MapError(err)
	}
	if user.Status == domain.UserStatusInactive {
		return nil, apperrors.NewUnauthorized("account inactive")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	result := &LoginResult{User: user, Token: token, ExpiresAt: exp}
	switch {
	case user.TempPassword:
		result.RequiredAction = ActionResetPassword
	case !user.ProfileComplete:
		result.RequiredAction = ActionCompleteProfile
	}
	return result, nil
}

// ResetPassword replaces a temporary credential with a caller-chosen one.
func (s *AuthService) ResetPassword(ctx context.Context, userID, newPassword string) error {
	if len(newPassword) < 8 {
		return apperrors.NewValidationError("password must be at least 8 characters", nil)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.MapError(err)
	}
	user.PasswordHash = hash
	user.TempPassword = false

	if err := s.users.Update(ctx, user); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// ProfileInput holds the contractor-completed profile fields.
type ProfileInput struct {
	Address           string
	DateOfBirth       *time.Time
	Phone             string
	ShirtSize         string
	Allergies         []string
	FirstAidCertified bool
}

// CompleteProfile fills in the profile and activates the account.
func (s *AuthService) CompleteProfile(ctx context.Context, userID string, input ProfileInput) (*domain.User, error) {
	if input.Address == "" || input.Phone == "" {
		return nil, apperrors.NewValidationError("address and phone required", nil)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return nil, apperrors.MapError(err)
	}

	user.Address = input.Address
	user.DateOfBirth = input.DateOfBirth
	user.Phone = input.Phone
	user.ShirtSize = input.ShirtSize
	user.Allergies = input.Allergies
	user.FirstAidCertified = input.FirstAidCertified
	user.ProfileComplete = true
	if user.Status == domain.UserStatusPending {
		user.Status = domain.UserStatusActive
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
