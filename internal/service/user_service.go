package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/staffing-service/internal/auth"
	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/internal/notify"
	"github.com/spec-kit/staffing-service/internal/repository"
	apperrors "github.com/spec-kit/staffing-service/pkg/util/errorutil"
)

// UserService owns the contractor roster: admin-initiated account creation
// with temporary credentials, profile updates and deletes.
type UserService struct {
	users      repository.UserRepository
	names      NameResolver
	dispatcher notify.Dispatcher
	logger     *zap.Logger
	bcryptCost int
	baseURL    string
}

// UserDependencies bundles collaborators.
type UserDependencies struct {
	UserRepo   repository.UserRepository
	Names      NameResolver
	Dispatcher notify.Dispatcher
	Logger     *zap.Logger
	BcryptCost int
	BaseURL    string
}

// NewUserService creates the service.
func NewUserService(deps UserDependencies) *UserService {
	return &UserService{
		users:      deps.UserRepo,
		names:      deps.Names,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		bcryptCost: deps.BcryptCost,
		baseURL:    deps.BaseURL,
	}
}

// CreateContractor provisions an account with a generated temporary
// password and mails the invite. The caller never sees the password.
func (s *UserService) CreateContractor(ctx context.Context, name, email string, hourlyRate float64) (*domain.User, error) {
	if name == "" || email == "" {
		return nil, apperrors.NewValidationError("name and email required", nil)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	tempPassword := uuid.NewString()
	hash, err := auth.HashPassword(tempPassword, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleContractor,
		HourlyRate:   hourlyRate,
		Status:       domain.UserStatusPending,
		TempPassword: true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, notify.Event{
			ID:        uuid.NewString(),
			Type:      notify.EventUserInvited,
			Timestamp: time.Now(),
			Payload: notify.UserInvitedPayload{
				Recipient:    notify.Recipient{UserID: user.ID, Name: user.Name, Email: user.Email},
				TempPassword: tempPassword,
				LoginLink:    fmt.Sprintf("%s/login", s.baseURL),
			},
		})
	}
	return user, nil
}

// ListContractors returns all contractor accounts.
func (s *UserService) ListContractors(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.ListByRole(ctx, domain.RoleContractor)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// UserUpdateInput is a partial profile update; nil fields are unchanged.
type UserUpdateInput struct {
	Name              *string
	HourlyRate        *float64
	Status            *domain.UserStatus
	Address           *string
	DateOfBirth       *time.Time
	Phone             *string
	ShirtSize         *string
	Allergies         []string
	FirstAidCertified *bool
}

// UpdateProfile applies a partial update to a user record. Hourly rate and
// account status are admin-owned; for any other caller those fields are
// dropped from the input before the merge.
func (s *UserService) UpdateProfile(ctx context.Context, actorRole domain.Role, userID string, input UserUpdateInput) (*domain.User, error) {
	if actorRole != domain.RoleAdmin {
		input.HourlyRate = nil
		input.Status = nil
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return nil, apperrors.MapError(err)
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.HourlyRate != nil {
		user.HourlyRate = *input.HourlyRate
	}
	if input.Status != nil {
		user.Status = *input.Status
	}
	if input.Address != nil {
		user.Address = *input.Address
	}
	if input.DateOfBirth != nil {
		user.DateOfBirth = input.DateOfBirth
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.ShirtSize != nil {
		user.ShirtSize = *input.ShirtSize
	}
	if input.Allergies != nil {
		user.Allergies = input.Allergies
	}
	if input.FirstAidCertified != nil {
		user.FirstAidCertified = *input.FirstAidCertified
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	if s.names != nil {
		s.names.Invalidate(ctx, user.ID)
	}
	return user, nil
}

// Delete removes an account. Deleting a missing id succeeds.
func (s *UserService) Delete(ctx context.Context, userID string) error {
	deleted, err := s.users.Delete(ctx, userID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if deleted == 0 {
		s.logger.Info("delete of missing user treated as success", zap.String("user_id", userID))
	}
	if s.names != nil {
		s.names.Invalidate(ctx, userID)
	}
	return nil
}
