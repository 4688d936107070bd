package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staffing-service/internal/api/dto"
	"github.com/spec-kit/staffing-service/internal/auth"
	"github.com/spec-kit/staffing-service/internal/service"
	apperrors "github.com/spec-kit/staffing-service/pkg/util/errorutil"
)

// AuthHandler serves login and credential-recovery endpoints.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{service: authService}
}

// Login POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	result, err := h.service.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.LoginResponse{
		Token:          result.Token,
		ExpiresAt:      result.ExpiresAt,
		Role:           result.User.Role,
		RequiredAction: result.RequiredAction,
	}})
}

// ResetPassword POST /reset-password. The subject is the authenticated caller.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.service.ResetPassword(c.Context(), principal.User.ID, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "password updated"})
}

// CompleteProfile POST /complete-profile.
func (h *AuthHandler) CompleteProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CompleteProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.ProfileInput{
		Address:           req.Address,
		Phone:             req.Phone,
		ShirtSize:         req.ShirtSize,
		Allergies:         req.Allergies,
		FirstAidCertified: req.FirstAidCertified,
	}
	if req.DateOfBirth != nil && *req.DateOfBirth != "" {
		dob, err := parseDate(*req.DateOfBirth)
		if err != nil {
			return apperrors.NewValidationError("dateOfBirth must be a date", nil)
		}
		input.DateOfBirth = &dob
	}

	user, err := h.service.CompleteProfile(c.Context(), principal.User.ID, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(user)})
}
