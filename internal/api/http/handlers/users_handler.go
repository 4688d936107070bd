package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staffing-service/internal/api/dto"
	"github.com/spec-kit/staffing-service/internal/auth"
	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/internal/service"
	apperrors "github.com/spec-kit/staffing-service/pkg/util/errorutil"
)

// UsersHandler serves contractor account management.
type UsersHandler struct {
	service *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{service: userService}
}

// Create POST /users. Admin provisions a contractor account.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.service.CreateContractor(c.Context(), req.Name, req.Email, req.HourlyRate)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": userResponse(user)})
}

// ListContractors GET /users/contractors.
func (h *UsersHandler) ListContractors(c *fiber.Ctx) error {
	users, err := h.service.ListContractors(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, userResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// UpdateProfile PUT /profile. Contractors may only edit themselves; admins
// may target any account via the optional userID field.
func (h *UsersHandler) UpdateProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req struct {
		UserID string `json:"userID"`
		dto.UpdateProfileRequest
	}
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	targetID := principal.User.ID
	if req.UserID != "" && req.UserID != principal.User.ID {
		if principal.Role != domain.RoleAdmin {
			return apperrors.NewForbidden("cannot edit another account")
		}
		targetID = req.UserID
	}

	input := service.UserUpdateInput{
		Name:              req.Name,
		HourlyRate:        req.HourlyRate,
		Status:            req.Status,
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

	user, err := h.service.UpdateProfile(c.Context(), principal.Role, targetID, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(user)})
}

// Delete DELETE /users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := requireUUID("user", id); err != nil {
		return err
	}
	if err := h.service.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "user deleted"})
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:                user.ID,
		Name:              user.Name,
		Email:             user.Email,
		Role:              user.Role,
		HourlyRate:        user.HourlyRate,
		Status:            user.Status,
		Address:           user.Address,
		DateOfBirth:       user.DateOfBirth,
		Phone:             user.Phone,
		ShirtSize:         user.ShirtSize,
		Allergies:         user.Allergies,
		FirstAidCertified: user.FirstAidCertified,
		ProfileComplete:   user.ProfileComplete,
		CreatedAt:         user.CreatedAt,
	}
}
