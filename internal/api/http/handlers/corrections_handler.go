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

// CorrectionsHandler manages correction- and incident-report endpoints.
type CorrectionsHandler struct {
	service *service.CorrectionService
}

// NewCorrectionsHandler constructs handler.
func NewCorrectionsHandler(correctionService *service.CorrectionService) *CorrectionsHandler {
	return &CorrectionsHandler{service: correctionService}
}

// Submit POST /correction-report.
func (h *CorrectionsHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitCorrectionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	report, err := h.service.Submit(c.Context(), service.CorrectionSubmitInput{
		EventID:             req.EventID,
		UserID:              req.UserID,
		RequestType:         req.RequestType,
		Description:         req.Description,
		RequestedCorrection: req.RequestedCorrection,
		FilePaths:           req.Files,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": correctionResponse(report, "", "")})
}

// List GET /corrections.
func (h *CorrectionsHandler) List(c *fiber.Ctx) error {
	views, err := h.service.List(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.CorrectionResponse, 0, len(views))
	for i := range views {
		items = append(items, correctionResponse(&views[i].Report, views[i].UserName, views[i].EventName))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /corrections/:id.
func (h *CorrectionsHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := requireUUID("correction report", id); err != nil {
		return err
	}
	detail, err := h.service.Get(c.Context(), id)
	if err != nil {
		return err
	}
	resp := correctionResponse(&detail.Report, detail.User.Name, detail.Event.Name)
	return c.JSON(fiber.Map{"data": resp})
}

// Update PUT /corrections/:id.
func (h *CorrectionsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id := c.Params("id")
	if err := requireUUID("correction report", id); err != nil {
		return err
	}
	var req dto.UpdateCorrectionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	report, err := h.service.Update(c.Context(), principal.User.ID, principal.Role, id, service.CorrectionUpdateInput{
		RequestType:         req.RequestType,
		Description:         req.Description,
		RequestedCorrection: req.RequestedCorrection,
		FilePaths:           req.Files,
		Status:              req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": correctionResponse(report, "", "")})
}

// Delete DELETE /corrections/:id.
func (h *CorrectionsHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := requireUUID("correction report", id); err != nil {
		return err
	}
	if err := h.service.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "correction report deleted"})
}

// SubmitIncident POST /incident-report.
func (h *CorrectionsHandler) SubmitIncident(c *fiber.Ctx) error {
	var req dto.SubmitIncidentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.IncidentSubmitInput{
		Name:        req.Name,
		RequestType: req.RequestType,
		Description: req.Description,
	}
	if req.StartDate != "" {
		start, err := parseDate(req.StartDate)
		if err != nil {
			return apperrors.NewValidationError("startDate must be a date", nil)
		}
		input.StartDate = start
	}
	if req.EndDate != "" {
		end, err := parseDate(req.EndDate)
		if err != nil {
			return apperrors.NewValidationError("endDate must be a date", nil)
		}
		input.EndDate = end
	}

	report, err := h.service.SubmitIncident(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.IncidentResponse{
		ID:          report.ID,
		Name:        report.Name,
		StartDate:   report.StartDate,
		EndDate:     report.EndDate,
		RequestType: report.RequestType,
		Description: report.Description,
		CreatedAt:   report.CreatedAt,
	}})
}

// ListIncidents GET /incident-report/events.
func (h *CorrectionsHandler) ListIncidents(c *fiber.Ctx) error {
	reports, err := h.service.ListIncidents(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.IncidentResponse, 0, len(reports))
	for _, report := range reports {
		items = append(items, dto.IncidentResponse{
			ID:          report.ID,
			Name:        report.Name,
			StartDate:   report.StartDate,
			EndDate:     report.EndDate,
			RequestType: report.RequestType,
			Description: report.Description,
			CreatedAt:   report.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

func correctionResponse(report *domain.CorrectionReport, userName, eventName string) dto.CorrectionResponse {
	return dto.CorrectionResponse{
		ID:                  report.ID,
		EventID:             report.EventID,
		EventName:           eventName,
		UserID:              report.UserID,
		UserName:            userName,
		RequestType:         report.RequestType,
		Description:         report.Description,
		RequestedCorrection: report.RequestedCorrection,
		Files:               report.FilePaths,
		Status:              report.Status,
		CreatedAt:           report.CreatedAt,
		UpdatedAt:           report.UpdatedAt,
	}
}
