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

// InvoicesHandler serves invoice creation and reads.
type InvoicesHandler struct {
	service *service.InvoiceService
}

// NewInvoicesHandler constructs handler.
func NewInvoicesHandler(invoiceService *service.InvoiceService) *InvoicesHandler {
	return &InvoicesHandler{service: invoiceService}
}

// Create POST /invoices.
func (h *InvoicesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	invoice, err := h.service.Create(c.Context(), principal.User.ID, principal.Role, req.UserID, req.Items)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": invoiceResponse(invoice, "", "", "")})
}

// UpdateItems PUT /invoices/:id.
func (h *InvoicesHandler) UpdateItems(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id := c.Params("id")
	if err := requireUUID("invoice", id); err != nil {
		return err
	}
	var req dto.UpdateInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	invoice, err := h.service.UpdateItems(c.Context(), principal.User.ID, principal.Role, id, req.Items)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": invoiceResponse(invoice, "", "", "")})
}

// Get GET /invoices/:id.
func (h *InvoicesHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id := c.Params("id")
	if err := requireUUID("invoice", id); err != nil {
		return err
	}
	detail, err := h.service.Get(c.Context(), principal.User.ID, principal.Role, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": invoiceResponse(&detail.Invoice, detail.UserName, detail.UserEmail, detail.UserPhone)})
}

// List GET /invoices. Admin view over all contractors.
func (h *InvoicesHandler) List(c *fiber.Ctx) error {
	summaries, err := h.service.ListAll(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": summaryResponses(summaries)})
}

// ListMine GET /invoices/mine. The authenticated contractor's own invoices.
func (h *InvoicesHandler) ListMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	summaries, err := h.service.ListByUser(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": summaryResponses(summaries)})
}

// ListByUser GET /invoices/user/:userId. Admin view over one contractor.
func (h *InvoicesHandler) ListByUser(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if err := requireUUID("user", userID); err != nil {
		return err
	}
	summaries, err := h.service.ListByUser(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": summaryResponses(summaries)})
}

func summaryResponses(summaries []service.InvoiceSummary) []dto.InvoiceSummaryResponse {
	items := make([]dto.InvoiceSummaryResponse, 0, len(summaries))
	for i := range summaries {
		items = append(items, dto.InvoiceSummaryResponse{
			ID:        summaries[i].Invoice.ID,
			UserID:    summaries[i].Invoice.UserID,
			UserName:  summaries[i].UserName,
			UserEmail: summaries[i].UserEmail,
			ItemCount: len(summaries[i].Invoice.Items),
			UpdatedAt: summaries[i].Invoice.UpdatedAt,
		})
	}
	return items
}

func invoiceResponse(invoice *domain.Invoice, userName, userEmail, userPhone string) dto.InvoiceResponse {
	projection := invoice.Project()
	items := invoice.Items
	if items == nil {
		items = []domain.InvoiceItem{}
	}
	return dto.InvoiceResponse{
		ID:                invoice.ID,
		UserID:            invoice.UserID,
		UserName:          userName,
		UserEmail:         userEmail,
		UserPhone:         userPhone,
		Items:             items,
		BillableHours:     projection.BillableHours,
		Rates:             projection.Rates,
		Totals:            projection.Totals,
		ActualHoursWorked: projection.ActualHours,
		Notes:             projection.Notes,
		DatesOfWork:       projection.DatesOfWork,
		CreatedAt:         invoice.CreatedAt,
		UpdatedAt:         invoice.UpdatedAt,
	}
}
