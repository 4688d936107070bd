package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staffing-service/internal/api/dto"
	"github.com/spec-kit/staffing-service/internal/auth"
	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/internal/service"
	apperrors "github.com/spec-kit/staffing-service/pkg/util/errorutil"
)

// EventsHandler manages event workflow endpoints.
type EventsHandler struct {
	service *service.EventService
}

// NewEventsHandler constructs handler.
func NewEventsHandler(eventService *service.EventService) *EventsHandler {
	return &EventsHandler{service: eventService}
}

// Create POST /create-event.
func (h *EventsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.LoadIn == "" || req.LoadOut == "" {
		return apperrors.NewValidationError("name, loadIn, loadOut required", nil)
	}
	loadIn, err := parseTimestamp(req.LoadIn)
	if err != nil {
		return apperrors.NewValidationError("loadIn must be an RFC3339 timestamp", nil)
	}
	loadOut, err := parseTimestamp(req.LoadOut)
	if err != nil {
		return apperrors.NewValidationError("loadOut must be an RFC3339 timestamp", nil)
	}

	event, err := h.service.Create(c.Context(), service.EventCreateInput{
		Name:         req.Name,
		LoadIn:       loadIn,
		LoadInHours:  req.LoadInHours,
		LoadOut:      loadOut,
		LoadOutHours: req.LoadOutHours,
		Location:     req.Location,
		Description:  req.Description,
		Assigned:     req.AssignedContractors,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": eventResponse(event, nil)})
}

// Get GET /create-event/:eventId.
func (h *EventsHandler) Get(c *fiber.Ctx) error {
	id := c.Params("eventId")
	if err := requireUUID("event", id); err != nil {
		return err
	}
	event, err := h.service.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": eventResponse(event, nil)})
}

// List GET /events.
func (h *EventsHandler) List(c *fiber.Ctx) error {
	views, err := h.service.List(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.EventResponse, 0, len(views))
	for i := range views {
		items = append(items, eventResponse(&views[i].Event, views[i].AssignedNames))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Update PUT /events/:id.
func (h *EventsHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := requireUUID("event", id); err != nil {
		return err
	}
	var req dto.UpdateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.EventUpdateInput{
		Name:         req.Name,
		LoadInHours:  req.LoadInHours,
		LoadOutHours: req.LoadOutHours,
		Location:     req.Location,
		Description:  req.Description,
		Assigned:     req.AssignedContractors,
		Status:       req.Status,
	}
	if req.LoadIn != nil {
		loadIn, err := parseTimestamp(*req.LoadIn)
		if err != nil {
			return apperrors.NewValidationError("loadIn must be an RFC3339 timestamp", nil)
		}
		input.LoadIn = &loadIn
	}
	if req.LoadOut != nil {
		loadOut, err := parseTimestamp(*req.LoadOut)
		if err != nil {
			return apperrors.NewValidationError("loadOut must be an RFC3339 timestamp", nil)
		}
		input.LoadOut = &loadOut
	}

	event, err := h.service.Update(c.Context(), id, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": eventResponse(event, nil)})
}

// Delete DELETE /events/:id.
func (h *EventsHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := requireUUID("event", id); err != nil {
		return err
	}
	if err := h.service.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "event deleted"})
}

// SendNotifications POST /events/send-notifications.
func (h *EventsHandler) SendNotifications(c *fiber.Ctx) error {
	var req dto.SendNotificationsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.EventID == "" {
		return apperrors.NewValidationError("eventId required", nil)
	}

	summary, err := h.service.NotifyAssigned(c.Context(), req.EventID, req.ContractorIDs)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NotificationSummaryResponse{
		Sent:   summary.Sent,
		Failed: summary.Failed,
	}})
}

// Respond POST /events/:id/respond. The contractor id comes from the
// authenticated principal, never the payload.
func (h *EventsHandler) Respond(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("contractor required")
	}
	id := c.Params("id")
	if err := requireUUID("event", id); err != nil {
		return err
	}
	var req dto.RespondRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	var accept bool
	switch strings.ToLower(req.Response) {
	case "accept":
		accept = true
	case "reject":
		accept = false
	default:
		return apperrors.NewValidationError("response must be accept or reject", nil)
	}

	event, err := h.service.Respond(c.Context(), id, principal.User.ID, accept)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": eventResponse(event, nil)})
}

// Approve POST /events/:id/approve.
func (h *EventsHandler) Approve(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := requireUUID("event", id); err != nil {
		return err
	}
	var req dto.ApproveRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if len(req.ContractorIDs) == 0 {
		return apperrors.NewValidationError("contractorIds required", nil)
	}

	event, err := h.service.ApproveContractors(c.Context(), id, req.ContractorIDs)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": eventResponse(event, nil)})
}

func eventResponse(event *domain.Event, names map[string]string) dto.EventResponse {
	assigned := make([]dto.ContractorRef, 0, len(event.Assigned))
	for _, id := range event.Assigned {
		assigned = append(assigned, dto.ContractorRef{ID: id, Name: names[id]})
	}
	return dto.EventResponse{
		ID:           event.ID,
		Name:         event.Name,
		LoadIn:       event.LoadIn,
		LoadInHours:  event.LoadInHours,
		LoadOut:      event.LoadOut,
		LoadOutHours: event.LoadOutHours,
		Location:     event.Location,
		Description:  event.Description,
		Assigned:     assigned,
		Accepted:     emptyIfNil(event.Accepted),
		Rejected:     emptyIfNil(event.Rejected),
		Approved:     emptyIfNil(event.Approved),
		Status:       event.Status,
		CreatedAt:    event.CreatedAt,
		UpdatedAt:    event.UpdatedAt,
	}
}

func emptyIfNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
