package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/internal/notify"
	"github.com/spec-kit/staffing-service/internal/repository"
	apperrors "github.com/spec-kit/staffing-service/pkg/util/errorutil"
)

// EventService owns the event lifecycle: creation, status transitions,
// contractor assignment rounds and the assignment notification fan-out.
type EventService struct {
	events   repository.EventRepository
	users    repository.UserRepository
	names    NameResolver
	notifier AssignmentNotifier
	logger   *zap.Logger
	baseURL  string
	now      func() time.Time
}

// AssignmentNotifier delivers assignment mail and reports the fan-out
// outcome. Satisfied by NotificationService.
type AssignmentNotifier interface {
	NotifyAssignment(ctx context.Context, payload notify.ContractorsAssignedPayload) notify.FanOutSummary
}

// EventDependencies bundles collaborators.
type EventDependencies struct {
	EventRepo repository.EventRepository
	UserRepo  repository.UserRepository
	Names     NameResolver
	Notifier  AssignmentNotifier
	Logger    *zap.Logger
	BaseURL   string
}

// NewEventService creates the service.
func NewEventService(deps EventDependencies) *EventService {
	return &EventService{
		events:   deps.EventRepo,
		users:    deps.UserRepo,
		names:    deps.Names,
		notifier: deps.Notifier,
		logger:   deps.Logger,
		baseURL:  deps.BaseURL,
		now:      time.Now,
	}
}

// EventCreateInput carries the admin-submitted event fields.
type EventCreateInput struct {
	Name         string
	LoadIn       time.Time
	LoadInHours  float64
	LoadOut      time.Time
	LoadOutHours float64
	Location     string
	Description  string
	Assigned     []string
}

// EventUpdateInput carries a partial update; nil fields are left unchanged.
type EventUpdateInput struct {
	Name         *string
	LoadIn       *time.Time
	LoadInHours  *float64
	LoadOut      *time.Time
	LoadOutHours *float64
	Location     *string
	Description  *string
	Assigned     []string
	Status       *domain.EventStatus
}

// EventView is an event with assigned-contractor names resolved for display.
type EventView struct {
	Event         domain.Event
	AssignedNames map[string]string
}

// Create validates dates, persists the event in PUBLISHED and fans out one
// assignment notification per assigned contractor. Notification failures
// never roll back creation.
func (s *EventService) Create(ctx context.Context, input EventCreateInput) (*domain.Event, error) {
	if input.Name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	if input.LoadIn.Before(s.now()) {
		return nil, apperrors.NewValidationError("load-in must not be in the past", nil)
	}
	if input.LoadOut.Before(input.LoadIn) {
		return nil, apperrors.NewValidationError("load-out must not precede load-in", nil)
	}

	event := &domain.Event{
		Name:         input.Name,
		LoadIn:       input.LoadIn,
		LoadInHours:  input.LoadInHours,
		LoadOut:      input.LoadOut,
		LoadOutHours: input.LoadOutHours,
		Location:     input.Location,
		Description:  input.Description,
		Assigned:     input.Assigned,
		Accepted:     []string{},
		Rejected:     []string{},
		Approved:     []string{},
		Status:       domain.EventStatusPublished,
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishAssignment(ctx, event, event.Assigned)
	return event, nil
}

// List returns all events with assigned ids resolved to display names.
func (s *EventService) List(ctx context.Context) ([]EventView, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	idSet := map[string]struct{}{}
	for i := range events {
		for _, id := range events[i].Assigned {
			idSet[id] = struct{}{}
		}
	}
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	names := map[string]string{}
	if len(ids) > 0 {
		names, err = s.names.Names(ctx, ids)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
	}

	views := make([]EventView, 0, len(events))
	for i := range events {
		assigned := make(map[string]string, len(events[i].Assigned))
		for _, id := range events[i].Assigned {
			assigned[id] = names[id]
		}
		views = append(views, EventView{Event: events[i], AssignedNames: assigned})
	}
	return views, nil
}

// Get returns a single event.
func (s *EventService) Get(ctx context.Context, id string) (*domain.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("event", map[string]any{"event_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return event, nil
}

// Update replaces the provided fields, validating date ordering and status
// transitions. Status is not an arbitrary overwrite: illegal transitions
// are rejected as conflicts.
func (s *EventService) Update(ctx context.Context, id string, input EventUpdateInput) (*domain.Event, error) {
	event, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		event.Name = *input.Name
	}
	if input.LoadIn != nil {
		event.LoadIn = *input.LoadIn
	}
	if input.LoadInHours != nil {
		event.LoadInHours = *input.LoadInHours
	}
	if input.LoadOut != nil {
		event.LoadOut = *input.LoadOut
	}
	if input.LoadOutHours != nil {
		event.LoadOutHours = *input.LoadOutHours
	}
	if input.Location != nil {
		event.Location = *input.Location
	}
	if input.Description != nil {
		event.Description = *input.Description
	}
	if input.Assigned != nil {
		event.Assigned = input.Assigned
	}
	if event.LoadOut.Before(event.LoadIn) {
		return nil, apperrors.NewValidationError("load-out must not precede load-in", nil)
	}
	if input.Status != nil {
		if !domain.ValidEventStatus(*input.Status) {
			return nil, apperrors.NewValidationError("unknown event status", map[string]any{"status": *input.Status})
		}
		if !domain.CanTransition(event.Status, *input.Status) {
			return nil, apperrors.NewConflict("illegal status transition", map[string]any{
				"from": event.Status,
				"to":   *input.Status,
			})
		}
		event.Status = *input.Status
	}

	if err := s.events.Update(ctx, event); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("event", map[string]any{"event_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return event, nil
}

// Delete removes an event by id. Deleting a missing id succeeds.
func (s *EventService) Delete(ctx context.Context, id string) error {
	deleted, err := s.events.Delete(ctx, id)
	if err != nil {
		return apperrors.MapError(err)
	}
	if deleted == 0 {
		s.logger.Info("delete of missing event treated as success", zap.String("event_id", id))
	}
	return nil
}

// NotifyAssigned re-sends the assignment notification to a subset of the
// assigned contractors without re-persisting the event.
func (s *EventService) NotifyAssigned(ctx context.Context, eventID string, contractorIDs []string) (notify.FanOutSummary, error) {
	if len(contractorIDs) == 0 {
		return notify.FanOutSummary{}, apperrors.NewValidationError("contractor ids required", nil)
	}
	event, err := s.Get(ctx, eventID)
	if err != nil {
		return notify.FanOutSummary{}, err
	}
	for _, id := range contractorIDs {
		if !event.IsAssigned(id) {
			return notify.FanOutSummary{}, apperrors.NewValidationError("contractor not assigned to event",
				map[string]any{"contractor_id": id})
		}
	}
	return s.publishAssignment(ctx, event, contractorIDs), nil
}

// Respond records a contractor's accept or reject for an assignment round,
// keeping the accepted and rejected sets mutually exclusive.
func (s *EventService) Respond(ctx context.Context, eventID, contractorID string, accept bool) (*domain.Event, error) {
	event, err := s.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.IsAssigned(contractorID) {
		return nil, apperrors.NewValidationError("contractor not assigned to event",
			map[string]any{"contractor_id": contractorID})
	}

	if accept {
		event.Accept(contractorID)
	} else {
		event.Reject(contractorID)
	}

	if err := s.events.Update(ctx, event); err != nil {
		return nil, apperrors.MapError(err)
	}
	return event, nil
}

// ApproveContractors moves accepted contractors into the approved set.
func (s *EventService) ApproveContractors(ctx context.Context, eventID string, contractorIDs []string) (*domain.Event, error) {
	event, err := s.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	for _, id := range contractorIDs {
		if !event.Approve(id) {
			return nil, apperrors.NewValidationError("contractor has not accepted the event",
				map[string]any{"contractor_id": id})
		}
	}
	if err := s.events.Update(ctx, event); err != nil {
		return nil, apperrors.MapError(err)
	}
	return event, nil
}

// publishAssignment resolves recipient addresses and hands them to the
// notifier. Recipients that cannot be resolved are logged and skipped.
func (s *EventService) publishAssignment(ctx context.Context, event *domain.Event, contractorIDs []string) notify.FanOutSummary {
	if s.notifier == nil || len(contractorIDs) == 0 {
		return notify.FanOutSummary{}
	}

	users, err := s.users.ListByIDs(ctx, contractorIDs)
	if err != nil {
		s.logger.Warn("assignment notification skipped; recipient lookup failed",
			zap.String("event_id", event.ID), zap.Error(err))
		return notify.FanOutSummary{}
	}

	recipients := make([]notify.Recipient, 0, len(users))
	for _, user := range users {
		recipients = append(recipients, notify.Recipient{UserID: user.ID, Name: user.Name, Email: user.Email})
	}
	if len(recipients) < len(contractorIDs) {
		s.logger.Warn("some assigned contractors could not be resolved",
			zap.String("event_id", event.ID),
			zap.Int("requested", len(contractorIDs)),
			zap.Int("resolved", len(recipients)))
	}

	return s.notifier.NotifyAssignment(ctx, notify.ContractorsAssignedPayload{
		EventID:    event.ID,
		EventName:  event.Name,
		LoadIn:     event.LoadIn,
		LoadOut:    event.LoadOut,
		Location:   event.Location,
		ActionLink: fmt.Sprintf("%s/events/%s", s.baseURL, event.ID),
		Recipients: recipients,
	})
}
