package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/internal/notify"
	"github.com/spec-kit/staffing-service/internal/repository"
	apperrors "github.com/spec-kit/staffing-service/pkg/util/errorutil"
)

// CorrectionService owns the correction- and incident-report workflows.
type CorrectionService struct {
	corrections repository.CorrectionRepository
	incidents   repository.IncidentRepository
	events      repository.EventRepository
	users       repository.UserRepository
	dispatcher  notify.Dispatcher
	logger      *zap.Logger
}

// CorrectionDependencies bundles collaborators.
type CorrectionDependencies struct {
	CorrectionRepo repository.CorrectionRepository
	IncidentRepo   repository.IncidentRepository
	EventRepo      repository.EventRepository
	UserRepo       repository.UserRepository
	Dispatcher     notify.Dispatcher
	Logger         *zap.Logger
}

// NewCorrectionService creates the service.
func NewCorrectionService(deps CorrectionDependencies) *CorrectionService {
	return &CorrectionService{
		corrections: deps.CorrectionRepo,
		incidents:   deps.IncidentRepo,
		events:      deps.EventRepo,
		users:       deps.UserRepo,
		dispatcher:  deps.Dispatcher,
		logger:      deps.Logger,
	}
}

// CorrectionSubmitInput carries the contractor-submitted dispute fields.
type CorrectionSubmitInput struct {
	EventID             string
	UserID              string
	RequestType         string
	Description         string
	RequestedCorrection string
	FilePaths           []string
}

// CorrectionUpdateInput is a partial update; nil fields are left unchanged.
type CorrectionUpdateInput struct {
	RequestType         *string
	Description         *string
	RequestedCorrection *string
	FilePaths           []string
	Status              *domain.CorrectionStatus
}

// CorrectionView joins a report with its resolved user and event for display.
type CorrectionView struct {
	Report    domain.CorrectionReport
	UserName  string
	EventName string
}

// CorrectionDetail is the single-record read with full references resolved.
type CorrectionDetail struct {
	Report domain.CorrectionReport
	User   domain.User
	Event  domain.Event
}

// Submit validates the five required fields and the referenced event, then
// persists the report in "pending" and notifies the admins.
func (s *CorrectionService) Submit(ctx context.Context, input CorrectionSubmitInput) (*domain.CorrectionReport, error) {
	missing := map[string]any{}
	if input.EventID == "" {
		missing["eventID"] = "required"
	}
	if input.UserID == "" {
		missing["userID"] = "required"
	}
	if input.RequestType == "" {
		missing["requestType"] = "required"
	}
	if input.Description == "" {
		missing["description"] = "required"
	}
	if input.RequestedCorrection == "" {
		missing["requestedCorrection"] = "required"
	}
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError("missing required fields", missing)
	}

	if _, err := s.events.GetByID(ctx, input.EventID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("event", map[string]any{"event_id": input.EventID})
		}
		return nil, apperrors.MapError(err)
	}

	report := &domain.CorrectionReport{
		EventID:             input.EventID,
		UserID:              input.UserID,
		RequestType:         input.RequestType,
		Description:         input.Description,
		RequestedCorrection: input.RequestedCorrection,
		FilePaths:           input.FilePaths,
		Status:              domain.CorrectionStatusPending,
	}
	if err := s.corrections.Create(ctx, report); err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, notify.Event{
			ID:        uuid.NewString(),
			Type:      notify.EventCorrectionSubmitted,
			ActorID:   input.UserID,
			Timestamp: time.Now(),
			Payload: notify.CorrectionSubmittedPayload{
				CorrectionID: report.ID,
				EventID:      report.EventID,
				UserID:       report.UserID,
				RequestType:  report.RequestType,
			},
		})
	}
	return report, nil
}

// Update merge-updates the report, refreshing updated_at through the store.
// Only admins resolve reports: a status change from anyone else is
// forbidden, and contractors may only edit the reports they submitted.
func (s *CorrectionService) Update(ctx context.Context, actorID string, actorRole domain.Role, id string, input CorrectionUpdateInput) (*domain.CorrectionReport, error) {
	report, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if actorRole != domain.RoleAdmin {
		if input.Status != nil {
			return nil, apperrors.NewForbidden("only admins change report status")
		}
		if report.UserID != actorID {
			return nil, apperrors.NewForbidden("cannot edit another contractor's report")
		}
	}

	if input.RequestType != nil {
		report.RequestType = *input.RequestType
	}
	if input.Description != nil {
		report.Description = *input.Description
	}
	if input.RequestedCorrection != nil {
		report.RequestedCorrection = *input.RequestedCorrection
	}
	if input.FilePaths != nil {
		report.FilePaths = input.FilePaths
	}
	if input.Status != nil {
		if *input.Status != domain.CorrectionStatusPending && *input.Status != domain.CorrectionStatusResolved {
			return nil, apperrors.NewValidationError("unknown correction status", map[string]any{"status": *input.Status})
		}
		report.Status = *input.Status
	}

	if err := s.corrections.Update(ctx, report); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("correction report", map[string]any{"correction_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return report, nil
}

// List returns all reports joined with user and event display names. A
// dangling reference renders as an empty name rather than failing the list.
func (s *CorrectionService) List(ctx context.Context) ([]CorrectionView, error) {
	reports, err := s.corrections.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	views := make([]CorrectionView, 0, len(reports))
	for i := range reports {
		view := CorrectionView{Report: reports[i]}
		if user, err := s.users.GetByID(ctx, reports[i].UserID); err == nil {
			view.UserName = user.Name
		}
		if event, err := s.events.GetByID(ctx, reports[i].EventID); err == nil {
			view.EventName = event.Name
		}
		views = append(views, view)
	}
	return views, nil
}

// Get returns one report with its user and event fully resolved. A missing
// reference is an explicit not-found, not a nil dereference.
func (s *CorrectionService) Get(ctx context.Context, id string) (*CorrectionDetail, error) {
	report, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, report.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("correction user", map[string]any{"user_id": report.UserID})
		}
		return nil, apperrors.MapError(err)
	}
	event, err := s.events.GetByID(ctx, report.EventID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("correction event", map[string]any{"event_id": report.EventID})
		}
		return nil, apperrors.MapError(err)
	}

	return &CorrectionDetail{Report: *report, User: *user, Event: *event}, nil
}

// Delete removes a report by id. Deleting a missing id succeeds.
func (s *CorrectionService) Delete(ctx context.Context, id string) error {
	deleted, err := s.corrections.Delete(ctx, id)
	if err != nil {
		return apperrors.MapError(err)
	}
	if deleted == 0 {
		s.logger.Info("delete of missing correction treated as success", zap.String("correction_id", id))
	}
	return nil
}

// IncidentSubmitInput carries the public incident form fields.
type IncidentSubmitInput struct {
	Name        string
	StartDate   time.Time
	EndDate     time.Time
	RequestType string
	Description string
}

// SubmitIncident persists a public incident report. Required fields are
// validated the same way correction submissions are.
func (s *CorrectionService) SubmitIncident(ctx context.Context, input IncidentSubmitInput) (*domain.IncidentReport, error) {
	missing := map[string]any{}
	if input.Name == "" {
		missing["name"] = "required"
	}
	if input.StartDate.IsZero() {
		missing["startDate"] = "required"
	}
	if input.EndDate.IsZero() {
		missing["endDate"] = "required"
	}
	if input.RequestType == "" {
		missing["requestType"] = "required"
	}
	if input.Description == "" {
		missing["description"] = "required"
	}
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError("missing required fields", missing)
	}
	if input.EndDate.Before(input.StartDate) {
		return nil, apperrors.NewValidationError("end date must not precede start date", nil)
	}

	report := &domain.IncidentReport{
		Name:        input.Name,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		RequestType: input.RequestType,
		Description: input.Description,
	}
	if err := s.incidents.Create(ctx, report); err != nil {
		return nil, apperrors.MapError(err)
	}
	return report, nil
}

// ListIncidents returns all incident reports for the admin screen.
func (s *CorrectionService) ListIncidents(ctx context.Context) ([]domain.IncidentReport, error) {
	reports, err := s.incidents.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return reports, nil
}

func (s *CorrectionService) get(ctx context.Context, id string) (*domain.CorrectionReport, error) {
	report, err := s.corrections.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("correction report", map[string]any{"correction_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return report, nil
}
