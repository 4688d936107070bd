package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/internal/notify"
	apperrors "github.com/spec-kit/staffing-service/pkg/util/errorutil"
)

func newCorrectionFixture() (*CorrectionService, *memCorrectionRepo, *memEventRepo, *memUserRepo, *recordingDispatcher) {
	corrections := newMemCorrectionRepo()
	incidents := &memIncidentRepo{}
	events := newMemEventRepo()
	users := newMemUserRepo()
	dispatcher := &recordingDispatcher{}
	svc := NewCorrectionService(CorrectionDependencies{
		CorrectionRepo: corrections,
		IncidentRepo:   incidents,
		EventRepo:      events,
		UserRepo:       users,
		Dispatcher:     dispatcher,
		Logger:         zap.NewNop(),
	})
	return svc, corrections, events, users, dispatcher
}

func TestSubmitCorrectionReportsAllMissingFields(t *testing.T) {
	svc, corrections, _, _, _ := newCorrectionFixture()

	_, err := svc.Submit(context.Background(), CorrectionSubmitInput{})
	domainErr := apperrors.ToDomainError(err)
	if domainErr.Code != "VALIDATION_FAILED" {
		t.Fatalf("expected VALIDATION_FAILED, got %s", domainErr.Code)
	}
	for _, field := range []string{"eventID", "userID", "requestType", "description", "requestedCorrection"} {
		if _, ok := domainErr.Details[field]; !ok {
			t.Errorf("missing field %q not reported in details: %v", field, domainErr.Details)
		}
	}
	if len(corrections.reports) != 0 {
		t.Fatal("nothing should persist when validation fails")
	}
}

func TestSubmitCorrectionUnknownEvent(t *testing.T) {
	svc, corrections, _, _, _ := newCorrectionFixture()

	_, err := svc.Submit(context.Background(), CorrectionSubmitInput{
		EventID:             "missing",
		UserID:              "user-1",
		RequestType:         "hours",
		Description:         "time was wrong",
		RequestedCorrection: "add two hours",
	})
	if !apperrors.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
	if len(corrections.reports) != 0 {
		t.Fatal("nothing should persist for an unknown event")
	}
}

func TestSubmitCorrectionPersistsAndNotifies(t *testing.T) {
	svc, _, events, users, dispatcher := newCorrectionFixture()
	alice := users.add(domain.User{Name: "Alice", Email: "alice@example.com"})
	event := events.add(domain.Event{Name: "Arena build", Status: domain.EventStatusPublished})

	report, err := svc.Submit(context.Background(), CorrectionSubmitInput{
		EventID:             event.ID,
		UserID:              alice.ID,
		RequestType:         "hours",
		Description:         "time was wrong",
		RequestedCorrection: "add two hours",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if report.Status != domain.CorrectionStatusPending {
		t.Fatalf("status = %s, want pending", report.Status)
	}
	if len(dispatcher.events) != 1 || dispatcher.events[0].Type != notify.EventCorrectionSubmitted {
		t.Fatalf("expected one correction_submitted event, got %v", dispatcher.events)
	}
}

func TestGetCorrectionDanglingUser(t *testing.T) {
	svc, corrections, events, _, _ := newCorrectionFixture()
	event := events.add(domain.Event{Name: "Arena build", Status: domain.EventStatusPublished})

	report := &domain.CorrectionReport{
		EventID:             event.ID,
		UserID:              "ghost",
		RequestType:         "hours",
		Description:         "time was wrong",
		RequestedCorrection: "add two hours",
		Status:              domain.CorrectionStatusPending,
	}
	if err := corrections.Create(context.Background(), report); err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, err := svc.Get(context.Background(), report.ID)
	if !apperrors.IsNotFound(err) {
		t.Fatalf("expected not-found for dangling user, got %v", err)
	}
}

func TestListCorrectionsTolerantOfDanglingRefs(t *testing.T) {
	svc, corrections, _, _, _ := newCorrectionFixture()
	report := &domain.CorrectionReport{
		EventID:             "ghost-event",
		UserID:              "ghost-user",
		RequestType:         "hours",
		Description:         "time was wrong",
		RequestedCorrection: "add two hours",
		Status:              domain.CorrectionStatusPending,
	}
	if err := corrections.Create(context.Background(), report); err != nil {
		t.Fatalf("seed: %v", err)
	}

	views, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected one row, got %d", len(views))
	}
	if views[0].UserName != "" || views[0].EventName != "" {
		t.Fatalf("dangling refs should render empty names, got %+v", views[0])
	}
}

func TestUpdateCorrectionRejectsUnknownStatus(t *testing.T) {
	svc, corrections, _, _, _ := newCorrectionFixture()
	report := &domain.CorrectionReport{
		EventID:             "event-1",
		UserID:              "user-1",
		RequestType:         "hours",
		Description:         "time was wrong",
		RequestedCorrection: "add two hours",
		Status:              domain.CorrectionStatusPending,
	}
	if err := corrections.Create(context.Background(), report); err != nil {
		t.Fatalf("seed: %v", err)
	}

	bogus := domain.CorrectionStatus("archived")
	_, err := svc.Update(context.Background(), "admin-1", domain.RoleAdmin, report.ID, CorrectionUpdateInput{Status: &bogus})
	if code := apperrors.ToDomainError(err).Code; code != "VALIDATION_FAILED" {
		t.Fatalf("expected VALIDATION_FAILED, got %s", code)
	}

	resolved := domain.CorrectionStatusResolved
	updated, err := svc.Update(context.Background(), "admin-1", domain.RoleAdmin, report.ID, CorrectionUpdateInput{Status: &resolved})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != domain.CorrectionStatusResolved {
		t.Fatalf("status = %s, want resolved", updated.Status)
	}
}

func TestUpdateCorrectionContractorCannotResolve(t *testing.T) {
	svc, corrections, _, _, _ := newCorrectionFixture()
	report := &domain.CorrectionReport{
		EventID:             "event-1",
		UserID:              "user-1",
		RequestType:         "hours",
		Description:         "time was wrong",
		RequestedCorrection: "add two hours",
		Status:              domain.CorrectionStatusPending,
	}
	if err := corrections.Create(context.Background(), report); err != nil {
		t.Fatalf("seed: %v", err)
	}

	resolved := domain.CorrectionStatusResolved
	_, err := svc.Update(context.Background(), "user-1", domain.RoleContractor, report.ID, CorrectionUpdateInput{Status: &resolved})
	if code := apperrors.ToDomainError(err).Code; code != "FORBIDDEN" {
		t.Fatalf("own-report status change code = %s, want FORBIDDEN", code)
	}

	stored, err := corrections.GetByID(context.Background(), report.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Status != domain.CorrectionStatusPending {
		t.Fatalf("status changed to %s despite the refusal", stored.Status)
	}
}

func TestUpdateCorrectionContractorOwnReportOnly(t *testing.T) {
	svc, corrections, _, _, _ := newCorrectionFixture()
	report := &domain.CorrectionReport{
		EventID:             "event-1",
		UserID:              "user-1",
		RequestType:         "hours",
		Description:         "time was wrong",
		RequestedCorrection: "add two hours",
		Status:              domain.CorrectionStatusPending,
	}
	if err := corrections.Create(context.Background(), report); err != nil {
		t.Fatalf("seed: %v", err)
	}

	desc := "revised description"
	_, err := svc.Update(context.Background(), "user-2", domain.RoleContractor, report.ID, CorrectionUpdateInput{Description: &desc})
	if code := apperrors.ToDomainError(err).Code; code != "FORBIDDEN" {
		t.Fatalf("foreign-report edit code = %s, want FORBIDDEN", code)
	}

	updated, err := svc.Update(context.Background(), "user-1", domain.RoleContractor, report.ID, CorrectionUpdateInput{Description: &desc})
	if err != nil {
		t.Fatalf("own-report edit: %v", err)
	}
	if updated.Description != desc {
		t.Fatalf("description = %q, want %q", updated.Description, desc)
	}
}

func TestDeleteCorrectionIdempotent(t *testing.T) {
	svc, _, _, _, _ := newCorrectionFixture()
	if err := svc.Delete(context.Background(), "never-existed"); err != nil {
		t.Fatalf("delete of missing id should succeed, got %v", err)
	}
}

func TestSubmitIncidentValidatesDates(t *testing.T) {
	svc, _, _, _, _ := newCorrectionFixture()

	_, err := svc.SubmitIncident(context.Background(), IncidentSubmitInput{
		Name:        "Stage collapse",
		StartDate:   time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		RequestType: "injury",
		Description: "rigging failure",
	})
	if code := apperrors.ToDomainError(err).Code; code != "VALIDATION_FAILED" {
		t.Fatalf("expected VALIDATION_FAILED for inverted dates, got %s", code)
	}

	report, err := svc.SubmitIncident(context.Background(), IncidentSubmitInput{
		Name:        "Stage collapse",
		StartDate:   time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC),
		RequestType: "injury",
		Description: "rigging failure",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if report.ID == "" {
		t.Fatal("persisted incident should carry an id")
	}

	reports, err := svc.ListIncidents(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("expected one incident, got %d", len(reports))
	}
}
