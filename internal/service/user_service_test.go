package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/internal/notify"
	apperrors "github.com/spec-kit/staffing-service/pkg/util/errorutil"
)

func newUserFixture() (*UserService, *memUserRepo, *recordingDispatcher) {
	users := newMemUserRepo()
	dispatcher := &recordingDispatcher{}
	svc := NewUserService(UserDependencies{
		UserRepo:   users,
		Names:      repoNames{users: users},
		Dispatcher: dispatcher,
		Logger:     zap.NewNop(),
		BcryptCost: 4,
		BaseURL:    "http://localhost:3000",
	})
	return svc, users, dispatcher
}

func TestCreateContractorIssuesInvite(t *testing.T) {
	svc, _, dispatcher := newUserFixture()

	user, err := svc.CreateContractor(context.Background(), "Alice", "alice@example.com", 85)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.Role != domain.RoleContractor {
		t.Fatalf("role = %s, want CONTRACTOR", user.Role)
	}
	if user.Status != domain.UserStatusPending {
		t.Fatalf("status = %s, want PENDING", user.Status)
	}
	if !user.TempPassword {
		t.Fatal("new account should carry the temp-password flag")
	}

	if len(dispatcher.events) != 1 || dispatcher.events[0].Type != notify.EventUserInvited {
		t.Fatalf("expected one user_invited event, got %v", dispatcher.events)
	}
	payload, ok := dispatcher.events[0].Payload.(notify.UserInvitedPayload)
	if !ok {
		t.Fatalf("unexpected payload type %T", dispatcher.events[0].Payload)
	}
	if payload.TempPassword == "" {
		t.Fatal("invite should carry the generated temporary password")
	}
	if payload.LoginLink != "http://localhost:3000/login" {
		t.Fatalf("login link = %q", payload.LoginLink)
	}
}

func TestCreateContractorDuplicateEmail(t *testing.T) {
	svc, users, _ := newUserFixture()
	users.add(domain.User{Email: "alice@example.com", Role: domain.RoleContractor})

	_, err := svc.CreateContractor(context.Background(), "Alice", "alice@example.com", 85)
	if code := apperrors.ToDomainError(err).Code; code != "CONFLICT" {
		t.Fatalf("expected CONFLICT, got %s", code)
	}
}

func TestUpdateProfilePartial(t *testing.T) {
	svc, users, _ := newUserFixture()
	user := users.add(domain.User{
		Name:       "Alice",
		Email:      "alice@example.com",
		Role:       domain.RoleContractor,
		HourlyRate: 85,
		Status:     domain.UserStatusActive,
	})

	rate := 95.0
	updated, err := svc.UpdateProfile(context.Background(), domain.RoleAdmin, user.ID, UserUpdateInput{HourlyRate: &rate})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.HourlyRate != 95 {
		t.Fatalf("rate = %v, want 95", updated.HourlyRate)
	}
	if updated.Name != "Alice" {
		t.Fatalf("untouched field changed: name = %q", updated.Name)
	}
}

func TestUpdateProfileContractorCannotTouchRateOrStatus(t *testing.T) {
	svc, users, _ := newUserFixture()
	user := users.add(domain.User{
		Name:       "Alice",
		Email:      "alice@example.com",
		Role:       domain.RoleContractor,
		HourlyRate: 85,
		Status:     domain.UserStatusPending,
	})

	rate := 500.0
	active := domain.UserStatusActive
	phone := "555-0101"
	updated, err := svc.UpdateProfile(context.Background(), domain.RoleContractor, user.ID, UserUpdateInput{
		HourlyRate: &rate,
		Status:     &active,
		Phone:      &phone,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.HourlyRate != 85 {
		t.Fatalf("contractor changed their own rate: %v", updated.HourlyRate)
	}
	if updated.Status != domain.UserStatusPending {
		t.Fatalf("contractor changed their own status: %s", updated.Status)
	}
	if updated.Phone != "555-0101" {
		t.Fatalf("profile field should still apply, phone = %q", updated.Phone)
	}
}

func TestDeleteUserIdempotent(t *testing.T) {
	svc, users, _ := newUserFixture()
	user := users.add(domain.User{Email: "alice@example.com", Role: domain.RoleContractor})

	if err := svc.Delete(context.Background(), user.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := svc.Delete(context.Background(), user.ID); err != nil {
		t.Fatalf("second delete should succeed, got %v", err)
	}
}
