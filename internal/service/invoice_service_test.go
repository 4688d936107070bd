package service

import (
	"context"
	"testing"

	"github.com/spec-kit/staffing-service/internal/domain"
	apperrors "github.com/spec-kit/staffing-service/pkg/util/errorutil"
)

func newInvoiceFixture() (*InvoiceService, *memInvoiceRepo, *memUserRepo) {
	invoices := newMemInvoiceRepo()
	users := newMemUserRepo()
	return NewInvoiceService(invoices, users), invoices, users
}

func TestNormalizeWorkDate(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"03/15/2024", "2024-03-15"},
		{"12/01/2023", "2023-12-01"},
		{" 03/15/2024 ", "2024-03-15"},
		{"2024-03-15T08:00:00Z", "2024-03-15T08:00:00Z"},
		{" 2024-03-15T08:00:00Z ", "2024-03-15T08:00:00Z"},
	}
	for _, tc := range cases {
		got, err := normalizeWorkDate(tc.in)
		if err != nil {
			t.Errorf("normalizeWorkDate(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("normalizeWorkDate(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}

	if _, err := normalizeWorkDate("15/03/2024"); err == nil {
		t.Error("day-first date should fail to parse")
	}
}

func TestCoerceFloat(t *testing.T) {
	cases := []struct {
		in   any
		want float64
	}{
		{nil, 0},
		{float64(12.5), 12.5},
		{42, 42},
		{"85", 85},
		{" 7.25 ", 7.25},
		{"", 0},
	}
	for _, tc := range cases {
		got, err := coerceFloat(tc.in)
		if err != nil {
			t.Errorf("coerceFloat(%v): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("coerceFloat(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}

	if _, err := coerceFloat("not a number"); err == nil {
		t.Error("non-numeric string should fail")
	}
	if _, err := coerceFloat([]string{"12"}); err == nil {
		t.Error("slice should fail")
	}
}

func TestCreateInvoiceNormalizesItems(t *testing.T) {
	svc, _, users := newInvoiceFixture()
	alice := users.add(domain.User{Name: "Alice", Email: "alice@example.com"})

	invoice, err := svc.Create(context.Background(), alice.ID, domain.RoleContractor, alice.ID, []InvoiceItemInput{
		{Date: "03/15/2024", ActualHours: " 8 ", BillableHours: "8", Rate: 85, Total: "680", Notes: " stage crew "},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	item := invoice.Items[0]
	if item.DateOfWork != "2024-03-15" {
		t.Errorf("date = %q, want 2024-03-15", item.DateOfWork)
	}
	if item.ActualHours != "8" {
		t.Errorf("actual hours = %q, want trimmed", item.ActualHours)
	}
	if item.BillableHours != 8 || item.Rate != 85 || item.Total != 680 {
		t.Errorf("numeric coercion off: %+v", item)
	}
	if item.Notes != "stage crew" {
		t.Errorf("notes = %q, want trimmed", item.Notes)
	}
}

func TestCreateInvoiceUnknownUser(t *testing.T) {
	svc, invoices, _ := newInvoiceFixture()
	_, err := svc.Create(context.Background(), "admin-1", domain.RoleAdmin, "ghost", nil)
	if !apperrors.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
	if len(invoices.invoices) != 0 {
		t.Fatal("nothing should persist for an unknown user")
	}
}

func TestUpdateItemsRequiresList(t *testing.T) {
	svc, _, _ := newInvoiceFixture()
	_, err := svc.UpdateItems(context.Background(), "admin-1", domain.RoleAdmin, "invoice-1", nil)
	if code := apperrors.ToDomainError(err).Code; code != "VALIDATION_FAILED" {
		t.Fatalf("expected VALIDATION_FAILED for absent items, got %s", code)
	}
}

func TestUpdateItemsReplacesWholesale(t *testing.T) {
	svc, _, users := newInvoiceFixture()
	alice := users.add(domain.User{Name: "Alice", Email: "alice@example.com"})

	invoice, err := svc.Create(context.Background(), alice.ID, domain.RoleContractor, alice.ID, []InvoiceItemInput{
		{Date: "03/15/2024", BillableHours: 8, Rate: 85, Total: 680},
		{Date: "03/16/2024", BillableHours: 4, Rate: 85, Total: 340},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.UpdateItems(context.Background(), alice.ID, domain.RoleContractor, invoice.ID, []InvoiceItemInput{
		{Date: "03/17/2024", BillableHours: 10, Rate: 90, Total: 900},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(updated.Items) != 1 {
		t.Fatalf("items = %d, want wholesale replacement to one", len(updated.Items))
	}
	if updated.Items[0].DateOfWork != "2024-03-17" {
		t.Fatalf("date = %q, want 2024-03-17", updated.Items[0].DateOfWork)
	}
}

func TestInvoiceProjectionAligned(t *testing.T) {
	invoice := domain.Invoice{Items: []domain.InvoiceItem{
		{DateOfWork: "2024-03-15", ActualHours: "8", BillableHours: 8, Rate: 85, Total: 680, Notes: "crew"},
		{DateOfWork: "2024-03-16", ActualHours: "4", BillableHours: 4, Rate: 85, Total: 340, Notes: ""},
	}}

	p := invoice.Project()
	if len(p.BillableHours) != 2 || len(p.Rates) != 2 || len(p.Totals) != 2 ||
		len(p.ActualHours) != 2 || len(p.Notes) != 2 || len(p.DatesOfWork) != 2 {
		t.Fatalf("projection lists must all match item count: %+v", p)
	}
	for i, item := range invoice.Items {
		if p.BillableHours[i] != item.BillableHours || p.Rates[i] != item.Rate ||
			p.Totals[i] != item.Total || p.ActualHours[i] != item.ActualHours ||
			p.Notes[i] != item.Notes || p.DatesOfWork[i] != item.DateOfWork {
			t.Fatalf("projection misaligned at index %d: %+v vs %+v", i, p, item)
		}
	}
}

func TestGetInvoiceResolvesUserContact(t *testing.T) {
	svc, _, users := newInvoiceFixture()
	alice := users.add(domain.User{Name: "Alice", Email: "alice@example.com", Phone: "555-0101"})

	invoice, err := svc.Create(context.Background(), alice.ID, domain.RoleContractor, alice.ID, []InvoiceItemInput{
		{Date: "03/15/2024", BillableHours: 8, Rate: 85, Total: 680},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	detail, err := svc.Get(context.Background(), alice.ID, domain.RoleContractor, invoice.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if detail.UserName != "Alice" || detail.UserEmail != "alice@example.com" || detail.UserPhone != "555-0101" {
		t.Fatalf("contact fields not resolved: %+v", detail)
	}
	if len(detail.Projection.DatesOfWork) != 1 {
		t.Fatalf("projection missing: %+v", detail.Projection)
	}
}

func TestInvoiceOwnerOrAdminAccess(t *testing.T) {
	svc, _, users := newInvoiceFixture()
	alice := users.add(domain.User{Name: "Alice", Email: "alice@example.com", Role: domain.RoleContractor})
	bob := users.add(domain.User{Name: "Bob", Email: "bob@example.com", Role: domain.RoleContractor})

	invoice, err := svc.Create(context.Background(), alice.ID, domain.RoleContractor, alice.ID, []InvoiceItemInput{
		{Date: "03/15/2024", BillableHours: 8, Rate: 85, Total: 680},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Get(context.Background(), bob.ID, domain.RoleContractor, invoice.ID); err == nil {
		t.Fatal("foreign read should be refused")
	} else if code := apperrors.ToDomainError(err).Code; code != "FORBIDDEN" {
		t.Fatalf("foreign read code = %s, want FORBIDDEN", code)
	}

	replacement := []InvoiceItemInput{{Date: "03/16/2024", BillableHours: 1, Rate: 1, Total: 1}}
	if _, err := svc.UpdateItems(context.Background(), bob.ID, domain.RoleContractor, invoice.ID, replacement); err == nil {
		t.Fatal("foreign replace should be refused")
	} else if code := apperrors.ToDomainError(err).Code; code != "FORBIDDEN" {
		t.Fatalf("foreign replace code = %s, want FORBIDDEN", code)
	}

	stored, err := svc.Get(context.Background(), alice.ID, domain.RoleContractor, invoice.ID)
	if err != nil {
		t.Fatalf("owner read: %v", err)
	}
	if stored.Invoice.Items[0].DateOfWork != "2024-03-15" {
		t.Fatalf("refused replace still mutated the invoice: %+v", stored.Invoice.Items)
	}

	if _, err := svc.Get(context.Background(), "admin-1", domain.RoleAdmin, invoice.ID); err != nil {
		t.Fatalf("admin read: %v", err)
	}
	if _, err := svc.UpdateItems(context.Background(), "admin-1", domain.RoleAdmin, invoice.ID, replacement); err != nil {
		t.Fatalf("admin replace: %v", err)
	}
}

func TestCreateInvoiceContractorSelfOnly(t *testing.T) {
	svc, invoices, users := newInvoiceFixture()
	alice := users.add(domain.User{Name: "Alice", Email: "alice@example.com", Role: domain.RoleContractor})
	bob := users.add(domain.User{Name: "Bob", Email: "bob@example.com", Role: domain.RoleContractor})

	_, err := svc.Create(context.Background(), alice.ID, domain.RoleContractor, bob.ID, nil)
	if code := apperrors.ToDomainError(err).Code; code != "FORBIDDEN" {
		t.Fatalf("cross-contractor create code = %s, want FORBIDDEN", code)
	}
	if len(invoices.invoices) != 0 {
		t.Fatal("nothing should persist for a refused create")
	}

	if _, err := svc.Create(context.Background(), "admin-1", domain.RoleAdmin, bob.ID, nil); err != nil {
		t.Fatalf("admin create for a contractor: %v", err)
	}
}
