package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/internal/repository"
	apperrors "github.com/spec-kit/staffing-service/pkg/util/errorutil"
)

// InvoiceService owns the normalization of raw submitted line items into the
// typed, persisted representation, plus invoice reads.
type InvoiceService struct {
	invoices repository.InvoiceRepository
	users    repository.UserRepository
}

// NewInvoiceService creates the service.
func NewInvoiceService(invoices repository.InvoiceRepository, users repository.UserRepository) *InvoiceService {
	return &InvoiceService{invoices: invoices, users: users}
}

// InvoiceItemInput is one raw submitted line. Numeric fields arrive as
// numbers or numeric strings from the form layer, so they are typed any and
// coerced during normalization.
type InvoiceItemInput struct {
	Date          string `json:"dateOfWork"`
	ActualHours   string `json:"actualHoursWorked"`
	BillableHours any    `json:"billableHours"`
	Rate          any    `json:"rate"`
	Total         any    `json:"total"`
	Notes         string `json:"notes"`
}

// InvoiceDetail is an invoice with its user's contact fields resolved.
type InvoiceDetail struct {
	Invoice    domain.Invoice
	Projection domain.InvoiceProjection
	UserName   string
	UserEmail  string
	UserPhone  string
}

// InvoiceSummary is a list row with minimal user fields.
type InvoiceSummary struct {
	Invoice   domain.Invoice
	UserName  string
	UserEmail string
}

// Create persists a new invoice for a user after normalizing its items.
// Contractors invoice for themselves only; admins may target any user.
func (s *InvoiceService) Create(ctx context.Context, actorID string, actorRole domain.Role, userID string, items []InvoiceItemInput) (*domain.Invoice, error) {
	if userID == "" {
		return nil, apperrors.NewValidationError("userID required", nil)
	}
	if actorRole != domain.RoleAdmin && userID != actorID {
		return nil, apperrors.NewForbidden("cannot invoice for another contractor")
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return nil, apperrors.MapError(err)
	}

	normalized, err := normalizeItems(items)
	if err != nil {
		return nil, err
	}

	invoice := &domain.Invoice{UserID: userID, Items: normalized}
	if err := s.invoices.Create(ctx, invoice); err != nil {
		return nil, apperrors.MapError(err)
	}
	return invoice, nil
}

// UpdateItems replaces the invoice's line items wholesale with the
// normalized form of the submitted list. Owner-or-admin only.
func (s *InvoiceService) UpdateItems(ctx context.Context, actorID string, actorRole domain.Role, id string, items []InvoiceItemInput) (*domain.Invoice, error) {
	if items == nil {
		return nil, apperrors.NewValidationError("items required", nil)
	}

	invoice, err := s.getInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwnerOrAdmin(invoice, actorID, actorRole); err != nil {
		return nil, err
	}

	normalized, err := normalizeItems(items)
	if err != nil {
		return nil, err
	}

	if err := s.invoices.ReplaceItems(ctx, id, normalized); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("invoice", map[string]any{"invoice_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return s.getInvoice(ctx, id)
}

// Get returns one invoice with user contact fields and the derived
// per-field projections. Owner-or-admin only.
func (s *InvoiceService) Get(ctx context.Context, actorID string, actorRole domain.Role, id string) (*InvoiceDetail, error) {
	invoice, err := s.getInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwnerOrAdmin(invoice, actorID, actorRole); err != nil {
		return nil, err
	}

	detail := &InvoiceDetail{Invoice: *invoice, Projection: invoice.Project()}
	if user, err := s.users.GetByID(ctx, invoice.UserID); err == nil {
		detail.UserName = user.Name
		detail.UserEmail = user.Email
		detail.UserPhone = user.Phone
	}
	return detail, nil
}

// ListAll returns every invoice with minimal user fields resolved.
func (s *InvoiceService) ListAll(ctx context.Context) ([]InvoiceSummary, error) {
	invoices, err := s.invoices.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.summarize(ctx, invoices)
}

// ListByUser returns the invoices referencing one user.
func (s *InvoiceService) ListByUser(ctx context.Context, userID string) ([]InvoiceSummary, error) {
	invoices, err := s.invoices.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.summarize(ctx, invoices)
}

func (s *InvoiceService) summarize(ctx context.Context, invoices []domain.Invoice) ([]InvoiceSummary, error) {
	summaries := make([]InvoiceSummary, 0, len(invoices))
	for i := range invoices {
		summary := InvoiceSummary{Invoice: invoices[i]}
		if user, err := s.users.GetByID(ctx, invoices[i].UserID); err == nil {
			summary.UserName = user.Name
			summary.UserEmail = user.Email
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *InvoiceService) getInvoice(ctx context.Context, id string) (*domain.Invoice, error) {
	invoice, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("invoice", map[string]any{"invoice_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return invoice, nil
}

func requireOwnerOrAdmin(invoice *domain.Invoice, actorID string, actorRole domain.Role) error {
	if actorRole == domain.RoleAdmin || invoice.UserID == actorID {
		return nil
	}
	return apperrors.NewForbidden("cannot access another contractor's invoice")
}

func normalizeItems(items []InvoiceItemInput) ([]domain.InvoiceItem, error) {
	normalized := make([]domain.InvoiceItem, 0, len(items))
	for i, item := range items {
		date, err := normalizeWorkDate(item.Date)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid work date", map[string]any{
				"index": i,
				"date":  item.Date,
			})
		}
		billable, err := coerceFloat(item.BillableHours)
		if err != nil {
			return nil, apperrors.NewValidationError("billableHours must be numeric", map[string]any{"index": i})
		}
		rate, err := coerceFloat(item.Rate)
		if err != nil {
			return nil, apperrors.NewValidationError("rate must be numeric", map[string]any{"index": i})
		}
		total, err := coerceFloat(item.Total)
		if err != nil {
			return nil, apperrors.NewValidationError("total must be numeric", map[string]any{"index": i})
		}

		normalized = append(normalized, domain.InvoiceItem{
			DateOfWork:    date,
			ActualHours:   strings.TrimSpace(item.ActualHours),
			BillableHours: billable,
			Rate:          rate,
			Total:         total,
			Notes:         strings.TrimSpace(item.Notes),
		})
	}
	return normalized, nil
}

// normalizeWorkDate keeps already-ISO timestamps (anything carrying a time
// separator) as-is modulo whitespace, and converts MM/DD/YYYY form input to
// an ISO calendar date.
func normalizeWorkDate(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if strings.Contains(trimmed, "T") {
		return trimmed, nil
	}
	parsed, err := time.Parse("01/02/2006", trimmed)
	if err != nil {
		return "", err
	}
	return parsed.Format("2006-01-02"), nil
}

func coerceFloat(val any) (float64, error) {
	switch v := val.(type) {
	case nil:
		return 0, nil
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, nil
		}
		return strconv.ParseFloat(trimmed, 64)
	default:
		return 0, errors.New("not a number")
	}
}
