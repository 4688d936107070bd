package service

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/internal/notify"
)

// In-memory repository fakes backing the service tests.

type memUserRepo struct {
	seq   int
	users map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*domain.User{}}
}

func (r *memUserRepo) add(user domain.User) *domain.User {
	if user.ID == "" {
		r.seq++
		user.ID = fmt.Sprintf("user-%d", r.seq)
	}
	r.users[user.ID] = &user
	return &user
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.seq++
	user.ID = fmt.Sprintf("user-%d", r.seq)
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memUserRepo) ListByRole(_ context.Context, role domain.Role) ([]domain.User, error) {
	var out []domain.User
	for _, user := range r.users {
		if user.Role == role {
			out = append(out, *user)
		}
	}
	return out, nil
}

func (r *memUserRepo) ListByIDs(_ context.Context, ids []string) ([]domain.User, error) {
	var out []domain.User
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			out = append(out, *user)
		}
	}
	return out, nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) (int64, error) {
	if _, ok := r.users[id]; !ok {
		return 0, nil
	}
	delete(r.users, id)
	return 1, nil
}

type memEventRepo struct {
	seq    int
	events map[string]*domain.Event
}

func newMemEventRepo() *memEventRepo {
	return &memEventRepo{events: map[string]*domain.Event{}}
}

func (r *memEventRepo) add(event domain.Event) *domain.Event {
	if event.ID == "" {
		r.seq++
		event.ID = fmt.Sprintf("event-%d", r.seq)
	}
	r.events[event.ID] = &event
	return &event
}

func (r *memEventRepo) Create(_ context.Context, event *domain.Event) error {
	r.seq++
	event.ID = fmt.Sprintf("event-%d", r.seq)
	clone := *event
	r.events[event.ID] = &clone
	return nil
}

func (r *memEventRepo) Update(_ context.Context, event *domain.Event) error {
	if _, ok := r.events[event.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *event
	r.events[event.ID] = &clone
	return nil
}

func (r *memEventRepo) GetByID(_ context.Context, id string) (*domain.Event, error) {
	event, ok := r.events[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *event
	return &clone, nil
}

func (r *memEventRepo) List(_ context.Context) ([]domain.Event, error) {
	var out []domain.Event
	for _, event := range r.events {
		out = append(out, *event)
	}
	return out, nil
}

func (r *memEventRepo) Delete(_ context.Context, id string) (int64, error) {
	if _, ok := r.events[id]; !ok {
		return 0, nil
	}
	delete(r.events, id)
	return 1, nil
}

type memCorrectionRepo struct {
	seq     int
	reports map[string]*domain.CorrectionReport
}

func newMemCorrectionRepo() *memCorrectionRepo {
	return &memCorrectionRepo{reports: map[string]*domain.CorrectionReport{}}
}

func (r *memCorrectionRepo) Create(_ context.Context, report *domain.CorrectionReport) error {
	r.seq++
	report.ID = fmt.Sprintf("correction-%d", r.seq)
	clone := *report
	r.reports[report.ID] = &clone
	return nil
}

func (r *memCorrectionRepo) Update(_ context.Context, report *domain.CorrectionReport) error {
	if _, ok := r.reports[report.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *report
	r.reports[report.ID] = &clone
	return nil
}

func (r *memCorrectionRepo) GetByID(_ context.Context, id string) (*domain.CorrectionReport, error) {
	report, ok := r.reports[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *report
	return &clone, nil
}

func (r *memCorrectionRepo) List(_ context.Context) ([]domain.CorrectionReport, error) {
	var out []domain.CorrectionReport
	for _, report := range r.reports {
		out = append(out, *report)
	}
	return out, nil
}

func (r *memCorrectionRepo) Delete(_ context.Context, id string) (int64, error) {
	if _, ok := r.reports[id]; !ok {
		return 0, nil
	}
	delete(r.reports, id)
	return 1, nil
}

type memIncidentRepo struct {
	seq     int
	reports []domain.IncidentReport
}

func (r *memIncidentRepo) Create(_ context.Context, report *domain.IncidentReport) error {
	r.seq++
	report.ID = fmt.Sprintf("incident-%d", r.seq)
	r.reports = append(r.reports, *report)
	return nil
}

func (r *memIncidentRepo) List(_ context.Context) ([]domain.IncidentReport, error) {
	return append([]domain.IncidentReport(nil), r.reports...), nil
}

type memInvoiceRepo struct {
	seq      int
	invoices map[string]*domain.Invoice
}

func newMemInvoiceRepo() *memInvoiceRepo {
	return &memInvoiceRepo{invoices: map[string]*domain.Invoice{}}
}

func (r *memInvoiceRepo) Create(_ context.Context, invoice *domain.Invoice) error {
	r.seq++
	invoice.ID = fmt.Sprintf("invoice-%d", r.seq)
	clone := *invoice
	r.invoices[invoice.ID] = &clone
	return nil
}

func (r *memInvoiceRepo) ReplaceItems(_ context.Context, id string, items []domain.InvoiceItem) error {
	invoice, ok := r.invoices[id]
	if !ok {
		return pgx.ErrNoRows
	}
	invoice.Items = items
	return nil
}

func (r *memInvoiceRepo) GetByID(_ context.Context, id string) (*domain.Invoice, error) {
	invoice, ok := r.invoices[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *invoice
	return &clone, nil
}

func (r *memInvoiceRepo) List(_ context.Context) ([]domain.Invoice, error) {
	var out []domain.Invoice
	for _, invoice := range r.invoices {
		out = append(out, *invoice)
	}
	return out, nil
}

func (r *memInvoiceRepo) ListByUser(_ context.Context, userID string) ([]domain.Invoice, error) {
	var out []domain.Invoice
	for _, invoice := range r.invoices {
		if invoice.UserID == userID {
			out = append(out, *invoice)
		}
	}
	return out, nil
}

// repoNames resolves names straight from the user repo, no cache.
type repoNames struct {
	users *memUserRepo
}

func (n repoNames) Names(ctx context.Context, ids []string) (map[string]string, error) {
	users, err := n.users.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(users))
	for _, user := range users {
		out[user.ID] = user.Name
	}
	return out, nil
}

func (n repoNames) Invalidate(context.Context, string) {}

// recordingNotifier captures assignment fan-outs and reports every
// recipient as sent.
type recordingNotifier struct {
	payloads []notify.ContractorsAssignedPayload
}

func (n *recordingNotifier) NotifyAssignment(_ context.Context, payload notify.ContractorsAssignedPayload) notify.FanOutSummary {
	n.payloads = append(n.payloads, payload)
	return notify.FanOutSummary{Sent: len(payload.Recipients)}
}

// recordingDispatcher captures published events.
type recordingDispatcher struct {
	events []notify.Event
}

func (d *recordingDispatcher) Subscribe(notify.EventType, notify.EventHandler) {}

func (d *recordingDispatcher) Publish(_ context.Context, event notify.Event) error {
	d.events = append(d.events, event)
	return nil
}
