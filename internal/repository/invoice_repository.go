package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/staffing-service/internal/domain"
)

// InvoiceRepository encapsulates invoice persistence. Line items are stored
// as a single jsonb document; the parallel display arrays are never stored.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.Invoice) error
	ReplaceItems(ctx context.Context, id string, items []domain.InvoiceItem) error
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)
	List(ctx context.Context) ([]domain.Invoice, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Invoice, error)
}

type invoiceRepository struct {
	pool *pgxpool.Pool
}

// NewInvoiceRepository constructs repository.
func NewInvoiceRepository(pool *pgxpool.Pool) InvoiceRepository {
	return &invoiceRepository{pool: pool}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) error {
	items, err := json.Marshal(invoice.Items)
	if err != nil {
		return err
	}
	const query = `
        INSERT INTO invoices (user_id, items)
        VALUES ($1, $2)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query, invoice.UserID, items).
		Scan(&invoice.ID, &invoice.CreatedAt, &invoice.UpdatedAt)
}

func (r *invoiceRepository) ReplaceItems(ctx context.Context, id string, items []domain.InvoiceItem) error {
	encoded, err := json.Marshal(items)
	if err != nil {
		return err
	}
	const query = `UPDATE invoices SET items=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, encoded, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *invoiceRepository) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	const query = `
        SELECT id, user_id, items, created_at, updated_at
        FROM invoices WHERE id=$1`
	var invoice domain.Invoice
	var items []byte
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&invoice.ID,
		&invoice.UserID,
		&items,
		&invoice.CreatedAt,
		&invoice.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &invoice.Items); err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) List(ctx context.Context) ([]domain.Invoice, error) {
	const query = `
        SELECT id, user_id, items, created_at, updated_at
        FROM invoices ORDER BY updated_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanInvoices(rows)
}

func (r *invoiceRepository) ListByUser(ctx context.Context, userID string) ([]domain.Invoice, error) {
	const query = `
        SELECT id, user_id, items, created_at, updated_at
        FROM invoices WHERE user_id=$1 ORDER BY updated_at DESC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanInvoices(rows)
}

func scanInvoices(rows pgx.Rows) ([]domain.Invoice, error) {
	var result []domain.Invoice
	for rows.Next() {
		var invoice domain.Invoice
		var items []byte
		if err := rows.Scan(
			&invoice.ID,
			&invoice.UserID,
			&items,
			&invoice.CreatedAt,
			&invoice.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(items, &invoice.Items); err != nil {
			return nil, err
		}
		result = append(result, invoice)
	}
	return result, rows.Err()
}
