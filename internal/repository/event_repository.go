package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/staffing-service/internal/domain"
)

// EventRepository encapsulates event persistence.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	Update(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type eventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository instantiates repository.
func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &eventRepository{pool: pool}
}

const eventColumns = `id, name, load_in, load_in_hours, load_out, load_out_hours, location,
       description, assigned_contractors, accepted_contractors, rejected_contractors,
       approved_contractors, status, created_at, updated_at`

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	const query = `
        INSERT INTO events (name, load_in, load_in_hours, load_out, load_out_hours, location,
            description, assigned_contractors, accepted_contractors, rejected_contractors,
            approved_contractors, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		event.Name,
		event.LoadIn,
		event.LoadInHours,
		event.LoadOut,
		event.LoadOutHours,
		event.Location,
		event.Description,
		event.Assigned,
		event.Accepted,
		event.Rejected,
		event.Approved,
		event.Status,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
}

func (r *eventRepository) Update(ctx context.Context, event *domain.Event) error {
	const query = `
        UPDATE events SET name=$1, load_in=$2, load_in_hours=$3, load_out=$4, load_out_hours=$5,
            location=$6, description=$7, assigned_contractors=$8, accepted_contractors=$9,
            rejected_contractors=$10, approved_contractors=$11, status=$12, updated_at=NOW()
        WHERE id=$13`
	cmd, err := r.pool.Exec(ctx, query,
		event.Name,
		event.LoadIn,
		event.LoadInHours,
		event.LoadOut,
		event.LoadOutHours,
		event.Location,
		event.Description,
		event.Assigned,
		event.Accepted,
		event.Rejected,
		event.Approved,
		event.Status,
		event.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id=$1`
	var event domain.Event
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&event.ID,
		&event.Name,
		&event.LoadIn,
		&event.LoadInHours,
		&event.LoadOut,
		&event.LoadOutHours,
		&event.Location,
		&event.Description,
		&event.Assigned,
		&event.Accepted,
		&event.Rejected,
		&event.Approved,
		&event.Status,
		&event.CreatedAt,
		&event.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) List(ctx context.Context) ([]domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY load_in DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Event
	for rows.Next() {
		var event domain.Event
		if err := rows.Scan(
			&event.ID,
			&event.Name,
			&event.LoadIn,
			&event.LoadInHours,
			&event.LoadOut,
			&event.LoadOutHours,
			&event.Location,
			&event.Description,
			&event.Assigned,
			&event.Accepted,
			&event.Rejected,
			&event.Approved,
			&event.Status,
			&event.CreatedAt,
			&event.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, event)
	}
	return result, rows.Err()
}

func (r *eventRepository) Delete(ctx context.Context, id string) (int64, error) {
	const query = `DELETE FROM events WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
