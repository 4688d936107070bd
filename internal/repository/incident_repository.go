package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/staffing-service/internal/domain"
)

// IncidentRepository manages incident-report persistence.
type IncidentRepository interface {
	Create(ctx context.Context, report *domain.IncidentReport) error
	List(ctx context.Context) ([]domain.IncidentReport, error)
}

type incidentRepository struct {
	pool *pgxpool.Pool
}

// NewIncidentRepository constructs repository.
func NewIncidentRepository(pool *pgxpool.Pool) IncidentRepository {
	return &incidentRepository{pool: pool}
}

func (r *incidentRepository) Create(ctx context.Context, report *domain.IncidentReport) error {
	const query = `
        INSERT INTO incident_reports (name, start_date, end_date, request_type, description)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		report.Name,
		report.StartDate,
		report.EndDate,
		report.RequestType,
		report.Description,
	).Scan(&report.ID, &report.CreatedAt)
}

func (r *incidentRepository) List(ctx context.Context) ([]domain.IncidentReport, error) {
	const query = `
        SELECT id, name, start_date, end_date, request_type, description, created_at
        FROM incident_reports ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.IncidentReport
	for rows.Next() {
		var report domain.IncidentReport
		if err := rows.Scan(
			&report.ID,
			&report.Name,
			&report.StartDate,
			&report.EndDate,
			&report.RequestType,
			&report.Description,
			&report.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, report)
	}
	return result, rows.Err()
}
