package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/staffing-service/internal/domain"
)

// CorrectionRepository manages correction-report persistence.
type CorrectionRepository interface {
	Create(ctx context.Context, report *domain.CorrectionReport) error
	Update(ctx context.Context, report *domain.CorrectionReport) error
	GetByID(ctx context.Context, id string) (*domain.CorrectionReport, error)
	List(ctx context.Context) ([]domain.CorrectionReport, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type correctionRepository struct {
	pool *pgxpool.Pool
}

// NewCorrectionRepository constructs repository.
func NewCorrectionRepository(pool *pgxpool.Pool) CorrectionRepository {
	return &correctionRepository{pool: pool}
}

const correctionColumns = `id, event_id, user_id, request_type, description, requested_correction,
       file_paths, status, created_at, updated_at`

func (r *correctionRepository) Create(ctx context.Context, report *domain.CorrectionReport) error {
	const query = `
        INSERT INTO correction_reports (event_id, user_id, request_type, description,
            requested_correction, file_paths, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		report.EventID,
		report.UserID,
		report.RequestType,
		report.Description,
		report.RequestedCorrection,
		report.FilePaths,
		report.Status,
	).Scan(&report.ID, &report.CreatedAt, &report.UpdatedAt)
}

func (r *correctionRepository) Update(ctx context.Context, report *domain.CorrectionReport) error {
	const query = `
        UPDATE correction_reports SET event_id=$1, user_id=$2, request_type=$3, description=$4,
            requested_correction=$5, file_paths=$6, status=$7, updated_at=NOW()
        WHERE id=$8`
	cmd, err := r.pool.Exec(ctx, query,
		report.EventID,
		report.UserID,
		report.RequestType,
		report.Description,
		report.RequestedCorrection,
		report.FilePaths,
		report.Status,
		report.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *correctionRepository) GetByID(ctx context.Context, id string) (*domain.CorrectionReport, error) {
	query := `SELECT ` + correctionColumns + ` FROM correction_reports WHERE id=$1`
	var report domain.CorrectionReport
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&report.ID,
		&report.EventID,
		&report.UserID,
		&report.RequestType,
		&report.Description,
		&report.RequestedCorrection,
		&report.FilePaths,
		&report.Status,
		&report.CreatedAt,
		&report.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *correctionRepository) List(ctx context.Context) ([]domain.CorrectionReport, error) {
	query := `SELECT ` + correctionColumns + ` FROM correction_reports ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CorrectionReport
	for rows.Next() {
		var report domain.CorrectionReport
		if err := rows.Scan(
			&report.ID,
			&report.EventID,
			&report.UserID,
			&report.RequestType,
			&report.Description,
			&report.RequestedCorrection,
			&report.FilePaths,
			&report.Status,
			&report.CreatedAt,
			&report.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, report)
	}
	return result, rows.Err()
}

func (r *correctionRepository) Delete(ctx context.Context, id string) (int64, error) {
	const query = `DELETE FROM correction_reports WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
