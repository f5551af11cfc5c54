package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-analytics/internal/domain"
)

// DownloadRepository stores the append-only report download audit trail.
// Records are never updated or deleted.
type DownloadRepository interface {
	Append(ctx context.Context, record *domain.DownloadRecord) error
	Recent(ctx context.Context, userID string, limit int) ([]domain.DownloadRecord, error)
}

type downloadRepository struct {
	pool *pgxpool.Pool
}

// NewDownloadRepository instantiates repository.
func NewDownloadRepository(pool *pgxpool.Pool) DownloadRepository {
	return &downloadRepository{pool: pool}
}

// Append inserts a download record. The downloaded_at instant is
// assigned by the database, never by the caller.
func (r *downloadRepository) Append(ctx context.Context, record *domain.DownloadRecord) error {
	const query = `
        INSERT INTO report_downloads (report_id, report_name, user_id, parameters)
        VALUES ($1,$2,$3,$4)
        RETURNING id, downloaded_at`
	return r.pool.QueryRow(ctx, query,
		record.ReportID,
		record.ReportName,
		record.UserID,
		record.Parameters,
	).Scan(&record.ID, &record.DownloadedAt)
}

// Recent returns the limit most recent download records for a user,
// newest first.
func (r *downloadRepository) Recent(ctx context.Context, userID string, limit int) ([]domain.DownloadRecord, error) {
	const query = `
        SELECT id, report_id, report_name, user_id, parameters, downloaded_at
        FROM report_downloads WHERE user_id=$1
        ORDER BY downloaded_at DESC, id DESC
        LIMIT $2`
	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.DownloadRecord, 0)
	for rows.Next() {
		var record domain.DownloadRecord
		if err := rows.Scan(
			&record.ID,
			&record.ReportID,
			&record.ReportName,
			&record.UserID,
			&record.Parameters,
			&record.DownloadedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, record)
	}
	return result, rows.Err()
}
