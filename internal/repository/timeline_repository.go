package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-analytics/internal/domain"
)

// TimelineRepository reads append-only ticket activity entries.
type TimelineRepository interface {
	ListByTicket(ctx context.Context, ticketID string) ([]domain.TimelineEntry, error)
}

type timelineRepository struct {
	pool *pgxpool.Pool
}

// NewTimelineRepository instantiates repository.
func NewTimelineRepository(pool *pgxpool.Pool) TimelineRepository {
	return &timelineRepository{pool: pool}
}

// ListByTicket returns a ticket's timeline in ascending time order.
func (r *timelineRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.TimelineEntry, error) {
	const query = `
        SELECT ticket_id, entry_type, created_at
        FROM ticket_timeline WHERE ticket_id=$1
        ORDER BY created_at ASC NULLS LAST`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.TimelineEntry, 0)
	for rows.Next() {
		var (
			entry     domain.TimelineEntry
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&entry.TicketID, &entry.Type, &createdAt); err != nil {
			return nil, err
		}
		entry.CreatedAt = normalized(createdAt)
		result = append(result, entry)
	}
	return result, rows.Err()
}
