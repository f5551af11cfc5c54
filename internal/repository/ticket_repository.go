package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-analytics/internal/analytics"
	"github.com/spec-kit/helpdesk-analytics/internal/domain"
)

// TicketRepository reads immutable ticket snapshots. The aggregation
// engine never mutates tickets.
type TicketRepository interface {
	ListAll(ctx context.Context) ([]domain.Ticket, error)
	ListByCompany(ctx context.Context, companyID string) ([]domain.Ticket, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, company_id, title, category, priority, status, created_at, updated_at, sla_deadline`

func (r *ticketRepository) ListAll(ctx context.Context) ([]domain.Ticket, error) {
	const query = `SELECT ` + ticketColumns + ` FROM tickets ORDER BY created_at ASC NULLS LAST, id ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) ListByCompany(ctx context.Context, companyID string) ([]domain.Ticket, error) {
	const query = `SELECT ` + ticketColumns + ` FROM tickets WHERE company_id=$1 ORDER BY created_at ASC NULLS LAST, id ASC`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	result := make([]domain.Ticket, 0)
	for rows.Next() {
		var (
			ticket      domain.Ticket
			createdAt   pgtype.Timestamptz
			updatedAt   pgtype.Timestamptz
			slaDeadline pgtype.Timestamptz
		)
		if err := rows.Scan(
			&ticket.ID,
			&ticket.CompanyID,
			&ticket.Title,
			&ticket.Category,
			&ticket.Priority,
			&ticket.Status,
			&createdAt,
			&updatedAt,
			&slaDeadline,
		); err != nil {
			return nil, err
		}
		ticket.CreatedAt = normalized(createdAt)
		ticket.UpdatedAt = normalized(updatedAt)
		ticket.SLADeadline = normalized(slaDeadline)
		result = append(result, ticket)
	}
	return result, rows.Err()
}

// normalized runs a store-native timestamp through the normalizer so
// absent values stay nil downstream.
func normalized(v pgtype.Timestamptz) *time.Time {
	if t, ok := analytics.Normalize(v); ok {
		return &t
	}
	return nil
}
