package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-analytics/internal/domain"
)

// InvoiceRepository reads immutable invoice snapshots.
type InvoiceRepository interface {
	ListIssuedBetween(ctx context.Context, start, end time.Time) ([]domain.Invoice, error)
}

type invoiceRepository struct {
	pool *pgxpool.Pool
}

// NewInvoiceRepository instantiates repository.
func NewInvoiceRepository(pool *pgxpool.Pool) InvoiceRepository {
	return &invoiceRepository{pool: pool}
}

// ListIssuedBetween returns invoices whose issue date falls in
// [start, end] inclusive. Invoices without an issue date never match.
func (r *invoiceRepository) ListIssuedBetween(ctx context.Context, start, end time.Time) ([]domain.Invoice, error) {
	const query = `
        SELECT id, customer_id, amount, status, issue_date, due_date
        FROM invoices
        WHERE issue_date >= $1 AND issue_date <= $2
        ORDER BY issue_date ASC, id ASC`
	rows, err := r.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.Invoice, 0)
	for rows.Next() {
		var (
			invoice   domain.Invoice
			issueDate pgtype.Timestamptz
			dueDate   pgtype.Timestamptz
		)
		if err := rows.Scan(
			&invoice.ID,
			&invoice.CustomerID,
			&invoice.Amount,
			&invoice.Status,
			&issueDate,
			&dueDate,
		); err != nil {
			return nil, err
		}
		invoice.IssueDate = normalized(issueDate)
		invoice.DueDate = normalized(dueDate)
		result = append(result, invoice)
	}
	return result, rows.Err()
}
