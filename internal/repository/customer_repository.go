package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-analytics/internal/domain"
)

// CustomerRepository reads customer identities for report labelling.
type CustomerRepository interface {
	ListAll(ctx context.Context) ([]domain.Customer, error)
}

type customerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository instantiates repository.
func NewCustomerRepository(pool *pgxpool.Pool) CustomerRepository {
	return &customerRepository{pool: pool}
}

func (r *customerRepository) ListAll(ctx context.Context) ([]domain.Customer, error) {
	const query = `SELECT id, name FROM customers ORDER BY id ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.Customer, 0)
	for rows.Next() {
		var customer domain.Customer
		if err := rows.Scan(&customer.ID, &customer.Name); err != nil {
			return nil, err
		}
		result = append(result, customer)
	}
	return result, rows.Err()
}
