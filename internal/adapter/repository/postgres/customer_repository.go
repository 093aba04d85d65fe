package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/corebank/ledger-service/internal/domain"
	"github.com/corebank/ledger-service/internal/logger"
)

type CustomerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) GetByID(ctx context.Context, customerID string) (domain.Customer, error) {
	const query = `
SELECT id, name, created_at
FROM customers
WHERE id::text = $1`

	var customer domain.Customer
	if err := r.db.QueryRowContext(ctx, query, customerID).Scan(
		&customer.ID,
		&customer.Name,
		&customer.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Customer{}, domain.ErrOwnerNotFound
		}
		logger.Error("customer repository get failed", err, logger.Fields{
			"customerId": customerID,
		})
		return domain.Customer{}, fmt.Errorf("get customer by id: %w", err)
	}

	return customer, nil
}

func (r *CustomerRepository) GetAll(ctx context.Context) ([]domain.Customer, error) {
	const query = `
SELECT id, name, created_at
FROM customers
ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("customer repository get all failed", err, nil)
		return nil, fmt.Errorf("query customers: %w", err)
	}
	defer rows.Close()

	customers := make([]domain.Customer, 0)
	for rows.Next() {
		var customer domain.Customer
		if err := rows.Scan(&customer.ID, &customer.Name, &customer.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, customer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customers: %w", err)
	}

	return customers, nil
}

func (r *CustomerRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM customers`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return count, nil
}

func (r *CustomerRepository) CreateAll(ctx context.Context, customers []domain.Customer) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin customer seed transaction: %w", err)
	}

	for _, customer := range customers {
		if _, err := tx.ExecContext(ctx, `INSERT INTO customers (name) VALUES ($1)`, customer.Name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert customer %q: %w", customer.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit customer seed transaction: %w", err)
	}

	logger.Info("customer repository seeded customers", logger.Fields{
		"count": len(customers),
	})
	return nil
}
