package repo_interfaces

import (
	"context"

	"github.com/corebank/ledger-service/internal/domain"
)

// CustomerRepository is the read-only view of the external customer directory.
type CustomerRepository interface {
	GetByID(ctx context.Context, customerID string) (domain.Customer, error)
	GetAll(ctx context.Context) ([]domain.Customer, error)
	Count(ctx context.Context) (int, error)
	CreateAll(ctx context.Context, customers []domain.Customer) error
}
