package service_interfaces

import (
	"context"

	"github.com/corebank/ledger-service/internal/adapter/http/models"
	"github.com/corebank/ledger-service/internal/commons"
)

type CustomerService interface {
	GetAllCustomers(ctx context.Context) (commons.Response[[]models.CustomerResponse], error)
	GetCustomer(ctx context.Context, customerID string) (commons.Response[models.CustomerResponse], error)
}
