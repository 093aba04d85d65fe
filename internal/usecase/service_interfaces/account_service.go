package service_interfaces

import (
	"context"

	"github.com/corebank/ledger-service/internal/adapter/http/models"
	"github.com/corebank/ledger-service/internal/commons"
)

type AccountService interface {
	CreateAccount(ctx context.Context, req models.CreateAccountRequest) (commons.Response[models.AccountResponse], error)
}
