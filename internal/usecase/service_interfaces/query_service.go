package service_interfaces

import (
	"context"

	"github.com/corebank/ledger-service/internal/adapter/http/models"
	"github.com/corebank/ledger-service/internal/commons"
)

// QueryService is the read-only facade over the two stores; it never invokes
// the transfer engine.
type QueryService interface {
	GetBalance(ctx context.Context, accountID string) (commons.Response[models.AccountResponse], error)
	GetTransferHistory(ctx context.Context, accountID string) (commons.Response[[]models.TransferResponse], error)
}
