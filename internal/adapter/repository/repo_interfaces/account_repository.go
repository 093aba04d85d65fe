package repo_interfaces

import (
	"context"

	"github.com/corebank/ledger-service/internal/domain"
)

type AccountRepository interface {
	// Create persists a new account with its opening balance. A clash on the
	// generated account number surfaces domain.ErrDuplicateAccountNumber so the
	// caller can regenerate and retry.
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	GetByID(ctx context.Context, accountID string) (domain.Account, error)
	Exists(ctx context.Context, accountID string) (bool, error)
}
