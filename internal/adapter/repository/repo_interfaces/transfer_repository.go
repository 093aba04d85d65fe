package repo_interfaces

import (
	"context"

	"github.com/corebank/ledger-service/internal/domain"
	"github.com/shopspring/decimal"
)

type TransferRepository interface {
	// ProcessTransfer is the atomic unit of work behind a funds movement: debit
	// the source (guarded so the balance never goes negative), credit the
	// destination and append the transfer record, all-or-nothing and isolated
	// from concurrent postings touching either account. A failed posting leaves
	// both balances and the ledger untouched.
	//
	// Expected failures: domain.ErrAccountNotFound, domain.ErrInsufficientFunds,
	// domain.ErrDuplicateIdempotencyKey, and domain.ErrTransferConflict when the
	// posting lost a serialization race and may be retried.
	ProcessTransfer(ctx context.Context, fromAccountID, toAccountID string, amount decimal.Decimal, description, idempotencyKey string) (domain.Transfer, error)

	// HistoryFor returns every transfer where the account is source or
	// destination, most recent first, ties broken by reverse insertion order.
	// An account with no transfers yields an empty slice, not an error.
	HistoryFor(ctx context.Context, accountID string) ([]domain.Transfer, error)

	GetByIdempotencyKey(ctx context.Context, key string) (domain.Transfer, error)
}
