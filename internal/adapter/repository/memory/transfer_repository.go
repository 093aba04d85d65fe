package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/corebank/ledger-service/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// pendingTransferIndex marks an idempotency key reserved by an in-flight
// posting that has not yet appended its ledger record.
const pendingTransferIndex = -1

type TransferRepository struct {
	store *Store
}

func NewTransferRepository(store *Store) *TransferRepository {
	return &TransferRepository{store: store}
}

// ProcessTransfer runs the whole read-check-mutate-append sequence while
// holding both account locks, so a posting is all-or-nothing and isolated from
// every concurrent posting touching either account. Postings on disjoint
// account pairs only contend on the short ledger-append section.
func (r *TransferRepository) ProcessTransfer(_ context.Context, fromAccountID, toAccountID string, amount decimal.Decimal, description, idempotencyKey string) (domain.Transfer, error) {
	if fromAccountID == toAccountID {
		return domain.Transfer{}, domain.ErrSelfTransfer
	}

	unlock := r.store.lockAccounts(fromAccountID, toAccountID)
	defer unlock()

	r.store.mu.Lock()
	if idempotencyKey != "" {
		if _, seen := r.store.transferKeys[idempotencyKey]; seen {
			r.store.mu.Unlock()
			return domain.Transfer{}, domain.ErrDuplicateIdempotencyKey
		}
		// Reserve the key in the same critical section as the check so a
		// concurrent posting on a disjoint account pair cannot reuse it.
		r.store.transferKeys[idempotencyKey] = pendingTransferIndex
	}
	from, fromOK := r.store.accounts[fromAccountID]
	to, toOK := r.store.accounts[toAccountID]
	r.store.mu.Unlock()

	abort := func(err error) (domain.Transfer, error) {
		if idempotencyKey != "" {
			r.store.mu.Lock()
			delete(r.store.transferKeys, idempotencyKey)
			r.store.mu.Unlock()
		}
		return domain.Transfer{}, err
	}

	if !fromOK {
		return abort(fmt.Errorf("source account %s: %w", fromAccountID, domain.ErrAccountNotFound))
	}
	if !toOK {
		return abort(fmt.Errorf("destination account %s: %w", toAccountID, domain.ErrAccountNotFound))
	}
	if from.Balance.LessThan(amount) {
		return abort(fmt.Errorf("account %s: %w", fromAccountID, domain.ErrInsufficientFunds))
	}

	// Balance fields are guarded by the account locks held above.
	now := time.Now().UTC()
	from.Balance = from.Balance.Sub(amount)
	from.UpdatedAt = now
	to.Balance = to.Balance.Add(amount)
	to.UpdatedAt = now

	transfer := domain.Transfer{
		ID:            uuid.NewString(),
		FromAccountID: fromAccountID,
		ToAccountID:   toAccountID,
		Amount:        amount,
		Timestamp:     now,
	}
	if description != "" {
		transfer.Description = &description
	}
	if idempotencyKey != "" {
		transfer.IdempotencyKey = &idempotencyKey
	}

	r.store.mu.Lock()
	if idempotencyKey != "" {
		r.store.transferKeys[idempotencyKey] = len(r.store.transfers)
	}
	r.store.transfers = append(r.store.transfers, transfer)
	r.store.mu.Unlock()

	return transfer, nil
}

func (r *TransferRepository) HistoryFor(_ context.Context, accountID string) ([]domain.Transfer, error) {
	return r.store.historyFor(accountID), nil
}

func (r *TransferRepository) GetByIdempotencyKey(_ context.Context, key string) (domain.Transfer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	index, ok := r.store.transferKeys[key]
	if !ok || index == pendingTransferIndex {
		return domain.Transfer{}, domain.ErrTransferNotFound
	}
	return r.store.transfers[index], nil
}
