package memory

import (
	"context"
	"time"

	"github.com/corebank/ledger-service/internal/domain"
	"github.com/google/uuid"
)

type AccountRepository struct {
	store *Store
}

func NewAccountRepository(store *Store) *AccountRepository {
	return &AccountRepository{store: store}
}

func (r *AccountRepository) Create(_ context.Context, account domain.Account) (domain.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.accounts {
		if existing.AccountNumber == account.AccountNumber {
			return domain.Account{}, domain.ErrDuplicateAccountNumber
		}
	}

	now := time.Now().UTC()
	account.ID = uuid.NewString()
	account.CreatedAt = now
	account.UpdatedAt = now

	stored := account
	r.store.accounts[account.ID] = &stored
	return account, nil
}

func (r *AccountRepository) GetByID(_ context.Context, accountID string) (domain.Account, error) {
	// Resolve existence before minting a lock entry; unknown ids must not
	// grow the lock map. Accounts are never deleted, so the check holds.
	r.store.mu.Lock()
	_, ok := r.store.accounts[accountID]
	r.store.mu.Unlock()
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	// Take the account lock next: balance fields are guarded by it, not by
	// the store mutex. Same acquisition order as the posting path.
	lock := r.store.accountLock(accountID)
	lock.Lock()
	defer lock.Unlock()

	r.store.mu.Lock()
	account := r.store.accounts[accountID]
	r.store.mu.Unlock()

	// Snapshot copy so callers never touch engine-owned state.
	return *account, nil
}

func (r *AccountRepository) Exists(_ context.Context, accountID string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	_, ok := r.store.accounts[accountID]
	return ok, nil
}
