// Package memory is the in-process storage engine. It implements the same
// repository contracts as the postgres adapter and backs the service tests.
package memory

import (
	"sort"
	"sync"

	"github.com/corebank/ledger-service/internal/domain"
)

// Store holds all shared mutable state behind explicit locks. It is
// constructed once at startup and passed by handle to the repositories; the
// per-account mutexes serialize postings that touch the same account while
// disjoint account pairs proceed in parallel.
type Store struct {
	mu           sync.Mutex
	accounts     map[string]*domain.Account
	accountLocks map[string]*sync.Mutex
	customers    []domain.Customer
	customerByID map[string]int
	transfers    []domain.Transfer
	transferKeys map[string]int
}

func NewStore() *Store {
	return &Store{
		accounts:     make(map[string]*domain.Account),
		accountLocks: make(map[string]*sync.Mutex),
		customerByID: make(map[string]int),
		transferKeys: make(map[string]int),
	}
}

func (s *Store) accountLock(accountID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accountLocks[accountID]; !ok {
		s.accountLocks[accountID] = &sync.Mutex{}
	}
	return s.accountLocks[accountID]
}

// lockAccounts acquires both account locks in ascending id order, never
// argument order, so opposing postings on the same pair cannot deadlock.
func (s *Store) lockAccounts(a, b string) func() {
	first, second := a, b
	if second < first {
		first, second = second, first
	}

	firstLock := s.accountLock(first)
	secondLock := s.accountLock(second)

	firstLock.Lock()
	secondLock.Lock()
	return func() {
		secondLock.Unlock()
		firstLock.Unlock()
	}
}

// historyFor returns matches ordered by timestamp descending with ties broken
// by reverse insertion order. Callers must not hold s.mu.
func (s *Store) historyFor(accountID string) []domain.Transfer {
	s.mu.Lock()
	defer s.mu.Unlock()

	matches := make([]domain.Transfer, 0)
	for i := len(s.transfers) - 1; i >= 0; i-- {
		t := s.transfers[i]
		if t.FromAccountID == accountID || t.ToAccountID == accountID {
			matches = append(matches, t)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Timestamp.After(matches[j].Timestamp)
	})
	return matches
}
