package domain

import "errors"

// Business-level failures surfaced verbatim to callers. Anything else that
// escapes a repository is an internal storage failure and is reported opaquely.
var (
	ErrAccountNotFound  = errors.New("account not found")
	ErrOwnerNotFound    = errors.New("owner not found")
	ErrTransferNotFound = errors.New("transfer not found")

	ErrInvalidAmount     = errors.New("invalid amount")
	ErrSelfTransfer      = errors.New("source and destination accounts cannot be the same")
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrTransferConflict marks a concurrent-posting conflict the engine may
	// retry a bounded number of times before giving up.
	ErrTransferConflict = errors.New("transfer conflict")

	ErrDuplicateAccountNumber  = errors.New("account number already in use")
	ErrDuplicateIdempotencyKey = errors.New("idempotency key already recorded")
)
