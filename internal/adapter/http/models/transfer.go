package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type TransferRequest struct {
	FromAccountID string           `json:"fromAccountId"`
	ToAccountID   string           `json:"toAccountId"`
	Amount        *decimal.Decimal `json:"amount"`
	Description   string           `json:"description,omitempty"`

	// IdempotencyKey is optional; repeating a request with the same key
	// replays the original transfer instead of moving funds again.
	IdempotencyKey string `json:"idempotencyKey,omitempty"`
}

// Validate only checks request shape. Amount semantics (positivity, scale) and
// account resolution belong to the transfer engine, which enforces them in a
// fixed order.
func (r TransferRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.FromAccountID) == "" {
		errs = append(errs, "fromAccountId is required")
	}
	if strings.TrimSpace(r.ToAccountID) == "" {
		errs = append(errs, "toAccountId is required")
	}
	if r.Amount == nil {
		errs = append(errs, "amount is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type TransferResponse struct {
	ID            string          `json:"id"`
	FromAccountID string          `json:"fromAccountId"`
	ToAccountID   string          `json:"toAccountId"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description,omitempty"`
	Timestamp     string          `json:"timestamp"`
	Replayed      bool            `json:"replayed,omitempty"`
}
