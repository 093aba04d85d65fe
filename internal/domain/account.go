package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a ledger-tracked balance owned by a customer. Only account opening
// writes the initial balance; afterwards the balance column is mutated solely by
// the transfer posting unit of work.
type Account struct {
	ID            string
	AccountNumber string
	OwnerID       string
	Balance       decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
