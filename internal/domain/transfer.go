package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer is an immutable record of a completed atomic funds movement. It holds
// the two account ids as lookup keys, never live account references; history
// queries resolve them through the account store.
type Transfer struct {
	ID             string
	FromAccountID  string
	ToAccountID    string
	Amount         decimal.Decimal
	Description    *string
	IdempotencyKey *string
	Timestamp      time.Time
}
