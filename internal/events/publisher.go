package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TransferCompleted is emitted after a transfer has committed. Publication is
// best effort and never affects the committed transfer.
type TransferCompleted struct {
	TransferID    string          `json:"transferId"`
	FromAccountID string          `json:"fromAccountId"`
	ToAccountID   string          `json:"toAccountId"`
	Amount        decimal.Decimal `json:"amount"`
	Timestamp     time.Time       `json:"timestamp"`
}

type Publisher interface {
	PublishTransferCompleted(ctx context.Context, event TransferCompleted) error
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishTransferCompleted(context.Context, TransferCompleted) error {
	return nil
}
