package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/corebank/ledger-service/internal/domain"
	"github.com/corebank/ledger-service/internal/logger"
	"github.com/shopspring/decimal"
)

type TransferRepository struct {
	db *sql.DB
}

func NewTransferRepository(db *sql.DB) *TransferRepository {
	return &TransferRepository{db: db}
}

// ProcessTransfer posts both balance movements and the ledger append in one
// database transaction. The debit is guarded by `balance >= amount`, so the
// non-negativity invariant holds no matter how postings interleave. Both
// updates are issued in ascending account-id order; two opposing transfers on
// the same pair then take their row locks in the same order and cannot
// deadlock each other.
func (r *TransferRepository) ProcessTransfer(ctx context.Context, fromAccountID, toAccountID string, amount decimal.Decimal, description, idempotencyKey string) (domain.Transfer, error) {
	logger.Info("transfer repository process transfer", logger.Fields{
		"fromAccountId": fromAccountID,
		"toAccountId":   toAccountID,
		"amount":        amount.StringFixed(2),
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("transfer repository begin tx failed", err, nil)
		return domain.Transfer{}, fmt.Errorf("begin transfer transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	steps := []func() error{
		func() error { return r.debitSource(ctx, tx, fromAccountID, amount) },
		func() error { return r.creditDestination(ctx, tx, toAccountID, amount) },
	}
	if toAccountID < fromAccountID {
		steps[0], steps[1] = steps[1], steps[0]
	}
	for _, step := range steps {
		if err = step(); err != nil {
			if isSerializationFailure(err) {
				return domain.Transfer{}, domain.ErrTransferConflict
			}
			return domain.Transfer{}, err
		}
	}

	var transfer domain.Transfer
	transfer, err = r.appendRecord(ctx, tx, fromAccountID, toAccountID, amount, description, idempotencyKey)
	if err != nil {
		return domain.Transfer{}, err
	}

	if err = tx.Commit(); err != nil {
		if isSerializationFailure(err) {
			return domain.Transfer{}, domain.ErrTransferConflict
		}
		logger.Error("transfer repository commit tx failed", err, nil)
		return domain.Transfer{}, fmt.Errorf("commit transfer transaction: %w", err)
	}

	logger.Info("transfer repository process transfer success", logger.Fields{
		"transferId":    transfer.ID,
		"fromAccountId": fromAccountID,
		"toAccountId":   toAccountID,
	})
	return transfer, nil
}

func (r *TransferRepository) debitSource(ctx context.Context, tx *sql.Tx, accountID string, amount decimal.Decimal) error {
	const query = `
UPDATE accounts
SET balance = balance - $2::numeric,
    updated_at = NOW()
WHERE id::text = $1
  AND balance >= $2::numeric`

	rows, err := execRows(ctx, tx, query, accountID, amount.StringFixed(2))
	if err != nil {
		return err
	}
	if rows == 0 {
		exists, checkErr := existsInTx(ctx, tx, accountID)
		if checkErr != nil {
			return checkErr
		}
		if !exists {
			return fmt.Errorf("source account %s: %w", accountID, domain.ErrAccountNotFound)
		}
		return fmt.Errorf("account %s: %w", accountID, domain.ErrInsufficientFunds)
	}
	return nil
}

func (r *TransferRepository) creditDestination(ctx context.Context, tx *sql.Tx, accountID string, amount decimal.Decimal) error {
	const query = `
UPDATE accounts
SET balance = balance + $2::numeric,
    updated_at = NOW()
WHERE id::text = $1`

	rows, err := execRows(ctx, tx, query, accountID, amount.StringFixed(2))
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("destination account %s: %w", accountID, domain.ErrAccountNotFound)
	}
	return nil
}

func (r *TransferRepository) appendRecord(ctx context.Context, tx *sql.Tx, fromAccountID, toAccountID string, amount decimal.Decimal, description, idempotencyKey string) (domain.Transfer, error) {
	const query = `
INSERT INTO transfers (
	from_account_id,
	to_account_id,
	amount,
	description,
	idempotency_key
) VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at`

	var (
		id        string
		createdAt time.Time
	)
	if err := tx.QueryRowContext(
		ctx,
		query,
		fromAccountID,
		toAccountID,
		amount.StringFixed(2),
		nullableString(description),
		nullableString(idempotencyKey),
	).Scan(&id, &createdAt); err != nil {
		if isUniqueViolation(err) && uniqueConstraint(err) == "transfers_idempotency_key_key" {
			return domain.Transfer{}, domain.ErrDuplicateIdempotencyKey
		}
		if isSerializationFailure(err) {
			return domain.Transfer{}, domain.ErrTransferConflict
		}
		logger.Error("transfer repository append record failed", err, logger.Fields{
			"fromAccountId": fromAccountID,
			"toAccountId":   toAccountID,
		})
		return domain.Transfer{}, fmt.Errorf("append transfer record: %w", err)
	}

	return domain.Transfer{
		ID:             id,
		FromAccountID:  fromAccountID,
		ToAccountID:    toAccountID,
		Amount:         amount,
		Description:    stringPtrOrNil(description),
		IdempotencyKey: stringPtrOrNil(idempotencyKey),
		Timestamp:      createdAt,
	}, nil
}

func (r *TransferRepository) HistoryFor(ctx context.Context, accountID string) ([]domain.Transfer, error) {
	const query = `
SELECT id, from_account_id, to_account_id, amount, description, idempotency_key, created_at
FROM transfers
WHERE from_account_id::text = $1
   OR to_account_id::text = $1
ORDER BY created_at DESC, seq DESC`

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		logger.Error("transfer repository history query failed", err, logger.Fields{
			"accountId": accountID,
		})
		return nil, fmt.Errorf("query transfer history: %w", err)
	}
	defer rows.Close()

	transfers := make([]domain.Transfer, 0)
	for rows.Next() {
		transfer, err := scanTransfer(rows.Scan)
		if err != nil {
			return nil, err
		}
		transfers = append(transfers, transfer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transfer history: %w", err)
	}

	return transfers, nil
}

func (r *TransferRepository) GetByIdempotencyKey(ctx context.Context, key string) (domain.Transfer, error) {
	const query = `
SELECT id, from_account_id, to_account_id, amount, description, idempotency_key, created_at
FROM transfers
WHERE idempotency_key = $1`

	transfer, err := scanTransfer(r.db.QueryRowContext(ctx, query, key).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Transfer{}, domain.ErrTransferNotFound
		}
		logger.Error("transfer repository get by idempotency key failed", err, nil)
		return domain.Transfer{}, fmt.Errorf("get transfer by idempotency key: %w", err)
	}

	return transfer, nil
}

func scanTransfer(scan func(dest ...any) error) (domain.Transfer, error) {
	var (
		transfer       domain.Transfer
		amount         string
		description    sql.NullString
		idempotencyKey sql.NullString
	)
	if err := scan(
		&transfer.ID,
		&transfer.FromAccountID,
		&transfer.ToAccountID,
		&amount,
		&description,
		&idempotencyKey,
		&transfer.Timestamp,
	); err != nil {
		return domain.Transfer{}, err
	}

	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return domain.Transfer{}, fmt.Errorf("parse transfer amount: %w", err)
	}
	transfer.Amount = parsed
	if description.Valid {
		value := description.String
		transfer.Description = &value
	}
	if idempotencyKey.Valid {
		value := idempotencyKey.String
		transfer.IdempotencyKey = &value
	}

	return transfer, nil
}

func execRows(ctx context.Context, tx *sql.Tx, query string, args ...any) (int64, error) {
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("execute posting statement: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read rows affected: %w", err)
	}
	return rows, nil
}

func existsInTx(ctx context.Context, tx *sql.Tx, accountID string) (bool, error) {
	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE id::text = $1)`, accountID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check account in transaction: %w", err)
	}
	return exists, nil
}

func nullableString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}

func stringPtrOrNil(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
