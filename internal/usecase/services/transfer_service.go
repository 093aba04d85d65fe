package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/corebank/ledger-service/internal/adapter/http/models"
	"github.com/corebank/ledger-service/internal/adapter/repository/repo_interfaces"
	"github.com/corebank/ledger-service/internal/commons"
	"github.com/corebank/ledger-service/internal/domain"
	"github.com/corebank/ledger-service/internal/events"
	"github.com/corebank/ledger-service/internal/logger"
)

// maxPostingAttempts bounds retries when the atomic posting loses a
// serialization race; exhaustion surfaces a conflict to the caller rather
// than blocking indefinitely.
const maxPostingAttempts = 3

// TransferService is the transfer engine: it validates a funds movement in a
// fixed order and delegates the balance mutations plus the ledger append to
// the storage engine's atomic unit of work.
type TransferService struct {
	transferRepo repo_interfaces.TransferRepository
	accountRepo  repo_interfaces.AccountRepository
	publisher    events.Publisher
}

func NewTransferService(
	transferRepo repo_interfaces.TransferRepository,
	accountRepo repo_interfaces.AccountRepository,
	publisher events.Publisher,
) *TransferService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &TransferService{
		transferRepo: transferRepo,
		accountRepo:  accountRepo,
		publisher:    publisher,
	}
}

func (s *TransferService) TransferFunds(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransferResponse], error) {
	logger.Info("transfer service transfer funds request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.TransferResponse]("validation failed", err.Error()), err
	}

	idempotencyKey := strings.TrimSpace(req.IdempotencyKey)
	if idempotencyKey != "" {
		existing, err := s.transferRepo.GetByIdempotencyKey(ctx, idempotencyKey)
		if err == nil {
			logger.Info("transfer service idempotent replay", logger.Fields{
				"transferId": existing.ID,
			})
			return commons.SuccessResponse("transfer already processed", mapTransferResponse(existing, true)), nil
		}
		if !errors.Is(err, domain.ErrTransferNotFound) {
			return commons.ErrorResponse[models.TransferResponse]("failed to process transfer", "Unable to process transfer right now"), err
		}
	}

	fromAccountID := strings.TrimSpace(req.FromAccountID)
	toAccountID := strings.TrimSpace(req.ToAccountID)

	// Validation order is part of the contract: source resolution, then
	// destination, then amount, then funds.
	fromAccount, err := s.accountRepo.GetByID(ctx, fromAccountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			err = fmt.Errorf("source account %s: %w", fromAccountID, domain.ErrAccountNotFound)
			return commons.ErrorResponse[models.TransferResponse]("Source account not found", err.Error()), err
		}
		return commons.ErrorResponse[models.TransferResponse]("failed to process transfer", "Unable to process transfer right now"), err
	}
	if _, err := s.accountRepo.GetByID(ctx, toAccountID); err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			err = fmt.Errorf("destination account %s: %w", toAccountID, domain.ErrAccountNotFound)
			return commons.ErrorResponse[models.TransferResponse]("Destination account not found", err.Error()), err
		}
		return commons.ErrorResponse[models.TransferResponse]("failed to process transfer", "Unable to process transfer right now"), err
	}

	amount := *req.Amount
	if err := validateAmount(amount, "amount"); err != nil {
		return commons.ErrorResponse[models.TransferResponse]("validation failed", err.Error()), err
	}

	if fromAccountID == toAccountID {
		err := fmt.Errorf("account %s: %w", fromAccountID, domain.ErrSelfTransfer)
		return commons.ErrorResponse[models.TransferResponse]("validation failed", err.Error()), err
	}

	if fromAccount.Balance.LessThan(amount) {
		shortfall := amount.Sub(fromAccount.Balance)
		err := fmt.Errorf("account %s is short %s of the requested %s: %w",
			fromAccount.AccountNumber, shortfall.StringFixed(2), amount.StringFixed(2), domain.ErrInsufficientFunds)
		return commons.ErrorResponse[models.TransferResponse]("Insufficient funds", err.Error()), err
	}

	description := strings.TrimSpace(req.Description)

	var transfer domain.Transfer
	for attempt := 0; attempt < maxPostingAttempts; attempt++ {
		transfer, err = s.transferRepo.ProcessTransfer(ctx, fromAccountID, toAccountID, amount, description, idempotencyKey)
		if !errors.Is(err, domain.ErrTransferConflict) {
			break
		}
		logger.Info("transfer service posting conflict, retrying", logger.Fields{
			"fromAccountId": fromAccountID,
			"toAccountId":   toAccountID,
			"attempt":       attempt + 1,
		})
	}
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateIdempotencyKey):
			// Lost the race against an identical request: its transfer is the
			// canonical one, return it as a replay.
			existing, getErr := s.transferRepo.GetByIdempotencyKey(ctx, idempotencyKey)
			if getErr != nil {
				return commons.ErrorResponse[models.TransferResponse]("failed to process transfer", "Unable to process transfer right now"), getErr
			}
			return commons.SuccessResponse("transfer already processed", mapTransferResponse(existing, true)), nil
		case errors.Is(err, domain.ErrInsufficientFunds):
			// A concurrent transfer drained the source between the pre-check
			// and the atomic posting; the guard kept the balance non-negative.
			return commons.ErrorResponse[models.TransferResponse]("Insufficient funds", err.Error()), err
		case errors.Is(err, domain.ErrAccountNotFound):
			return commons.ErrorResponse[models.TransferResponse]("Account not found", err.Error()), err
		case errors.Is(err, domain.ErrTransferConflict):
			return commons.ErrorResponse[models.TransferResponse]("transfer conflict", "Transfer could not be completed due to concurrent activity, please retry"), err
		default:
			logger.Error("transfer service posting failed", err, logger.Fields{
				"fromAccountId": fromAccountID,
				"toAccountId":   toAccountID,
			})
			return commons.ErrorResponse[models.TransferResponse]("failed to process transfer", "Unable to process transfer right now"), err
		}
	}

	if pubErr := s.publisher.PublishTransferCompleted(ctx, events.TransferCompleted{
		TransferID:    transfer.ID,
		FromAccountID: transfer.FromAccountID,
		ToAccountID:   transfer.ToAccountID,
		Amount:        transfer.Amount,
		Timestamp:     transfer.Timestamp,
	}); pubErr != nil {
		// The transfer is committed; event delivery is best effort.
		logger.Error("transfer service publish transfer completed failed", pubErr, logger.Fields{
			"transferId": transfer.ID,
		})
	}

	logger.Info("transfer service transfer funds success", logger.Fields{
		"transferId":    transfer.ID,
		"fromAccountId": transfer.FromAccountID,
		"toAccountId":   transfer.ToAccountID,
		"amount":        transfer.Amount.StringFixed(2),
	})

	return commons.SuccessResponse("transfer completed successfully", mapTransferResponse(transfer, false)), nil
}

func mapTransferResponse(transfer domain.Transfer, replayed bool) models.TransferResponse {
	response := models.TransferResponse{
		ID:            transfer.ID,
		FromAccountID: transfer.FromAccountID,
		ToAccountID:   transfer.ToAccountID,
		Amount:        transfer.Amount,
		Timestamp:     transfer.Timestamp.Format(time.RFC3339Nano),
		Replayed:      replayed,
	}
	if transfer.Description != nil {
		response.Description = *transfer.Description
	}
	return response
}
