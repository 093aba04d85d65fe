package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/corebank/ledger-service/internal/adapter/http/models"
	"github.com/corebank/ledger-service/internal/adapter/repository/repo_interfaces"
	"github.com/corebank/ledger-service/internal/commons"
	"github.com/corebank/ledger-service/internal/domain"
	"github.com/corebank/ledger-service/internal/logger"
)

// QueryService reads the stores directly; the transfer engine is never on the
// read path.
type QueryService struct {
	accountRepo  repo_interfaces.AccountRepository
	transferRepo repo_interfaces.TransferRepository
	customerRepo repo_interfaces.CustomerRepository
}

func NewQueryService(
	accountRepo repo_interfaces.AccountRepository,
	transferRepo repo_interfaces.TransferRepository,
	customerRepo repo_interfaces.CustomerRepository,
) *QueryService {
	return &QueryService{
		accountRepo:  accountRepo,
		transferRepo: transferRepo,
		customerRepo: customerRepo,
	}
}

func (s *QueryService) GetBalance(ctx context.Context, accountID string) (commons.Response[models.AccountResponse], error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			err = fmt.Errorf("account %s: %w", accountID, domain.ErrAccountNotFound)
			return commons.ErrorResponse[models.AccountResponse]("Account not found", err.Error()), err
		}
		logger.Error("query service get balance failed", err, logger.Fields{
			"accountId": accountID,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to get balance", "Unable to fetch balance right now"), err
	}

	customer, err := s.customerRepo.GetByID(ctx, account.OwnerID)
	if err != nil {
		// An account always references a directory entry; a miss here is a
		// storage inconsistency, not a caller mistake.
		logger.Error("query service owner lookup failed", err, logger.Fields{
			"accountId": accountID,
			"ownerId":   account.OwnerID,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to get balance", "Unable to fetch balance right now"), err
	}

	return commons.SuccessResponse("balance fetched successfully", mapAccountResponse(account, customer.Name)), nil
}

func (s *QueryService) GetTransferHistory(ctx context.Context, accountID string) (commons.Response[[]models.TransferResponse], error) {
	exists, err := s.accountRepo.Exists(ctx, accountID)
	if err != nil {
		logger.Error("query service history existence check failed", err, logger.Fields{
			"accountId": accountID,
		})
		return commons.ErrorResponse[[]models.TransferResponse]("failed to get history", "Unable to fetch history right now"), err
	}
	if !exists {
		err = fmt.Errorf("account %s: %w", accountID, domain.ErrAccountNotFound)
		return commons.ErrorResponse[[]models.TransferResponse]("Account not found", err.Error()), err
	}

	transfers, err := s.transferRepo.HistoryFor(ctx, accountID)
	if err != nil {
		logger.Error("query service history lookup failed", err, logger.Fields{
			"accountId": accountID,
		})
		return commons.ErrorResponse[[]models.TransferResponse]("failed to get history", "Unable to fetch history right now"), err
	}

	responses := make([]models.TransferResponse, 0, len(transfers))
	for _, transfer := range transfers {
		responses = append(responses, mapTransferResponse(transfer, false))
	}

	return commons.SuccessResponse("history fetched successfully", responses), nil
}
