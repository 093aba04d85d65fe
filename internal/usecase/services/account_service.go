package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/corebank/ledger-service/internal/accountnumber"
	"github.com/corebank/ledger-service/internal/adapter/http/models"
	"github.com/corebank/ledger-service/internal/adapter/repository/repo_interfaces"
	"github.com/corebank/ledger-service/internal/commons"
	"github.com/corebank/ledger-service/internal/domain"
	"github.com/corebank/ledger-service/internal/logger"
)

// maxNumberAttempts bounds regeneration when a generated account number is
// already taken. With 32^8 candidates, exhausting this is a configuration
// problem, not an expected runtime condition.
const maxNumberAttempts = 5

type AccountService struct {
	accountRepo  repo_interfaces.AccountRepository
	customerRepo repo_interfaces.CustomerRepository
}

func NewAccountService(
	accountRepo repo_interfaces.AccountRepository,
	customerRepo repo_interfaces.CustomerRepository,
) *AccountService {
	return &AccountService{
		accountRepo:  accountRepo,
		customerRepo: customerRepo,
	}
}

func (s *AccountService) CreateAccount(ctx context.Context, req models.CreateAccountRequest) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service create account request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("account service create account validation failed", err, nil)
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	customerID := strings.TrimSpace(req.CustomerID)
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, domain.ErrOwnerNotFound) {
			err = fmt.Errorf("customer %s: %w", customerID, domain.ErrOwnerNotFound)
			return commons.ErrorResponse[models.AccountResponse]("Customer not found", err.Error()), err
		}
		logger.Error("account service create account owner lookup failed", err, logger.Fields{
			"customerId": customerID,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to create account", "Unable to create account right now"), err
	}

	deposit := *req.InitialDeposit
	if err := validateAmount(deposit, "initialDeposit"); err != nil {
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	var created domain.Account
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		number, genErr := accountnumber.Generate()
		if genErr != nil {
			logger.Error("account service generate account number failed", genErr, nil)
			return commons.ErrorResponse[models.AccountResponse]("failed to create account", "Unable to create account right now"), genErr
		}

		created, err = s.accountRepo.Create(ctx, domain.Account{
			AccountNumber: number,
			OwnerID:       customer.ID,
			Balance:       deposit,
		})
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrDuplicateAccountNumber) {
			logger.Error("account service create account repository failed", err, logger.Fields{
				"customerId": customerID,
			})
			return commons.ErrorResponse[models.AccountResponse]("failed to create account", "Unable to create account right now"), err
		}
	}
	if err != nil {
		logger.Error("account service account number attempts exhausted", err, logger.Fields{
			"customerId": customerID,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to create account", "Unable to create account right now"), err
	}

	response := mapAccountResponse(created, customer.Name)

	logger.Info("account service create account success", logger.Fields{
		"accountId":     response.ID,
		"accountNumber": response.AccountNumber,
		"customerId":    response.CustomerID,
	})

	return commons.SuccessResponse("account created successfully", response), nil
}

func mapAccountResponse(account domain.Account, customerName string) models.AccountResponse {
	return models.AccountResponse{
		ID:            account.ID,
		AccountNumber: account.AccountNumber,
		Balance:       account.Balance,
		CustomerID:    account.OwnerID,
		CustomerName:  customerName,
		CreatedAt:     account.CreatedAt.Format(time.RFC3339),
	}
}
