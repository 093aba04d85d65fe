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
	"github.com/corebank/ledger-service/internal/logger"
)

type CustomerService struct {
	customerRepo repo_interfaces.CustomerRepository
}

func NewCustomerService(customerRepo repo_interfaces.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

func (s *CustomerService) GetAllCustomers(ctx context.Context) (commons.Response[[]models.CustomerResponse], error) {
	customers, err := s.customerRepo.GetAll(ctx)
	if err != nil {
		logger.Error("customer service get all failed", err, nil)
		return commons.ErrorResponse[[]models.CustomerResponse]("failed to get customers", "Unable to fetch customers right now"), err
	}

	responses := make([]models.CustomerResponse, 0, len(customers))
	for _, customer := range customers {
		responses = append(responses, mapCustomerResponse(customer))
	}

	return commons.SuccessResponse("customers fetched successfully", responses), nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, customerID string) (commons.Response[models.CustomerResponse], error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		err := errors.New("customerId is required")
		return commons.ErrorResponse[models.CustomerResponse]("validation failed", err.Error()), err
	}

	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, domain.ErrOwnerNotFound) {
			err = fmt.Errorf("customer %s: %w", customerID, domain.ErrOwnerNotFound)
			return commons.ErrorResponse[models.CustomerResponse]("Customer not found", err.Error()), err
		}
		logger.Error("customer service get failed", err, logger.Fields{
			"customerId": customerID,
		})
		return commons.ErrorResponse[models.CustomerResponse]("failed to get customer", "Unable to fetch customer right now"), err
	}

	return commons.SuccessResponse("customer fetched successfully", mapCustomerResponse(customer)), nil
}

func mapCustomerResponse(customer domain.Customer) models.CustomerResponse {
	return models.CustomerResponse{
		ID:        customer.ID,
		Name:      customer.Name,
		CreatedAt: customer.CreatedAt.Format(time.RFC3339),
	}
}
