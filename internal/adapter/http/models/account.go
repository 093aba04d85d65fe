package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type CreateAccountRequest struct {
	CustomerID     string           `json:"customerId"`
	InitialDeposit *decimal.Decimal `json:"initialDeposit"`
}

func (r CreateAccountRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.CustomerID) == "" {
		errs = append(errs, "customerId is required")
	}
	if r.InitialDeposit == nil {
		errs = append(errs, "initialDeposit is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type AccountResponse struct {
	ID            string          `json:"id"`
	AccountNumber string          `json:"accountNumber"`
	Balance       decimal.Decimal `json:"balance"`
	CustomerID    string          `json:"customerId"`
	CustomerName  string          `json:"customerName"`
	CreatedAt     string          `json:"createdAt"`
}
