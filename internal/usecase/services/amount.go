package services

import (
	"fmt"

	"github.com/corebank/ledger-service/internal/domain"
	"github.com/shopspring/decimal"
)

// minimumUnit is one cent, the smallest representable movement.
var minimumUnit = decimal.New(1, -2)

// validateAmount enforces the numeric contract shared by account opening and
// transfers: at least one minimum currency unit, at most two decimal places.
func validateAmount(amount decimal.Decimal, field string) error {
	if amount.LessThan(minimumUnit) {
		return fmt.Errorf("%s must be at least 0.01: %w", field, domain.ErrInvalidAmount)
	}
	if !amount.Equal(amount.Truncate(2)) {
		return fmt.Errorf("%s must have at most two decimal places: %w", field, domain.ErrInvalidAmount)
	}
	return nil
}
