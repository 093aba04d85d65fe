// Package seed loads the initial customer directory on first start, mirroring
// the fixture the service is expected to ship with.
package seed

import (
	"context"
	"fmt"

	"github.com/corebank/ledger-service/internal/adapter/repository/repo_interfaces"
	"github.com/corebank/ledger-service/internal/domain"
	"github.com/corebank/ledger-service/internal/logger"
)

var defaultCustomers = []domain.Customer{
	{Name: "Arisha Barron"},
	{Name: "Branden Gibson"},
	{Name: "Rhonda Church"},
	{Name: "Georgina Hazel"},
}

// Customers seeds the directory if and only if it is empty; restarts are
// harmless.
func Customers(ctx context.Context, customerRepo repo_interfaces.CustomerRepository) error {
	count, err := customerRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count customers before seeding: %w", err)
	}
	if count > 0 {
		return nil
	}

	if err := customerRepo.CreateAll(ctx, defaultCustomers); err != nil {
		return fmt.Errorf("seed customers: %w", err)
	}

	logger.Info("seeded customer directory", logger.Fields{
		"count": len(defaultCustomers),
	})
	return nil
}
