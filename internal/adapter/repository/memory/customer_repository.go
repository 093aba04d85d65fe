package memory

import (
	"context"
	"time"

	"github.com/corebank/ledger-service/internal/domain"
	"github.com/google/uuid"
)

type CustomerRepository struct {
	store *Store
}

func NewCustomerRepository(store *Store) *CustomerRepository {
	return &CustomerRepository{store: store}
}

func (r *CustomerRepository) GetByID(_ context.Context, customerID string) (domain.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	index, ok := r.store.customerByID[customerID]
	if !ok {
		return domain.Customer{}, domain.ErrOwnerNotFound
	}
	return r.store.customers[index], nil
}

func (r *CustomerRepository) GetAll(_ context.Context) ([]domain.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	out := make([]domain.Customer, len(r.store.customers))
	copy(out, r.store.customers)
	return out, nil
}

func (r *CustomerRepository) Count(_ context.Context) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return len(r.store.customers), nil
}

func (r *CustomerRepository) CreateAll(_ context.Context, customers []domain.Customer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, customer := range customers {
		if customer.ID == "" {
			customer.ID = uuid.NewString()
		}
		if customer.CreatedAt.IsZero() {
			customer.CreatedAt = time.Now().UTC()
		}
		r.store.customerByID[customer.ID] = len(r.store.customers)
		r.store.customers = append(r.store.customers, customer)
	}
	return nil
}
