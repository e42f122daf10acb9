package directory

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory Repository for tests and local development.
type MemoryRepo struct {
	mu        sync.RWMutex
	customers []CustomerRecord
	orders    map[string]OrderPaymentRecord
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{orders: map[string]OrderPaymentRecord{}}
}

func (r *MemoryRepo) AddCustomer(c CustomerRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.customers = append(r.customers, c)
}

func (r *MemoryRepo) AddOrderPayment(op OrderPaymentRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[op.OrderIdentifier] = op
}

func (r *MemoryRepo) CustomerByIdentifier(_ context.Context, identifier string) (CustomerRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.customers {
		if c.Identifier == identifier || c.Email == identifier || c.ProviderCustomerID == identifier {
			return c, nil
		}
	}
	return CustomerRecord{}, ErrNotFound
}

func (r *MemoryRepo) OrderPaymentByIdentifier(_ context.Context, identifier string) (OrderPaymentRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	op, ok := r.orders[identifier]
	if !ok {
		return OrderPaymentRecord{}, ErrNotFound
	}
	return op, nil
}
