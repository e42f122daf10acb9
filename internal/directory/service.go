package directory

import (
	"context"
	"errors"
	"strings"

	"campaign-console/internal/payments"
)

// Service adapts the directory repository to the payments lookup contract:
// a miss is reported as (zero, false, nil), not as an error.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

var _ payments.DirectoryLookup = (*Service)(nil)

func (s *Service) FindCustomerByIdentifier(ctx context.Context, identifier string) (payments.Customer, bool, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return payments.Customer{}, false, nil
	}
	rec, err := s.repo.CustomerByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return payments.Customer{}, false, nil
		}
		return payments.Customer{}, false, err
	}
	return payments.Customer{
		// The provider customer id is what charge listings key on.
		ID:         rec.ProviderCustomerID,
		Identifier: rec.Identifier,
		Name:       rec.Name,
		Email:      rec.Email,
	}, true, nil
}

func (s *Service) FindPaymentByIdentifier(ctx context.Context, identifier string) (payments.OrderPayment, bool, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return payments.OrderPayment{}, false, nil
	}
	rec, err := s.repo.OrderPaymentByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return payments.OrderPayment{}, false, nil
		}
		return payments.OrderPayment{}, false, err
	}
	return payments.OrderPayment{
		OrderID:         rec.OrderIdentifier,
		ChargeID:        rec.ChargeID,
		PaymentIntentID: rec.PaymentIntentID,
	}, true, nil
}
