package directory

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when an identifier matches no directory record.
var ErrNotFound = errors.New("directory: not found")

// CustomerRecord links the identifiers customers are known by in this system
// (external id, email) to the payment provider's customer id.
type CustomerRecord struct {
	ID                 string
	Identifier         string
	Email              string
	Name               string
	ProviderCustomerID string
	CreatedAt          time.Time
}

// OrderPaymentRecord links an order identifier to the provider-side payment
// that settled it. Either ChargeID or PaymentIntentID may be empty.
type OrderPaymentRecord struct {
	OrderIdentifier string
	ChargeID        string
	PaymentIntentID string
	CreatedAt       time.Time
}

// Repository is the persistence contract for directory lookups.
type Repository interface {
	CustomerByIdentifier(ctx context.Context, identifier string) (CustomerRecord, error)
	OrderPaymentByIdentifier(ctx context.Context, identifier string) (OrderPaymentRecord, error)
}
