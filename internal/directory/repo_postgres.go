package directory

import (
	"context"
	"database/sql"
	"errors"
)

// PostgresRepo reads the customer and order-payment directory tables.
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

// CustomerByIdentifier matches the external identifier, the email, or the
// provider customer id, in that single pass.
func (r *PostgresRepo) CustomerByIdentifier(ctx context.Context, identifier string) (CustomerRecord, error) {
	const q = `
SELECT id, identifier, email, name, provider_customer_id, created_at
FROM customers
WHERE identifier = $1 OR email = $1 OR provider_customer_id = $1
LIMIT 1
`
	var c CustomerRecord
	if err := r.db.QueryRowContext(ctx, q, identifier).Scan(
		&c.ID,
		&c.Identifier,
		&c.Email,
		&c.Name,
		&c.ProviderCustomerID,
		&c.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CustomerRecord{}, ErrNotFound
		}
		return CustomerRecord{}, err
	}
	return c, nil
}

func (r *PostgresRepo) OrderPaymentByIdentifier(ctx context.Context, identifier string) (OrderPaymentRecord, error) {
	const q = `
SELECT order_identifier, COALESCE(charge_id, ''), COALESCE(payment_intent_id, ''), created_at
FROM order_payments
WHERE order_identifier = $1
LIMIT 1
`
	var op OrderPaymentRecord
	if err := r.db.QueryRowContext(ctx, q, identifier).Scan(
		&op.OrderIdentifier,
		&op.ChargeID,
		&op.PaymentIntentID,
		&op.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return OrderPaymentRecord{}, ErrNotFound
		}
		return OrderPaymentRecord{}, err
	}
	return op, nil
}
