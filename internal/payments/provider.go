package payments

import (
	"context"
	"encoding/json"
)

// Provider defines the provider-agnostic payments boundary used by the relay.
//
// Rules:
// - No provider SDK calls outside payments adapters.
// - Keep request/response types provider-agnostic; adapters map SDK objects.
// - Adapters translate SDK failures into the relay error taxonomy.
type Provider interface {
	Name() string

	// GetPaymentIntent retrieves an intent with its latest charge reference
	// populated (expanded where the provider supports it).
	GetPaymentIntent(ctx context.Context, id string) (PaymentIntent, error)

	CreateRefund(ctx context.Context, p RefundParams) (Refund, error)

	// ListRecentCharges returns a customer's charges, most recent first,
	// bounded by limit.
	ListRecentCharges(ctx context.Context, customerID string, limit int) ([]Charge, error)

	// CapturePaymentIntent settles an authorized intent. A nil amount
	// requests a full capture.
	CapturePaymentIntent(ctx context.Context, id string, amountMinor *int64) (PaymentIntent, error)

	// Call executes one generic catalog-tool invocation and returns the
	// handler's content payload.
	Call(ctx context.Context, inv ToolInvocation) (json.RawMessage, error)
}

// RefundParams is the provider-facing refund instruction. The resolver
// guarantees ChargeID is set before this reaches an adapter.
type RefundParams struct {
	ChargeID    string
	AmountMinor *int64
	Reason      string
	Metadata    map[string]string
}

// DirectoryLookup resolves order/customer identifiers to payment entities.
// Implemented by internal/directory; fakes in tests.
type DirectoryLookup interface {
	FindCustomerByIdentifier(ctx context.Context, identifier string) (Customer, bool, error)
	FindPaymentByIdentifier(ctx context.Context, identifier string) (OrderPayment, bool, error)
}
