package payments

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Provider-agnostic payment types. The Stripe adapter maps SDK objects into
// these; nothing outside the adapter touches SDK types.

type Charge struct {
	ID          string    `json:"id"`
	AmountMinor int64     `json:"amount_minor"`
	Currency    string    `json:"currency"`
	CustomerID  string    `json:"customer_id,omitempty"`
	Refunded    bool      `json:"refunded"`
	CreatedAt   time.Time `json:"created_at"`
}

// ChargeRef is a charge reference as providers return it: either a bare
// identifier or an expanded charge object. ChargeID is the single projection
// used everywhere a reference is read.
type ChargeRef struct {
	ID       string  `json:"id,omitempty"`
	Expanded *Charge `json:"expanded,omitempty"`
}

func (r ChargeRef) ChargeID() string {
	if r.Expanded != nil && r.Expanded.ID != "" {
		return r.Expanded.ID
	}
	return r.ID
}

func (r ChargeRef) IsZero() bool {
	return r.ChargeID() == ""
}

type PaymentIntent struct {
	ID           string    `json:"id"`
	Status       string    `json:"status"`
	AmountMinor  int64     `json:"amount_minor"`
	Currency     string    `json:"currency"`
	LatestCharge ChargeRef `json:"latest_charge"`
}

type Refund struct {
	ID          string `json:"id"`
	ChargeID    string `json:"charge_id"`
	AmountMinor int64  `json:"amount_minor"`
	Currency    string `json:"currency"`
	Status      string `json:"status"`
	Reason      string `json:"reason,omitempty"`
}

// RefundResult annotates the refund with a human-readable message naming the
// customer/order that triggered it, where applicable.
type RefundResult struct {
	Refund  Refund `json:"refund"`
	Message string `json:"message,omitempty"`
}

// Customer is the directory's view of a payer: the provider customer id plus
// whatever identifier matched the lookup.
type Customer struct {
	ID         string `json:"id"`
	Identifier string `json:"identifier,omitempty"`
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
}

// OrderPayment links an order identifier to its provider-side payment.
// Either the charge id or the payment-intent id may be present.
type OrderPayment struct {
	OrderID         string `json:"order_id"`
	ChargeID        string `json:"charge_id,omitempty"`
	PaymentIntentID string `json:"payment_intent_id,omitempty"`
}

// ToolInvocation is the single generic record handed to the provider's
// generic call handler: the catalog tool name plus JSON-serialized parameters.
type ToolInvocation struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// DefaultRefundReason is applied when the caller supplies none.
const DefaultRefundReason = "requested_by_customer"

// RefundRequest is transient: built per relay call, resolved to exactly one
// charge, never persisted.
type RefundRequest struct {
	ChargeID           string
	PaymentIntentID    string
	OrderIdentifier    string
	CustomerIdentifier string

	AmountMinor *int64
	Reason      string
	Metadata    map[string]string
}

// refundIdentifierFields is the accepted resolution-key set, in precedence order.
var refundIdentifierFields = []string{"charge_id", "payment_intent_id", "order_identifier", "customer_identifier"}

func ParseRefundRequest(params map[string]any) RefundRequest {
	return RefundRequest{
		ChargeID:           stringField(params, "charge_id"),
		PaymentIntentID:    stringField(params, "payment_intent_id"),
		OrderIdentifier:    stringField(params, "order_identifier"),
		CustomerIdentifier: stringField(params, "customer_identifier"),
		AmountMinor:        amountField(params, "amount"),
		Reason:             stringField(params, "reason"),
		Metadata:           metadataField(params),
	}
}

// CaptureRequest is transient: a payment-intent id (accepted under several
// alias field names) plus an optional partial-capture amount.
type CaptureRequest struct {
	PaymentIntentID string
	AmountMinor     *int64
}

// captureIDAliases: first non-empty wins.
var captureIDAliases = []string{"payment_intent_id", "paymentIntentId", "payment_intent", "intent_id"}

func ParseCaptureRequest(params map[string]any) CaptureRequest {
	return CaptureRequest{
		PaymentIntentID: stringField(params, captureIDAliases...),
		AmountMinor:     amountField(params, "amount"),
	}
}

func stringField(params map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := params[k]; ok {
			if s, ok := v.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					return s
				}
			}
		}
	}
	return ""
}

// amountField accepts a number or a numeric string, rounded to the nearest
// integer. Invalid numeric strings are silently dropped, not treated as an
// amount.
func amountField(params map[string]any, key string) *int64 {
	v, ok := params[key]
	if !ok || v == nil {
		return nil
	}
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	rounded := int64(math.Round(f))
	return &rounded
}

func metadataField(params map[string]any) map[string]string {
	raw, ok := params["metadata"].(map[string]any)
	if !ok || len(raw) == 0 {
		return nil
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		out[k] = fmt.Sprint(v)
	}
	return out
}
