package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// StripeProvider adapts the Stripe SDK to the Provider interface.
// All SDK types and SDK errors stay inside this file.
type StripeProvider struct {
	api *client.API
}

func NewStripeProvider(secretKey string) (*StripeProvider, error) {
	if secretKey == "" {
		return nil, errors.New("stripe secret key is required")
	}
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeProvider{api: api}, nil
}

func (p *StripeProvider) Name() string { return "stripe" }

func (p *StripeProvider) GetPaymentIntent(ctx context.Context, id string) (PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{Params: stripe.Params{Context: ctx}}
	params.AddExpand("latest_charge")

	pi, err := p.api.PaymentIntents.Get(id, params)
	if err != nil {
		return PaymentIntent{}, mapStripeErr(err)
	}
	return fromStripeIntent(pi), nil
}

func (p *StripeProvider) CreateRefund(ctx context.Context, rp RefundParams) (Refund, error) {
	params := &stripe.RefundParams{
		Params: stripe.Params{Context: ctx},
		Charge: stripe.String(rp.ChargeID),
	}
	if rp.AmountMinor != nil {
		params.Amount = stripe.Int64(*rp.AmountMinor)
	}
	if rp.Reason != "" {
		params.Reason = stripe.String(rp.Reason)
	}
	for k, v := range rp.Metadata {
		params.AddMetadata(k, v)
	}

	ref, err := p.api.Refunds.New(params)
	if err != nil {
		return Refund{}, mapStripeErr(err)
	}
	return fromStripeRefund(ref), nil
}

func (p *StripeProvider) ListRecentCharges(ctx context.Context, customerID string, limit int) ([]Charge, error) {
	params := &stripe.ChargeListParams{
		ListParams: stripe.ListParams{Context: ctx, Limit: stripe.Int64(int64(limit))},
		Customer:   stripe.String(customerID),
	}

	// Stripe lists charges newest first; keep that order.
	var out []Charge
	it := p.api.Charges.List(params)
	for it.Next() {
		out = append(out, fromStripeCharge(it.Charge()))
		if len(out) >= limit {
			break
		}
	}
	if err := it.Err(); err != nil {
		return nil, mapStripeErr(err)
	}
	return out, nil
}

func (p *StripeProvider) CapturePaymentIntent(ctx context.Context, id string, amountMinor *int64) (PaymentIntent, error) {
	params := &stripe.PaymentIntentCaptureParams{Params: stripe.Params{Context: ctx}}
	if amountMinor != nil {
		params.AmountToCapture = stripe.Int64(*amountMinor)
	}

	pi, err := p.api.PaymentIntents.Capture(id, params)
	if err != nil {
		return PaymentIntent{}, mapStripeErr(err)
	}
	return fromStripeIntent(pi), nil
}

// Call executes a generic catalog-tool invocation. Only the read/update
// tools of the scoped capability groups have handlers here; refund creation
// and capture always go through their dedicated resolvers.
func (p *StripeProvider) Call(ctx context.Context, inv ToolInvocation) (json.RawMessage, error) {
	var params map[string]any
	if inv.Arguments != "" {
		if err := json.Unmarshal([]byte(inv.Arguments), &params); err != nil {
			return nil, fmt.Errorf("%w: arguments: %v", ErrInvalidInput, err)
		}
	}

	var (
		payload any
		err     error
	)
	switch inv.Name {
	case "refunds_read":
		id := stringField(params, "refund_id", "id")
		if id == "" {
			return nil, fmt.Errorf("%w: refund_id required", ErrInvalidInput)
		}
		payload, err = p.api.Refunds.Get(id, &stripe.RefundParams{Params: stripe.Params{Context: ctx}})

	case "customers_read":
		id := stringField(params, "customer_id", "id")
		if id == "" {
			return nil, fmt.Errorf("%w: customer_id required", ErrInvalidInput)
		}
		payload, err = p.api.Customers.Get(id, &stripe.CustomerParams{Params: stripe.Params{Context: ctx}})

	case "paymentIntents_read":
		id := stringField(params, "payment_intent_id", "id")
		if id == "" {
			return nil, fmt.Errorf("%w: payment_intent_id required", ErrInvalidInput)
		}
		payload, err = p.api.PaymentIntents.Get(id, &stripe.PaymentIntentParams{Params: stripe.Params{Context: ctx}})

	case "paymentIntents_update":
		id := stringField(params, "payment_intent_id", "id")
		if id == "" {
			return nil, fmt.Errorf("%w: payment_intent_id required", ErrInvalidInput)
		}
		up := &stripe.PaymentIntentParams{Params: stripe.Params{Context: ctx}}
		if desc := stringField(params, "description"); desc != "" {
			up.Description = stripe.String(desc)
		}
		for k, v := range metadataField(params) {
			up.AddMetadata(k, v)
		}
		payload, err = p.api.PaymentIntents.Update(id, up)

	default:
		return nil, fmt.Errorf("%w: tool %q has no generic handler", ErrNotFound, inv.Name)
	}
	if err != nil {
		return nil, mapStripeErr(err)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: encode response: %v", ErrUpstream, err)
	}
	return raw, nil
}

func fromStripeIntent(pi *stripe.PaymentIntent) PaymentIntent {
	out := PaymentIntent{
		ID:          pi.ID,
		Status:      string(pi.Status),
		AmountMinor: pi.Amount,
		Currency:    string(pi.Currency),
	}
	if pi.LatestCharge != nil {
		out.LatestCharge = fromStripeChargeRef(pi.LatestCharge)
	}
	return out
}

// fromStripeChargeRef handles both shapes of latest_charge: a bare id
// (unexpanded) and a full charge object.
func fromStripeChargeRef(c *stripe.Charge) ChargeRef {
	if c == nil {
		return ChargeRef{}
	}
	if c.Created == 0 && c.Amount == 0 {
		return ChargeRef{ID: c.ID}
	}
	expanded := fromStripeCharge(c)
	return ChargeRef{ID: c.ID, Expanded: &expanded}
}

func fromStripeCharge(c *stripe.Charge) Charge {
	out := Charge{
		ID:          c.ID,
		AmountMinor: c.Amount,
		Currency:    string(c.Currency),
		Refunded:    c.Refunded,
		CreatedAt:   time.Unix(c.Created, 0).UTC(),
	}
	if c.Customer != nil {
		out.CustomerID = c.Customer.ID
	}
	return out
}

func fromStripeRefund(r *stripe.Refund) Refund {
	out := Refund{
		ID:          r.ID,
		AmountMinor: r.Amount,
		Currency:    string(r.Currency),
		Status:      string(r.Status),
		Reason:      string(r.Reason),
	}
	if r.Charge != nil {
		out.ChargeID = r.Charge.ID
	}
	return out
}

func mapStripeErr(err error) error {
	var sErr *stripe.Error
	if errors.As(err, &sErr) {
		if sErr.Code == stripe.ErrorCodeResourceMissing || sErr.HTTPStatusCode == 404 {
			return fmt.Errorf("%w: %s", ErrNotFound, sErr.Msg)
		}
		return fmt.Errorf("%w: %s", ErrUpstream, sErr.Msg)
	}
	return fmt.Errorf("%w: %v", ErrUpstream, err)
}
