package payments

import (
	"context"
	"fmt"
	"strings"
)

// recentChargeLimit bounds the "most recent charge" lookup when resolving by
// customer identifier.
const recentChargeLimit = 10

// RefundResolver turns a heterogeneous identifier set into exactly one
// refunded charge. Precedence, first match wins:
// charge_id > payment_intent_id > order_identifier > customer_identifier.
type RefundResolver struct {
	Provider Provider
	Lookup   DirectoryLookup
}

func (r RefundResolver) Resolve(ctx context.Context, req RefundRequest) (RefundResult, error) {
	p := RefundParams{
		AmountMinor: req.AmountMinor,
		Reason:      req.Reason,
		Metadata:    req.Metadata,
	}
	if p.Reason == "" {
		p.Reason = DefaultRefundReason
	}

	switch {
	case req.ChargeID != "":
		// Direct charge reference wins over every other identifier.
		p.ChargeID = req.ChargeID
		ref, err := r.Provider.CreateRefund(ctx, p)
		if err != nil {
			return RefundResult{}, err
		}
		return RefundResult{Refund: ref}, nil

	case req.PaymentIntentID != "":
		pi, err := r.Provider.GetPaymentIntent(ctx, req.PaymentIntentID)
		if err != nil {
			return RefundResult{}, err
		}
		if pi.LatestCharge.IsZero() {
			return RefundResult{}, fmt.Errorf("%w: payment intent %s has no charge to refund", ErrInvalidState, pi.ID)
		}
		p.ChargeID = pi.LatestCharge.ChargeID()
		ref, err := r.Provider.CreateRefund(ctx, p)
		if err != nil {
			return RefundResult{}, err
		}
		return RefundResult{Refund: ref, Message: fmt.Sprintf("refunded latest charge of payment intent %s", pi.ID)}, nil

	case req.OrderIdentifier != "" || req.CustomerIdentifier != "":
		return r.resolveByDirectory(ctx, req, p)

	default:
		return RefundResult{}, fmt.Errorf("%w: provide one of %s", ErrInvalidInput, strings.Join(refundIdentifierFields, ", "))
	}
}

func (r RefundResolver) resolveByDirectory(ctx context.Context, req RefundRequest, p RefundParams) (RefundResult, error) {
	if req.OrderIdentifier != "" {
		op, ok, err := r.Lookup.FindPaymentByIdentifier(ctx, req.OrderIdentifier)
		if err != nil {
			return RefundResult{}, fmt.Errorf("order lookup: %w", err)
		}
		if ok {
			chargeID, err := r.orderChargeID(ctx, op)
			if err != nil {
				return RefundResult{}, err
			}
			p.ChargeID = chargeID
			ref, err := r.Provider.CreateRefund(ctx, p)
			if err != nil {
				return RefundResult{}, err
			}
			return RefundResult{Refund: ref, Message: fmt.Sprintf("refunded charge for order %s", op.OrderID)}, nil
		}
		// Order did not resolve; fall through to the customer identifier if supplied.
		if req.CustomerIdentifier == "" {
			return RefundResult{}, fmt.Errorf("%w: no payment found for order %q", ErrNotFound, req.OrderIdentifier)
		}
	}

	cust, ok, err := r.Lookup.FindCustomerByIdentifier(ctx, req.CustomerIdentifier)
	if err != nil {
		return RefundResult{}, fmt.Errorf("customer lookup: %w", err)
	}
	if !ok {
		return RefundResult{}, fmt.Errorf("%w: no customer matches %q", ErrNotFound, req.CustomerIdentifier)
	}

	charges, err := r.Provider.ListRecentCharges(ctx, cust.ID, recentChargeLimit)
	if err != nil {
		return RefundResult{}, err
	}
	if len(charges) == 0 {
		return RefundResult{}, fmt.Errorf("%w: customer %s has no charges", ErrNotFound, cust.ID)
	}

	// First element is the most recent charge.
	p.ChargeID = charges[0].ID
	ref, err := r.Provider.CreateRefund(ctx, p)
	if err != nil {
		return RefundResult{}, err
	}
	return RefundResult{
		Refund:  ref,
		Message: fmt.Sprintf("refunded most recent charge of customer %s (matched %q)", cust.ID, req.CustomerIdentifier),
	}, nil
}

// orderChargeID extracts the refundable charge from an order's payment: a
// direct charge reference, or the latest charge of its payment intent.
func (r RefundResolver) orderChargeID(ctx context.Context, op OrderPayment) (string, error) {
	if op.ChargeID != "" {
		return op.ChargeID, nil
	}
	if op.PaymentIntentID != "" {
		pi, err := r.Provider.GetPaymentIntent(ctx, op.PaymentIntentID)
		if err != nil {
			return "", err
		}
		if !pi.LatestCharge.IsZero() {
			return pi.LatestCharge.ChargeID(), nil
		}
	}
	return "", fmt.Errorf("%w: order %s has no refundable charge", ErrInvalidState, op.OrderID)
}

// CaptureResolver settles an authorized payment intent, optionally for a
// partial amount.
type CaptureResolver struct {
	Provider Provider
}

func (r CaptureResolver) Resolve(ctx context.Context, req CaptureRequest) (PaymentIntent, error) {
	if req.PaymentIntentID == "" {
		return PaymentIntent{}, fmt.Errorf("%w: provide the payment intent id under one of %s", ErrInvalidInput, strings.Join(captureIDAliases, ", "))
	}
	return r.Provider.CapturePaymentIntent(ctx, req.PaymentIntentID, req.AmountMinor)
}
