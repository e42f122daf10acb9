package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

// fakeProvider records every call so tests can assert which capabilities ran.
type fakeProvider struct {
	intents map[string]PaymentIntent
	charges map[string][]Charge

	refundErr  error
	captureErr error
	callErr    error
	callResult json.RawMessage

	refundCalls  []RefundParams
	captureCalls []CaptureRequest
	listCalls    []string
	callCalls    []ToolInvocation
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		intents: map[string]PaymentIntent{},
		charges: map[string][]Charge{},
	}
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) GetPaymentIntent(_ context.Context, id string) (PaymentIntent, error) {
	pi, ok := f.intents[id]
	if !ok {
		return PaymentIntent{}, fmt.Errorf("%w: payment intent %s", ErrNotFound, id)
	}
	return pi, nil
}

func (f *fakeProvider) CreateRefund(_ context.Context, p RefundParams) (Refund, error) {
	f.refundCalls = append(f.refundCalls, p)
	if f.refundErr != nil {
		return Refund{}, f.refundErr
	}
	return Refund{ID: "re_1", ChargeID: p.ChargeID, Status: "succeeded", Reason: p.Reason}, nil
}

func (f *fakeProvider) ListRecentCharges(_ context.Context, customerID string, limit int) ([]Charge, error) {
	f.listCalls = append(f.listCalls, customerID)
	cs := f.charges[customerID]
	if len(cs) > limit {
		cs = cs[:limit]
	}
	return cs, nil
}

func (f *fakeProvider) CapturePaymentIntent(_ context.Context, id string, amountMinor *int64) (PaymentIntent, error) {
	f.captureCalls = append(f.captureCalls, CaptureRequest{PaymentIntentID: id, AmountMinor: amountMinor})
	if f.captureErr != nil {
		return PaymentIntent{}, f.captureErr
	}
	return PaymentIntent{ID: id, Status: "succeeded"}, nil
}

func (f *fakeProvider) Call(_ context.Context, inv ToolInvocation) (json.RawMessage, error) {
	f.callCalls = append(f.callCalls, inv)
	if f.callErr != nil {
		return nil, f.callErr
	}
	if f.callResult != nil {
		return f.callResult, nil
	}
	return json.RawMessage(`{"ok":true}`), nil
}

type fakeLookup struct {
	customers map[string]Customer
	orders    map[string]OrderPayment
	err       error
}

func (f *fakeLookup) FindCustomerByIdentifier(_ context.Context, identifier string) (Customer, bool, error) {
	if f.err != nil {
		return Customer{}, false, f.err
	}
	c, ok := f.customers[identifier]
	return c, ok, nil
}

func (f *fakeLookup) FindPaymentByIdentifier(_ context.Context, identifier string) (OrderPayment, bool, error) {
	if f.err != nil {
		return OrderPayment{}, false, f.err
	}
	op, ok := f.orders[identifier]
	return op, ok, nil
}

func TestRefundResolver_ChargeIDWinsOverEverything(t *testing.T) {
	prov := newFakeProvider()
	r := RefundResolver{Provider: prov, Lookup: &fakeLookup{}}

	res, err := r.Resolve(context.Background(), RefundRequest{
		ChargeID:           "ch_direct",
		PaymentIntentID:    "pi_ignored",
		OrderIdentifier:    "ord_ignored",
		CustomerIdentifier: "cus_ignored",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(prov.refundCalls) != 1 || prov.refundCalls[0].ChargeID != "ch_direct" {
		t.Fatalf("expected one refund against ch_direct, got %+v", prov.refundCalls)
	}
	if len(prov.listCalls) != 0 {
		t.Fatalf("customer lookup should not run when charge_id is present")
	}
	if res.Refund.ChargeID != "ch_direct" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestRefundResolver_DefaultReason(t *testing.T) {
	prov := newFakeProvider()
	r := RefundResolver{Provider: prov, Lookup: &fakeLookup{}}

	if _, err := r.Resolve(context.Background(), RefundRequest{ChargeID: "ch_1"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got := prov.refundCalls[0].Reason; got != DefaultRefundReason {
		t.Fatalf("expected default reason %q, got %q", DefaultRefundReason, got)
	}
}

func TestRefundResolver_PaymentIntentExpandedCharge(t *testing.T) {
	prov := newFakeProvider()
	prov.intents["pi_1"] = PaymentIntent{
		ID:           "pi_1",
		LatestCharge: ChargeRef{Expanded: &Charge{ID: "ch_expanded", AmountMinor: 500}},
	}
	r := RefundResolver{Provider: prov, Lookup: &fakeLookup{}}

	res, err := r.Resolve(context.Background(), RefundRequest{PaymentIntentID: "pi_1"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if prov.refundCalls[0].ChargeID != "ch_expanded" {
		t.Fatalf("expected refund against expanded charge, got %+v", prov.refundCalls[0])
	}
	if !strings.Contains(res.Message, "pi_1") {
		t.Fatalf("message should name the intent: %q", res.Message)
	}
}

func TestRefundResolver_PaymentIntentWithoutCharge(t *testing.T) {
	prov := newFakeProvider()
	prov.intents["pi_empty"] = PaymentIntent{ID: "pi_empty", Status: "requires_payment_method"}
	r := RefundResolver{Provider: prov, Lookup: &fakeLookup{}}

	_, err := r.Resolve(context.Background(), RefundRequest{PaymentIntentID: "pi_empty"})
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
	if len(prov.refundCalls) != 0 {
		t.Fatalf("no refund should be attempted for a chargeless intent")
	}
}

func TestRefundResolver_OrderWithDirectCharge(t *testing.T) {
	prov := newFakeProvider()
	lookup := &fakeLookup{orders: map[string]OrderPayment{
		"ORD-42": {OrderID: "ORD-42", ChargeID: "ch_order"},
	}}
	r := RefundResolver{Provider: prov, Lookup: lookup}

	res, err := r.Resolve(context.Background(), RefundRequest{OrderIdentifier: "ORD-42"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if prov.refundCalls[0].ChargeID != "ch_order" {
		t.Fatalf("expected refund against ch_order, got %+v", prov.refundCalls[0])
	}
	if !strings.Contains(res.Message, "ORD-42") {
		t.Fatalf("message should name the order: %q", res.Message)
	}
}

func TestRefundResolver_OrderViaPaymentIntent(t *testing.T) {
	prov := newFakeProvider()
	prov.intents["pi_ord"] = PaymentIntent{ID: "pi_ord", LatestCharge: ChargeRef{ID: "ch_from_pi"}}
	lookup := &fakeLookup{orders: map[string]OrderPayment{
		"ORD-7": {OrderID: "ORD-7", PaymentIntentID: "pi_ord"},
	}}
	r := RefundResolver{Provider: prov, Lookup: lookup}

	if _, err := r.Resolve(context.Background(), RefundRequest{OrderIdentifier: "ORD-7"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if prov.refundCalls[0].ChargeID != "ch_from_pi" {
		t.Fatalf("expected refund against ch_from_pi, got %+v", prov.refundCalls[0])
	}
}

func TestRefundResolver_OrderMissFallsThroughToCustomer(t *testing.T) {
	prov := newFakeProvider()
	prov.charges["cus_1"] = []Charge{
		{ID: "ch_new", CreatedAt: time.Now()},
		{ID: "ch_old", CreatedAt: time.Now().Add(-time.Hour)},
	}
	lookup := &fakeLookup{customers: map[string]Customer{
		"jane@example.com": {ID: "cus_1", Identifier: "jane@example.com"},
	}}
	r := RefundResolver{Provider: prov, Lookup: lookup}

	res, err := r.Resolve(context.Background(), RefundRequest{
		OrderIdentifier:    "no-such-order",
		CustomerIdentifier: "jane@example.com",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if prov.refundCalls[0].ChargeID != "ch_new" {
		t.Fatalf("expected most recent charge refunded, got %+v", prov.refundCalls[0])
	}
	if !strings.Contains(res.Message, "jane@example.com") {
		t.Fatalf("message should name the matched identifier: %q", res.Message)
	}
}

func TestRefundResolver_OrderMissWithoutCustomerIsNotFound(t *testing.T) {
	prov := newFakeProvider()
	r := RefundResolver{Provider: prov, Lookup: &fakeLookup{}}

	_, err := r.Resolve(context.Background(), RefundRequest{OrderIdentifier: "nope"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRefundResolver_CustomerWithNoCharges(t *testing.T) {
	prov := newFakeProvider()
	lookup := &fakeLookup{customers: map[string]Customer{"cust-x": {ID: "cus_x"}}}
	r := RefundResolver{Provider: prov, Lookup: lookup}

	_, err := r.Resolve(context.Background(), RefundRequest{CustomerIdentifier: "cust-x"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(prov.refundCalls) != 0 {
		t.Fatalf("no refund should be attempted without charges")
	}
}

func TestRefundResolver_NoIdentifier(t *testing.T) {
	prov := newFakeProvider()
	r := RefundResolver{Provider: prov, Lookup: &fakeLookup{}}

	_, err := r.Resolve(context.Background(), RefundRequest{AmountMinor: ptrInt64(100)})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(prov.refundCalls)+len(prov.listCalls) != 0 {
		t.Fatalf("no provider capability should run without an identifier")
	}
	for _, field := range refundIdentifierFields {
		if !strings.Contains(err.Error(), field) {
			t.Fatalf("error should list %q: %v", field, err)
		}
	}
}

func TestCaptureResolver_MissingID(t *testing.T) {
	r := CaptureResolver{Provider: newFakeProvider()}

	_, err := r.Resolve(context.Background(), CaptureRequest{})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if !strings.Contains(err.Error(), "payment_intent_id") {
		t.Fatalf("error should list accepted aliases: %v", err)
	}
}

func TestCaptureResolver_PartialAmount(t *testing.T) {
	prov := newFakeProvider()
	r := CaptureResolver{Provider: prov}

	if _, err := r.Resolve(context.Background(), CaptureRequest{PaymentIntentID: "pi_9", AmountMinor: ptrInt64(250)}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	call := prov.captureCalls[0]
	if call.PaymentIntentID != "pi_9" || call.AmountMinor == nil || *call.AmountMinor != 250 {
		t.Fatalf("unexpected capture call: %+v", call)
	}
}

func ptrInt64(v int64) *int64 { return &v }
