package payments

import "testing"

func TestParseRefundRequest_AmountForms(t *testing.T) {
	cases := []struct {
		name   string
		amount any
		want   *int64
	}{
		{"number", float64(150), ptrInt64(150)},
		{"fractional rounds", 150.7, ptrInt64(151)},
		{"numeric string", "200", ptrInt64(200)},
		{"fractional string", "150.7", ptrInt64(151)},
		{"invalid string dropped", "lots", nil},
		{"absent", nil, nil},
	}
	for _, tc := range cases {
		params := map[string]any{"charge_id": "ch_1"}
		if tc.amount != nil {
			params["amount"] = tc.amount
		}
		got := ParseRefundRequest(params).AmountMinor
		switch {
		case tc.want == nil && got != nil:
			t.Fatalf("%s: expected nil amount, got %d", tc.name, *got)
		case tc.want != nil && (got == nil || *got != *tc.want):
			t.Fatalf("%s: expected %d, got %v", tc.name, *tc.want, got)
		}
	}
}

func TestParseRefundRequest_Fields(t *testing.T) {
	req := ParseRefundRequest(map[string]any{
		"charge_id":           "  ch_1 ",
		"payment_intent_id":   "pi_1",
		"order_identifier":    "ORD-1",
		"customer_identifier": "cus@example.com",
		"reason":              "duplicate",
		"metadata":            map[string]any{"ticket": 42},
	})
	if req.ChargeID != "ch_1" || req.PaymentIntentID != "pi_1" ||
		req.OrderIdentifier != "ORD-1" || req.CustomerIdentifier != "cus@example.com" {
		t.Fatalf("unexpected identifiers: %+v", req)
	}
	if req.Reason != "duplicate" {
		t.Fatalf("unexpected reason: %q", req.Reason)
	}
	if req.Metadata["ticket"] != "42" {
		t.Fatalf("metadata values should be stringified: %+v", req.Metadata)
	}
}

func TestParseCaptureRequest_AliasPrecedence(t *testing.T) {
	req := ParseCaptureRequest(map[string]any{
		"paymentIntentId": "pi_camel",
		"intent_id":       "pi_short",
	})
	if req.PaymentIntentID != "pi_camel" {
		t.Fatalf("expected first matching alias to win, got %q", req.PaymentIntentID)
	}

	req = ParseCaptureRequest(map[string]any{"intent_id": "pi_short"})
	if req.PaymentIntentID != "pi_short" {
		t.Fatalf("expected fallback alias, got %q", req.PaymentIntentID)
	}
}

func TestParseCaptureRequest_NonStringIDIgnored(t *testing.T) {
	req := ParseCaptureRequest(map[string]any{"payment_intent_id": 12345})
	if req.PaymentIntentID != "" {
		t.Fatalf("non-string id should be ignored, got %q", req.PaymentIntentID)
	}
}

func TestChargeRef(t *testing.T) {
	if id := (ChargeRef{ID: "ch_bare"}).ChargeID(); id != "ch_bare" {
		t.Fatalf("bare ref: got %q", id)
	}
	if id := (ChargeRef{Expanded: &Charge{ID: "ch_exp"}}).ChargeID(); id != "ch_exp" {
		t.Fatalf("expanded ref: got %q", id)
	}
	if !(ChargeRef{}).IsZero() {
		t.Fatalf("empty ref should be zero")
	}
	if (ChargeRef{ID: "ch_1"}).IsZero() {
		t.Fatalf("populated ref should not be zero")
	}
}
