package payments

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"campaign-console/internal/audit"

	"github.com/gin-gonic/gin"
)

func relayRouter(h RelayHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/stripe/call-stripe-tool", h.CallTool)
	return r
}

func postTool(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/stripe/call-stripe-tool", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCallTool_Success(t *testing.T) {
	prov := newFakeProvider()
	h := RelayHandler{Dispatcher: NewDispatcher(prov, &fakeLookup{})}
	r := relayRouter(h)

	w := postTool(t, r, `{"toolName":"refunds_create","parameters":{"charge_id":"ch_1"}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Result struct {
			Refund Refund `json:"refund"`
		} `json:"result"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Result.Refund.ChargeID != "ch_1" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestCallTool_ErrorStatuses(t *testing.T) {
	prov := newFakeProvider()
	h := RelayHandler{Dispatcher: NewDispatcher(prov, &fakeLookup{})}
	r := relayRouter(h)

	cases := []struct {
		body string
		want int
	}{
		{`not json`, http.StatusBadRequest},
		{`{"toolName":"","parameters":{}}`, http.StatusBadRequest},
		{`{"toolName":"balance_transactions_read"}`, http.StatusNotFound},
		{`{"toolName":"refunds_create","parameters":{}}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		w := postTool(t, r, tc.body)
		if w.Code != tc.want {
			t.Fatalf("body %q: expected %d, got %d: %s", tc.body, tc.want, w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), `"error"`) {
			t.Fatalf("failures must carry an error field: %s", w.Body.String())
		}
	}
}

func TestCallTool_UpstreamFailure(t *testing.T) {
	prov := newFakeProvider()
	prov.refundErr = ErrUpstream
	h := RelayHandler{Dispatcher: NewDispatcher(prov, &fakeLookup{})}
	r := relayRouter(h)

	w := postTool(t, r, `{"toolName":"refunds_create","parameters":{"charge_id":"ch_1"}}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestCallTool_NotConfigured(t *testing.T) {
	r := relayRouter(RelayHandler{})

	w := postTool(t, r, `{"toolName":"refunds_create"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "not configured") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestCallTool_AuditsOutcome(t *testing.T) {
	prov := newFakeProvider()
	repo := audit.NewMemoryRepo()
	h := RelayHandler{
		Dispatcher: NewDispatcher(prov, &fakeLookup{}),
		Audit:      audit.NewService(repo),
	}
	r := relayRouter(h)

	postTool(t, r, `{"toolName":"refunds_create","parameters":{"charge_id":"ch_1"}}`)
	postTool(t, r, `{"toolName":"refunds_create","parameters":{}}`)

	evs := repo.Events()
	if len(evs) != 2 {
		t.Fatalf("expected 2 audit events, got %d", len(evs))
	}
	if evs[0].Outcome != audit.OutcomeOK || evs[0].ToolName != "refunds_create" {
		t.Fatalf("unexpected first event: %+v", evs[0])
	}
	if evs[1].Outcome != audit.OutcomeError || evs[1].Message == "" {
		t.Fatalf("unexpected second event: %+v", evs[1])
	}
}
