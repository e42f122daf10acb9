package audit

import (
	"context"
	"testing"
	"time"
)

func TestService_AppendRequiresType(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)

	if err := svc.Append(context.Background(), Event{}); err == nil {
		t.Fatalf("expected error for missing type")
	}
}

func TestService_FillsIDAndTimestamp(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)

	if err := svc.LogToolCall(context.Background(), "refunds_create", OutcomeOK, "", "1.2.3.4", 120*time.Millisecond); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	evs := repo.Events()
	if len(evs) != 1 {
		t.Fatalf("expected 1 event, got %d", len(evs))
	}
	e := evs[0]
	if e.ID == "" || e.CreatedAt.IsZero() {
		t.Fatalf("expected id and timestamp to be filled: %+v", e)
	}
	if e.Type != EventTypeToolCall || e.DurationMs != 120 || e.IPAddress != "1.2.3.4" {
		t.Fatalf("unexpected event: %+v", e)
	}
}

func TestService_LogCampaignAction(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)

	if err := svc.LogCampaignAction(context.Background(), "cancel", "bc1", "u1", "operator", "1.2.3.4"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	evs := repo.Events()
	if len(evs) != 1 || evs[0].Action != "cancel" || evs[0].BatchCallID != "bc1" {
		t.Fatalf("unexpected events: %+v", evs)
	}
}
