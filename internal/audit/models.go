package audit

import "time"

// Event is an immutable, append-only operational audit record.
//
// Invariants:
// - Events are never updated or deleted.
// - Appending is best-effort; never block tool calls or campaign actions on
//   audit failures.
type Event struct {
	ID   string    `json:"id"`
	Type EventType `json:"type"`

	// ActorUserID/ActorRole identify the authenticated console user, when the
	// flow has one. Tool-relay calls arrive unauthenticated and leave these empty.
	ActorUserID string `json:"actor_user_id,omitempty"`
	ActorRole   string `json:"actor_role,omitempty"`

	// IPAddress is the resolved client IP, best-effort.
	IPAddress string `json:"ip_address,omitempty"`

	// ToolName/Outcome/DurationMs describe tool-relay invocations.
	ToolName   string `json:"tool_name,omitempty"`
	Outcome    string `json:"outcome,omitempty"`
	DurationMs int64  `json:"duration_ms,omitempty"`

	// BatchCallID/Action describe campaign mutations.
	BatchCallID string `json:"batch_call_id,omitempty"`
	Action      string `json:"action,omitempty"`

	Message  string `json:"message,omitempty"`
	Metadata string `json:"metadata,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

type EventType string

const (
	EventTypeToolCall       EventType = "tool_call"
	EventTypeCampaignAction EventType = "campaign_action"
)

const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)
