package batchcalls

import "time"

// BatchCall represents one outbound calling campaign as reported by the
// dialer backend. The backend owns all state transitions; this service only
// reads campaigns and requests cancel/retry.
type BatchCall struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	AgentID string `json:"agent_id"`

	Status Status `json:"status"`

	// ScheduledCalls is the recipient count; DispatchedCalls counts attempts
	// the backend has already placed.
	ScheduledCalls  int `json:"scheduled_calls"`
	DispatchedCalls int `json:"dispatched_calls"`

	// PhoneNumberID is the optional outbound line binding.
	PhoneNumberID string `json:"phone_number_id,omitempty"`
	Provider      string `json:"phone_provider,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`

	// Recipients is populated on the detail endpoint only.
	Recipients []Recipient `json:"recipients,omitempty"`
}

// Recipient is one addressable target within a campaign: a phone number for
// voice or a WhatsApp user id for messaging. Read-only from this service.
type Recipient struct {
	ID string `json:"id"`

	PhoneNumber    string `json:"phone_number,omitempty"`
	WhatsAppUserID string `json:"whatsapp_user_id,omitempty"`

	Status Status `json:"status"`

	// ConversationID links to the conversation created for this recipient,
	// once the call/chat has been initiated.
	ConversationID string `json:"conversation_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Contact returns whichever address the recipient has.
func (r Recipient) Contact() string {
	if r.PhoneNumber != "" {
		return r.PhoneNumber
	}
	return r.WhatsAppUserID
}

type Status string

// Campaign lifecycle statuses. Recipients additionally use
// StatusInitiated and StatusVoicemail.
const (
	StatusPending    Status = "pending"
	StatusInitiated  Status = "initiated"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusCancelled  Status = "cancelled"
	StatusVoicemail  Status = "voicemail"
)

// Known reports whether s is part of the documented status set.
// Unknown statuses still render (with pending styling); they are never an error.
func (s Status) Known() bool {
	switch s {
	case StatusPending, StatusInitiated, StatusInProgress, StatusCompleted,
		StatusFailed, StatusCancelled, StatusVoicemail:
		return true
	default:
		return false
	}
}
