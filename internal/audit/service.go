package audit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence contract for audit events.
//
// It MUST be append-only. No Update/Delete methods are provided by design.
type Repository interface {
	Append(ctx context.Context, e Event) error
}

// Service logs internal operational audit information.
//
// Audit is internal-only; callers treat logging as best-effort.
type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

var ErrInvalidEvent = errors.New("audit: invalid event")

func (s *Service) Append(ctx context.Context, e Event) error {
	if s.repo == nil {
		return errors.New("audit: repository not configured")
	}
	if e.Type == "" {
		return ErrInvalidEvent
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.clock().UTC()
	}
	return s.repo.Append(ctx, e)
}

// LogToolCall records one tool-relay invocation and its outcome.
func (s *Service) LogToolCall(ctx context.Context, toolName, outcome, message, ip string, duration time.Duration) error {
	return s.Append(ctx, Event{
		Type:       EventTypeToolCall,
		ToolName:   toolName,
		Outcome:    outcome,
		Message:    message,
		IPAddress:  ip,
		DurationMs: duration.Milliseconds(),
	})
}

// LogCampaignAction records a console-initiated campaign mutation.
func (s *Service) LogCampaignAction(ctx context.Context, action, batchCallID, actorUserID, actorRole, ip string) error {
	return s.Append(ctx, Event{
		Type:        EventTypeCampaignAction,
		Action:      action,
		BatchCallID: batchCallID,
		ActorUserID: actorUserID,
		ActorRole:   actorRole,
		IPAddress:   ip,
	})
}
