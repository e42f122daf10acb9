package console

import (
	"fmt"
	"strings"
	"time"

	"campaign-console/internal/batchcalls"
)

// View models for the campaign dashboard. Builders are pure: they derive
// presentation state (badges, labels, progress, empty states) from whatever
// the dialer backend returned and never mutate it.

// Badge pairs a display label with a stable style class.
type Badge struct {
	Label string `json:"label"`
	Class string `json:"class"`
}

var badgeClasses = map[batchcalls.Status]string{
	batchcalls.StatusPending:    "badge-yellow",
	batchcalls.StatusInitiated:  "badge-cyan",
	batchcalls.StatusInProgress: "badge-blue",
	batchcalls.StatusCompleted:  "badge-green",
	batchcalls.StatusFailed:     "badge-red",
	batchcalls.StatusCancelled:  "badge-gray",
	batchcalls.StatusVoicemail:  "badge-purple",
}

// StatusBadge maps a status to its badge. Unknown statuses render with the
// pending style; the label still shows the raw value with underscores
// replaced by spaces.
func StatusBadge(s batchcalls.Status) Badge {
	class, ok := badgeClasses[s]
	if !ok {
		class = badgeClasses[batchcalls.StatusPending]
	}
	return Badge{
		Label: strings.ReplaceAll(string(s), "_", " "),
		Class: class,
	}
}

const displayTime = "Jan 2, 2006 3:04 PM"

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(displayTime)
}

type BatchCallRow struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Badge     Badge  `json:"badge"`
	Progress  string `json:"progress"`
	CreatedAt string `json:"created_at"`
}

// ListView is the campaign table. Empty means the backend returned no
// campaigns at all; NoMatches means a search query filtered everything out.
type ListView struct {
	Query     string         `json:"query,omitempty"`
	Rows      []BatchCallRow `json:"rows"`
	Empty     bool           `json:"empty"`
	NoMatches bool           `json:"no_matches"`
}

// FilterByName keeps campaigns whose name contains query, case-insensitively.
// It filters the in-memory collection; it never re-queries the backend.
func FilterByName(calls []batchcalls.BatchCall, query string) []batchcalls.BatchCall {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return calls
	}
	out := make([]batchcalls.BatchCall, 0, len(calls))
	for _, bc := range calls {
		if strings.Contains(strings.ToLower(bc.Name), q) {
			out = append(out, bc)
		}
	}
	return out
}

func BuildListView(calls []batchcalls.BatchCall, query string) ListView {
	filtered := FilterByName(calls, query)

	rows := make([]BatchCallRow, 0, len(filtered))
	for _, bc := range filtered {
		rows = append(rows, BatchCallRow{
			ID:        bc.ID,
			Name:      bc.Name,
			Badge:     StatusBadge(bc.Status),
			Progress:  fmt.Sprintf("%d/%d", bc.DispatchedCalls, bc.ScheduledCalls),
			CreatedAt: formatTime(bc.CreatedAt),
		})
	}

	return ListView{
		Query:     strings.TrimSpace(query),
		Rows:      rows,
		Empty:     len(calls) == 0 && strings.TrimSpace(query) == "",
		NoMatches: len(calls) > 0 && len(rows) == 0,
	}
}

type RecipientRow struct {
	ID             string `json:"id"`
	Contact        string `json:"contact"`
	Badge          Badge  `json:"badge"`
	ConversationID string `json:"conversation_id,omitempty"`
	UpdatedAt      string `json:"updated_at"`
}

type DetailView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AgentID     string `json:"agent_id"`
	Badge       Badge  `json:"badge"`
	CreatedAt   string `json:"created_at"`
	ScheduledAt string `json:"scheduled_at,omitempty"`

	ScheduledCalls  int `json:"scheduled_calls"`
	DispatchedCalls int `json:"dispatched_calls"`
	RemainingCalls  int `json:"remaining_calls"`

	Recipients []RecipientRow `json:"recipients"`
}

func BuildDetailView(bc batchcalls.BatchCall) DetailView {
	remaining := bc.ScheduledCalls - bc.DispatchedCalls
	if remaining < 0 {
		remaining = 0
	}

	recipients := make([]RecipientRow, 0, len(bc.Recipients))
	for _, r := range bc.Recipients {
		recipients = append(recipients, RecipientRow{
			ID:             r.ID,
			Contact:        r.Contact(),
			Badge:          StatusBadge(r.Status),
			ConversationID: r.ConversationID,
			UpdatedAt:      formatTime(r.UpdatedAt),
		})
	}

	v := DetailView{
		ID:              bc.ID,
		Name:            bc.Name,
		AgentID:         bc.AgentID,
		Badge:           StatusBadge(bc.Status),
		CreatedAt:       formatTime(bc.CreatedAt),
		ScheduledCalls:  bc.ScheduledCalls,
		DispatchedCalls: bc.DispatchedCalls,
		RemainingCalls:  remaining,
		Recipients:      recipients,
	}
	if bc.ScheduledAt != nil {
		v.ScheduledAt = formatTime(*bc.ScheduledAt)
	}
	return v
}
