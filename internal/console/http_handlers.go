package console

import (
	"context"
	"errors"
	"net/http"

	"campaign-console/internal/audit"
	"campaign-console/internal/auth"
	"campaign-console/internal/batchcalls"
	"campaign-console/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Dialer is the slice of the batch-call client the console needs.
type Dialer interface {
	List(ctx context.Context) ([]batchcalls.BatchCall, error)
	Get(ctx context.Context, id string) (batchcalls.BatchCall, error)
	Cancel(ctx context.Context, id string) error
	Retry(ctx context.Context, id string) error
}

// Handlers serves the campaign dashboard API.
// Keep these thin: fetch from the dialer backend, build a view, return JSON.
// Mutations always re-fetch after success; there is no partial update path.
type Handlers struct {
	Dialer Dialer
	Audit  *audit.Service
}

// ListBatchCalls handles GET /v1/batch-calls?q=
func (h Handlers) ListBatchCalls(c *gin.Context) {
	if h.Dialer == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "dialer not configured"})
		return
	}
	calls, err := h.Dialer.List(c.Request.Context())
	if err != nil {
		h.writeDialerError(c, err)
		return
	}
	c.JSON(http.StatusOK, BuildListView(calls, c.Query("q")))
}

// GetBatchCall handles GET /v1/batch-calls/:id
func (h Handlers) GetBatchCall(c *gin.Context) {
	if h.Dialer == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "dialer not configured"})
		return
	}
	bc, err := h.Dialer.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeDialerError(c, err)
		return
	}
	c.JSON(http.StatusOK, BuildDetailView(bc))
}

// CancelBatchCall handles DELETE /v1/batch-calls/:id.
// Cancellation is destructive; the confirmation dialog is a client concern.
func (h Handlers) CancelBatchCall(c *gin.Context) {
	h.mutate(c, "cancel")
}

// RetryBatchCall handles POST /v1/batch-calls/:id/retry.
func (h Handlers) RetryBatchCall(c *gin.Context) {
	h.mutate(c, "retry")
}

func (h Handlers) mutate(c *gin.Context, action string) {
	if h.Dialer == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "dialer not configured"})
		return
	}
	id := c.Param("id")
	ctx := c.Request.Context()

	op := h.Dialer.Cancel
	if action == "retry" {
		op = h.Dialer.Retry
	}
	if err := op(ctx, id); err != nil {
		h.writeDialerError(c, err)
		return
	}

	h.logAction(c, action, id)

	// Full reload: the backend is the source of truth after a mutation.
	bc, err := h.Dialer.Get(ctx, id)
	if err != nil {
		h.writeDialerError(c, err)
		return
	}
	c.JSON(http.StatusOK, BuildDetailView(bc))
}

func (h Handlers) writeDialerError(c *gin.Context, err error) {
	log := logger.FromGin(c)
	switch {
	case errors.Is(err, batchcalls.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "batch call not found"})
	default:
		log.Error("dialer request failed", "err", err)
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "dialer backend unavailable"})
	}
}

func (h Handlers) logAction(c *gin.Context, action, batchCallID string) {
	if h.Audit == nil {
		return
	}
	userID, _ := auth.UserID(c.Request.Context())
	role, _ := auth.Role(c.Request.Context())
	// Best-effort; never block the flow on audit failures.
	if err := h.Audit.LogCampaignAction(c.Request.Context(), action, batchCallID, userID, role, c.ClientIP()); err != nil {
		logger.FromGin(c).Warn("audit append failed", "err", err)
	}
}
