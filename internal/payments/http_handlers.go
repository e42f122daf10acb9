package payments

import (
	"net/http"
	"strings"
	"time"

	"campaign-console/internal/audit"
	"campaign-console/pkg/logger"

	"github.com/gin-gonic/gin"
)

// RelayHandler serves the public tool-relay endpoint. The route is reachable
// cross-origin by external agent callers; CORS headers are applied by the
// shared middleware at the boundary, not here.
type RelayHandler struct {
	Dispatcher *Dispatcher
	Audit      *audit.Service
	Limiter    *ToolLimiter
}

type callToolRequest struct {
	ToolName   string         `json:"toolName"`
	Parameters map[string]any `json:"parameters"`
}

// CallTool handles POST /api/stripe/call-stripe-tool.
// Every success is {"result": ...}; every failure is {"error": ...} with a
// status from the relay taxonomy.
func (h RelayHandler) CallTool(c *gin.Context) {
	log := logger.FromGin(c)

	if h.Dispatcher == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "stripe relay not configured"})
		return
	}

	var req callToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	req.ToolName = strings.TrimSpace(req.ToolName)
	if req.ToolName == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "toolName required"})
		return
	}
	if req.Parameters == nil {
		req.Parameters = map[string]any{}
	}

	if h.Limiter != nil {
		ok, release, err := h.Limiter.Acquire(c.Request.Context(), req.ToolName)
		if err != nil {
			// Fail open: the cap is protective, not load-bearing.
			log.Warn("tool cap acquire failed", "tool", req.ToolName, "err", err)
		} else if !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many concurrent tool calls"})
			return
		} else {
			defer release()
		}
	}

	start := time.Now()
	result, err := h.Dispatcher.Dispatch(c.Request.Context(), req.ToolName, req.Parameters)
	h.logInvocation(c, req.ToolName, err, time.Since(start))

	if err != nil {
		status := HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			log.Error("tool call failed", "tool", req.ToolName, "err", err)
		}
		c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}

func (h RelayHandler) logInvocation(c *gin.Context, tool string, callErr error, dur time.Duration) {
	if h.Audit == nil {
		return
	}
	outcome, msg := audit.OutcomeOK, ""
	if callErr != nil {
		outcome, msg = audit.OutcomeError, callErr.Error()
	}
	// Best-effort; never block the relay on audit failures.
	if err := h.Audit.LogToolCall(c.Request.Context(), tool, outcome, msg, c.ClientIP(), dur); err != nil {
		logger.FromGin(c).Warn("audit append failed", "err", err)
	}
}
