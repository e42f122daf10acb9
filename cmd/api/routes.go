package main

import (
	"campaign-console/internal/auth"
	"campaign-console/internal/config"
	"campaign-console/internal/console"
	"campaign-console/internal/httpapi"
	"campaign-console/internal/payments"
	"campaign-console/internal/rbac"

	"github.com/gin-gonic/gin"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to internal modules.
func registerRoutes(r *gin.Engine, cfg config.Config, authManager *auth.Manager, consoleHandlers console.Handlers, relay payments.RelayHandler) {
	// public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Tool relay (public, CORS-open). External agent callers authenticate at
	// the provider layer via the server-held secret key, not per request.
	stripe := r.Group("/api/stripe")
	stripe.Use(httpapi.CORS(cfg.CORS))
	{
		stripe.POST("/call-stripe-tool", relay.CallTool)
		// Preflight is answered by the CORS middleware.
		stripe.OPTIONS("/call-stripe-tool", func(c *gin.Context) {})
	}

	// AUTH routes (token issuance).
	// NOTE: This is a placeholder login route; real credential validation is not implemented.
	h := httpapi.Handlers{Auth: authManager}
	r.POST("/v1/auth/login", h.Login)

	// protected API group
	v1 := r.Group("/v1")
	v1.Use(auth.RequireAccessToken(authManager))
	{
		v1.GET("/me", func(c *gin.Context) {
			uid, _ := auth.UserID(c.Request.Context())
			role, _ := auth.Role(c.Request.Context())
			c.JSON(200, gin.H{"user_id": uid, "role": role})
		})

		// BATCH-CALL console routes
		batch := v1.Group("/batch-calls")
		{
			reads := batch.Group("")
			reads.Use(rbac.RequireAnyRole(rbac.RoleViewer, rbac.RoleOperator))
			{
				reads.GET("", consoleHandlers.ListBatchCalls)
				reads.GET("/:id", consoleHandlers.GetBatchCall)
			}

			mutations := batch.Group("")
			mutations.Use(rbac.RequireAnyRole(rbac.RoleOperator))
			{
				mutations.DELETE("/:id", consoleHandlers.CancelBatchCall)
				mutations.POST("/:id/retry", consoleHandlers.RetryBatchCall)
			}
		}
	}
}
