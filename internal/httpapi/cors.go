package httpapi

import (
	"net/http"

	"campaign-console/internal/config"

	"github.com/gin-gonic/gin"
)

// CORS applies the relay's cross-origin policy. The tool relay is called from
// browser-embedded agents on other origins, so preflights must succeed.
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	origin := cfg.AllowOrigin
	if origin == "" {
		origin = "*"
	}
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-Id")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
