package middleware

import (
	"net/http"
	"strings"

	"hospital-management-backend/internal/config"

	"github.com/gin-gonic/gin"
)

const (
	corsAllowMethods = "GET, POST, PUT, DELETE, OPTIONS"
	corsAllowHeaders = "Content-Type, Authorization, " + RequestIDHeader
)

// CORS answers cross-origin requests for the configured origins. A "*" entry
// opens the API to any origin but never with credentials; listed origins are
// echoed back and may send credentials.
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	listed := make(map[string]struct{}, len(cfg.AllowedOrigins))
	anyOrigin := false
	for _, origin := range cfg.AllowedOrigins {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		switch origin {
		case "":
		case "*":
			anyOrigin = true
		default:
			listed[origin] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		header := c.Writer.Header()

		if origin != "" {
			header.Add("Vary", "Origin")
			_, ok := listed[origin]
			switch {
			case ok:
				header.Set("Access-Control-Allow-Origin", origin)
				header.Set("Access-Control-Allow-Credentials", "true")
			case anyOrigin:
				header.Set("Access-Control-Allow-Origin", "*")
			}

			if ok || anyOrigin {
				header.Set("Access-Control-Allow-Methods", corsAllowMethods)
				header.Set("Access-Control-Allow-Headers", corsAllowHeaders)
				header.Set("Access-Control-Expose-Headers", RequestIDHeader)
				header.Set("Access-Control-Max-Age", "86400")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
