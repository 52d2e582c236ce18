package middleware

import (
	"strings"

	"fun123/pkg/reqctx"

	"github.com/gin-gonic/gin"
)

// SecureTransport records whether the request came in over TLS, either
// directly or via a terminating proxy that sets X-Forwarded-Proto.
func SecureTransport() gin.HandlerFunc {
	return func(c *gin.Context) {
		secure := c.Request.TLS != nil ||
			strings.EqualFold(c.GetHeader("X-Forwarded-Proto"), "https")
		c.Request = c.Request.WithContext(reqctx.WithSecure(c.Request.Context(), secure))
		c.Next()
	}
}
