package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const actorKey = "Actor"

// InjectActor stores the identity forwarded by the fronting proxy. Login is
// handled upstream; the app only records who made a change.
func InjectActor(header string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if name := strings.TrimSpace(c.GetHeader(header)); name != "" {
			c.Set(actorKey, name)
		}
		c.Next()
	}
}

// Actor returns the current identity or "anonymous".
func Actor(c *gin.Context) string {
	if v, ok := c.Get(actorKey); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return "anonymous"
}
