package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"feedback-chat/backend/internal/platform/requestid"
)

// RequestID reuses an incoming X-Request-ID or generates a new one, and
// stores it on the request context and the response headers.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(requestid.Header))
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Request = c.Request.WithContext(requestid.WithID(c.Request.Context(), id))
		c.Header(requestid.Header, id)
		c.Next()
	}
}
