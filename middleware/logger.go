package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request ID in both directions
const RequestIDHeader = "X-Request-ID"

// RequestLogger logs one line per request without PII. It reuses an
// incoming X-Request-ID or generates one, and echoes it in the response.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > 64 {
			requestID = uuid.NewString()
		}
		c.Set("requestId", requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()

		// user_id is only known after Authenticate has run
		if userID, exists := c.Get(userIDKey); exists {
			log.Printf("[%s] %s | %d | %v | request_id=%s user_id=%v",
				method, path, statusCode, latency, requestID, userID)
		} else {
			log.Printf("[%s] %s | %d | %v | request_id=%s",
				method, path, statusCode, latency, requestID)
		}
	}
}
