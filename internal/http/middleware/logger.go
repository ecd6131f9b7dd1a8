package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger mencetak satu baris akses per request, sejalan dengan format
// utils.LogEvent supaya log API dan log domain bisa di-grep bareng.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Printf("[API] request_id=%s %s %s status=%d durasi=%s ip=%s",
			GetRequestID(c),
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start).Round(time.Microsecond),
			c.ClientIP(),
		)
	}
}
