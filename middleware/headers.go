// Package middleware file: middleware/headers.go
package middleware

import "github.com/gin-gonic/gin"

// SecurityHeaders sets the response headers every admin page carries.
// The panel is never meant to be framed by another site.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "same-origin")
		h.Set("Cache-Control", "no-store")
		c.Next()
	}
}
