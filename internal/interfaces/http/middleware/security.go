package middleware

import (
	"github.com/gin-gonic/gin"
)

// SecurityHeaders adds security headers to responses
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		// Product images are the only embedded resources and come from this host
		c.Header("Content-Security-Policy", "default-src 'self'; img-src 'self' data:")

		c.Header("Server", "Storefront")

		c.Next()
	}
}
