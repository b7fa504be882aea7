package middleware

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/gradpath/gradpath-backend/internal/services"
)

// LoginRateLimit throttles login attempts per client address.
func LoginRateLimit(limiter services.RateLimiter) gin.HandlerFunc {
  return func(c *gin.Context) {
    if !limiter.Allow(c.Request.Context(), c.ClientIP()) {
      c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many login attempts, try again later"})
      return
    }
    c.Next()
  }
}
