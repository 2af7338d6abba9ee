package middlewares

import (
	"net/http"
	"time"

	ttlworker "github.com/FloatTech/ttl"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// limiterTTL is the per-client rate window; idle clients fall out of the
// cache and start fresh.
const limiterTTL = 15 * time.Minute

// RateLimit applies a per-client-IP token bucket to the API.
func RateLimit(rps, burst int) gin.HandlerFunc {
	if rps <= 0 {
		rps = 10
	}
	if burst <= 0 {
		burst = 100
	}
	limiters := ttlworker.NewCache[string, *rate.Limiter](limiterTTL)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		limiter := limiters.Get(ip)
		if limiter == nil {
			limiter = rate.NewLimiter(rate.Limit(rps), burst)
			limiters.Set(ip, limiter)
		}
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}
		c.Next()
	}
}
