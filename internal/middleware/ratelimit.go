package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jotterhq/jotter/internal/pkg/errcode"
	"github.com/jotterhq/jotter/internal/pkg/response"
)

type bucket struct {
	tokens float64
	last   time.Time
}

// RateLimit is a per-client-IP token bucket, meant for the unauthenticated
// public routes where the token is the only credential.
func RateLimit(ratePerSec float64, burst float64) gin.HandlerFunc {
	var mu sync.Mutex
	buckets := make(map[string]*bucket)
	return func(c *gin.Context) {
		key := c.ClientIP()
		now := time.Now()
		mu.Lock()
		b, ok := buckets[key]
		if !ok {
			b = &bucket{tokens: burst, last: now}
			buckets[key] = b
		}
		b.tokens += now.Sub(b.last).Seconds() * ratePerSec
		if b.tokens > burst {
			b.tokens = burst
		}
		b.last = now
		allowed := b.tokens >= 1
		if allowed {
			b.tokens--
		}
		mu.Unlock()
		if !allowed {
			response.Error(c, errcode.ErrTooMany, "too many requests")
			c.Abort()
			return
		}
		c.Next()
	}
}
