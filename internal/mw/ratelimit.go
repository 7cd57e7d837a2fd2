package mw

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// KeyedRateLimiter holds one token bucket per key. Buckets idle for longer
// than the eviction window are dropped.
type KeyedRateLimiter struct {
	limiters *cache.Cache
	mu       sync.Mutex
	r        rate.Limit
	b        int
}

func NewKeyedRateLimiter(r rate.Limit, b int, idle time.Duration) *KeyedRateLimiter {
	return &KeyedRateLimiter{
		limiters: cache.New(idle, idle),
		r:        r,
		b:        b,
	}
}

// Allow consumes a token from the bucket of key.
func (k *KeyedRateLimiter) Allow(key string) bool {
	k.mu.Lock()
	var limiter *rate.Limiter
	if v, ok := k.limiters.Get(key); ok {
		limiter = v.(*rate.Limiter)
	} else {
		limiter = rate.NewLimiter(k.r, k.b)
	}
	// Refresh the expiry on every hit.
	k.limiters.SetDefault(key, limiter)
	k.mu.Unlock()
	return limiter.Allow()
}

// RateLimiter limits requests per caller. key picks the bucket; when it
// returns "" the client IP is used.
func RateLimiter(r rate.Limit, b int, key func(*gin.Context) string) gin.HandlerFunc {
	limiter := NewKeyedRateLimiter(r, b, 10*time.Minute)
	return func(c *gin.Context) {
		k := ""
		if key != nil {
			k = key(c)
		}
		if k == "" {
			k = "ip:" + c.ClientIP()
		}
		if !limiter.Allow(k) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Demasiadas solicitudes, intenta de nuevo en un momento"})
			return
		}
		c.Next()
	}
}
