package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// clientLimiter tracks a token bucket per client IP. Stale entries are
// swept so the map does not grow without bound on churny traffic.
type clientLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	rps      rate.Limit
	burst    int
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newClientLimiter(rps float64, burst int) *clientLimiter {
	cl := &clientLimiter{
		limiters: make(map[string]*limiterEntry),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
	go cl.sweep()
	return cl
}

func (cl *clientLimiter) allow(ip string) bool {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	entry, ok := cl.limiters[ip]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(cl.rps, cl.burst)}
		cl.limiters[ip] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter.Allow()
}

func (cl *clientLimiter) sweep() {
	for {
		time.Sleep(time.Minute)
		cl.mu.Lock()
		for ip, entry := range cl.limiters {
			if time.Since(entry.lastSeen) > 3*time.Minute {
				delete(cl.limiters, ip)
			}
		}
		cl.mu.Unlock()
	}
}

// RateLimit throttles per-client request rates; used on the auth
// endpoints to slow down signup floods and code guessing.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	cl := newClientLimiter(rps, burst)
	return func(c *gin.Context) {
		if !cl.allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			c.Abort()
			return
		}
		c.Next()
	}
}
