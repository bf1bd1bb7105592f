package httpapi

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/promptstudio/prompt-studio/internal/config"
)

const rateLimitMessage = "Too many requests from this IP, please try again after 15 minutes."

// ipRateLimiter holds one token bucket per caller IP. The bucket refills
// at limit/window so a full window's budget is available as burst.
type ipRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*entry

	every rate.Limit
	burst int
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPRateLimiter(cfg config.RateLimitConfig) *ipRateLimiter {
	return &ipRateLimiter{
		limiters: map[string]*entry{},
		every:    rate.Every(cfg.Window / time.Duration(cfg.Max)),
		burst:    cfg.Max,
	}
}

func (l *ipRateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.limiters[ip]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(l.every, l.burst)}
		l.limiters[ip] = e
		l.evictStale()
	}
	e.lastSeen = time.Now()
	return e.limiter.Allow()
}

// evictStale drops buckets idle for over an hour. Called with the lock
// held, only on the new-IP path, so steady traffic pays nothing.
func (l *ipRateLimiter) evictStale() {
	cutoff := time.Now().Add(-time.Hour)
	for ip, e := range l.limiters {
		if e.lastSeen.Before(cutoff) {
			delete(l.limiters, ip)
		}
	}
}

func rateLimitMiddleware(limiter *ipRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": rateLimitMessage})
			return
		}
		c.Next()
	}
}
