package gateway

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// ipLimiter hands out one token bucket per client IP. Entries idle for
// longer than staleAfter are evicted on the next sweep.
type ipLimiter struct {
	mu         sync.Mutex
	buckets    map[string]*bucketEntry
	perSec     rate.Limit
	burst      int
	staleAfter time.Duration
	lastSweep  time.Time
}

type bucketEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPLimiter(perSec float64, burst int) *ipLimiter {
	return &ipLimiter{
		buckets:    make(map[string]*bucketEntry),
		perSec:     rate.Limit(perSec),
		burst:      burst,
		staleAfter: 10 * time.Minute,
		lastSweep:  time.Now(),
	}
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if now.Sub(l.lastSweep) > l.staleAfter {
		for ip, entry := range l.buckets {
			if now.Sub(entry.lastSeen) > l.staleAfter {
				delete(l.buckets, ip)
			}
		}
		l.lastSweep = now
	}

	entry, ok := l.buckets[ip]
	if !ok {
		entry = &bucketEntry{limiter: rate.NewLimiter(l.perSec, l.burst)}
		l.buckets[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter.Allow()
}

// RateLimit throttles credential endpoints per client IP to slow down
// brute-force attempts before they ever reach the identity service.
func RateLimit(perSec float64, burst int) gin.HandlerFunc {
	limiter := newIPLimiter(perSec, burst)
	return func(c *gin.Context) {
		if !limiter.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "too many requests, slow down",
			})
			return
		}
		c.Next()
	}
}
