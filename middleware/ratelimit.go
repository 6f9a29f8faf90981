package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	// DefaultMaxClients caps how many client IPs are tracked at once.
	DefaultMaxClients = 10000
	// DefaultIdleTTL is how long an IP's bucket is kept after its last request.
	DefaultIdleTTL = 10 * time.Minute
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter limits requests per client IP using a token bucket per IP.
// Buckets idle for longer than IdleTTL are dropped, and at most MaxClients are
// kept; past that the least recently seen IP is evicted.
type IPRateLimiter struct {
	ips   map[string]*client
	mu    sync.Mutex
	limit rate.Limit
	burst int

	MaxClients int
	IdleTTL    time.Duration
	now        func() time.Time
}

// NewIPRateLimiter builds a limiter. A burst below 1 would refuse every
// request, so it is raised to 1.
func NewIPRateLimiter(limit rate.Limit, burst int) *IPRateLimiter {
	return &IPRateLimiter{
		ips:        make(map[string]*client),
		limit:      limit,
		burst:      max(burst, 1),
		MaxClients: DefaultMaxClients,
		IdleTTL:    DefaultIdleTTL,
		now:        time.Now,
	}
}

// PerMinute builds a limiter allowing n requests a minute per IP.
func PerMinute(n, burst int) *IPRateLimiter {
	return NewIPRateLimiter(rate.Limit(float64(n)/60.0), burst)
}

func (l *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if c, ok := l.ips[ip]; ok {
		c.lastSeen = now
		return c.limiter
	}

	if len(l.ips) >= l.MaxClients {
		l.evict(now)
	}
	c := &client{limiter: rate.NewLimiter(l.limit, l.burst), lastSeen: now}
	l.ips[ip] = c
	return c.limiter
}

// evict drops idle buckets, then the least recently seen ones until there is
// room for one more. Callers hold l.mu.
func (l *IPRateLimiter) evict(now time.Time) {
	for ip, c := range l.ips {
		if now.Sub(c.lastSeen) > l.IdleTTL {
			delete(l.ips, ip)
		}
	}
	for len(l.ips) >= max(l.MaxClients, 1) {
		var (
			oldestIP string
			oldest   time.Time
			found    bool
		)
		for ip, c := range l.ips {
			if !found || c.lastSeen.Before(oldest) {
				oldestIP, oldest, found = ip, c.lastSeen, true
			}
		}
		delete(l.ips, oldestIP)
	}
}

// Len reports how many client IPs are currently tracked.
func (l *IPRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.ips)
}

// Middleware answers 429 once the client IP has no tokens left. The IP comes
// from c.ClientIP, so forwarded headers only count when the engine trusts the
// peer they arrive from.
func (l *IPRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.getLimiter(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
