package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/kpruthvi/portfolio/internal/api/dto/common"
	"github.com/kpruthvi/portfolio/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines configuration for the rate limiter
type RateLimitConfig struct {
	// Requests per second, per client IP
	RPS float64
	// Burst size (number of requests that can be made in a single burst)
	Burst int
	// Idle limiters older than this are dropped
	IdleTTL time.Duration
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiter keeps one token bucket per client IP
type ipLimiter struct {
	config    RateLimitConfig
	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
}

func newIPLimiter(config RateLimitConfig) *ipLimiter {
	if config.IdleTTL <= 0 {
		config.IdleTTL = 10 * time.Minute
	}
	return &ipLimiter{
		config:    config,
		visitors:  make(map[string]*visitor),
		lastSweep: time.Now(),
	}
}

func (l *ipLimiter) get(ip string, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) > l.config.IdleTTL {
		for key, v := range l.visitors {
			if now.Sub(v.lastSeen) > l.config.IdleTTL {
				delete(l.visitors, key)
			}
		}
		l.lastSweep = now
	}

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rate.Limit(l.config.RPS), l.config.Burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

// RateLimitMiddleware creates a new rate limiting middleware with the given configuration
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	limiters := newIPLimiter(config)

	return func(c *gin.Context) {
		limiter := limiters.get(utils.GetRealIP(c), time.Now())

		if !limiter.Allow() {
			c.Header("Retry-After", strconv.Itoa(retryAfterSeconds(config.RPS)))
			utils.HandleErrorMessage(c, http.StatusTooManyRequests, common.MsgRateLimited)
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Burst))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(int(limiter.Tokens())))

		c.Next()
	}
}

// retryAfterSeconds is the wait for one token to refill, rounded up
func retryAfterSeconds(rps float64) int {
	seconds := int(math.Ceil(1 / rps))
	if seconds < 1 {
		return 1
	}
	return seconds
}
