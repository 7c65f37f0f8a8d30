package main

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// maxBodyBytes caps request bodies at 10 MB.
const maxBodyBytes = 10 << 20

/* ─── Rate limiting ──────────────────────────────────────────────────── */

// rateLimiterStore keeps one token bucket per client IP.
type rateLimiterStore struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
	requests int64
}

func newRateLimiterStore(max int, window time.Duration) *rateLimiterStore {
	return &rateLimiterStore{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(float64(max) / window.Seconds()),
		burst:    max,
	}
}

// get returns the limiter for ip, creating a full bucket on first sight.
func (s *rateLimiterStore) get(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.limiters[ip]
	if !ok {
		l = rate.NewLimiter(s.limit, s.burst)
		s.limiters[ip] = l
	}

	// Every 1000 requests, drop idle clients to keep the map bounded.
	s.requests++
	if s.requests%1000 == 0 {
		s.evictIdle()
	}
	return l
}

// evictIdle removes IPs whose bucket has refilled completely. Caller holds mu.
func (s *rateLimiterStore) evictIdle() {
	for ip, l := range s.limiters {
		if l.Tokens() >= float64(s.burst) {
			delete(s.limiters, ip)
		}
	}
}

// rateLimit allows max requests per window per client IP, refilling smoothly.
// A non-positive max disables limiting.
func rateLimit(max int, window time.Duration) gin.HandlerFunc {
	if max <= 0 || window <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	store := newRateLimiterStore(max, window)
	retryAfter := strconv.Itoa(int(math.Ceil(window.Seconds() / float64(max))))

	return func(c *gin.Context) {
		if !store.get(c.ClientIP()).Allow() {
			c.Header("Retry-After", retryAfter)
			apiError(c, http.StatusTooManyRequests, "too many requests")
			c.Abort()
			return
		}
		c.Next()
	}
}

/* ─── Security headers / CORS ────────────────────────────────────────── */

// securityHeaders sets conservative browser security headers on every response.
func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("X-DNS-Prefetch-Control", "off")
		h.Set("Cross-Origin-Opener-Policy", "same-origin")
		c.Next()
	}
}

// cors adds CORS headers for allowed origins. "*" in the list allows any origin.
// Preflight requests are answered with 204 whether or not the origin is allowed;
// the browser blocks the disallowed ones since no headers are sent.
func cors(allowedOrigins []string) gin.HandlerFunc {
	allowAll := false
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		o = strings.TrimSpace(o)
		if o == "*" {
			allowAll = true
		}
		allowed[o] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		ok := origin != "" && (allowAll || allowed[origin])
		if ok {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions && origin != "" {
			if ok {
				c.Header("Access-Control-Allow-Methods", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
				c.Header("Access-Control-Allow-Headers", "Authorization,Content-Type")
				c.Header("Access-Control-Max-Age", "600")
			}
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// bodyLimit caps the request body; reads past the limit fail JSON binding.
func bodyLimit(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}
