package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/Filippospapageorgiou/tailormadeBoV2/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const purgeInterval = 5 * time.Minute

// rateEntry tracks request counts per IP within a fixed window.
type rateEntry struct {
	count     int
	windowEnd time.Time
}

type rateLimiter struct {
	mu        sync.Mutex
	entries   map[string]*rateEntry
	limit     int
	window    time.Duration
	nextPurge time.Time
	now       func() time.Time
}

// RateLimiter allows limit requests per window per client IP.
// A non-positive limit disables limiting.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	if limit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	rl := &rateLimiter{entries: make(map[string]*rateEntry), limit: limit, window: window, now: time.Now}
	return rl.handle
}

func (rl *rateLimiter) allow(ip string) (bool, time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.After(rl.nextPurge) {
		rl.purge(now)
		rl.nextPurge = now.Add(purgeInterval)
	}

	entry, ok := rl.entries[ip]
	if !ok || now.After(entry.windowEnd) {
		entry = &rateEntry{windowEnd: now.Add(rl.window)}
		rl.entries[ip] = entry
	}
	entry.count++
	return entry.count <= rl.limit, entry.windowEnd
}

// purge drops expired windows so IPs that never return do not accumulate.
func (rl *rateLimiter) purge(now time.Time) {
	purged := 0
	for ip, entry := range rl.entries {
		if now.After(entry.windowEnd) {
			delete(rl.entries, ip)
			purged++
		}
	}
	if purged > 0 {
		log.Debug().Int("purged", purged).Int("remaining", len(rl.entries)).Msg("rate limiter purged")
	}
}

func (rl *rateLimiter) handle(c *gin.Context) {
	ok, windowEnd := rl.allow(c.ClientIP())
	if !ok {
		c.Header("Retry-After", windowEnd.UTC().Format(http.TimeFormat))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(apierror.CodeRateLimited, "Too many requests, try again shortly"))
		return
	}
	c.Next()
}
