package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/donmarco3/Book-Brain/internal/api/shared"
	"golang.org/x/time/rate"
)

// idleLimiterTTL is how long an unused per-key limiter is kept.
const idleLimiterTTL = 10 * time.Minute

type keyedLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter applies a token bucket per authenticated user, falling back
// to the client address for anonymous requests.
type RateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*keyedLimiter
	limit     rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

// NewRateLimiter allows rps requests per second per key with the given
// burst. A non-positive rps disables limiting.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst <= 0 {
		burst = int(math.Max(1, math.Ceil(rps)))
	}
	return &RateLimiter{
		limiters: make(map[string]*keyedLimiter),
		limit:    rate.Limit(rps),
		burst:    burst,
		now:      time.Now,
	}
}

// Allow reports whether a request for key may proceed now.
func (l *RateLimiter) Allow(key string) bool {
	if l.limit <= 0 {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	entry, ok := l.limiters[key]
	if !ok {
		entry = &keyedLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

// sweep drops limiters idle for longer than idleLimiterTTL. Callers hold mu.
func (l *RateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < idleLimiterTTL {
		return
	}
	for key, entry := range l.limiters {
		if now.Sub(entry.lastSeen) > idleLimiterTTL {
			delete(l.limiters, key)
		}
	}
	l.lastSweep = now
}

// Middleware rejects requests over the limit with 429.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := rateLimitKey(r)
		if !l.Allow(key) {
			retry := 1
			if l.limit > 0 {
				retry = int(math.Ceil(1 / float64(l.limit)))
			}
			w.Header().Set("Retry-After", strconv.Itoa(retry))
			shared.RespondWithError(w, r, http.StatusTooManyRequests, "Too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func rateLimitKey(r *http.Request) string {
	if userID, ok := shared.UserIDFromContext(r.Context()); ok {
		return "user:" + userID.String()
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
