package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"catalog-backend/interfaces/http/rest/handlers"

	"go.uber.org/zap"
)

// MsgTooManyRequests is returned when a client exceeds its limit.
const MsgTooManyRequests = "Too many requests"

// RateLimiter decides whether the client identified by key may proceed.
// A rejected call reports how long until the client may try again.
type RateLimiter interface {
	Allow(key string) (bool, time.Duration)
}

// SlidingWindowLimiter allows at most limit requests per key within any
// window of the given size. Keys idle for a full window are swept.
type SlidingWindowLimiter struct {
	mu         sync.Mutex
	windows    map[string][]time.Time
	limit      int
	windowSize time.Duration
	lastSweep  time.Time
	now        func() time.Time
}

// NewSlidingWindowLimiter creates a new sliding window rate limiter
func NewSlidingWindowLimiter(limit int, windowSize time.Duration) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		windows:    make(map[string][]time.Time),
		limit:      limit,
		windowSize: windowSize,
		now:        time.Now,
	}
}

// Allow records the request when it fits in the window.
func (l *SlidingWindowLimiter) Allow(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	windowStart := now.Add(-l.windowSize)
	if now.Sub(l.lastSweep) >= l.windowSize {
		l.sweep(windowStart)
		l.lastSweep = now
	}

	requests := l.windows[key]
	kept := requests[:0]
	for _, at := range requests {
		if at.After(windowStart) {
			kept = append(kept, at)
		}
	}

	if len(kept) >= l.limit {
		l.windows[key] = kept
		return false, kept[0].Add(l.windowSize).Sub(now)
	}
	l.windows[key] = append(kept, now)
	return true, 0
}

// sweep drops keys whose newest request has left the window. Requests are
// appended in time order, so the last one is the newest.
func (l *SlidingWindowLimiter) sweep(windowStart time.Time) {
	for key, requests := range l.windows {
		if len(requests) == 0 || !requests[len(requests)-1].After(windowStart) {
			delete(l.windows, key)
		}
	}
}

// RateLimit rejects requests over the limit with 429 and a Retry-After of
// whole seconds until the oldest counted request leaves the window. Clients
// are keyed by remote address, so RealIP must run first behind a proxy.
func RateLimit(limiter RateLimiter, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientKey(r)
			allowed, wait := limiter.Allow(key)
			if !allowed {
				logger.Warn("Rate limit exceeded",
					zap.String("client", key),
					zap.String("path", r.URL.Path),
					zap.Duration("retry_after", wait),
				)
				w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(wait)))
				handlers.RenderMessage(w, http.StatusTooManyRequests, MsgTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func retryAfterSeconds(wait time.Duration) int {
	secs := int(math.Ceil(wait.Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}

func clientKey(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
