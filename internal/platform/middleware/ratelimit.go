package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"vedo/pkg/platform/httputil"
)

// RateLimiter enforces a per-client-IP sliding window over public endpoints.
type RateLimiter struct {
	mu        sync.Mutex
	windows   map[string]*slidingWindow
	lastSweep time.Time
	limit     int
	window    time.Duration
	logger    *slog.Logger
}

type slidingWindow struct {
	timestamps []time.Time
}

func NewRateLimiter(limit int, window time.Duration, logger *slog.Logger) *RateLimiter {
	return &RateLimiter{
		windows: make(map[string]*slidingWindow),
		limit:   limit,
		window:  window,
		logger:  logger,
	}
}

// Handler rejects requests over the limit with 429 and rate limit headers.
func (l *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, remaining, resetAt := l.allow(clientIP(r), time.Now())

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

		if !allowed {
			retryAfter := retryAfterSeconds(resetAt)
			l.logger.Warn("rate limit exceeded",
				"path", r.URL.Path,
				"request_id", GetRequestID(r.Context()),
			)
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			httputil.WriteJSON(w, http.StatusTooManyRequests, map[string]any{
				"error":       "rate_limit_exceeded",
				"message":     "Too many requests from this IP address. Please try again later.",
				"retry_after": retryAfter,
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (l *RateLimiter) allow(key string, now time.Time) (allowed bool, remaining int, resetAt time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweepIdle(now)

	sw, ok := l.windows[key]
	if !ok {
		sw = &slidingWindow{}
		l.windows[key] = sw
	}
	sw.cleanupExpired(now.Add(-l.window))

	if len(sw.timestamps) >= l.limit {
		return false, 0, sw.timestamps[0].Add(l.window)
	}

	sw.timestamps = append(sw.timestamps, now)
	return true, l.limit - len(sw.timestamps), sw.timestamps[0].Add(l.window)
}

// sweepIdle drops windows whose every timestamp has expired, at most once
// per window, so the map does not grow with one entry per distinct client
// ever seen. Caller holds the lock.
func (l *RateLimiter) sweepIdle(now time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	l.lastSweep = now
	cutoff := now.Add(-l.window)
	for key, sw := range l.windows {
		sw.cleanupExpired(cutoff)
		if len(sw.timestamps) == 0 {
			delete(l.windows, key)
		}
	}
}

func (sw *slidingWindow) cleanupExpired(cutoff time.Time) {
	i := 0
	for ; i < len(sw.timestamps); i++ {
		if sw.timestamps[i].After(cutoff) {
			break
		}
	}
	sw.timestamps = sw.timestamps[i:]
}

func retryAfterSeconds(resetAt time.Time) int {
	seconds := int(time.Until(resetAt).Seconds())
	if seconds < 1 {
		return 1
	}
	return seconds
}

// clientIP resolves the originating address, trusting the first
// X-Forwarded-For entry when the request came through a proxy.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
