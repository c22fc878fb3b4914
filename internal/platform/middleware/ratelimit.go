package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"
)

// slidingWindow tracks request timestamps for sliding window rate limiting.
type slidingWindow struct {
	timestamps []time.Time
	window     time.Duration
}

func (w *slidingWindow) cleanup(now time.Time) {
	cutoff := now.Add(-w.window)
	kept := w.timestamps[:0]
	for _, ts := range w.timestamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	w.timestamps = kept
}

// RateLimiter applies a per-client sliding-window limit. In-memory, so limits
// are per instance; acceptable for a single-writer survey endpoint.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*slidingWindow
	limit   int
	window  time.Duration
	now     func() time.Time
}

// NewRateLimiter creates a limiter allowing limit requests per window per key.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		buckets: make(map[string]*slidingWindow),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// Allow records a request for key and reports whether it is within the limit.
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	w := l.buckets[key]
	if w == nil {
		w = &slidingWindow{window: l.window}
		l.buckets[key] = w
	}
	now := l.now()
	w.cleanup(now)
	if len(w.timestamps) >= l.limit {
		return false
	}
	w.timestamps = append(w.timestamps, now)
	return true
}

// Middleware enforces the limit keyed by client IP.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		if !l.Allow(host) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"rate_limited"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
