package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/perisicnikola37/expense-tracker-api/internal/config"
)

// clientCacheSize bounds the number of tracked clients; least recently
// seen clients are evicted first.
const clientCacheSize = 4096

type rateWindow struct {
	start time.Time
	count int
}

// RateLimiter enforces a fixed-window request cap per client address.
// State lives in an LRU so an attacker rotating addresses cannot grow
// memory without bound.
type RateLimiter struct {
	mu      sync.Mutex
	clients *lru.Cache[string, *rateWindow]
	limit   int
	window  time.Duration

	now func() time.Time
}

// NewRateLimiter builds a limiter from configuration.
func NewRateLimiter(cfg config.RateLimitConfig) (*RateLimiter, error) {
	cache, err := lru.New[string, *rateWindow](clientCacheSize)
	if err != nil {
		return nil, err
	}
	return &RateLimiter{
		clients: cache,
		limit:   cfg.Requests,
		window:  time.Duration(cfg.WindowSeconds) * time.Second,
		now:     time.Now,
	}, nil
}

// Middleware rejects requests beyond the per-client cap with 429. Applied
// to the auth endpoints, which are the ones exposed to credential
// stuffing.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.allow(clientKey(r)) {
			writeEnvelope(w, r, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *RateLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	window, ok := l.clients.Get(key)
	if !ok || now.Sub(window.start) >= l.window {
		l.clients.Add(key, &rateWindow{start: now, count: 1})
		return true
	}

	window.count++
	return window.count <= l.limit
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
