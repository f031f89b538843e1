package httpserver

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"sync"

	"golang.org/x/time/rate"
)

// limiterRegistry holds one token bucket per client host.
type limiterRegistry struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	perSec   int
}

func newLimiterRegistry(perSec int) *limiterRegistry {
	return &limiterRegistry{
		limiters: make(map[string]*rate.Limiter),
		perSec:   perSec,
	}
}

// getOrCreate returns the limiter for key, creating it on first use with
// burst equal to the per-second rate.
func (r *limiterRegistry) getOrCreate(key string) *rate.Limiter {
	r.mu.RLock()
	l, ok := r.limiters[key]
	r.mu.RUnlock()
	if ok {
		return l
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.limiters[key]; ok {
		return l
	}
	l = rate.NewLimiter(rate.Limit(r.perSec), r.perSec)
	r.limiters[key] = l
	return l
}

// RateLimit rejects requests beyond perSec per client host with 429.
// A non-positive perSec disables limiting.
func RateLimit(perSec int) Middleware {
	if perSec <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	reg := newLimiterRegistry(perSec)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !reg.getOrCreate(clientHost(r.RemoteAddr)).Allow() {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", strconv.Itoa(1))
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"message": "rate limit exceeded",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientHost(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
