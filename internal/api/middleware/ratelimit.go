package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/eventfeed-io/server/internal/config"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

// RateLimit applies a per-client token bucket to the feed endpoints. Health
// and metrics probes are exempt so monitoring keeps working under load.
// A limit of zero disables rate limiting.
func RateLimit(cfg config.RateLimitConfig) func(http.Handler) http.Handler {
	store := newLimiterStore(cfg.PublicPerMinute)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.PublicPerMinute <= 0 || r.URL.Path == "/v1/health" || r.URL.Path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}

			if !store.limiter(clientKey(r)).Allow() {
				w.Header().Set("Retry-After", "60")
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type limiterStore struct {
	mu        sync.Mutex
	perMinute int
	limiters  map[string]*limiterEntry
	lastSweep time.Time
}

func newLimiterStore(perMinute int) *limiterStore {
	return &limiterStore{
		perMinute: perMinute,
		limiters:  make(map[string]*limiterEntry),
		lastSweep: time.Now(),
	}
}

func (s *limiterStore) limiter(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if now.Sub(s.lastSweep) > limiterIdleTTL {
		for k, entry := range s.limiters {
			if now.Sub(entry.lastSeen) > limiterIdleTTL {
				delete(s.limiters, k)
			}
		}
		s.lastSweep = now
	}

	entry, ok := s.limiters[key]
	if !ok {
		entry = &limiterEntry{
			limiter: rate.NewLimiter(rate.Limit(float64(s.perMinute)/60.0), s.perMinute),
		}
		s.limiters[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
