package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/time/rate"

	"mdd-backend/internal/handler/http/respond"
)

var rateLimitRejections = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_rate_limit_rejections_total",
		Help: "Requests rejected by the per-client rate limiter",
	},
	[]string{"path"},
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter allows each client a burst of limit requests, refilled evenly
// over window. Idle clients are forgotten after one window.
type RateLimiter struct {
	limit  int
	window time.Duration
	every  rate.Limit
	ips    IPExtractor
	now    func() time.Time

	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
}

// NewRateLimiter returns a limiter keyed by the client IP from ips.
func NewRateLimiter(limit int, window time.Duration, ips IPExtractor) *RateLimiter {
	if limit <= 0 {
		limit = 1
	}
	if ips == nil {
		ips = RemoteAddrExtractor{}
	}
	return &RateLimiter{
		limit:    limit,
		window:   window,
		every:    rate.Every(window / time.Duration(limit)),
		ips:      ips,
		now:      time.Now,
		visitors: make(map[string]*visitor),
	}
}

// Allow reports whether the client may make a request now.
func (rl *RateLimiter) Allow(client string) bool {
	ok, _ := rl.reserve(client)
	return ok
}

// reserve consumes a token for client. When none is available it returns
// how long until one is.
func (rl *RateLimiter) reserve(client string) (bool, time.Duration) {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.Sub(rl.lastSweep) > rl.window {
		for k, v := range rl.visitors {
			if now.Sub(v.lastSeen) > rl.window {
				delete(rl.visitors, k)
			}
		}
		rl.lastSweep = now
	}

	v, ok := rl.visitors[client]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.every, rl.limit)}
		rl.visitors[client] = v
	}
	v.lastSeen = now

	r := v.limiter.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// Middleware answers 429 with Retry-After once a client exceeds its budget.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, err := rl.ips.ExtractIP(r)
		if err != nil {
			slog.Warn("rate limiter could not identify client",
				slog.String("remote_addr", r.RemoteAddr),
				slog.Any("error", err))
			ip = r.RemoteAddr
		}

		ok, retry := rl.reserve(ip)
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		if !ok {
			rateLimitRejections.WithLabelValues(r.URL.Path).Inc()
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retry.Seconds()))))
			respond.Message(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Clients returns the number of tracked clients.
func (rl *RateLimiter) Clients() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.visitors)
}
