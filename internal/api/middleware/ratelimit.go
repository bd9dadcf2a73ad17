package middleware

import (
	"net"
	"net/http"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

// maxTrackedClients bounds the number of per-client limiters kept in memory
const maxTrackedClients = 10000

// RateLimiter applies a token bucket per client IP.
// Least recently seen clients are evicted once the cache is full.
type RateLimiter struct {
	clients *lru.Cache[string, *rate.Limiter]
	limit   rate.Limit
	burst   int
	mu      sync.Mutex
}

// NewRateLimiter creates a rate limiter allowing rps requests per second
// with the given burst per client
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	clients, err := lru.New[string, *rate.Limiter](maxTrackedClients)
	if err != nil {
		// Only fails for a non-positive size
		panic(err)
	}
	return &RateLimiter{
		clients: clients,
		limit:   rate.Limit(rps),
		burst:   burst,
	}
}

// Middleware returns a rate limiting middleware
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.limiter(getClientIP(r)).Allow() {
			w.Header().Set("Retry-After", "1")
			writeAuthError(w, http.StatusTooManyRequests, "RateLimitExceeded", "Rate limit exceeded. Please try again later.")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// limiter returns the client's limiter, creating it on first use
func (rl *RateLimiter) limiter(clientID string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if l, ok := rl.clients.Get(clientID); ok {
		return l
	}
	l := rate.NewLimiter(rl.limit, rl.burst)
	rl.clients.Add(clientID, l)
	return l
}

// getClientIP returns the host part of RemoteAddr. Proxy headers are
// client-controlled and are only honoured through chi's RealIP middleware,
// which the server installs when TRUST_PROXY is set.
func getClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
