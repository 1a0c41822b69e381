/*
Package limiter provides concurrency rate limiting functionality based on IP addresses.

It utilizes the Token Bucket algorithm (rate.Limiter) to control the request frequency
for each client IP address and includes a cleanup goroutine to periodically remove
inactive limiters, preventing memory leaks.
*/
package limiter

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"checkinhub/internal/pkg/errs"
	"checkinhub/internal/pkg/logx"
	"checkinhub/internal/pkg/resp"
)

// cleanupInterval is how often idle per-IP buckets are reclaimed.
const cleanupInterval = 3 * time.Minute

// IPRateLimiter implements a request rate limiter keyed by client IP address.
type IPRateLimiter struct {
	// mu protects concurrent access to the limits map.
	mu sync.RWMutex

	// limits maps a client IP address to its *rate.Limiter instance.
	limits map[string]*rate.Limiter

	// r is the sustained rate allowed per IP.
	r rate.Limit

	// b is the burst size (token bucket capacity) per IP.
	b int
}

// NewIPRateLimiter creates a limiter with rate r and burst b and starts the
// background goroutine that reclaims idle buckets.
func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	i := &IPRateLimiter{
		limits: make(map[string]*rate.Limiter),
		r:      r,
		b:      b,
	}

	go i.cleanUpVisitors()

	return i
}

// GetLimiter retrieves the rate limiter for the given IP address, creating it
// on first use. Creation uses double-checked locking so concurrent first
// requests from one IP share a single bucket.
func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.RLock()
	limiter, exists := i.limits[ip]
	i.mu.RUnlock()

	if !exists {
		i.mu.Lock()
		limiter, exists = i.limits[ip]
		if !exists {
			limiter = rate.NewLimiter(i.r, i.b)
			i.limits[ip] = limiter
		}
		i.mu.Unlock()
	}

	return limiter
}

// cleanUpVisitors periodically removes buckets that have refilled completely,
// meaning the IP has been idle long enough to forget.
func (i *IPRateLimiter) cleanUpVisitors() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		i.mu.Lock()
		removed := 0
		for ip, limiter := range i.limits {
			if limiter.TokensAt(time.Now()) >= float64(limiter.Burst()) {
				delete(i.limits, ip)
				removed++
			}
		}
		remaining := len(i.limits)
		i.mu.Unlock()

		logx.Info("Rate limiter cleanup finished.", "removed", removed, "remaining", remaining)
	}
}

// Middleware returns an HTTP middleware enforcing the per-IP limit.
// Requests over the limit receive a 429 response.
func (i *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if ip == "" {
			ip = "unknown_ip"
		}

		if !i.GetLimiter(ip).Allow() {
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		next.ServeHTTP(w, r)
	})
}
