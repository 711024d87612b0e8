// Package ratelimit provides a per-client token bucket HTTP middleware.
package ratelimit

import (
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

type Options struct {
	// TrustHeaders makes X-Forwarded-For and X-Real-Ip identify the client.
	TrustHeaders bool
	// Interval is the time needed to regain one token.
	Interval time.Duration
	MaxBurst int
	// CacheSize and CacheTTL bound the number and lifetime of tracked clients.
	CacheSize int
	CacheTTL  time.Duration
	// OnLimited writes the response for a rejected request.
	// Defaults to a plain text 429.
	OnLimited http.HandlerFunc
}

func Middleware(opts Options) func(http.Handler) http.Handler {
	cache := expirable.NewLRU[string, *rate.Limiter](opts.CacheSize, nil, opts.CacheTTL)

	onLimited := opts.OnLimited
	if onLimited == nil {
		onLimited = func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}
	}

	getLimiter := func(remoteAddr string) *rate.Limiter {
		limiter, exists := cache.Get(remoteAddr)
		if !exists {
			limiter = rate.NewLimiter(rate.Every(opts.Interval), opts.MaxBurst)
			cache.Add(remoteAddr, limiter)
		}

		return limiter
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limiter := getLimiter(RemoteAddr(r, opts.TrustHeaders))

			reservation := limiter.Reserve()
			if !reservation.OK() {
				onLimited(w, r)
				return
			}

			if delay := reservation.Delay(); delay > 0 {
				reservation.Cancel()

				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(delay.Seconds()))))
				onLimited(w, r)
				return
			}

			tokens := limiter.Tokens()

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(opts.MaxBurst))
			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%.0f", math.Floor(tokens)))

			missing := float64(opts.MaxBurst) - tokens
			resetTime := time.Now().Add(time.Duration(missing * float64(opts.Interval)))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

			next.ServeHTTP(w, r)
		})
	}
}

// RemoteAddr identifies the client of r.
func RemoteAddr(r *http.Request, trustHeaders bool) string {
	if trustHeaders {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			ips := strings.Split(xff, ",")
			return strings.TrimSpace(ips[0])
		}

		if xri := r.Header.Get("X-Real-Ip"); xri != "" {
			return xri
		}
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return ip
}
