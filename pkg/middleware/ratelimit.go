package middleware

import (
	"math"
	"net/http"
	"strconv"

	"golang.org/x/time/rate"
)

// RateLimitConfig configures the RateLimit middleware.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate. Zero or less disables the
	// limiter.
	RequestsPerSecond float64

	// Burst is the number of requests allowed above the sustained rate.
	// Defaults to max(1, RequestsPerSecond).
	Burst int

	// Metrics receives a count of rejected requests. May be nil.
	Metrics *Metrics

	// OnLimit writes the rejection response. Defaults to a plain 429.
	OnLimit http.HandlerFunc
}

// RateLimit creates middleware that rejects requests above a global token
// bucket rate with 429 Too Many Requests and a Retry-After header.
func RateLimit(config RateLimitConfig) func(http.Handler) http.Handler {
	if config.RequestsPerSecond <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	burst := config.Burst
	if burst <= 0 {
		burst = max(1, int(config.RequestsPerSecond))
	}
	limiter := rate.NewLimiter(rate.Limit(config.RequestsPerSecond), burst)
	retryAfter := strconv.Itoa(int(math.Ceil(1 / config.RequestsPerSecond)))

	onLimit := config.OnLimit
	if onLimit == nil {
		onLimit = func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				config.Metrics.RecordRateLimited()
				w.Header().Set("Retry-After", retryAfter)
				onLimit(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
