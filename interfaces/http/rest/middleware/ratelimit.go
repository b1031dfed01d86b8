package middleware

import (
	"encoding/json"
	"net"
	"net/http"

	"pipeline-backend/pkg/ratelimit"

	"go.uber.org/zap"
)

// RateLimit creates a per-client rate limiting middleware keyed by remote IP.
// RealIP middleware must run earlier in the chain for the key to reflect the
// actual client behind a proxy.
func RateLimit(limiter ratelimit.Limiter, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientKey(r)

			allowed, err := limiter.Allow(r.Context(), key)
			if err != nil {
				logger.Error("Rate limiter failure", zap.Error(err), zap.String("client", key))
				// Fail open: a broken limiter must not take the API down
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				logger.Warn("Rate limit exceeded",
					zap.String("client", key),
					zap.String("path", r.URL.Path),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]interface{}{
					"error":   true,
					"type":    "RATE_LIMIT",
					"message": "too many requests",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
