package middleware

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/artilectsolutions/budgetsplit-backend/internal/api/response"
	"github.com/artilectsolutions/budgetsplit-backend/internal/ratelimit"
)

// RateLimit allows limit requests per client IP in each fixed window.
// Requests over the limit get 429 Too Many Requests with Retry-After set.
// If the store fails the request is let through and the failure logged.
//
// Clients are keyed by r.RemoteAddr. Behind a trusted reverse proxy, run
// chi's RealIP first so proxied clients are keyed by their own address.
func RateLimit(store ratelimit.Store, limit int, window time.Duration, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hit, err := store.Hit(r.Context(), clientIP(r), window)
			if err != nil {
				logger.Error("rate limit store failed", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			remaining := max(int64(limit)-hit.Count, 0)
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if hit.Count > int64(limit) {
				retry := int(math.Ceil(time.Until(hit.ResetAt).Seconds()))
				w.Header().Set("Retry-After", strconv.Itoa(max(retry, 1)))
				response.RespondError(w, http.StatusTooManyRequests, "too many requests, please try again later", "")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
