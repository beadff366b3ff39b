package http

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
)

func RateLimitMiddleware(
	limiter *RateLimiter,
	next http.Handler,
) http.Handler {

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		ip := clientIP(r)

		ok, retryAfter := limiter.Allow(ip)
		if !ok {
			slog.Debug("rate limit exceeded", "ip", ip, "path", r.URL.Path)
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			writeError(w, http.StatusTooManyRequests, "demasiadas solicitudes, intenta más tarde")
			return
		}

		next.ServeHTTP(w, r)
	})
}
