package http

import (
	"bufio"
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"realty-agent/service"
)

type ctxKey int

const adminEmailKey ctxKey = iota

// Authenticator resolves a session token to the admin email.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (string, error)
}

// RequireAdmin rejects requests without a valid session in the
// Authorization header.
func RequireAdmin(auth Authenticator, next http.Handler) http.Handler {
	return requireAdmin(auth, next, false)
}

// RequireAdminStream is RequireAdmin for websocket endpoints. Browsers
// cannot set headers on the upgrade request, so ?token= is accepted too.
func RequireAdminStream(auth Authenticator, next http.Handler) http.Handler {
	return requireAdmin(auth, next, true)
}

func requireAdmin(auth Authenticator, next http.Handler, queryToken bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" && queryToken {
			token = r.URL.Query().Get("token")
		}

		email, err := auth.Authenticate(r.Context(), token)
		if err != nil {
			writeServiceError(w, r, service.ErrUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), adminEmailKey, email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminEmail returns the email of the authenticated admin, if any.
func AdminEmail(ctx context.Context) string {
	email, _ := ctx.Value(adminEmailKey).(string)
	return email
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// Hijack is needed by the websocket upgrade.
func (s *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := s.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	s.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

// LogRequests logs one line per request.
func LogRequests(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
			"remote", clientIP(r),
		)
	})
}

func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
