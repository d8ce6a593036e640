package server

import (
	"context"
	"net/http"
	"slices"
	"strings"
	"time"

	"wehire/internal/apperr"
	"wehire/pkg/types"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	contextKeyPrincipal contextKey = "principal"
	contextKeyRequestID contextKey = "request_id"

	headerRequestID = "X-Request-ID"
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Service) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()

		requestID := r.Header.Get(headerRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(headerRequestID, requestID)

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		ctx := context.WithValue(r.Context(), contextKeyRequestID, requestID)

		next.ServeHTTP(rw, r.WithContext(ctx))

		s.logger.WithFields(logrus.Fields{
			"request_id":  requestID,
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rw.statusCode,
			"duration_ms": time.Since(started).Milliseconds(),
		}).Info("http request")
	})
}

// RequireAuth verifies the bearer token and puts the caller in the request
// context.
func (s *Service) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		scheme, accessToken, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "bearer") || accessToken == "" {
			s.writeError(w, r, apperr.Unauthorized("not authenticated"))
			return
		}

		principal, err := s.auth.Authenticate(accessToken)
		if err != nil {
			s.logger.WithError(err).Debug("rejected access token")
			s.writeError(w, r, err)
			return
		}

		s.logger.WithFields(logrus.Fields{
			"user_id": principal.UserID,
			"role":    principal.Role,
		}).Debug("authenticated user")

		ctx := context.WithValue(r.Context(), contextKeyPrincipal, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole rejects callers whose role is not listed. It must run after
// RequireAuth.
func (s *Service) RequireRole(roles ...types.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := principalFromContext(r.Context())
			if !ok {
				s.writeError(w, r, apperr.Unauthorized("not authenticated"))
				return
			}

			if !slices.Contains(roles, principal.Role) {
				s.writeError(w, r, apperr.Forbidden("not enough permissions"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (s *Service) StripTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		if path != "/" && strings.HasSuffix(path, "/") {
			newURL := *r.URL
			newURL.Path = strings.TrimSuffix(path, "/")

			http.Redirect(w, r, newURL.String(), http.StatusMovedPermanently)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func principalFromContext(ctx context.Context) (*types.Principal, bool) {
	principal, ok := ctx.Value(contextKeyPrincipal).(*types.Principal)
	return principal, ok && principal != nil
}

func requestIDFromContext(ctx context.Context) string {
	requestID, _ := ctx.Value(contextKeyRequestID).(string)
	return requestID
}
