package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/akararkan/khi-backend-sub000/internal/application"
	"github.com/go-chi/chi/v5/middleware"
)

type contextKey string

const identityKey contextKey = "auth.identity"

// identityFrom pulls the verified identity placed by requireAuth. The second
// return is false on unauthenticated routes.
func identityFrom(ctx context.Context) (application.VerifiedIdentity, bool) {
	id, ok := ctx.Value(identityKey).(application.VerifiedIdentity)
	return id, ok
}

// bearerToken extracts the raw token from the Authorization header.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// requireAuth verifies the bearer token through the full acceptance pipeline
// and injects the resulting identity into the request context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "MISSING_TOKEN", "authorization header is required")
			return
		}
		identity, err := s.service.VerifyToken(r.Context(), token)
		if err != nil {
			mapDomainError(w, err)
			return
		}
		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestLogger emits one structured line per request.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
