// Package http exposes the authentication service over a REST API.
package http

import (
	"log/slog"
	"net/http"

	"github.com/akararkan/khi-backend-sub000/internal/application"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server holds the HTTP handler set and its dependencies.
type Server struct {
	service *application.Service
	log     *slog.Logger
	ready   func() error
}

// NewServer wires the chi router. The ready func is probed by /readyz and
// should check downstream connectivity.
func NewServer(service *application.Service, log *slog.Logger, ready func() error) *Server {
	return &Server{service: service, log: log, ready: ready}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.log))

	r.Get("/healthz", s.handleHealthz)
	r.Get("/readyz", s.handleReadyz)

	r.Route("/auth/v1", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)
		r.Post("/logout", s.handleLogout)
		r.Post("/password/reset-request", s.handleResetRequest)
		r.Post("/password/reset", s.handleResetApply)
		r.Get("/verify", s.handleVerify)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/sessions", s.handleListSessions)
			r.Delete("/sessions/{session_id}", s.handleRevokeSession)
			r.Delete("/sessions", s.handleRevokeAllSessions)
			r.Get("/login-history", s.handleLoginHistory)
			r.Delete("/account", s.handleDeleteAccount)
		})
	})

	return r
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, _ *http.Request) {
	if s.ready != nil {
		if err := s.ready(); err != nil {
			writeError(w, http.StatusServiceUnavailable, "NOT_READY", err.Error())
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
