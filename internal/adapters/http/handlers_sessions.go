package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/akararkan/khi-backend-sub000/internal/application"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type sessionItem struct {
	SessionID string    `json:"session_id"`
	Device    string    `json:"device"`
	IPAddress string    `json:"ip_address"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Current   bool      `json:"current"`
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "MISSING_TOKEN", "authorization header is required")
		return
	}

	sessions, err := s.service.ListSessions(r.Context(), identity.AccountID, identity.SessionID)
	if err != nil {
		mapDomainError(w, err)
		return
	}

	items := make([]sessionItem, 0, len(sessions))
	for _, sess := range sessions {
		items = append(items, sessionItem{
			SessionID: sess.SessionID.String(),
			Device:    sess.Device,
			IPAddress: sess.IPAddress,
			IssuedAt:  sess.IssuedAt,
			ExpiresAt: sess.ExpiresAt,
			Current:   sess.Current,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"sessions": items})
}

func (s *Server) handleRevokeSession(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "MISSING_TOKEN", "authorization header is required")
		return
	}

	sessionID, err := uuid.Parse(chi.URLParam(r, "session_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "session_id must be a UUID")
		return
	}

	if err := s.service.RevokeSessionByID(r.Context(), identity.AccountID, sessionID); err != nil {
		mapDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRevokeAllSessions(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "MISSING_TOKEN", "authorization header is required")
		return
	}

	result, err := s.service.RevokeAllSessions(r.Context(), identity.AccountID)
	if err != nil {
		mapDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"revoked_count": result.RevokedCount})
}

type loginHistoryItem struct {
	AttemptAt     time.Time `json:"attempt_at"`
	IPAddress     string    `json:"ip_address"`
	Device        string    `json:"device"`
	Status        string    `json:"status"`
	FailureReason string    `json:"failure_reason,omitempty"`
}

func (s *Server) handleLoginHistory(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "MISSING_TOKEN", "authorization header is required")
		return
	}

	query := application.LoginHistoryQuery{Status: r.URL.Query().Get("status")}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			query.Limit = v
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			query.Offset = v
		}
	}
	if raw := r.URL.Query().Get("since"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			query.Since = &t
		}
	}

	history, err := s.service.ListLoginHistory(r.Context(), identity.AccountID, query)
	if err != nil {
		mapDomainError(w, err)
		return
	}

	items := make([]loginHistoryItem, 0, len(history))
	for _, h := range history {
		items = append(items, loginHistoryItem{
			AttemptAt:     h.AttemptAt,
			IPAddress:     h.IPAddress,
			Device:        h.Device,
			Status:        h.Status,
			FailureReason: h.FailureReason,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"attempts": items})
}
