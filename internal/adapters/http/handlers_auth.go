package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/akararkan/khi-backend-sub000/internal/application"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type registerResponse struct {
	AccountID   int64     `json:"account_id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	SessionID   string    `json:"session_id"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "malformed request body")
		return
	}

	result, err := s.service.Register(r.Context(), application.RegisterRequest{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
		Device:    r.UserAgent(),
		IPAddress: r.RemoteAddr,
	})
	if err != nil {
		mapDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{
		AccountID:   result.AccountID,
		Username:    result.Username,
		Email:       result.Email,
		Role:        result.Role,
		CreatedAt:   result.CreatedAt,
		AccessToken: result.AccessToken,
		TokenType:   result.TokenType,
		ExpiresAt:   result.ExpiresAt,
		SessionID:   result.SessionID.String(),
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Device   string `json:"device,omitempty"`
}

type loginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	SessionID   string    `json:"session_id"`
	Role        string    `json:"role"`
	Authorities []string  `json:"authorities"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "malformed request body")
		return
	}

	device := req.Device
	if device == "" {
		device = r.UserAgent()
	}

	result, err := s.service.Login(r.Context(), application.LoginRequest{
		Username:  req.Username,
		Password:  req.Password,
		Device:    device,
		IPAddress: r.RemoteAddr,
	})
	if err != nil {
		mapDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken: result.AccessToken,
		TokenType:   result.TokenType,
		ExpiresAt:   result.ExpiresAt,
		SessionID:   result.SessionID.String(),
		Role:        result.Role,
		Authorities: result.Authorities,
	})
}

// handleLogout is reachable without passing the full verification pipeline so
// an expired token can still be blacklisted.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "MISSING_TOKEN", "authorization header is required")
		return
	}

	result, err := s.service.Logout(r.Context(), token)
	if err != nil {
		mapDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":     "logged_out",
		"session_id": result.SessionID.String(),
	})
}

type verifyResponse struct {
	AccountID   int64     `json:"account_id"`
	Username    string    `json:"username"`
	Role        string    `json:"role"`
	Authorities []string  `json:"authorities"`
	SessionID   string    `json:"session_id"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// handleVerify lets sibling services check a token and fetch the identity it
// carries.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
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

	writeJSON(w, http.StatusOK, verifyResponse{
		AccountID:   identity.AccountID,
		Username:    identity.Username,
		Role:        identity.Role,
		Authorities: identity.Authorities,
		SessionID:   identity.SessionID.String(),
		ExpiresAt:   identity.ExpiresAt,
	})
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "MISSING_TOKEN", "authorization header is required")
		return
	}

	if err := s.service.DeleteAccount(r.Context(), identity.AccountID); err != nil {
		mapDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
