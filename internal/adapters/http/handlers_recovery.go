package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/akararkan/khi-backend-sub000/internal/application"
)

type resetRequestBody struct {
	Identifier string `json:"identifier"`
}

type resetRequestResponse struct {
	ResetToken string    `json:"reset_token"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// handleResetRequest issues a reset token. The token is returned in the
// response body; mail delivery is owned by a separate notification service.
func (s *Server) handleResetRequest(w http.ResponseWriter, r *http.Request) {
	var req resetRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "malformed request body")
		return
	}
	if req.Identifier == "" {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "identifier is required")
		return
	}

	result, err := s.service.RequestPasswordReset(r.Context(), req.Identifier)
	if err != nil {
		mapDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resetRequestResponse{
		ResetToken: result.Token,
		ExpiresAt:  result.ExpiresAt,
	})
}

type resetApplyBody struct {
	Identifier      string `json:"identifier"`
	Token           string `json:"token"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (s *Server) handleResetApply(w http.ResponseWriter, r *http.Request) {
	var req resetApplyBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "malformed request body")
		return
	}

	err := s.service.ApplyReset(r.Context(), application.ApplyResetRequest{
		Identifier:      req.Identifier,
		Token:           req.Token,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		mapDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "password_reset"})
}
