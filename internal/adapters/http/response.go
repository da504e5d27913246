package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/akararkan/khi-backend-sub000/internal/domain"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: message}})
}

// mapDomainError translates domain sentinel errors into HTTP status codes and
// stable machine-readable error codes.
func mapDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", err.Error())
	case errors.Is(err, domain.ErrPasswordMismatch):
		writeError(w, http.StatusBadRequest, "PASSWORD_MISMATCH", "passwords do not match")
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid username or password")
	case errors.Is(err, domain.ErrAccountLocked):
		writeError(w, http.StatusLocked, "ACCOUNT_LOCKED", "account is temporarily locked")
	case errors.Is(err, domain.ErrPasswordExpired):
		writeError(w, http.StatusForbidden, "PASSWORD_EXPIRED", "password has expired and must be reset")
	case errors.Is(err, domain.ErrTokenExpired):
		writeError(w, http.StatusUnauthorized, "TOKEN_EXPIRED", "token has expired")
	case errors.Is(err, domain.ErrTokenRevoked):
		writeError(w, http.StatusUnauthorized, "TOKEN_REVOKED", "token has been revoked")
	case errors.Is(err, domain.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, "INVALID_TOKEN", "token is invalid")
	case errors.Is(err, domain.ErrForbiddenSession):
		writeError(w, http.StatusForbidden, "FORBIDDEN", "session belongs to another account")
	case errors.Is(err, domain.ErrDuplicateUsername):
		writeError(w, http.StatusConflict, "DUPLICATE_USERNAME", "username is already taken")
	case errors.Is(err, domain.ErrDuplicateEmail):
		writeError(w, http.StatusConflict, "DUPLICATE_EMAIL", "email is already registered")
	case errors.Is(err, domain.ErrNoPendingReset):
		writeError(w, http.StatusConflict, "NO_PENDING_RESET", "no password reset is pending")
	case errors.Is(err, domain.ErrResetTokenMismatch):
		writeError(w, http.StatusUnauthorized, "RESET_TOKEN_MISMATCH", "reset token does not match")
	case errors.Is(err, domain.ErrResetTokenExpired):
		writeError(w, http.StatusGone, "RESET_TOKEN_EXPIRED", "reset token has expired")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "resource not found")
	default:
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal server error")
	}
}
