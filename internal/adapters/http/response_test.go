package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/akararkan/khi-backend-sub000/internal/domain"
)

func TestBearerToken(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer abc.def.ghi", "abc.def.ghi"},
		{"bearer abc.def.ghi", "abc.def.ghi"},
		{"Basic dXNlcjpwYXNz", ""},
		{"Bearer", ""},
	}
	for _, tc := range cases {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			r.Header.Set("Authorization", tc.header)
		}
		if got := bearerToken(r); got != tc.want {
			t.Fatalf("bearerToken(%q) = %q, want %q", tc.header, got, tc.want)
		}
	}
}

func TestMapDomainErrorStatuses(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{domain.ErrAccountLocked, http.StatusLocked, "ACCOUNT_LOCKED"},
		{domain.ErrPasswordExpired, http.StatusForbidden, "PASSWORD_EXPIRED"},
		{domain.ErrTokenExpired, http.StatusUnauthorized, "TOKEN_EXPIRED"},
		{domain.ErrTokenRevoked, http.StatusUnauthorized, "TOKEN_REVOKED"},
		{domain.ErrForbiddenSession, http.StatusForbidden, "FORBIDDEN"},
		{domain.ErrDuplicateUsername, http.StatusConflict, "DUPLICATE_USERNAME"},
		{domain.ErrNoPendingReset, http.StatusConflict, "NO_PENDING_RESET"},
		{domain.ErrResetTokenExpired, http.StatusGone, "RESET_TOKEN_EXPIRED"},
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		mapDomainError(rec, tc.err)
		if rec.Code != tc.wantStatus {
			t.Fatalf("%v: status = %d, want %d", tc.err, rec.Code, tc.wantStatus)
		}
		var body errorBody
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("%v: decode body: %v", tc.err, err)
		}
		if body.Error.Code != tc.wantCode {
			t.Fatalf("%v: code = %q, want %q", tc.err, body.Error.Code, tc.wantCode)
		}
	}
}

func TestLockedResponseDoesNotLeakTiming(t *testing.T) {
	rec := httptest.NewRecorder()
	mapDomainError(rec, domain.ErrAccountLocked)
	if got := rec.Body.String(); len(got) == 0 {
		t.Fatal("empty body")
	}
	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Error.Message != "account is temporarily locked" {
		t.Fatalf("message should be fixed text, got %q", body.Error.Message)
	}
}
