package domain

import "errors"

var (
	// ErrNotFound is returned when the requested resource does not exist.
	// Keeping this sentinel in domain lets adapters map it consistently to 404/NOT_FOUND.
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidCredentials hides whether the username or the password failed.
	// The reason is to prevent account-enumeration side channels.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountLocked signals temporary lockout after repeated failed attempts.
	// Responses built from it must not disclose the remaining lock time.
	ErrAccountLocked = errors.New("account temporarily locked")
	// ErrPasswordExpired is returned when credentials are correct but the
	// password is past its configured lifetime.
	ErrPasswordExpired    = errors.New("password expired")
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrNoPendingReset     = errors.New("no pending password reset")
	ErrResetTokenMismatch = errors.New("reset token mismatch")
	ErrResetTokenExpired  = errors.New("reset token expired")
	ErrPasswordMismatch   = errors.New("password confirmation mismatch")
	// ErrForbiddenSession guards cross-account session revocation; killing
	// another account's session is an administrative capability, not a
	// self-service one.
	ErrForbiddenSession = errors.New("session belongs to another account")
	ErrInvalidInput     = errors.New("invalid input")
)
