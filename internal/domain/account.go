package domain

import (
	"time"

	"github.com/google/uuid"
)

// Account is the canonical authentication identity aggregate.
// It carries only auth-relevant state (credentials, lockout, reset fields);
// profile and content ownership live outside this service.
type Account struct {
	ID                  int64
	Username            string
	Email               string
	PasswordHash        string
	Role                Role
	Enabled             bool
	FailedAttempts      int
	Locked              bool
	LockedAt            *time.Time
	PasswordExpiresAt   time.Time
	ResetToken          *string
	ResetTokenExpiresAt *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Session models one issued token's right to remain valid.
// We persist it separately so revocation works against otherwise-stateless tokens.
type Session struct {
	SessionID uuid.UUID
	AccountID int64
	Device    string
	IPAddress string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Active    bool
	LogoutAt  *time.Time
}

// BlacklistEntry records that one exact token string must be rejected before
// its natural expiry. ExpiresAt mirrors the token's own exp claim so dead
// rows can be purged.
type BlacklistEntry struct {
	Token         string
	BlacklistedAt time.Time
	ExpiresAt     time.Time
}

// AttemptStatus classifies the outcome of one login attempt.
type AttemptStatus string

const (
	AttemptSuccess AttemptStatus = "SUCCESS"
	AttemptFailure AttemptStatus = "FAILURE"
	AttemptLocked  AttemptStatus = "LOCKED"
)

// LoginAttempt records authentication outcomes for audit and the
// self-service login-history view.
type LoginAttempt struct {
	ID            int64
	AccountID     *int64
	AttemptAt     time.Time
	IPAddress     string
	Status        AttemptStatus
	FailureReason string
	Device        string
}
