package application

import (
	"time"

	"github.com/google/uuid"
)

// Config carries the tunable policy knobs of the authentication service.
// Zero values are replaced with defaults in NewService.
type Config struct {
	TokenIssuer      string
	TokenAudience    string
	DefaultRole      string
	TokenTTL         time.Duration
	FailedThreshold  int
	LockoutCooldown  time.Duration
	ResetTokenTTL    time.Duration
	PasswordLifetime time.Duration
}

type RegisterRequest struct {
	Username  string
	Email     string
	Password  string
	Role      string
	Device    string
	IPAddress string
}

// RegisterResult carries the new account plus a first session token, so a
// fresh registration does not need a separate login round trip.
type RegisterResult struct {
	AccountID   int64
	Username    string
	Email       string
	Role        string
	CreatedAt   time.Time
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
	SessionID   uuid.UUID
}

type LoginRequest struct {
	Username  string
	Password  string
	Device    string
	IPAddress string
}

type LoginResult struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
	SessionID   uuid.UUID
	Role        string
	Authorities []string
}

type LogoutResult struct {
	SessionID uuid.UUID
}

// VerifiedIdentity is the outcome of a successful token verification and is
// what downstream handlers see as the caller's identity.
type VerifiedIdentity struct {
	AccountID   int64
	Username    string
	Role        string
	Authorities []string
	SessionID   uuid.UUID
	ExpiresAt   time.Time
}

type SessionItem struct {
	SessionID uuid.UUID
	Device    string
	IPAddress string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Current   bool
}

type RevokeAllResult struct {
	RevokedCount int64
}

type ResetRequestResult struct {
	Token     string
	ExpiresAt time.Time
}

type ApplyResetRequest struct {
	Identifier      string
	Token           string
	NewPassword     string
	ConfirmPassword string
}

type LoginHistoryQuery struct {
	Limit  int
	Offset int
	Since  *time.Time
	Status string
}

type LoginHistoryItem struct {
	AttemptAt     time.Time
	IPAddress     string
	Device        string
	Status        string
	FailureReason string
}
