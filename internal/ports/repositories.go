package ports

import (
	"context"
	"time"

	"github.com/akararkan/khi-backend-sub000/internal/domain"
	"github.com/google/uuid"
)

// AccountCreateParams captures the fields needed to persist a new account.
// Lockout and reset fields always start empty; the password expiry is set by
// the caller so the policy lives in one place.
type AccountCreateParams struct {
	Username          string
	Email             string
	PasswordHash      string
	Role              domain.Role
	Enabled           bool
	PasswordExpiresAt time.Time
	CreatedAtUTC      time.Time
}

// AccountRepository defines persistence operations for account identities.
// Lockout and reset mutations are single-row, last-write-wins updates; the
// increment-then-compare sequence is intentionally not serialized across
// concurrent requests.
type AccountRepository interface {
	Create(ctx context.Context, params AccountCreateParams) (domain.Account, error)
	GetByUsername(ctx context.Context, username string) (domain.Account, error)
	GetByEmail(ctx context.Context, email string) (domain.Account, error)
	GetByID(ctx context.Context, accountID int64) (domain.Account, error)
	SaveLockState(ctx context.Context, accountID int64, failedAttempts int, locked bool, lockedAt *time.Time, updatedAt time.Time) error
	SetResetToken(ctx context.Context, accountID int64, token string, expiresAt time.Time, updatedAt time.Time) error
	CompleteReset(ctx context.Context, accountID int64, passwordHash string, passwordExpiresAt time.Time, updatedAt time.Time) error
	Delete(ctx context.Context, accountID int64) error
}

// SessionCreateParams captures metadata required to create a session record.
// Device and network fields are stored for the user-facing devices view.
type SessionCreateParams struct {
	AccountID int64
	Device    string
	IPAddress string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// SessionRepository manages persistent session lifecycle. Sessions are never
// mutated after revocation; Revoke on an already-inactive session is a no-op
// success.
type SessionRepository interface {
	Create(ctx context.Context, params SessionCreateParams) (domain.Session, error)
	GetByID(ctx context.Context, sessionID uuid.UUID) (domain.Session, error)
	ListActiveByAccount(ctx context.Context, accountID int64) ([]domain.Session, error)
	Revoke(ctx context.Context, sessionID uuid.UUID, revokedAt time.Time) error
	RevokeAllByAccount(ctx context.Context, accountID int64, revokedAt time.Time) (int64, error)
}

// BlacklistRepository stores explicitly invalidated token strings. Insert is
// idempotent on the token's uniqueness constraint.
type BlacklistRepository interface {
	Insert(ctx context.Context, token string, blacklistedAt, expiresAt time.Time) error
	Contains(ctx context.Context, token string) (bool, error)
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// LoginAttemptRepository stores login outcomes used by the history endpoint.
type LoginAttemptRepository interface {
	Insert(ctx context.Context, attempt domain.LoginAttempt) error
	ListByAccount(ctx context.Context, accountID int64, limit, offset int, since *time.Time, status string) ([]domain.LoginAttempt, error)
}
