package postgres

import (
	"time"

	"github.com/google/uuid"
)

type accountModel struct {
	ID                  int64      `gorm:"column:id;primaryKey"`
	Username            string     `gorm:"column:username;uniqueIndex"`
	Email               string     `gorm:"column:email;uniqueIndex"`
	PasswordHash        string     `gorm:"column:password_hash"`
	Role                string     `gorm:"column:role"`
	Enabled             bool       `gorm:"column:enabled"`
	FailedAttempts      int        `gorm:"column:failed_attempts"`
	Locked              bool       `gorm:"column:locked"`
	LockedAt            *time.Time `gorm:"column:locked_at"`
	PasswordExpiresAt   time.Time  `gorm:"column:password_expires_at"`
	ResetToken          *string    `gorm:"column:reset_token"`
	ResetTokenExpiresAt *time.Time `gorm:"column:reset_token_expires_at"`
	CreatedAt           time.Time  `gorm:"column:created_at"`
	UpdatedAt           time.Time  `gorm:"column:updated_at"`
}

func (accountModel) TableName() string { return "accounts" }

type sessionModel struct {
	SessionID uuid.UUID  `gorm:"column:session_id;primaryKey;default:gen_random_uuid()"`
	AccountID int64      `gorm:"column:account_id"`
	Device    string     `gorm:"column:device"`
	IPAddress string     `gorm:"column:ip_address"`
	IssuedAt  time.Time  `gorm:"column:issued_at"`
	ExpiresAt time.Time  `gorm:"column:expires_at"`
	Active    bool       `gorm:"column:active"`
	LogoutAt  *time.Time `gorm:"column:logout_at"`
}

func (sessionModel) TableName() string { return "sessions" }

type blacklistModel struct {
	Token         string    `gorm:"column:token;primaryKey"`
	BlacklistedAt time.Time `gorm:"column:blacklisted_at"`
	ExpiresAt     time.Time `gorm:"column:expires_at"`
}

func (blacklistModel) TableName() string { return "token_blacklist" }

type loginAttemptModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	AccountID     *int64    `gorm:"column:account_id"`
	AttemptAt     time.Time `gorm:"column:attempt_at"`
	IPAddress     string    `gorm:"column:ip_address"`
	Device        string    `gorm:"column:device"`
	Status        string    `gorm:"column:status"`
	FailureReason string    `gorm:"column:failure_reason"`
}

func (loginAttemptModel) TableName() string { return "login_attempts" }
