package postgres

import "gorm.io/gorm"

// Repositories bundles the Postgres-backed repository set for wiring.
type Repositories struct {
	Accounts      *AccountRepository
	Sessions      *SessionRepository
	Blacklist     *BlacklistRepository
	LoginAttempts *LoginAttemptRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Accounts:      NewAccountRepository(db),
		Sessions:      NewSessionRepository(db),
		Blacklist:     NewBlacklistRepository(db),
		LoginAttempts: NewLoginAttemptRepository(db),
	}
}
