package application

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/akararkan/khi-backend-sub000/internal/ports"
)

// Service coordinates the authentication workflows over the persistence,
// caching and security ports. It holds no request state and is safe for
// concurrent use.
type Service struct {
	accounts  ports.AccountRepository
	sessions  ports.SessionRepository
	blacklist ports.BlacklistRepository
	attempts  ports.LoginAttemptRepository
	cache     ports.RevocationCache
	hasher    ports.PasswordHasher
	signer    ports.TokenSigner
	cfg       Config
	log       *slog.Logger

	now func() time.Time
}

// Dependencies bundles the collaborators needed to construct a Service.
type Dependencies struct {
	Accounts      ports.AccountRepository
	Sessions      ports.SessionRepository
	Blacklist     ports.BlacklistRepository
	LoginAttempts ports.LoginAttemptRepository
	Cache         ports.RevocationCache
	Hasher        ports.PasswordHasher
	Signer        ports.TokenSigner
	Logger        *slog.Logger
}

func NewService(deps Dependencies, cfg Config) *Service {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.FailedThreshold <= 0 {
		cfg.FailedThreshold = 5
	}
	if cfg.LockoutCooldown <= 0 {
		cfg.LockoutCooldown = 5 * time.Minute
	}
	if cfg.ResetTokenTTL <= 0 {
		cfg.ResetTokenTTL = 30 * time.Minute
	}
	if cfg.PasswordLifetime <= 0 {
		cfg.PasswordLifetime = 90 * 24 * time.Hour
	}
	if cfg.DefaultRole == "" {
		cfg.DefaultRole = "GUEST"
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		accounts:  deps.Accounts,
		sessions:  deps.Sessions,
		blacklist: deps.Blacklist,
		attempts:  deps.LoginAttempts,
		cache:     deps.Cache,
		hasher:    deps.Hasher,
		signer:    deps.Signer,
		cfg:       cfg,
		log:       logger,
		now:       time.Now,
	}
}

// randomHex returns a hex-encoded random string of n bytes of entropy, used
// for password reset tokens.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
