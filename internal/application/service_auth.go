package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/akararkan/khi-backend-sub000/internal/domain"
	"github.com/akararkan/khi-backend-sub000/internal/ports"
)

// Register creates a new account and issues a first session token so the
// client does not need a follow-up login. Username and email are checked for
// uniqueness up front so the caller gets a field-specific error; the database
// constraint remains the backstop under concurrency.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (RegisterResult, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if username == "" {
		return RegisterResult{}, fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	}
	if email == "" || !strings.Contains(email, "@") {
		return RegisterResult{}, fmt.Errorf("%w: a valid email is required", domain.ErrInvalidInput)
	}
	if err := domain.ValidatePassword(req.Password); err != nil {
		return RegisterResult{}, err
	}

	roleInput := req.Role
	if roleInput == "" {
		roleInput = s.cfg.DefaultRole
	}
	role, err := domain.ParseRole(roleInput)
	if err != nil {
		return RegisterResult{}, err
	}

	if _, err := s.accounts.GetByUsername(ctx, username); err == nil {
		return RegisterResult{}, domain.ErrDuplicateUsername
	} else if !errors.Is(err, domain.ErrNotFound) {
		return RegisterResult{}, err
	}
	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return RegisterResult{}, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrNotFound) {
		return RegisterResult{}, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return RegisterResult{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	account, err := s.accounts.Create(ctx, ports.AccountCreateParams{
		Username:          username,
		Email:             email,
		PasswordHash:      hash,
		Role:              role,
		Enabled:           true,
		PasswordExpiresAt: now.Add(s.cfg.PasswordLifetime),
		CreatedAtUTC:      now,
	})
	if err != nil {
		return RegisterResult{}, err
	}

	token, err := s.issueToken(ctx, account, req.Device, req.IPAddress, now)
	if err != nil {
		return RegisterResult{}, err
	}

	s.log.Info("account registered", "account_id", account.ID, "username", account.Username, "role", string(account.Role))
	return RegisterResult{
		AccountID:   account.ID,
		Username:    account.Username,
		Email:       account.Email,
		Role:        string(account.Role),
		CreatedAt:   account.CreatedAt,
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
		SessionID:   token.SessionID,
	}, nil
}

// Login authenticates credentials and issues an access token bound to a new
// session. Failures against a known account are counted toward lockout; the
// caller only ever sees ErrInvalidCredentials for a wrong password so the
// response does not reveal whether the username exists.
func (s *Service) Login(ctx context.Context, req LoginRequest) (LoginResult, error) {
	now := s.now().UTC()

	account, err := s.accounts.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.recordAttempt(ctx, nil, req, domain.AttemptFailure, "unknown username")
			return LoginResult{}, domain.ErrInvalidCredentials
		}
		return LoginResult{}, err
	}

	if !account.Enabled {
		s.recordAttempt(ctx, &account.ID, req, domain.AttemptFailure, "account disabled")
		return LoginResult{}, domain.ErrInvalidCredentials
	}

	if account.EvaluateLazyUnlock(now, s.cfg.LockoutCooldown) {
		if err := s.accounts.SaveLockState(ctx, account.ID, account.FailedAttempts, account.Locked, account.LockedAt, now); err != nil {
			return LoginResult{}, err
		}
		s.log.Info("lockout expired, account unlocked", "account_id", account.ID)
	}

	if account.Locked {
		s.recordAttempt(ctx, &account.ID, req, domain.AttemptLocked, "account locked")
		return LoginResult{}, domain.ErrAccountLocked
	}

	if err := s.hasher.Compare(account.PasswordHash, req.Password); err != nil {
		lockedNow := account.RecordFailedAttempt(now, s.cfg.FailedThreshold)
		if err := s.accounts.SaveLockState(ctx, account.ID, account.FailedAttempts, account.Locked, account.LockedAt, now); err != nil {
			return LoginResult{}, err
		}
		if lockedNow {
			s.log.Warn("account locked after repeated failures", "account_id", account.ID, "failed_attempts", account.FailedAttempts)
		}
		s.recordAttempt(ctx, &account.ID, req, domain.AttemptFailure, "bad password")
		return LoginResult{}, domain.ErrInvalidCredentials
	}

	if account.FailedAttempts > 0 || account.Locked {
		account.ClearLockout()
		if err := s.accounts.SaveLockState(ctx, account.ID, 0, false, nil, now); err != nil {
			return LoginResult{}, err
		}
	}

	if !account.PasswordExpiresAt.IsZero() && !now.Before(account.PasswordExpiresAt) {
		s.recordAttempt(ctx, &account.ID, req, domain.AttemptFailure, "password expired")
		return LoginResult{}, domain.ErrPasswordExpired
	}

	result, err := s.issueToken(ctx, account, req.Device, req.IPAddress, now)
	if err != nil {
		return LoginResult{}, err
	}

	s.recordAttempt(ctx, &account.ID, req, domain.AttemptSuccess, "")
	s.log.Info("login succeeded", "account_id", account.ID, "session_id", result.SessionID)
	return result, nil
}

// Logout invalidates the presented token by blacklisting it. The token is
// decoded without temporal validation so an already-expired token can still
// be logged out cleanly; the backing session is left untouched and expires on
// its own.
func (s *Service) Logout(ctx context.Context, token string) (LogoutResult, error) {
	claims, err := s.signer.Decode(token)
	if err != nil {
		return LogoutResult{}, err
	}

	now := s.now().UTC()
	expiresAt := claims.ExpiresAt
	if expiresAt.Before(now) {
		expiresAt = now.Add(time.Minute)
	}
	if err := s.blacklist.Insert(ctx, token, now, expiresAt); err != nil {
		return LogoutResult{}, err
	}
	if ttl := expiresAt.Sub(now); ttl > 0 {
		if err := s.cache.MarkTokenBlacklisted(ctx, token, ttl); err != nil {
			s.log.Warn("blacklist cache write failed", "error", err)
		}
	}

	s.log.Info("logout recorded", "account_id", claims.AccountID, "session_id", claims.SessionID)
	return LogoutResult{SessionID: claims.SessionID}, nil
}

// DeleteAccount removes the account row; session rows go with it via the
// foreign key cascade. Already-issued tokens keep failing verification once
// their sessions are gone.
func (s *Service) DeleteAccount(ctx context.Context, accountID int64) error {
	if _, err := s.sessions.RevokeAllByAccount(ctx, accountID, s.now().UTC()); err != nil {
		return err
	}
	if err := s.accounts.Delete(ctx, accountID); err != nil {
		return err
	}
	s.log.Info("account deleted", "account_id", accountID)
	return nil
}

func (s *Service) recordAttempt(ctx context.Context, accountID *int64, req LoginRequest, status domain.AttemptStatus, reason string) {
	if s.attempts == nil {
		return
	}
	err := s.attempts.Insert(ctx, domain.LoginAttempt{
		AccountID:     accountID,
		AttemptAt:     s.now().UTC(),
		IPAddress:     req.IPAddress,
		Device:        req.Device,
		Status:        status,
		FailureReason: reason,
	})
	if err != nil {
		s.log.Warn("login attempt audit write failed", "error", err)
	}
}
