package application

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/akararkan/khi-backend-sub000/internal/domain"
)

// resolveAccount accepts either a username or an email address.
func (s *Service) resolveAccount(ctx context.Context, identifier string) (domain.Account, error) {
	identifier = strings.TrimSpace(identifier)
	if strings.Contains(identifier, "@") {
		return s.accounts.GetByEmail(ctx, strings.ToLower(identifier))
	}
	account, err := s.accounts.GetByUsername(ctx, identifier)
	if errors.Is(err, domain.ErrNotFound) {
		return s.accounts.GetByEmail(ctx, strings.ToLower(identifier))
	}
	return account, err
}

// RequestPasswordReset issues a single-use reset token for the account behind
// the given username or email. A repeated request overwrites any outstanding
// token, so at most one reset is pending per account.
func (s *Service) RequestPasswordReset(ctx context.Context, identifier string) (ResetRequestResult, error) {
	account, err := s.resolveAccount(ctx, identifier)
	if err != nil {
		return ResetRequestResult{}, err
	}

	token, err := randomHex(32)
	if err != nil {
		return ResetRequestResult{}, fmt.Errorf("generate reset token: %w", err)
	}

	now := s.now().UTC()
	expiresAt := now.Add(s.cfg.ResetTokenTTL)
	if err := s.accounts.SetResetToken(ctx, account.ID, token, expiresAt, now); err != nil {
		return ResetRequestResult{}, err
	}

	s.log.Info("password reset requested", "account_id", account.ID)
	return ResetRequestResult{Token: token, ExpiresAt: expiresAt}, nil
}

// ApplyReset consumes a pending reset token and installs the new password.
// Checks run in a fixed order: confirmation mismatch, no pending reset, token
// mismatch, token expired. On success the token is cleared, the lockout state
// is reset and the password lifetime clock restarts.
func (s *Service) ApplyReset(ctx context.Context, req ApplyResetRequest) error {
	if req.NewPassword != req.ConfirmPassword {
		return domain.ErrPasswordMismatch
	}

	account, err := s.resolveAccount(ctx, req.Identifier)
	if err != nil {
		return err
	}

	if account.ResetToken == nil || account.ResetTokenExpiresAt == nil {
		return domain.ErrNoPendingReset
	}
	if subtle.ConstantTimeCompare([]byte(*account.ResetToken), []byte(req.Token)) != 1 {
		return domain.ErrResetTokenMismatch
	}
	now := s.now().UTC()
	if !now.Before(*account.ResetTokenExpiresAt) {
		return domain.ErrResetTokenExpired
	}

	if err := domain.ValidatePassword(req.NewPassword); err != nil {
		return err
	}
	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.accounts.CompleteReset(ctx, account.ID, hash, now.Add(s.cfg.PasswordLifetime), now); err != nil {
		return err
	}
	if account.FailedAttempts > 0 || account.Locked {
		if err := s.accounts.SaveLockState(ctx, account.ID, 0, false, nil, now); err != nil {
			return err
		}
	}

	s.log.Info("password reset applied", "account_id", account.ID)
	return nil
}
