package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/akararkan/khi-backend-sub000/internal/domain"
	"github.com/akararkan/khi-backend-sub000/internal/ports"
)

// issueToken creates the session record first and only then signs a token
// referencing it. If the session cannot be persisted no token leaves the
// service, so every issued token is revocable from the start.
func (s *Service) issueToken(ctx context.Context, account domain.Account, device, ip string, now time.Time) (LoginResult, error) {
	expiresAt := now.Add(s.cfg.TokenTTL)

	session, err := s.sessions.Create(ctx, ports.SessionCreateParams{
		AccountID: account.ID,
		Device:    device,
		IPAddress: ip,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		return LoginResult{}, fmt.Errorf("create session: %w", err)
	}

	authorities := account.Role.Authorities()
	token, err := s.signer.Sign(ports.AuthClaims{
		Subject:     account.Username,
		AccountID:   account.ID,
		Role:        string(account.Role),
		Authorities: authorities,
		SessionID:   session.SessionID,
		Issuer:      s.cfg.TokenIssuer,
		Audience:    s.cfg.TokenAudience,
		IssuedAt:    now,
		ExpiresAt:   expiresAt,
	})
	if err != nil {
		return LoginResult{}, fmt.Errorf("sign token: %w", err)
	}

	return LoginResult{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		SessionID:   session.SessionID,
		Role:        string(account.Role),
		Authorities: authorities,
	}, nil
}

// VerifyToken runs the full acceptance pipeline: signature, expiry, blacklist
// membership, then session liveness. Checks are ordered cheapest first so
// garbage tokens never touch storage.
func (s *Service) VerifyToken(ctx context.Context, token string) (VerifiedIdentity, error) {
	claims, err := s.signer.ParseAndValidate(token)
	if err != nil {
		return VerifiedIdentity{}, err
	}

	blacklisted, err := s.cache.IsTokenBlacklisted(ctx, token)
	if err != nil {
		s.log.Warn("blacklist cache read failed", "error", err)
	}
	if !blacklisted {
		blacklisted, err = s.blacklist.Contains(ctx, token)
		if err != nil {
			return VerifiedIdentity{}, err
		}
	}
	if blacklisted {
		return VerifiedIdentity{}, domain.ErrTokenRevoked
	}

	revoked, err := s.cache.IsSessionRevoked(ctx, claims.SessionID)
	if err != nil {
		s.log.Warn("revocation cache read failed", "error", err)
	}
	if revoked {
		return VerifiedIdentity{}, domain.ErrTokenRevoked
	}

	session, err := s.sessions.GetByID(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return VerifiedIdentity{}, domain.ErrTokenRevoked
		}
		return VerifiedIdentity{}, err
	}
	if !session.Active {
		return VerifiedIdentity{}, domain.ErrTokenRevoked
	}

	return VerifiedIdentity{
		AccountID:   claims.AccountID,
		Username:    claims.Subject,
		Role:        claims.Role,
		Authorities: claims.Authorities,
		SessionID:   claims.SessionID,
		ExpiresAt:   claims.ExpiresAt,
	}, nil
}

// ExtractClaims verifies the signature and returns the embedded claims
// without consulting session state. Intended for diagnostics, not for
// authorizing requests.
func (s *Service) ExtractClaims(token string) (ports.AuthClaims, error) {
	return s.signer.Decode(token)
}

// PurgeExpiredBlacklist deletes blacklist rows whose tokens have expired on
// their own. Run periodically from the bootstrap layer.
func (s *Service) PurgeExpiredBlacklist(ctx context.Context) (int64, error) {
	n, err := s.blacklist.PurgeExpired(ctx, s.now().UTC())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.Info("purged expired blacklist entries", "count", n)
	}
	return n, nil
}
