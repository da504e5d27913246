package application

import (
	"context"
	"errors"

	"github.com/akararkan/khi-backend-sub000/internal/domain"
	"github.com/google/uuid"
)

// ListSessions returns the caller's active sessions, marking the one the
// request itself was authorized with.
func (s *Service) ListSessions(ctx context.Context, accountID int64, current uuid.UUID) ([]SessionItem, error) {
	sessions, err := s.sessions.ListActiveByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	items := make([]SessionItem, 0, len(sessions))
	for _, sess := range sessions {
		items = append(items, SessionItem{
			SessionID: sess.SessionID,
			Device:    sess.Device,
			IPAddress: sess.IPAddress,
			IssuedAt:  sess.IssuedAt,
			ExpiresAt: sess.ExpiresAt,
			Current:   sess.SessionID == current,
		})
	}
	return items, nil
}

// RevokeSessionByID deactivates one of the caller's sessions. Revoking a
// session that belongs to someone else is rejected; revoking one that is
// already inactive succeeds silently.
func (s *Service) RevokeSessionByID(ctx context.Context, accountID int64, sessionID uuid.UUID) error {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.AccountID != accountID {
		return domain.ErrForbiddenSession
	}
	if !session.Active {
		return nil
	}

	now := s.now().UTC()
	if err := s.sessions.Revoke(ctx, sessionID, now); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if ttl := session.ExpiresAt.Sub(now); ttl > 0 {
		if err := s.cache.MarkSessionRevoked(ctx, sessionID, ttl); err != nil {
			s.log.Warn("revocation cache write failed", "error", err)
		}
	}
	s.log.Info("session revoked", "account_id", accountID, "session_id", sessionID)
	return nil
}

// RevokeAllSessions deactivates every active session of the account,
// including the current one. Used for the "log out everywhere" action.
func (s *Service) RevokeAllSessions(ctx context.Context, accountID int64) (RevokeAllResult, error) {
	now := s.now().UTC()

	sessions, err := s.sessions.ListActiveByAccount(ctx, accountID)
	if err != nil {
		return RevokeAllResult{}, err
	}

	count, err := s.sessions.RevokeAllByAccount(ctx, accountID, now)
	if err != nil {
		return RevokeAllResult{}, err
	}

	for _, sess := range sessions {
		if ttl := sess.ExpiresAt.Sub(now); ttl > 0 {
			if err := s.cache.MarkSessionRevoked(ctx, sess.SessionID, ttl); err != nil {
				s.log.Warn("revocation cache write failed", "session_id", sess.SessionID, "error", err)
			}
		}
	}

	s.log.Info("all sessions revoked", "account_id", accountID, "count", count)
	return RevokeAllResult{RevokedCount: count}, nil
}

// ListLoginHistory returns recent login attempts for the account, newest
// first.
func (s *Service) ListLoginHistory(ctx context.Context, accountID int64, q LoginHistoryQuery) ([]LoginHistoryItem, error) {
	if q.Limit <= 0 || q.Limit > 200 {
		q.Limit = 50
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	attempts, err := s.attempts.ListByAccount(ctx, accountID, q.Limit, q.Offset, q.Since, q.Status)
	if err != nil {
		return nil, err
	}
	items := make([]LoginHistoryItem, 0, len(attempts))
	for _, a := range attempts {
		items = append(items, LoginHistoryItem{
			AttemptAt:     a.AttemptAt,
			IPAddress:     a.IPAddress,
			Device:        a.Device,
			Status:        string(a.Status),
			FailureReason: a.FailureReason,
		})
	}
	return items, nil
}
