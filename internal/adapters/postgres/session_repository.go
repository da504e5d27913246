package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/akararkan/khi-backend-sub000/internal/domain"
	"github.com/akararkan/khi-backend-sub000/internal/ports"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionRepository is the GORM-backed implementation of
// ports.SessionRepository.
type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, params ports.SessionCreateParams) (domain.Session, error) {
	model := sessionModel{
		SessionID: uuid.New(),
		AccountID: params.AccountID,
		Device:    params.Device,
		IPAddress: params.IPAddress,
		IssuedAt:  params.IssuedAt,
		ExpiresAt: params.ExpiresAt,
		Active:    true,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return domain.Session{}, fmt.Errorf("insert session: %w", err)
	}
	return toDomainSession(model), nil
}

func (r *SessionRepository) GetByID(ctx context.Context, sessionID uuid.UUID) (domain.Session, error) {
	var model sessionModel
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Session{}, fmt.Errorf("%w: session %s", domain.ErrNotFound, sessionID)
		}
		return domain.Session{}, fmt.Errorf("query session: %w", err)
	}
	return toDomainSession(model), nil
}

func (r *SessionRepository) ListActiveByAccount(ctx context.Context, accountID int64) ([]domain.Session, error) {
	var models []sessionModel
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND active = ?", accountID, true).
		Order("issued_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("list active sessions: %w", err)
	}
	sessions := make([]domain.Session, 0, len(models))
	for _, m := range models {
		sessions = append(sessions, toDomainSession(m))
	}
	return sessions, nil
}

// Revoke deactivates a session. Revoking an already-inactive session affects
// no rows and is treated as success; only a missing session is an error.
func (r *SessionRepository) Revoke(ctx context.Context, sessionID uuid.UUID, revokedAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&sessionModel{}).
		Where("session_id = ? AND active = ?", sessionID, true).
		Updates(map[string]any{"active": false, "logout_at": revokedAt})
	if res.Error != nil {
		return fmt.Errorf("revoke session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&sessionModel{}).Where("session_id = ?", sessionID).Count(&count).Error; err != nil {
			return fmt.Errorf("revoke session: %w", err)
		}
		if count == 0 {
			return fmt.Errorf("%w: session %s", domain.ErrNotFound, sessionID)
		}
	}
	return nil
}

func (r *SessionRepository) RevokeAllByAccount(ctx context.Context, accountID int64, revokedAt time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&sessionModel{}).
		Where("account_id = ? AND active = ?", accountID, true).
		Updates(map[string]any{"active": false, "logout_at": revokedAt})
	if res.Error != nil {
		return 0, fmt.Errorf("revoke all sessions: %w", res.Error)
	}
	return res.RowsAffected, nil
}
