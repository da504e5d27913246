package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/akararkan/khi-backend-sub000/internal/domain"
	"gorm.io/gorm"
)

// LoginAttemptRepository is the GORM-backed implementation of
// ports.LoginAttemptRepository.
type LoginAttemptRepository struct {
	db *gorm.DB
}

func NewLoginAttemptRepository(db *gorm.DB) *LoginAttemptRepository {
	return &LoginAttemptRepository{db: db}
}

func (r *LoginAttemptRepository) Insert(ctx context.Context, attempt domain.LoginAttempt) error {
	model := loginAttemptModel{
		AccountID:     attempt.AccountID,
		AttemptAt:     attempt.AttemptAt,
		IPAddress:     attempt.IPAddress,
		Device:        attempt.Device,
		Status:        string(attempt.Status),
		FailureReason: attempt.FailureReason,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("insert login attempt: %w", err)
	}
	return nil
}

func (r *LoginAttemptRepository) ListByAccount(ctx context.Context, accountID int64, limit, offset int, since *time.Time, status string) ([]domain.LoginAttempt, error) {
	q := r.db.WithContext(ctx).Model(&loginAttemptModel{}).
		Where("account_id = ?", accountID)
	if since != nil {
		q = q.Where("attempt_at >= ?", *since)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var models []loginAttemptModel
	err := q.Order("attempt_at DESC").Limit(limit).Offset(offset).Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("list login attempts: %w", err)
	}
	attempts := make([]domain.LoginAttempt, 0, len(models))
	for _, m := range models {
		attempts = append(attempts, toDomainAttempt(m))
	}
	return attempts, nil
}
