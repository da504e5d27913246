package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/akararkan/khi-backend-sub000/internal/domain"
	"github.com/akararkan/khi-backend-sub000/internal/ports"
	"gorm.io/gorm"
)

// AccountRepository is the GORM-backed implementation of
// ports.AccountRepository.
type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, params ports.AccountCreateParams) (domain.Account, error) {
	model := accountModel{
		Username:          params.Username,
		Email:             params.Email,
		PasswordHash:      params.PasswordHash,
		Role:              string(params.Role),
		Enabled:           params.Enabled,
		PasswordExpiresAt: params.PasswordExpiresAt,
		CreatedAt:         params.CreatedAtUTC,
		UpdatedAt:         params.CreatedAtUTC,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// The constraint name tells us which field collided.
			if strings.Contains(strings.ToLower(err.Error()), "email") {
				return domain.Account{}, domain.ErrDuplicateEmail
			}
			return domain.Account{}, domain.ErrDuplicateUsername
		}
		return domain.Account{}, fmt.Errorf("insert account: %w", err)
	}
	return toDomainAccount(model), nil
}

func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (domain.Account, error) {
	var model accountModel
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Account{}, fmt.Errorf("%w: account %q", domain.ErrNotFound, username)
		}
		return domain.Account{}, fmt.Errorf("query account by username: %w", err)
	}
	return toDomainAccount(model), nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	var model accountModel
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Account{}, fmt.Errorf("%w: account for email", domain.ErrNotFound)
		}
		return domain.Account{}, fmt.Errorf("query account by email: %w", err)
	}
	return toDomainAccount(model), nil
}

func (r *AccountRepository) GetByID(ctx context.Context, accountID int64) (domain.Account, error) {
	var model accountModel
	err := r.db.WithContext(ctx).Where("id = ?", accountID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Account{}, fmt.Errorf("%w: account %d", domain.ErrNotFound, accountID)
		}
		return domain.Account{}, fmt.Errorf("query account by id: %w", err)
	}
	return toDomainAccount(model), nil
}

func (r *AccountRepository) SaveLockState(ctx context.Context, accountID int64, failedAttempts int, locked bool, lockedAt *time.Time, updatedAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&accountModel{}).
		Where("id = ?", accountID).
		Updates(map[string]any{
			"failed_attempts": failedAttempts,
			"locked":          locked,
			"locked_at":       lockedAt,
			"updated_at":      updatedAt,
		})
	if res.Error != nil {
		return fmt.Errorf("save lock state: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: account %d", domain.ErrNotFound, accountID)
	}
	return nil
}

func (r *AccountRepository) SetResetToken(ctx context.Context, accountID int64, token string, expiresAt time.Time, updatedAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&accountModel{}).
		Where("id = ?", accountID).
		Updates(map[string]any{
			"reset_token":            token,
			"reset_token_expires_at": expiresAt,
			"updated_at":             updatedAt,
		})
	if res.Error != nil {
		return fmt.Errorf("set reset token: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: account %d", domain.ErrNotFound, accountID)
	}
	return nil
}

// CompleteReset installs the new password hash and clears the reset token in
// one update so the token cannot be replayed.
func (r *AccountRepository) CompleteReset(ctx context.Context, accountID int64, passwordHash string, passwordExpiresAt time.Time, updatedAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&accountModel{}).
		Where("id = ?", accountID).
		Updates(map[string]any{
			"password_hash":          passwordHash,
			"password_expires_at":    passwordExpiresAt,
			"reset_token":            nil,
			"reset_token_expires_at": nil,
			"updated_at":             updatedAt,
		})
	if res.Error != nil {
		return fmt.Errorf("complete reset: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: account %d", domain.ErrNotFound, accountID)
	}
	return nil
}

func (r *AccountRepository) Delete(ctx context.Context, accountID int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", accountID).Delete(&accountModel{})
	if res.Error != nil {
		return fmt.Errorf("delete account: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: account %d", domain.ErrNotFound, accountID)
	}
	return nil
}
