package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BlacklistRepository is the GORM-backed implementation of
// ports.BlacklistRepository.
type BlacklistRepository struct {
	db *gorm.DB
}

func NewBlacklistRepository(db *gorm.DB) *BlacklistRepository {
	return &BlacklistRepository{db: db}
}

// Insert records the token. A second logout with the same token hits the
// primary key and is ignored.
func (r *BlacklistRepository) Insert(ctx context.Context, token string, blacklistedAt, expiresAt time.Time) error {
	model := blacklistModel{
		Token:         token,
		BlacklistedAt: blacklistedAt,
		ExpiresAt:     expiresAt,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model).Error
	if err != nil {
		return fmt.Errorf("insert blacklist entry: %w", err)
	}
	return nil
}

func (r *BlacklistRepository) Contains(ctx context.Context, token string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&blacklistModel{}).
		Where("token = ?", token).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("query blacklist: %w", err)
	}
	return count > 0, nil
}

func (r *BlacklistRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&blacklistModel{})
	if res.Error != nil {
		return 0, fmt.Errorf("purge blacklist: %w", res.Error)
	}
	return res.RowsAffected, nil
}
