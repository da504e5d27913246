package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	revokedSessionPrefix   = "auth:revoked-session:"
	blacklistedTokenPrefix = "auth:blacklisted-token:"
)

// RedisRevocationCache implements ports.RevocationCache. Tokens are hashed
// before use as keys so raw credentials never appear in the keyspace.
type RedisRevocationCache struct {
	client *redis.Client
}

func NewRedisRevocationCache(client *redis.Client) *RedisRevocationCache {
	return &RedisRevocationCache{client: client}
}

func (c *RedisRevocationCache) MarkSessionRevoked(ctx context.Context, sessionID uuid.UUID, ttl time.Duration) error {
	key := revokedSessionPrefix + sessionID.String()
	if err := c.client.Set(ctx, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("mark session revoked: %w", err)
	}
	return nil
}

func (c *RedisRevocationCache) IsSessionRevoked(ctx context.Context, sessionID uuid.UUID) (bool, error) {
	key := revokedSessionPrefix + sessionID.String()
	if err := c.client.Get(ctx, key).Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("check session revoked: %w", err)
	}
	return true, nil
}

func (c *RedisRevocationCache) MarkTokenBlacklisted(ctx context.Context, token string, ttl time.Duration) error {
	key := blacklistedTokenPrefix + hashToken(token)
	if err := c.client.Set(ctx, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("mark token blacklisted: %w", err)
	}
	return nil
}

func (c *RedisRevocationCache) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	key := blacklistedTokenPrefix + hashToken(token)
	if err := c.client.Get(ctx, key).Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("check token blacklisted: %w", err)
	}
	return true, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
