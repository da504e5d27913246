package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RevocationCache is a fast-path lookup layer in front of the session and
// blacklist tables. A cache miss is never authoritative; callers fall back to
// the repositories. Entries carry a TTL matching the token lifetime so the
// cache self-cleans.
type RevocationCache interface {
	MarkSessionRevoked(ctx context.Context, sessionID uuid.UUID, ttl time.Duration) error
	IsSessionRevoked(ctx context.Context, sessionID uuid.UUID) (bool, error)
	MarkTokenBlacklisted(ctx context.Context, token string, ttl time.Duration) error
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)
}
