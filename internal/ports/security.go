package ports

import (
	"time"

	"github.com/google/uuid"
)

// PasswordHasher abstracts the password hashing scheme so the application
// layer never sees raw hash internals.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
}

// AuthClaims is the transport-neutral claim set embedded in an access token.
type AuthClaims struct {
	Subject     string
	AccountID   int64
	Role        string
	Authorities []string
	SessionID   uuid.UUID
	Issuer      string
	Audience    string
	IssuedAt    time.Time
	ExpiresAt   time.Time
}

// TokenSigner signs and verifies access tokens. ParseAndValidate enforces
// signature and temporal validity; Decode verifies the signature only so an
// expired token can still be inspected during logout.
type TokenSigner interface {
	Sign(claims AuthClaims) (string, error)
	ParseAndValidate(token string) (AuthClaims, error)
	Decode(token string) (AuthClaims, error)
}
