package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/akararkan/khi-backend-sub000/internal/domain"
	"github.com/akararkan/khi-backend-sub000/internal/ports"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// accessTokenClaims is the JWT payload shape. The custom claims ride next to
// the registered set so standard validation keeps working.
type accessTokenClaims struct {
	AccountID   int64    `json:"account_id"`
	Role        string   `json:"role"`
	Authorities []string `json:"authorities"`
	SessionID   string   `json:"session_id"`
	jwt.RegisteredClaims
}

// JWTSigner signs and verifies access tokens with HMAC-SHA256 and a shared
// secret. All services validating these tokens must be configured with the
// same secret.
type JWTSigner struct {
	secret   []byte
	issuer   string
	audience string
}

func NewJWTSigner(secret []byte, issuer, audience string) (*JWTSigner, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("jwt secret must be at least 32 bytes, got %d", len(secret))
	}
	return &JWTSigner{secret: secret, issuer: issuer, audience: audience}, nil
}

func (s *JWTSigner) Sign(claims ports.AuthClaims) (string, error) {
	payload := accessTokenClaims{
		AccountID:   claims.AccountID,
		Role:        claims.Role,
		Authorities: claims.Authorities,
		SessionID:   claims.SessionID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Subject,
			Issuer:    claims.Issuer,
			Audience:  jwt.ClaimStrings{claims.Audience},
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseAndValidate checks the signature and the temporal claims. A small
// leeway absorbs clock skew between instances.
func (s *JWTSigner) ParseAndValidate(token string) (ports.AuthClaims, error) {
	var payload accessTokenClaims
	_, err := jwt.ParseWithClaims(token, &payload, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithLeeway(30*time.Second),
	)
	if err != nil {
		return ports.AuthClaims{}, mapJWTError(err)
	}
	return toAuthClaims(payload)
}

// Decode checks the signature but skips claim validation so expired tokens
// can still be read during logout.
func (s *JWTSigner) Decode(token string) (ports.AuthClaims, error) {
	var payload accessTokenClaims
	_, err := jwt.ParseWithClaims(token, &payload, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return ports.AuthClaims{}, mapJWTError(err)
	}
	return toAuthClaims(payload)
}

func (s *JWTSigner) keyFunc(*jwt.Token) (any, error) {
	return s.secret, nil
}

func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return fmt.Errorf("%w: token not valid yet", domain.ErrInvalidToken)
	default:
		return fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
}

func toAuthClaims(payload accessTokenClaims) (ports.AuthClaims, error) {
	sessionID, err := uuid.Parse(payload.SessionID)
	if err != nil {
		return ports.AuthClaims{}, fmt.Errorf("%w: malformed session id", domain.ErrInvalidToken)
	}

	claims := ports.AuthClaims{
		Subject:     payload.Subject,
		AccountID:   payload.AccountID,
		Role:        payload.Role,
		Authorities: payload.Authorities,
		SessionID:   sessionID,
		Issuer:      payload.Issuer,
	}
	if len(payload.Audience) > 0 {
		claims.Audience = payload.Audience[0]
	}
	if payload.IssuedAt != nil {
		claims.IssuedAt = payload.IssuedAt.Time
	}
	if payload.ExpiresAt != nil {
		claims.ExpiresAt = payload.ExpiresAt.Time
	}
	return claims, nil
}
