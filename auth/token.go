package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/flowspace/flowspace-backend/errs"
)

// DefaultTokenTTL is how long an issued token stays valid. There is no
// revocation list; the auth gate re-fetches the account on every protected
// call, which bounds the staleness window to the remaining token lifetime.
const DefaultTokenTTL = 24 * time.Hour

// TokenService issues and verifies stateless signed identity tokens. No
// session table is kept; the token alone carries subject, issued-at and
// expiry.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService takes the token lifetime as given; defaulting happens at
// the config boundary, not here.
func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	return &TokenService{secret: secret, ttl: ttl}
}

// TokenClaims is the verified content of an identity token.
type TokenClaims struct {
	UserID   uuid.UUID
	IssuedAt time.Time
	Expiry   time.Time
}

// Issue signs a token asserting userID for the service's configured lifetime.
func (s *TokenService) Issue(userID uuid.UUID) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errs.NewStoreError("sign", "token", err)
	}
	return signed, nil
}

// Verify parses and validates a token string. Malformed, forged and expired
// tokens all come back as the same generic auth error.
func (s *TokenService) Verify(tokenString string) (*TokenClaims, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errs.NewAuthError("invalid token")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errs.NewAuthError("invalid token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, errs.NewAuthError("invalid token")
	}

	verified := &TokenClaims{UserID: userID}
	if claims.IssuedAt != nil {
		verified.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		verified.Expiry = claims.ExpiresAt.Time
	}
	return verified, nil
}
