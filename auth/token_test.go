package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowspace/flowspace-backend/errs"
)

func TestIssueAndVerify(t *testing.T) {
	svc := NewTokenService([]byte("test-secret"), time.Hour)
	userID := uuid.New()

	token, err := svc.Issue(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.WithinDuration(t, time.Now(), claims.IssuedAt, 5*time.Second)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.Expiry, 5*time.Second)
}

func TestVerifyExpiredToken(t *testing.T) {
	svc := NewTokenService([]byte("test-secret"), -time.Minute)

	// Issue honors the configured lifetime as given, so a negative one
	// produces a token that is already expired.
	token, err := svc.Issue(uuid.New())
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)
	assert.True(t, claims.ExpiresAt.Before(time.Now()))

	_, err = svc.Verify(token)
	require.Error(t, err)
	assert.True(t, errs.IsUnauthorized(err))
}

func TestVerifyRejectsPastExpiry(t *testing.T) {
	secret := []byte("test-secret")
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	signed, err := token.SignedString(secret)
	require.NoError(t, err)

	_, err = NewTokenService(secret, DefaultTokenTTL).Verify(signed)
	require.Error(t, err)
	assert.True(t, errs.IsUnauthorized(err))
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewTokenService([]byte("right-secret"), time.Hour)
	verifier := NewTokenService([]byte("wrong-secret"), time.Hour)

	token, err := issuer.Issue(uuid.New())
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.Error(t, err)
	assert.True(t, errs.IsUnauthorized(err))
}

func TestVerifyMalformedToken(t *testing.T) {
	svc := NewTokenService([]byte("test-secret"), time.Hour)

	for _, raw := range []string{"", "garbage", "not.a.jwt"} {
		_, err := svc.Verify(raw)
		require.Error(t, err, "token %q", raw)
		assert.True(t, errs.IsUnauthorized(err))
	}
}

func TestVerifyRejectsNonUUIDSubject(t *testing.T) {
	secret := []byte("test-secret")
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString(secret)
	require.NoError(t, err)

	_, err = NewTokenService(secret, time.Hour).Verify(signed)
	require.Error(t, err)
	assert.True(t, errs.IsUnauthorized(err))
}

func TestVerifyRejectsUnsignedToken(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenService([]byte("test-secret"), time.Hour).Verify(signed)
	require.Error(t, err)
	assert.True(t, errs.IsUnauthorized(err))
}
