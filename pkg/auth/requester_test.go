package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, subject string, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestDecodeRequesterValid(t *testing.T) {
	token := signedToken(t, "alice", time.Now().Add(time.Hour))

	req := DecodeRequester(token)
	require.NotNil(t, req)
	assert.Equal(t, "alice", req.UserID)
	assert.False(t, req.Expired)
}

func TestDecodeRequesterExpired(t *testing.T) {
	// Well-formed signature, exp 10 seconds in the past.
	token := signedToken(t, "alice", time.Now().Add(-10*time.Second))

	req := DecodeRequester(token)
	require.NotNil(t, req)
	assert.Equal(t, "alice", req.UserID)
	assert.True(t, req.Expired)
}

func TestDecodeRequesterMalformed(t *testing.T) {
	assert.Nil(t, DecodeRequester(""))
	assert.Nil(t, DecodeRequester("not-a-jwt"))
}

func TestDecodeRequesterMissingClaims(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "alice",
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	assert.Nil(t, DecodeRequester(token), "token without exp yields no identity")
}

func TestTokenFromRequestHeader(t *testing.T) {
	r := httptest.NewRequest("GET", "/ws", nil)
	r.Header.Set("Authorization", "Bearer abc123")
	assert.Equal(t, "abc123", TokenFromRequest(r))
}

func TestTokenFromRequestQueryFallback(t *testing.T) {
	r := httptest.NewRequest("GET", "/ws?access_token=xyz789", nil)
	assert.Equal(t, "xyz789", TokenFromRequest(r))
}

func TestJWTManagerRoundTrip(t *testing.T) {
	mgr := NewJWTManager("test-secret", time.Hour)

	token, err := mgr.Generate("bob")
	require.NoError(t, err)

	claims, err := mgr.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "bob", claims.Subject)
}

func TestJWTManagerRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTManager("secret-a", time.Hour).Generate("bob")
	require.NoError(t, err)

	_, err = NewJWTManager("secret-b", time.Hour).Verify(token)
	assert.Error(t, err)
}
