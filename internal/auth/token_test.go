package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/contacts-api/config"
	"github.com/target/contacts-api/internal/domain/model"
)

func newTestTokenManager(ttl time.Duration) *TokenManager {
	return NewTokenManager(config.AuthConfig{
		SecretKey:       "test-secret-key",
		SessionTokenTTL: ttl,
	})
}

func TestTokenManager_SessionRoundTrip(t *testing.T) {
	tm := newTestTokenManager(30 * time.Minute)

	token, err := tm.IssueSession("alice@example.com", model.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.VerifySession(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Subject)
	assert.Equal(t, model.RoleAdmin, claims.Role)
	require.NotNil(t, claims.IssuedAt)
	require.NotNil(t, claims.ExpiresAt)
	assert.Equal(t, 30*time.Minute, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestTokenManager_VerifySession_Tampered(t *testing.T) {
	tm := newTestTokenManager(30 * time.Minute)

	token, err := tm.IssueSession("alice@example.com", model.RoleUser)
	require.NoError(t, err)

	// Flip a character in the payload segment.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = tm.VerifySession(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_VerifySession_WrongKey(t *testing.T) {
	tm := newTestTokenManager(30 * time.Minute)
	other := NewTokenManager(config.AuthConfig{
		SecretKey:       "a-different-secret",
		SessionTokenTTL: 30 * time.Minute,
	})

	token, err := other.IssueSession("alice@example.com", model.RoleUser)
	require.NoError(t, err)

	_, err = tm.VerifySession(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_VerifySession_Expired(t *testing.T) {
	tm := newTestTokenManager(15 * time.Minute)
	issuedAt := time.Now().Add(-time.Hour)
	tm.now = func() time.Time { return issuedAt }

	token, err := tm.IssueSession("alice@example.com", model.RoleUser)
	require.NoError(t, err)

	tm.now = time.Now
	_, err = tm.VerifySession(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_VerifySession_Garbage(t *testing.T) {
	tm := newTestTokenManager(30 * time.Minute)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := tm.VerifySession(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}

func TestTokenManager_ResetRoundTrip(t *testing.T) {
	tm := newTestTokenManager(30 * time.Minute)

	token, err := tm.IssueReset("bob@example.com")
	require.NoError(t, err)

	email, err := tm.VerifyReset(token, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", email)
}

func TestTokenManager_VerifyReset_Expired(t *testing.T) {
	tm := newTestTokenManager(30 * time.Minute)
	issuedAt := time.Now().Add(-2 * time.Hour)
	tm.now = func() time.Time { return issuedAt }

	token, err := tm.IssueReset("bob@example.com")
	require.NoError(t, err)

	tm.now = time.Now
	_, err = tm.VerifyReset(token, time.Hour)
	assert.ErrorIs(t, err, ErrResetTokenExpired)
}

func TestTokenManager_VerifyReset_Invalid(t *testing.T) {
	tm := newTestTokenManager(30 * time.Minute)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := tm.VerifyReset(token, time.Hour)
		assert.ErrorIs(t, err, ErrResetTokenInvalid, "token %q", token)
	}
}

func TestTokenManager_TokenNamespacesAreDisjoint(t *testing.T) {
	tm := newTestTokenManager(30 * time.Minute)

	session, err := tm.IssueSession("alice@example.com", model.RoleUser)
	require.NoError(t, err)
	reset, err := tm.IssueReset("alice@example.com")
	require.NoError(t, err)

	// A session token must never redeem as a reset token.
	_, err = tm.VerifyReset(session, time.Hour)
	assert.ErrorIs(t, err, ErrResetTokenInvalid)

	// A reset token must never authenticate a session.
	_, err = tm.VerifySession(reset)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDeriveKey_Deterministic(t *testing.T) {
	secret := []byte("shared-secret")

	first := deriveKey(secret, "salt-a")
	second := deriveKey(secret, "salt-a")
	other := deriveKey(secret, "salt-b")

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.NotEqual(t, secret, first)
}
