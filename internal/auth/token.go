package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/target/contacts-api/config"
	"github.com/target/contacts-api/internal/domain/model"
)

// resetTokenSalt namespaces the reset token signing key so reset tokens can
// never be replayed as session tokens or vice versa.
const resetTokenSalt = "password-reset-salt"

var (
	// ErrInvalidToken is returned for any session token that fails
	// verification: bad signature, malformed structure, or expired claim.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrResetTokenExpired is returned when a reset token's signature is valid
	// but its age exceeds the allowed window.
	ErrResetTokenExpired = errors.New("reset token expired")

	// ErrResetTokenInvalid is returned when a reset token is corrupt or its
	// signature does not verify.
	ErrResetTokenInvalid = errors.New("reset token invalid")
)

// SessionClaims are the claims embedded in a session token.
// Subject carries the user's email.
type SessionClaims struct {
	jwt.RegisteredClaims
	Role model.Role `json:"role"`
}

// TokenManager issues and verifies session and password reset tokens.
// Both kinds are HS256 JWTs; the reset signing key is derived from the
// process secret with a fixed purpose salt.
type TokenManager struct {
	sessionKey []byte
	resetKey   []byte
	sessionTTL time.Duration
	now        func() time.Time
}

// NewTokenManager constructs a TokenManager from auth configuration.
func NewTokenManager(cfg config.AuthConfig) *TokenManager {
	secret := []byte(cfg.SecretKey)
	return &TokenManager{
		sessionKey: secret,
		resetKey:   deriveKey(secret, resetTokenSalt),
		sessionTTL: cfg.SessionTokenTTL,
		now:        time.Now,
	}
}

// deriveKey derives a purpose-specific signing key via HMAC-SHA256.
func deriveKey(secret []byte, salt string) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(salt))
	return mac.Sum(nil)
}

// IssueSession creates a signed session token for the given identity with an
// embedded expiry of now + the configured TTL.
func (m *TokenManager) IssueSession(email string, role model.Role) (string, error) {
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.sessionTTL)),
		},
		Role: role,
	})
	return token.SignedString(m.sessionKey)
}

// VerifySession validates a session token and returns its claims.
// Verification fails closed: any signature mismatch, malformed structure, or
// expired claim yields ErrInvalidToken.
func (m *TokenManager) VerifySession(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return m.sessionKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// resetClaims are the claims embedded in a reset token. No expiry is
// embedded; validity is computed from IssuedAt at verification time.
type resetClaims struct {
	jwt.RegisteredClaims
}

// IssueReset creates a signed password reset token for the given identity.
func (m *TokenManager) IssueReset(email string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, resetClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  email,
			IssuedAt: jwt.NewNumericDate(m.now()),
		},
	})
	return token.SignedString(m.resetKey)
}

// VerifyReset validates a reset token against the given max age and returns
// the identity it was issued for. The two failure kinds are distinguishable:
// ErrResetTokenExpired when the signature is valid but the token is older
// than maxAge, ErrResetTokenInvalid for anything corrupt or forged.
func (m *TokenManager) VerifyReset(tokenString string, maxAge time.Duration) (string, error) {
	claims := &resetClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return m.resetKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", ErrResetTokenInvalid
	}
	if claims.Subject == "" || claims.IssuedAt == nil {
		return "", ErrResetTokenInvalid
	}
	if m.now().Sub(claims.IssuedAt.Time) > maxAge {
		return "", ErrResetTokenExpired
	}
	return claims.Subject, nil
}
