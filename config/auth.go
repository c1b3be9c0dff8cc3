package config

import "time"

// Bcrypt cost bounds mirror golang.org/x/crypto/bcrypt without importing it here.
const (
	minBcryptCost = 4
	maxBcryptCost = 31
)

// AuthConfig groups token signing and password hashing configuration.
//
// SecretKey signs both session tokens and reset tokens; the reset token key is
// derived from it with a fixed purpose salt so the two token kinds can never
// be replayed across namespaces.
type AuthConfig struct {
	// SecretKey is the process-wide HMAC signing secret. Required.
	SecretKey string `env:"SECRET_KEY,required"`

	// SessionTokenTTL is the validity window embedded in session tokens at issuance.
	SessionTokenTTL time.Duration `env:"SESSION_TOKEN_TTL" envDefault:"30m"`

	// ResetTokenMaxAge bounds how long a password reset token may be redeemed
	// after issuance. Validity is computed at verification time from the
	// token's issued-at claim, not from an embedded expiry.
	ResetTokenMaxAge time.Duration `env:"RESET_TOKEN_MAX_AGE" envDefault:"1h"`

	// BcryptCost is the bcrypt work factor for password hashing.
	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`
}

// Sanitize clamps auth configuration to safe ranges.
func (a *AuthConfig) Sanitize() {
	if a.BcryptCost < minBcryptCost {
		a.BcryptCost = minBcryptCost
	}
	if a.BcryptCost > maxBcryptCost {
		a.BcryptCost = maxBcryptCost
	}
	if a.SessionTokenTTL <= 0 {
		a.SessionTokenTTL = 30 * time.Minute
	}
	if a.ResetTokenMaxAge <= 0 {
		a.ResetTokenMaxAge = time.Hour
	}
}
