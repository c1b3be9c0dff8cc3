//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"strings"
	"time"

	apperrors "github.com/target/contacts-api/internal/errors"
)

const (
	minPasswordLen = 8
	maxEmailLen    = 255
)

// Role represents an application's authorization role.
// Keep string form for easy persistence and cache serialization.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is supported.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// User is the credential record persisted in the system of record.
// The same shape is serialized into the profile cache as the snapshot of the
// last-known-good profile, so PasswordHash carries a JSON tag here; API
// responses must go through Public() instead.
type User struct {
	ID                string    `json:"id"                   db:"id"`
	Email             string    `json:"email"                db:"email"`
	PasswordHash      string    `json:"password_hash"        db:"password_hash"`
	Active            bool      `json:"active"               db:"active"`
	Verified          bool      `json:"verified"             db:"verified"`
	AvatarURL         *string   `json:"avatar_url,omitempty" db:"avatar_url"`
	Role              Role      `json:"role"                 db:"role"`
	PasswordChangedAt time.Time `json:"password_changed_at"  db:"password_changed_at"`
	CreatedAt         time.Time `json:"created_at"           db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"           db:"updated_at"`
}

// PublicUser is the externally visible projection of a User.
type PublicUser struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Active    bool    `json:"active"`
	Verified  bool    `json:"verified"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Role      Role    `json:"role"`
}

// Public returns the user without credential material.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Active:    u.Active,
		Verified:  u.Verified,
		AvatarURL: u.AvatarURL,
		Role:      u.Role,
	}
}

// HasRole reports whether the user's role meets the required role.
// Role hierarchy: user < admin.
func (u *User) HasRole(required Role) bool {
	roleHierarchy := map[Role]int{
		RoleUser:  1,
		RoleAdmin: 2,
	}

	userLevel, userOK := roleHierarchy[u.Role]
	requiredLevel, requiredOK := roleHierarchy[required]
	if !userOK || !requiredOK {
		return false
	}
	return userLevel >= requiredLevel
}

// RegisterRequest represents parameters to register a new user.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Normalize trims surrounding whitespace from the email. The address itself
// stays case-sensitive; it is the primary lookup key.
func (r *RegisterRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
}

// Validate checks the request shape.
func (r *RegisterRequest) Validate() error {
	if r.Email == "" {
		return apperrors.ValidationField("email", "Email is required.")
	}
	if len(r.Email) > maxEmailLen {
		return apperrors.ValidationField("email", "Email is too long.")
	}
	at := strings.Index(r.Email, "@")
	if at <= 0 || at == len(r.Email)-1 {
		return apperrors.ValidationField("email", "Email address is not valid.")
	}
	if len(r.Password) < minPasswordLen {
		return apperrors.ValidationField("password", "Password must be at least 8 characters.")
	}
	return nil
}

// CreateUserParams carries the already-hashed credentials to the repository.
type CreateUserParams struct {
	Email        string
	PasswordHash string
}
