package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/target/contacts-api/internal/auth"
	"github.com/target/contacts-api/internal/core"
	"github.com/target/contacts-api/internal/domain/model"
	apperrors "github.com/target/contacts-api/internal/errors"
)

// Error messages surfaced to clients. Login failures are deliberately
// indistinguishable between unknown identity and wrong password, and the
// reset request reply never reveals whether the account exists.
const (
	msgAccountExists      = "Account already exists."
	msgInvalidCredentials = "Invalid email or password."
	msgInvalidSession     = "Could not validate credentials."
	msgNotEnoughPerms     = "Not enough permissions."
	msgResetRequested     = "If the email exists, a reset link has been sent."
	msgResetExpired       = "The reset token has expired."
	msgResetInvalid       = "Invalid reset token."
	msgUploadFailed       = "Avatar upload failed."
)

// AuthServiceDeps groups the collaborators of AuthService.
type AuthServiceDeps struct {
	Users    core.UserRepository
	Cache    core.ProfileCache
	Hasher   *auth.PasswordHasher
	Tokens   *auth.TokenManager
	Media    core.MediaStore
	Notifier core.ResetNotifier
}

// AuthServiceConfig groups tunables for AuthService.
type AuthServiceConfig struct {
	ProfileCacheTTL  time.Duration
	ResetTokenMaxAge time.Duration
}

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Deps   AuthServiceDeps
	Config AuthServiceConfig
	Logger *slog.Logger
}

// AuthService orchestrates registration, login, session verification,
// avatar updates, and the password reset flow. The database is the system
// of record; the profile cache is a disposable snapshot mirror that this
// service keeps coherent with write-through invalidation.
type AuthService struct {
	users    core.UserRepository
	cache    core.ProfileCache
	hasher   *auth.PasswordHasher
	tokens   *auth.TokenManager
	media    core.MediaStore
	notifier core.ResetNotifier
	cfg      AuthServiceConfig
	logger   *slog.Logger
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.Deps.Users == nil {
		panic("UserRepository is required")
	}
	if opts.Deps.Cache == nil {
		panic("ProfileCache is required")
	}
	if opts.Deps.Hasher == nil {
		panic("PasswordHasher is required")
	}
	if opts.Deps.Tokens == nil {
		panic("TokenManager is required")
	}

	if opts.Config.ProfileCacheTTL <= 0 {
		opts.Config.ProfileCacheTTL = time.Hour
	}
	if opts.Config.ResetTokenMaxAge <= 0 {
		opts.Config.ResetTokenMaxAge = time.Hour
	}

	return &AuthService{
		users:    opts.Deps.Users,
		cache:    opts.Deps.Cache,
		hasher:   opts.Deps.Hasher,
		tokens:   opts.Deps.Tokens,
		media:    opts.Deps.Media,
		notifier: opts.Deps.Notifier,
		cfg:      opts.Config,
		logger:   opts.Logger,
	}
}

// Register creates a new credential record. A duplicate email surfaces as a
// Conflict regardless of which concurrent registration lost the race.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "hash password")
	}

	user, err := s.users.Create(ctx, model.CreateUserParams{
		Email:        req.Email,
		PasswordHash: hash,
	})
	if err != nil {
		if apperrors.IsConflict(err) {
			return nil, apperrors.Conflict(msgAccountExists)
		}
		return nil, err
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "user registered", "email", user.Email)
	}
	return user, nil
}

// Login verifies credentials and issues a session token. On success the
// profile cache is refreshed best-effort; a cache failure never fails the
// login.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return "", apperrors.Unauthorized(msgInvalidCredentials)
		}
		return "", err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", apperrors.Unauthorized(msgInvalidCredentials)
	}

	token, err := s.tokens.IssueSession(user.Email, user.Role)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "issue session token")
	}

	s.putCache(ctx, user)
	return token, nil
}

// Authenticate resolves a session token to the current credential record.
// The cache is consulted first; on a miss the record is read through from
// the database and the snapshot repopulated. Tokens issued before the last
// password rotation are rejected. A valid token whose subject no longer
// exists surfaces as NotFound, not as a credential failure.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.tokens.VerifySession(token)
	if err != nil {
		return nil, apperrors.Unauthorized(msgInvalidSession)
	}

	user, err := s.lookupProfile(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}

	if revokedByRotation(claims, user) {
		return nil, apperrors.Unauthorized(msgInvalidSession)
	}
	return user, nil
}

// lookupProfile returns the cached snapshot when present, falling back to
// the system of record. Cache read failures are treated as misses.
func (s *AuthService) lookupProfile(ctx context.Context, email string) (*model.User, error) {
	cached, err := s.cache.Get(ctx, email)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, core.ErrProfileNotCached) && s.logger != nil {
		s.logger.WarnContext(ctx, "profile cache read failed", "email", email, "error", err)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	s.putCache(ctx, user)
	return user, nil
}

// revokedByRotation reports whether the session predates the last password
// change. JWT timestamps carry second precision, so the rotation time is
// truncated before comparing.
func revokedByRotation(claims *auth.SessionClaims, user *model.User) bool {
	if claims.IssuedAt == nil {
		return true
	}
	changed := user.PasswordChangedAt.Truncate(time.Second)
	return claims.IssuedAt.Time.Before(changed)
}

// UpdateAvatar stores a new avatar binary and records its URL. Only
// administrators may change avatars; a regular user is refused even for
// their own record. An empty targetEmail means the acting user's own record.
func (s *AuthService) UpdateAvatar(
	ctx context.Context,
	acting *model.User,
	targetEmail string,
	upload core.UploadParams,
) (*model.User, error) {
	if err := RequireRole(acting, model.RoleAdmin); err != nil {
		return nil, err
	}
	if s.media == nil {
		return nil, apperrors.Internal("media store is not configured")
	}
	if targetEmail == "" {
		targetEmail = acting.Email
	}

	target, err := s.users.GetByEmail(ctx, targetEmail)
	if err != nil {
		return nil, err
	}

	url, err := s.media.Upload(ctx, upload)
	if err != nil {
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "avatar upload failed", "email", target.Email, "error", err)
		}
		return nil, apperrors.Internal(msgUploadFailed)
	}

	updated, err := s.users.UpdateAvatar(ctx, target.Email, url)
	if err != nil {
		return nil, err
	}

	s.putCache(ctx, updated)
	return updated, nil
}

// RequestPasswordReset issues a reset token and hands it to the notifier.
// The returned message is identical whether or not the account exists.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return msgResetRequested, nil
		}
		return "", err
	}

	token, err := s.tokens.IssueReset(user.Email)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "issue reset token")
	}

	if s.notifier != nil {
		if err := s.notifier.SendResetToken(ctx, user.Email, token); err != nil && s.logger != nil {
			s.logger.ErrorContext(ctx, "reset token delivery failed", "email", user.Email, "error", err)
		}
	}
	return msgResetRequested, nil
}

// ResetPassword consumes a reset token and rotates the stored credential.
// The cached snapshot is invalidated so the next lookup sees the new state,
// and password_changed_at advances so prior session tokens stop working.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 8 {
		return apperrors.ValidationField("password", "Password must be at least 8 characters.")
	}

	email, err := s.tokens.VerifyReset(token, s.cfg.ResetTokenMaxAge)
	if err != nil {
		if errors.Is(err, auth.ErrResetTokenExpired) {
			return apperrors.Validation(msgResetExpired)
		}
		return apperrors.Validation(msgResetInvalid)
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "hash password")
	}

	if _, err := s.users.UpdatePassword(ctx, email, hash); err != nil {
		return err
	}

	if err := s.cache.Delete(ctx, email); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "profile cache invalidation failed", "email", email, "error", err)
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "password reset completed", "email", email)
	}
	return nil
}

// putCache refreshes the profile snapshot best-effort.
func (s *AuthService) putCache(ctx context.Context, user *model.User) {
	if err := s.cache.Put(ctx, user, s.cfg.ProfileCacheTTL); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "profile cache write failed", "email", user.Email, "error", err)
	}
}

// RequireRole returns an error unless the user meets the required role.
func RequireRole(user *model.User, required model.Role) error {
	if user == nil {
		return apperrors.Unauthorized(msgInvalidSession)
	}
	if !user.HasRole(required) {
		return apperrors.Forbidden(msgNotEnoughPerms)
	}
	return nil
}
