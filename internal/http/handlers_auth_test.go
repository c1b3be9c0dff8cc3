package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/contacts-api/internal/core"
	"github.com/target/contacts-api/internal/domain/model"
	apperrors "github.com/target/contacts-api/internal/errors"
)

// stubAuthService is a configurable AuthServiceInterface for handler tests.
type stubAuthService struct {
	registerFunc      func(context.Context, model.RegisterRequest) (*model.User, error)
	loginFunc         func(context.Context, string, string) (string, error)
	authenticateFunc  func(context.Context, string) (*model.User, error)
	updateAvatarFunc  func(context.Context, *model.User, string, core.UploadParams) (*model.User, error)
	requestResetFunc  func(context.Context, string) (string, error)
	resetPasswordFunc func(context.Context, string, string) error
}

func (s *stubAuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	if s.registerFunc != nil {
		return s.registerFunc(ctx, req)
	}
	return nil, apperrors.Internal("not stubbed")
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, error) {
	if s.loginFunc != nil {
		return s.loginFunc(ctx, email, password)
	}
	return "", apperrors.Internal("not stubbed")
}

func (s *stubAuthService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	if s.authenticateFunc != nil {
		return s.authenticateFunc(ctx, token)
	}
	return nil, apperrors.Unauthorized("Could not validate credentials.")
}

func (s *stubAuthService) UpdateAvatar(
	ctx context.Context,
	acting *model.User,
	targetEmail string,
	upload core.UploadParams,
) (*model.User, error) {
	if s.updateAvatarFunc != nil {
		return s.updateAvatarFunc(ctx, acting, targetEmail, upload)
	}
	return nil, apperrors.Internal("not stubbed")
}

func (s *stubAuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	if s.requestResetFunc != nil {
		return s.requestResetFunc(ctx, email)
	}
	return "", apperrors.Internal("not stubbed")
}

func (s *stubAuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if s.resetPasswordFunc != nil {
		return s.resetPasswordFunc(ctx, token, newPassword)
	}
	return apperrors.Internal("not stubbed")
}

func sessionUser(role model.Role) *model.User {
	return &model.User{
		ID:           "user-1",
		Email:        "alice@example.com",
		PasswordHash: "$2a$04$secret",
		Active:       true,
		Role:         role,
	}
}

func authRouter(svc *stubAuthService) http.Handler {
	return NewRouter(RouterServices{Auth: svc, Logger: discardLogger()})
}

func TestAuthHandlers_Register_Created(t *testing.T) {
	svc := &stubAuthService{
		registerFunc: func(_ context.Context, req model.RegisterRequest) (*model.User, error) {
			assert.Equal(t, "alice@example.com", req.Email)
			return sessionUser(model.RoleUser), nil
		},
	}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/auth/register",
		strings.NewReader(`{"email":"alice@example.com","password":"hunter2hunter2"}`))
	authRouter(svc).ServeHTTP(w, r)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"alice@example.com"`)
	// Credential material must never cross the wire.
	assert.NotContains(t, w.Body.String(), "password_hash")
	assert.NotContains(t, w.Body.String(), "$2a$")
}

func TestAuthHandlers_Register_Conflict(t *testing.T) {
	svc := &stubAuthService{
		registerFunc: func(context.Context, model.RegisterRequest) (*model.User, error) {
			return nil, apperrors.Conflict("Account already exists.")
		},
	}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/auth/register",
		strings.NewReader(`{"email":"alice@example.com","password":"hunter2hunter2"}`))
	authRouter(svc).ServeHTTP(w, r)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Account already exists.")
}

func TestAuthHandlers_Register_InvalidBody(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{"email":`))
	authRouter(&stubAuthService{}).ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandlers_Login_Success(t *testing.T) {
	svc := &stubAuthService{
		loginFunc: func(_ context.Context, email, password string) (string, error) {
			assert.Equal(t, "alice@example.com", email)
			assert.Equal(t, "hunter2hunter2", password)
			return "signed-token", nil
		},
	}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"alice@example.com","password":"hunter2hunter2"}`))
	authRouter(svc).ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "signed-token", body["access_token"])
	assert.Equal(t, "bearer", body["token_type"])
}

func TestAuthHandlers_Login_BadCredentials(t *testing.T) {
	svc := &stubAuthService{
		loginFunc: func(context.Context, string, string) (string, error) {
			return "", apperrors.Unauthorized("Invalid email or password.")
		},
	}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"alice@example.com","password":"wrong"}`))
	authRouter(svc).ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email or password.")
}

func TestAuthHandlers_Me(t *testing.T) {
	user := sessionUser(model.RoleUser)
	svc := &stubAuthService{
		authenticateFunc: func(_ context.Context, token string) (*model.User, error) {
			if token == "good-token" {
				return user, nil
			}
			return nil, apperrors.Unauthorized("Could not validate credentials.")
		},
	}

	t.Run("authenticated", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		r.Header.Set("Authorization", "Bearer good-token")
		authRouter(svc).ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), user.Email)
		assert.NotContains(t, w.Body.String(), "password_hash")
	})

	t.Run("no token", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		authRouter(svc).ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func avatarRequest(t *testing.T, target string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "avatar.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake png bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPatch, target, &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}

func TestAuthHandlers_UpdateAvatar_Success(t *testing.T) {
	admin := sessionUser(model.RoleAdmin)
	url := "https://cdn.example.com/avatars/abc.png"
	updated := *admin
	updated.AvatarURL = &url

	svc := &stubAuthService{
		authenticateFunc: func(context.Context, string) (*model.User, error) { return admin, nil },
		updateAvatarFunc: func(_ context.Context, acting *model.User, targetEmail string, upload core.UploadParams) (*model.User, error) {
			assert.Equal(t, admin, acting)
			assert.Equal(t, "bob@example.com", targetEmail)
			assert.Equal(t, "avatar.png", upload.Filename)
			return &updated, nil
		},
	}

	w := httptest.NewRecorder()
	r := avatarRequest(t, "/auth/avatar?email=bob@example.com")
	r.Header.Set("Authorization", "Bearer admin-token")
	authRouter(svc).ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), url)
}

func TestAuthHandlers_UpdateAvatar_ForbiddenForRegularUser(t *testing.T) {
	user := sessionUser(model.RoleUser)
	svc := &stubAuthService{
		authenticateFunc: func(context.Context, string) (*model.User, error) { return user, nil },
		updateAvatarFunc: func(context.Context, *model.User, string, core.UploadParams) (*model.User, error) {
			t.Fatal("handler must not run for a non-admin session")
			return nil, nil
		},
	}

	w := httptest.NewRecorder()
	r := avatarRequest(t, "/auth/avatar")
	r.Header.Set("Authorization", "Bearer user-token")
	authRouter(svc).ServeHTTP(w, r)

	// The route itself gates on the admin role.
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthHandlers_UpdateAvatar_MissingFile(t *testing.T) {
	admin := sessionUser(model.RoleAdmin)
	svc := &stubAuthService{
		authenticateFunc: func(context.Context, string) (*model.User, error) { return admin, nil },
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("unrelated", "value"))
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPatch, "/auth/avatar", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	r.Header.Set("Authorization", "Bearer admin-token")
	authRouter(svc).ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "file")
}

func TestAuthHandlers_RequestPasswordReset(t *testing.T) {
	svc := &stubAuthService{
		requestResetFunc: func(_ context.Context, email string) (string, error) {
			assert.Equal(t, "alice@example.com", email)
			return "If the email exists, a reset link has been sent.", nil
		},
	}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/auth/request-password-reset",
		strings.NewReader(`{"email":"alice@example.com"}`))
	authRouter(svc).ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "If the email exists")
}

func TestAuthHandlers_ResetPassword(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &stubAuthService{
			resetPasswordFunc: func(_ context.Context, token, password string) error {
				assert.Equal(t, "reset-token", token)
				assert.Equal(t, "new-password-1", password)
				return nil
			},
		}

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/auth/reset-password",
			strings.NewReader(`{"token":"reset-token","password":"new-password-1"}`))
		authRouter(svc).ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Password has been reset.")
	})

	t.Run("expired token", func(t *testing.T) {
		svc := &stubAuthService{
			resetPasswordFunc: func(context.Context, string, string) error {
				return apperrors.Validation("The reset token has expired.")
			},
		}

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/auth/reset-password",
			strings.NewReader(`{"token":"old","password":"new-password-1"}`))
		authRouter(svc).ServeHTTP(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "expired")
	})
}
