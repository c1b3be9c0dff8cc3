package httpx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/target/contacts-api/internal/core"
	"github.com/target/contacts-api/internal/domain/model"
	apperrors "github.com/target/contacts-api/internal/errors"
)

// maxAvatarUploadBytes bounds the multipart form parsed for avatar uploads.
const maxAvatarUploadBytes = 10 << 20

// AuthServiceInterface defines the auth operations used by the HTTP layer.
type AuthServiceInterface interface {
	SessionAuthenticator
	Register(ctx context.Context, req model.RegisterRequest) (*model.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	UpdateAvatar(ctx context.Context, acting *model.User, targetEmail string, upload core.UploadParams) (*model.User, error)
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// AuthHandlers contains HTTP handlers for authentication operations.
type AuthHandlers struct {
	Svc    AuthServiceInterface
	Logger *slog.Logger
}

// tokenResponse is the login reply body.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// messageResponse is a generic informational reply body.
type messageResponse struct {
	Message string `json:"message"`
}

// Register handles POST /auth/register.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	user, err := h.Svc.Register(r.Context(), req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, user.Public())
}

// loginRequest is the login request body.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /auth/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	token, err := h.Svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Me handles GET /auth/me. Requires authentication.
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		WriteAppError(w, unauthorizedErr())
		return
	}
	WriteJSON(w, http.StatusOK, user.Public())
}

// UpdateAvatar handles PATCH /auth/avatar. Expects a multipart form with a
// "file" part; an optional "email" query parameter selects another user's
// record. Requires authentication.
func (h *AuthHandlers) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	acting := UserFromContext(r.Context())
	if acting == nil {
		WriteAppError(w, unauthorizedErr())
		return
	}

	if err := r.ParseMultipartForm(maxAvatarUploadBytes); err != nil {
		WriteAppError(w, apperrors.Validation("A multipart form with a file is required."))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		WriteAppError(w, apperrors.ValidationField("file", "An avatar file is required."))
		return
	}
	defer file.Close()

	updated, err := h.Svc.UpdateAvatar(r.Context(), acting, r.URL.Query().Get("email"), core.UploadParams{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, updated.Public())
}

// resetRequestBody is the password reset request body.
type resetRequestBody struct {
	Email string `json:"email"`
}

// RequestPasswordReset handles POST /auth/request-password-reset.
// The reply is identical whether or not the account exists.
func (h *AuthHandlers) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req resetRequestBody
	if !DecodeJSON(w, r, &req) {
		return
	}

	message, err := h.Svc.RequestPasswordReset(r.Context(), req.Email)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, messageResponse{Message: message})
}

// resetPasswordBody is the password reset confirmation body.
type resetPasswordBody struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// ResetPassword handles POST /auth/reset-password.
func (h *AuthHandlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordBody
	if !DecodeJSON(w, r, &req) {
		return
	}

	if err := h.Svc.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, messageResponse{Message: "Password has been reset."})
}
