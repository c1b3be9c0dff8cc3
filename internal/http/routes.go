package httpx

import (
	"log/slog"
	"net/http"

	"github.com/target/contacts-api/internal/domain/model"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth     AuthServiceInterface
	Contacts ContactServiceInterface
	Logger   *slog.Logger
}

// NewRouter creates and configures a new HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	if services.Auth != nil {
		registerAuthRoutes(mux, &AuthHandlers{Svc: services.Auth, Logger: services.Logger}, services.Auth)
	}
	if services.Contacts != nil && services.Auth != nil {
		registerContactRoutes(mux, &ContactHandlers{Svc: services.Contacts}, services.Auth)
	}

	return mux
}

// registerAuthRoutes wires authentication endpoints. Session-bound routes go
// through RequireAuth; avatar changes are admin-only, enforced both at the
// route and again in the service for non-HTTP callers.
func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers, authSvc SessionAuthenticator) {
	requireAuth := RequireAuth(authSvc)
	requireAdmin := RequireRole(authSvc, model.RoleAdmin)

	mux.Handle("POST /auth/register", http.HandlerFunc(h.Register))
	mux.Handle("POST /auth/login", http.HandlerFunc(h.Login))
	mux.Handle("GET /auth/me", requireAuth(http.HandlerFunc(h.Me)))
	mux.Handle("PATCH /auth/avatar", requireAdmin(http.HandlerFunc(h.UpdateAvatar)))
	mux.Handle("POST /auth/request-password-reset", http.HandlerFunc(h.RequestPasswordReset))
	mux.Handle("POST /auth/reset-password", http.HandlerFunc(h.ResetPassword))
}

// registerContactRoutes wires address book endpoints. All of them require a
// valid session.
func registerContactRoutes(mux *http.ServeMux, h *ContactHandlers, authSvc SessionAuthenticator) {
	requireAuth := RequireAuth(authSvc)

	mux.Handle("GET /api/contacts", requireAuth(http.HandlerFunc(h.List)))
	mux.Handle("POST /api/contacts", requireAuth(http.HandlerFunc(h.Create)))
	mux.Handle("GET /api/contacts/birthdays", requireAuth(http.HandlerFunc(h.UpcomingBirthdays)))
	mux.Handle("GET /api/contacts/{id}", requireAuth(http.HandlerFunc(h.Get)))
	mux.Handle("PATCH /api/contacts/{id}", requireAuth(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE /api/contacts/{id}", requireAuth(http.HandlerFunc(h.Delete)))
}
