package httpx

import (
	"context"

	"github.com/target/contacts-api/internal/domain/model"
)

// userKey is an unexported context key type for the authenticated user.
type userKey struct{}

// SetUserInContext stores the authenticated user in the context.
func SetUserInContext(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// UserFromContext retrieves the authenticated user from the context, or nil
// if the request did not pass through RequireAuth.
func UserFromContext(ctx context.Context) *model.User {
	if user, ok := ctx.Value(userKey{}).(*model.User); ok {
		return user
	}
	return nil
}
