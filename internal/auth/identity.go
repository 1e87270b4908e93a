package auth

import (
	"context"

	"poolservice_backend/internal/models"
	"poolservice_backend/pkg/contextkeys"
)

// Identity is the authenticated principal of a request. It is resolved once by
// the auth middleware and passed explicitly to services.
type Identity struct {
	UserID string          `json:"user_id"`
	Email  string          `json:"email"`
	Role   models.UserRole `json:"role"`
}

func IdentityFromUser(u *models.User) Identity {
	return Identity{UserID: u.ID, Email: u.Email, Role: u.Role}
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextkeys.IdentityContextKey, id)
}

// IdentityFrom returns the identity stored in ctx, if any.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextkeys.IdentityContextKey).(Identity)
	return id, ok && id.UserID != ""
}
