package handlers

import (
	"context"

	"github.com/iudanet/usersvc/internal/models"
)

// contextKey is a private type to avoid collisions with other packages.
type contextKey string

// userContextKey holds the authenticated user resolved by the auth gate.
const userContextKey contextKey = "auth_user"

// WithUser returns a context carrying the authenticated user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUser retrieves the authenticated user from the context.
func GetUser(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	return user, ok
}
