package httpapi

import (
	"context"

	"github.com/dmitrijs2005/contactbook/internal/server/models"
)

type ctxKey string

const userKey ctxKey = "user"

// WithUser stores the authenticated user in ctx.
func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// UserFromContext returns the user stored by the auth middleware, or nil.
func UserFromContext(ctx context.Context) *models.User {
	u, _ := ctx.Value(userKey).(*models.User)
	return u
}
