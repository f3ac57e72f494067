package auth

import (
	"context"

	"github.com/archops-lab/dispatchboard/pkg/domain/model"
)

type ctxKey struct{}

// ContextWithUser attaches the authenticated user to the context
func ContextWithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, user)
}

// UserFromContext extracts the authenticated user, or nil when absent
func UserFromContext(ctx context.Context) *model.User {
	user, _ := ctx.Value(ctxKey{}).(*model.User)
	return user
}
