package middleware

import (
	"context"

	"github.com/riyazsharif/employee-leave-managment-system/internal/core/domain"
)

// principalKey is the key used to store the authenticated principal in the
// request context.
const principalKey = contextKey("principal")

// GetPrincipalFromCtx retrieves the authenticated principal from the context.
// It returns the principal and a boolean indicating if it was found.
func GetPrincipalFromCtx(ctx context.Context) (domain.Principal, bool) {
	principal, ok := ctx.Value(principalKey).(domain.Principal)
	return principal, ok
}

// WithPrincipal returns a context carrying the given principal. Exposed for
// handler tests that bypass the auth middleware.
func WithPrincipal(ctx context.Context, principal domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}
