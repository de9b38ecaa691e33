package authorization

import (
	"context"

	"github.com/Mazharul-Islam-2046/bnBreeze-server/domain"
)

// Identity is the authenticated caller of a request.
type Identity struct {
	User   *domain.User
	Claims *AccessClaims
}

type identityKey struct{}

func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(*Identity)
	return identity, ok && identity != nil
}

// RoleFromContext returns the caller's role, or "Unauthenticated" when the
// request carries no identity.
func RoleFromContext(ctx context.Context) string {
	identity, ok := IdentityFromContext(ctx)
	if !ok || identity.User == nil {
		return "Unauthenticated"
	}
	return string(identity.User.Role)
}
