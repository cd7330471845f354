// Package auth resolves the acting identity for each request. Tokens are
// signed JWTs; the HTTP middleware verifies them and attaches the resulting
// Identity to the request context, so services never see raw credentials.
package auth

import "context"

// RoleAdmin marks privileged accounts that may mutate system playlists.
const RoleAdmin = "admin"

// Identity is the resolved (userID, role) pair attached to each operation.
type Identity struct {
	UserID int64
	Role   string
}

// Admin reports whether the identity carries the admin role.
func (id Identity) Admin() bool {
	return id.Role == RoleAdmin
}

type contextKey string

const identityKey contextKey = "identity"

// WithIdentity returns a context carrying the identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom extracts the identity placed by the auth middleware.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
