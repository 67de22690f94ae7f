// Package identity carries the authenticated caller through the request
// context. Identity is request-scoped: it is attached by middleware and
// read back by handlers, never held in process-wide state.
package identity

import "context"

// Group names carried in the provider's group claim.
const (
	GroupAdmin      = "admin"
	GroupSuperAdmin = "super_admin"
)

// Identity is the authenticated caller extracted from token claims.
type Identity struct {
	Sub      string
	Username string
	Groups   []string
}

// InGroup reports whether the caller belongs to a group.
func (id Identity) InGroup(group string) bool {
	for _, g := range id.Groups {
		if g == group {
			return true
		}
	}
	return false
}

// IsSuperAdmin reports whether the caller carries the super-admin claim.
func (id Identity) IsSuperAdmin() bool {
	return id.InGroup(GroupSuperAdmin)
}

type contextKey struct{}

// WithIdentity returns a context carrying the caller identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the caller identity, if one was attached.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}
