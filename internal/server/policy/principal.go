package policy

import (
	"context"
	"fmt"
)

// Principal is the resolved identity of the caller for one request.
// Identity is the user ID, or empty for anonymous callers. Whether the
// principal is an administrator is not stored here: it is looked up through
// the AdminOracle at evaluation time so a stale session can never carry a
// revoked role.
type Principal struct {
	Identity string
}

// Anonymous is the principal of a caller without a valid credential.
var Anonymous = Principal{}

// IsAnonymous reports whether the principal carries no identity.
func (p Principal) IsAnonymous() bool {
	return p.Identity == ""
}

// Is reports whether the principal is the user with the given ID.
// Always false for anonymous principals.
func (p Principal) Is(userID string) bool {
	return !p.IsAnonymous() && p.Identity == userID
}

// String returns a representation suitable for audit logs.
func (p Principal) String() string {
	if p.IsAnonymous() {
		return "anonymous"
	}
	return "user:" + p.Identity
}

// principalKey is an unexported key type to prevent external forgery.
type principalKey struct{}

// WithPrincipal sets the request principal, returning an error if a
// different principal is already present. Each context carries at most one
// principal, which prevents principal mixing across middleware layers.
func WithPrincipal(ctx context.Context, p Principal) (context.Context, error) {
	if existing, ok := FromContext(ctx); ok {
		if existing != p {
			return ctx, fmt.Errorf("policy: principal conflict: existing=%s, new=%s", existing, p)
		}
		return ctx, nil
	}

	return context.WithValue(ctx, principalKey{}, p), nil
}

// FromContext reads the request principal.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// PrincipalOrAnonymous reads the request principal, falling back to
// Anonymous when none was set. Handlers for public routes use this so
// unauthenticated reads still evaluate against a well-formed principal.
func PrincipalOrAnonymous(ctx context.Context) Principal {
	if p, ok := FromContext(ctx); ok {
		return p
	}
	return Anonymous
}
