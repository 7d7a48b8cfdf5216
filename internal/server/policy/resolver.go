package policy

import (
	"context"

	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/auth"
)

// Resolver turns an opaque caller credential (a JWT access token) into a
// Principal. It shares the privileged user reader with the oracle so the
// lookup cannot be blocked by read filtering.
type Resolver struct {
	users     PrivilegedUserReader
	jwtSecret []byte
}

func NewResolver(users PrivilegedUserReader, jwtSecret []byte) *Resolver {
	return &Resolver{users: users, jwtSecret: jwtSecret}
}

// Resolve returns the principal for the given credential. Any failure —
// missing, malformed or expired token, or an absent user row — yields
// Anonymous, never an error: callers without credentials must still be able
// to perform anonymous-permitted reads. Resolution is a pure, idempotent
// lookup with no side effects.
func (r *Resolver) Resolve(ctx context.Context, credential string) Principal {
	if credential == "" {
		return Anonymous
	}

	userID, err := auth.GetUserIDFromToken(credential, r.jwtSecret)
	if err != nil {
		return Anonymous
	}

	// A valid token for a deleted user degrades to anonymous; the
	// distinction is invisible to the caller on purpose.
	user, err := r.users.GetByID(ctx, userID)
	if err != nil {
		return Anonymous
	}

	return Principal{Identity: user.ID}
}
