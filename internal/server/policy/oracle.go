package policy

import (
	"context"
	"errors"

	"github.com/DyarAbdulla/carwiseiq-sub006/internal/common"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/logging"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/models"
)

// PrivilegedUserReader is the capability the oracle (and the resolver) hold
// for looking up user rows directly, bypassing row filtering. It is granted
// once at construction time and must never route back through the evaluator;
// that is what keeps the admin check non-recursive.
//
// The read is plain and lock-free, so it is safe to call inside an in-flight
// transaction on the users table itself.
type PrivilegedUserReader interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// AdminChecker is the admin-lookup dependency of the rule files. Tests
// substitute a fake; production code uses *AdminOracle.
type AdminChecker interface {
	IsAdmin(ctx context.Context, p Principal) bool
}

// AdminOracle answers "is this principal an administrator?" with a single
// privileged read of the principal's user row.
type AdminOracle struct {
	users  PrivilegedUserReader
	logger logging.Logger
}

func NewAdminOracle(users PrivilegedUserReader, logger logging.Logger) *AdminOracle {
	return &AdminOracle{
		users:  users,
		logger: logger.With("module", "admin_oracle"),
	}
}

// IsAdmin returns true only when the principal's user row exists and carries
// the admin role. Anonymous principals and lookup failures answer false:
// the check fails closed, and unexpected lookup errors are logged because a
// flaky users table silently downgrades admins.
func (o *AdminOracle) IsAdmin(ctx context.Context, p Principal) bool {
	if p.IsAnonymous() {
		return false
	}

	user, err := o.users.GetByID(ctx, p.Identity)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			o.logger.Error(ctx, "admin lookup failed, treating as non-admin",
				"principal", p.String(), "error", err.Error())
		}
		return false
	}

	return user.Role == models.RoleAdmin
}
