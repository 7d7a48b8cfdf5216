package policy

import (
	"context"

	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/models"
)

// UserRule gates operations on user profiles. A user row is owned by itself
// for read and update; the role-change clamp lives in the hooks, not here.
type UserRule struct {
	admin AdminChecker
}

func NewUserRule(admin AdminChecker) *UserRule {
	return &UserRule{admin: admin}
}

func (r *UserRule) CanRead(ctx context.Context, p Principal, row *models.User) bool {
	return p.Is(row.ID) || r.admin.IsAdmin(ctx, p)
}

func (r *UserRule) CanUpdate(ctx context.Context, p Principal, old *models.User) bool {
	return p.Is(old.ID) || r.admin.IsAdmin(ctx, p)
}
