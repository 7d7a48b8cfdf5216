package policy

import (
	"context"

	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/models"
)

// FavoriteRule gates the join entity. Favorites have no update operation:
// they are created and deleted strictly by their owning user.
type FavoriteRule struct {
	admin AdminChecker
}

func NewFavoriteRule(admin AdminChecker) *FavoriteRule {
	return &FavoriteRule{admin: admin}
}

func (r *FavoriteRule) CanRead(ctx context.Context, p Principal, row *models.Favorite) bool {
	return p.Is(row.UserID) || r.admin.IsAdmin(ctx, p)
}

func (r *FavoriteRule) CanCreate(ctx context.Context, p Principal, row *models.Favorite) bool {
	return p.Is(row.UserID)
}

func (r *FavoriteRule) CanDelete(ctx context.Context, p Principal, row *models.Favorite) bool {
	return p.Is(row.UserID)
}
