package policy

import (
	"context"

	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/models"
)

// ListingRule gates operations on listings. Active listings are public;
// everything else is owner- or admin-only.
type ListingRule struct {
	admin AdminChecker
	owner IdentityOwnership
}

func NewListingRule(admin AdminChecker) *ListingRule {
	return &ListingRule{admin: admin}
}

// CanRead: active rows are visible to everyone, non-active rows only to
// their owner or an admin. Used as a row filter, never as an error.
func (r *ListingRule) CanRead(ctx context.Context, p Principal, row *models.Listing) bool {
	if row.Status == models.ListingStatusActive {
		return true
	}
	return r.owner.Owns(p, row.OwnerID) || r.admin.IsAdmin(ctx, p)
}

// CanCreate: authenticated callers may create listings they themselves own.
func (r *ListingRule) CanCreate(ctx context.Context, p Principal, newRow *models.Listing) bool {
	return !p.IsAnonymous() && r.owner.Owns(p, newRow.OwnerID)
}

// CanUpdate: the owner of the current row, or an admin. Which fields the
// update may actually touch is the hooks' concern, not the rule's.
func (r *ListingRule) CanUpdate(ctx context.Context, p Principal, old *models.Listing) bool {
	return r.owner.Owns(p, old.OwnerID) || r.admin.IsAdmin(ctx, p)
}

// CanDelete: same as update.
func (r *ListingRule) CanDelete(ctx context.Context, p Principal, old *models.Listing) bool {
	return r.CanUpdate(ctx, p, old)
}
