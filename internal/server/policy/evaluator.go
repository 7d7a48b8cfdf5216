package policy

import (
	"context"
	"fmt"

	"github.com/DyarAbdulla/carwiseiq-sub006/internal/common"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/logging"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/models"
)

// Evaluator is the single authorization gate for the data layer. For writes
// it evaluates the resource rule, resolves the acting principal's admin bit
// once, runs the enforcement hooks, and verifies the resulting row against
// the engine invariants before handing it back for persistence. A denied
// write is terminal: no retries, the caller must re-issue with corrected
// identity or ownership.
//
// For reads the rules are exposed as row filters (CanRead*); services map a
// filtered-out row to common.ErrorNotFound so the outcome is
// indistinguishable from an absent row.
type Evaluator struct {
	admin  AdminChecker
	hooks  *Hooks
	logger logging.Logger

	users      *UserRule
	listings   *ListingRule
	favorites  *FavoriteRule
	activities *ActivityRule
	storage    *StorageRule
}

func NewEvaluator(admin AdminChecker, logger logging.Logger) *Evaluator {
	return &Evaluator{
		admin:      admin,
		hooks:      NewHooks(logger),
		logger:     logger.With("module", "policy_evaluator"),
		users:      NewUserRule(admin),
		listings:   NewListingRule(admin),
		favorites:  NewFavoriteRule(admin),
		activities: NewActivityRule(),
		storage:    NewStorageRule(admin),
	}
}

// actor resolves the admin bit exactly once per write so the hooks and the
// invariant check observe the same value.
func (e *Evaluator) actor(ctx context.Context, p Principal) Actor {
	return Actor{Identity: p.Identity, Admin: e.admin.IsAdmin(ctx, p)}
}

// IsAdmin exposes the oracle's answer so services can scope list queries the
// same way the single-row rules would filter them.
func (e *Evaluator) IsAdmin(ctx context.Context, p Principal) bool {
	return e.admin.IsAdmin(ctx, p)
}

// --- users ---

func (e *Evaluator) CanReadUser(ctx context.Context, p Principal, row *models.User) bool {
	return e.users.CanRead(ctx, p, row)
}

// UserUpdate gates and clamps a user update, returning the row to persist.
func (e *Evaluator) UserUpdate(ctx context.Context, p Principal, old, updated *models.User) (*models.User, error) {
	if !e.users.CanUpdate(ctx, p, old) {
		return nil, common.ErrPermissionDenied
	}

	actor := e.actor(ctx, p)
	row := e.hooks.UserUpdate(ctx, actor, old, updated)

	if err := e.checkUserInvariants(ctx, actor, old, row); err != nil {
		return nil, err
	}
	return row, nil
}

// --- listings ---

func (e *Evaluator) CanReadListing(ctx context.Context, p Principal, row *models.Listing) bool {
	return e.listings.CanRead(ctx, p, row)
}

// ListingCreate gates a listing create, returning the row to persist.
func (e *Evaluator) ListingCreate(ctx context.Context, p Principal, newRow *models.Listing) (*models.Listing, error) {
	if !e.listings.CanCreate(ctx, p, newRow) {
		return nil, common.ErrPermissionDenied
	}
	return e.hooks.ListingCreate(ctx, e.actor(ctx, p), newRow), nil
}

// ListingUpdate gates and clamps a listing update, returning the row to
// persist.
func (e *Evaluator) ListingUpdate(ctx context.Context, p Principal, old, updated *models.Listing) (*models.Listing, error) {
	if !e.listings.CanUpdate(ctx, p, old) {
		return nil, common.ErrPermissionDenied
	}

	actor := e.actor(ctx, p)
	row := e.hooks.ListingUpdate(ctx, actor, old, updated)

	if err := e.checkListingInvariants(ctx, actor, old, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (e *Evaluator) ListingDelete(ctx context.Context, p Principal, old *models.Listing) error {
	if !e.listings.CanDelete(ctx, p, old) {
		return common.ErrPermissionDenied
	}
	return nil
}

// --- favorites ---

func (e *Evaluator) CanReadFavorite(ctx context.Context, p Principal, row *models.Favorite) bool {
	return e.favorites.CanRead(ctx, p, row)
}

func (e *Evaluator) FavoriteCreate(ctx context.Context, p Principal, row *models.Favorite) error {
	if !e.favorites.CanCreate(ctx, p, row) {
		return common.ErrPermissionDenied
	}
	return nil
}

func (e *Evaluator) FavoriteDelete(ctx context.Context, p Principal, row *models.Favorite) error {
	if !e.favorites.CanDelete(ctx, p, row) {
		return common.ErrPermissionDenied
	}
	return nil
}

// --- activity log ---

func (e *Evaluator) CanReadActivity(ctx context.Context, p Principal, row *models.Activity) bool {
	return e.activities.CanRead(ctx, p, row)
}

func (e *Evaluator) ActivityAppend(ctx context.Context, p Principal, row *models.Activity) error {
	if !e.activities.CanCreate(ctx, p, row) {
		return common.ErrPermissionDenied
	}
	return nil
}

// --- object storage ---

func (e *Evaluator) CanReadObject(ctx context.Context, p Principal, path string) bool {
	return e.storage.CanRead(ctx, p, path)
}

func (e *Evaluator) StorageWrite(ctx context.Context, p Principal, path string) error {
	if !e.storage.CanWrite(ctx, p, path) {
		return common.ErrPermissionDenied
	}
	return nil
}

// --- invariant verification ---
//
// These checks should be unreachable when rules and hooks agree; tripping
// one indicates a bug in the engine itself, so it is logged at Error and
// surfaced as an internal error rather than a normal denial.

func (e *Evaluator) checkUserInvariants(ctx context.Context, actor Actor, old, row *models.User) error {
	if !actor.Admin && row.Role != old.Role {
		return e.violation(ctx, "user role changed by non-admin", "user", old.ID)
	}
	return nil
}

func (e *Evaluator) checkListingInvariants(ctx context.Context, actor Actor, old, row *models.Listing) error {
	if row.IsSold != (row.SoldAt != nil) {
		return e.violation(ctx, "sold_at inconsistent with is_sold", "listing", old.ID)
	}
	if !actor.Admin {
		if row.OwnerID != old.OwnerID || row.Status != old.Status || !row.CreatedAt.Equal(old.CreatedAt) {
			return e.violation(ctx, "owner-immutable field changed by non-admin", "listing", old.ID)
		}
	}
	return nil
}

func (e *Evaluator) violation(ctx context.Context, msg, entity, id string) error {
	e.logger.Error(ctx, "invariant violation: "+msg, entity, id)
	return fmt.Errorf("%w: %s", common.ErrorInvariantViolation, msg)
}
