package policy

import (
	"context"
	"time"

	"github.com/DyarAbdulla/carwiseiq-sub006/internal/logging"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/models"
)

// Actor is the evaluator-resolved view of a principal handed to the hooks.
// The admin bit is looked up once, before the hooks run, so the hooks stay
// deterministic and never touch the store themselves.
type Actor struct {
	Identity string
	Admin    bool
}

// Hooks clamp or derive fields on an already-allowed write, regardless of
// what the caller supplied. They run in a fixed order: immutability clamps
// first, then the sold-timestamp derivation (so it always observes the final
// IsSold value), then updated-at stamping. All hooks are total and operate
// on copies; the caller's snapshots are never mutated.
type Hooks struct {
	now    func() time.Time
	logger logging.Logger
}

func NewHooks(logger logging.Logger) *Hooks {
	return &Hooks{
		now:    time.Now,
		logger: logger.With("module", "policy_hooks"),
	}
}

// UserUpdate returns the row to persist for an allowed user update.
//
// Role is clamped back to its old value for every non-admin actor. The
// original system silently drops the attempted role change rather than
// rejecting the update; we keep that behavior but log the attempt, so a
// self-escalation try is observable.
func (h *Hooks) UserUpdate(ctx context.Context, actor Actor, old, updated *models.User) *models.User {
	row := updated.Clone()

	row.ID = old.ID
	row.CreatedAt = old.CreatedAt
	row.PasswordHash = old.PasswordHash

	if !actor.Admin && row.Role != old.Role {
		h.logger.Warn(ctx, "role change clamped",
			"actor", actor.Identity, "target", old.ID,
			"attempted_role", row.Role, "kept_role", old.Role)
		row.Role = old.Role
	}

	row.UpdatedAt = h.now().UTC()
	return row
}

// ListingCreate returns the row to persist for an allowed listing create.
// New listings always start unsold and, unless an admin says otherwise,
// in the pending status.
func (h *Hooks) ListingCreate(ctx context.Context, actor Actor, newRow *models.Listing) *models.Listing {
	row := newRow.Clone()

	if !actor.Admin || row.Status == "" {
		row.Status = models.ListingStatusPending
	}

	// Creation is not a sold transition.
	row.IsSold = false
	row.SoldAt = nil

	now := h.now().UTC()
	row.CreatedAt = now
	row.UpdatedAt = now
	return row
}

// ListingUpdate returns the row to persist for an allowed listing update.
// Clamps run before the sold-timestamp derivation.
func (h *Hooks) ListingUpdate(ctx context.Context, actor Actor, old, updated *models.Listing) *models.Listing {
	row := updated.Clone()
	row.ID = old.ID

	// Owner-field immutability: only an admin-authored update may move
	// these, whatever the payload said.
	if !actor.Admin {
		row.OwnerID = old.OwnerID
		row.Status = old.Status
		row.CreatedAt = old.CreatedAt
	}

	// Sold timestamp is derived from the transition, never client-settable.
	switch {
	case !old.IsSold && row.IsSold:
		t := h.now().UTC()
		row.SoldAt = &t
	case old.IsSold && !row.IsSold:
		row.SoldAt = nil
	default:
		row.SoldAt = old.SoldAt
	}

	row.UpdatedAt = h.now().UTC()
	return row
}
