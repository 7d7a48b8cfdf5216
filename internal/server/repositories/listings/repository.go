// Package listings declares the repository contract for listing rows.
package listings

import (
	"context"

	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, listing *models.Listing) (*models.Listing, error)

	// GetByID returns the row regardless of visibility; the caller applies
	// the read predicate and maps invisible rows to not-found.
	GetByID(ctx context.Context, id string) (*models.Listing, error)

	// ListVisible scans listings scoped to what the viewer may see:
	// everything for admins, active rows plus the viewer's own rows
	// otherwise. Scoping at the query level keeps list reads aligned with
	// the single-row read predicate.
	ListVisible(ctx context.Context, viewerID string, admin bool) ([]*models.Listing, error)

	Update(ctx context.Context, listing *models.Listing) error

	Delete(ctx context.Context, id string) error
}
