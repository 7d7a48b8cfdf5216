// Package favorites declares the repository contract for the favorites join
// table. Favorites are never updated: create and delete only.
package favorites

import (
	"context"

	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/models"
)

type Repository interface {
	// Create inserts the (user_id, listing_id) pair. A duplicate pair
	// yields common.ErrorConflict; the unique constraint guarantees no
	// silent duplicate row can exist.
	Create(ctx context.Context, favorite *models.Favorite) error

	// Get returns the pair, or common.ErrorNotFound.
	Get(ctx context.Context, userID, listingID string) (*models.Favorite, error)

	// ListByUser returns the user's favorites, newest first.
	ListByUser(ctx context.Context, userID string) ([]*models.Favorite, error)

	// Delete removes the pair; deleting an absent pair yields
	// common.ErrorNotFound.
	Delete(ctx context.Context, userID, listingID string) error
}
