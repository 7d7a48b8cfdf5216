// Package activities declares the repository contract for the append-only
// activity log. There is deliberately no update or delete operation.
package activities

import (
	"context"

	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/models"
)

type Repository interface {
	// Append inserts a new log row.
	Append(ctx context.Context, activity *models.Activity) error

	// ListByUser returns the user's log rows, newest first.
	ListByUser(ctx context.Context, userID string) ([]*models.Activity, error)
}
