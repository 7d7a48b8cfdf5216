// Package users declares the repository contract for user rows.
package users

import (
	"context"

	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/models"
)

type Repository interface {
	// Create inserts a new user row. A duplicate email yields
	// common.ErrorConflict.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByID returns the user row by primary key. This is also the
	// privileged read path used by the policy resolver and admin oracle;
	// it performs no row filtering.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByEmail returns the user row matching the email, for login.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// Update persists email, role and updated_at for an existing row.
	Update(ctx context.Context, user *models.User) error
}
